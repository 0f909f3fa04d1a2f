package service

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/playmo/smartdns-api/internal/constants"
	"github.com/playmo/smartdns-api/internal/gateway"
	"github.com/playmo/smartdns-api/internal/models"
	"github.com/playmo/smartdns-api/internal/notify"
	"github.com/playmo/smartdns-api/internal/repository"
	"github.com/playmo/smartdns-api/internal/store"
)

var ErrClientNotFound = errors.New("client not found")

type ClientService interface {
	CreateClient(ctx context.Context, name, email, status string, metadata map[string]interface{}) (*models.Client, error)
	GetClient(ctx context.Context, id string) (*models.Client, error)
	GetAllClients(ctx context.Context) ([]*models.Client, error)
	AddIP(ctx context.Context, clientID, ip, source string) (*AddIPResult, error)
}

type AddIPResult struct {
	IP          string
	DocumentID  string
	Replaced    bool
	Whitelisted bool
}

type clientService struct {
	clientRepo repository.ClientRepository
	ipRepo     repository.IPRepository
	gateway    gateway.Whitelister
	events     notify.Publisher
	now        func() time.Time
}

func NewClientService(clientRepo repository.ClientRepository, ipRepo repository.IPRepository, gw gateway.Whitelister, events notify.Publisher) ClientService {
	return &clientService{
		clientRepo: clientRepo,
		ipRepo:     ipRepo,
		gateway:    gw,
		events:     events,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *clientService) CreateClient(ctx context.Context, name, email, status string, metadata map[string]interface{}) (*models.Client, error) {
	if status == "" {
		status = constants.DefaultClientStatus
	}

	now := s.now()
	client := models.NewClient(name, email, status, metadata, now)
	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		return nil, err
	}

	s.events.Publish(models.Event{Type: constants.EventClientCreated, ClientID: client.ID, Timestamp: now})
	return client, nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrClientNotFound
	}
	return client, err
}

func (s *clientService) GetAllClients(ctx context.Context) ([]*models.Client, error) {
	return s.clientRepo.GetAllClients(ctx)
}

// AddIP merges ip into the client's embedded list, appends a standalone IP
// document and, when a gateway is configured, tries to whitelist it once.
// The read-modify-write of the embedded list is not coordinated across
// concurrent calls for the same client; the last write wins.
func (s *clientService) AddIP(ctx context.Context, clientID, ip, source string) (*AddIPResult, error) {
	if source == "" {
		source = constants.DefaultIPSource
	}

	client, err := s.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	replaced := client.MergeIP(ip, source, now)
	if err := s.clientRepo.UpdateIPs(ctx, clientID, client.IPAddresses, now); err != nil {
		return nil, err
	}

	doc := &models.IPAddress{
		ClientID:  clientID,
		IPAddress: ip,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.ipRepo.SaveIP(ctx, doc); err != nil {
		return nil, err
	}

	result := &AddIPResult{IP: ip, DocumentID: doc.ID, Replaced: replaced}
	s.events.Publish(models.Event{Type: constants.EventIPAdded, ClientID: clientID, IPAddress: ip, Timestamp: now})

	if s.gateway.Configured() {
		result.Whitelisted = s.tryWhitelist(ctx, clientID, doc)
	}
	return result, nil
}

func (s *clientService) tryWhitelist(ctx context.Context, clientID string, doc *models.IPAddress) bool {
	if err := s.gateway.Whitelist(ctx, doc.IPAddress, ""); err != nil {
		log.Warn("Failed to whitelist IP via gateway", "ip", doc.IPAddress, "client_id", clientID, "error", err)
		return false
	}
	log.Info("IP whitelisted via gateway", "ip", doc.IPAddress, "client_id", clientID)

	at := s.now()
	if err := s.ipRepo.MarkWhitelisted(ctx, doc.ID, at); err != nil {
		log.Warn("Failed to mark IP document whitelisted", "ip", doc.IPAddress, "id", doc.ID, "error", err)
	}
	s.events.Publish(models.Event{Type: constants.EventIPWhitelisted, ClientID: clientID, IPAddress: doc.IPAddress, Whitelisted: true, Timestamp: at})
	return true
}
