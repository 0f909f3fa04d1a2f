package service

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/playmo/smartdns-api/internal/constants"
	"github.com/playmo/smartdns-api/internal/gateway"
	"github.com/playmo/smartdns-api/internal/models"
	"github.com/playmo/smartdns-api/internal/notify"
	"github.com/playmo/smartdns-api/internal/repository"
)

type WhitelistRequest struct {
	IP            string
	ClientID      string
	Proto         string
	WhitelistedBy string
}

type WhitelistService interface {
	WhitelistIP(ctx context.Context, req WhitelistRequest) (*models.WhitelistEntry, error)
}

type whitelistService struct {
	whitelistRepo repository.WhitelistRepository
	ipRepo        repository.IPRepository
	gateway       gateway.Whitelister
	events        notify.Publisher
	now           func() time.Time
}

func NewWhitelistService(whitelistRepo repository.WhitelistRepository, ipRepo repository.IPRepository, gw gateway.Whitelister, events notify.Publisher) WhitelistService {
	return &whitelistService{
		whitelistRepo: whitelistRepo,
		ipRepo:        ipRepo,
		gateway:       gw,
		events:        events,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// WhitelistIP calls the gateway and, only on success, records a whitelist
// entry and flags every IP document carrying the address.
func (s *whitelistService) WhitelistIP(ctx context.Context, req WhitelistRequest) (*models.WhitelistEntry, error) {
	if req.Proto == "" {
		req.Proto = constants.DefaultProtocol
	}
	if req.WhitelistedBy == "" {
		req.WhitelistedBy = constants.DefaultWhitelister
	}

	if err := s.gateway.Whitelist(ctx, req.IP, req.Proto); err != nil {
		return nil, err
	}

	now := s.now()
	entry := &models.WhitelistEntry{
		IPAddress:     req.IP,
		ClientID:      req.ClientID,
		Protocol:      req.Proto,
		WhitelistedBy: req.WhitelistedBy,
		WhitelistedAt: now,
	}
	if err := s.whitelistRepo.SaveEntry(ctx, entry); err != nil {
		return nil, err
	}

	docs, err := s.ipRepo.GetIPsByAddress(ctx, req.IP)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if err := s.ipRepo.MarkWhitelisted(ctx, doc.ID, now); err != nil {
			return nil, fmt.Errorf("failed to mark %s whitelisted: %w", doc.ID, err)
		}
	}

	log.Info("IP whitelisted manually", "ip", req.IP, "proto", req.Proto, "by", req.WhitelistedBy, "documents", len(docs))
	s.events.Publish(models.Event{Type: constants.EventIPWhitelisted, ClientID: req.ClientID, IPAddress: req.IP, Whitelisted: true, Timestamp: now})
	return entry, nil
}
