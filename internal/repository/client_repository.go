package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/playmo/smartdns-api/internal/constants"
	"github.com/playmo/smartdns-api/internal/models"
	"github.com/playmo/smartdns-api/internal/store"
)

type ClientRepository interface {
	SaveClient(ctx context.Context, client *models.Client) error
	GetClientByID(ctx context.Context, id string) (*models.Client, error)
	GetAllClients(ctx context.Context) ([]*models.Client, error)
	UpdateIPs(ctx context.Context, id string, ips []models.IPEntry, updatedAt time.Time) error
	CountClients(ctx context.Context) (int64, error)
}

type StoreClientRepository struct {
	store store.Store
}

func NewClientRepository(s store.Store) ClientRepository {
	return &StoreClientRepository{store: s}
}

func (r *StoreClientRepository) SaveClient(ctx context.Context, client *models.Client) error {
	client.ID = ""
	id, err := r.store.Add(ctx, constants.CollectionClients, client)
	if err != nil {
		return err
	}
	client.ID = id
	return nil
}

// GetClientByID returns store.ErrNotFound when no client has the id.
func (r *StoreClientRepository) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	if err := r.store.Get(ctx, constants.CollectionClients, id, &client); err != nil {
		return nil, err
	}
	client.Normalize()
	return &client, nil
}

func (r *StoreClientRepository) GetAllClients(ctx context.Context) ([]*models.Client, error) {
	docs, err := r.store.Scan(ctx, constants.CollectionClients, nil)
	if err != nil {
		return nil, err
	}

	clients := make([]*models.Client, 0, len(docs))
	for _, doc := range docs {
		var client models.Client
		if err := doc.Decode(&client); err != nil {
			return nil, fmt.Errorf("failed to decode client %s: %w", doc.ID, err)
		}
		client.Normalize()
		clients = append(clients, &client)
	}
	return clients, nil
}

func (r *StoreClientRepository) UpdateIPs(ctx context.Context, id string, ips []models.IPEntry, updatedAt time.Time) error {
	return r.store.Update(ctx, constants.CollectionClients, id, map[string]interface{}{
		"ip_addresses": ips,
		"updated_at":   updatedAt,
	})
}

func (r *StoreClientRepository) CountClients(ctx context.Context) (int64, error) {
	return r.store.Count(ctx, constants.CollectionClients, nil)
}
