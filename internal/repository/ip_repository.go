package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/playmo/smartdns-api/internal/constants"
	"github.com/playmo/smartdns-api/internal/models"
	"github.com/playmo/smartdns-api/internal/store"
)

type IPRepository interface {
	SaveIP(ctx context.Context, ip *models.IPAddress) error
	GetIPsByAddress(ctx context.Context, address string) ([]*models.IPAddress, error)
	MarkWhitelisted(ctx context.Context, id string, at time.Time) error
	CountIPs(ctx context.Context) (int64, error)
	CountWhitelisted(ctx context.Context) (int64, error)
}

type StoreIPRepository struct {
	store store.Store
}

func NewIPRepository(s store.Store) IPRepository {
	return &StoreIPRepository{store: s}
}

func (r *StoreIPRepository) SaveIP(ctx context.Context, ip *models.IPAddress) error {
	ip.ID = ""
	id, err := r.store.Add(ctx, constants.CollectionIPs, ip)
	if err != nil {
		return err
	}
	ip.ID = id
	return nil
}

func (r *StoreIPRepository) GetIPsByAddress(ctx context.Context, address string) ([]*models.IPAddress, error) {
	docs, err := r.store.Scan(ctx, constants.CollectionIPs, store.Eq("ip_address", address))
	if err != nil {
		return nil, err
	}

	ips := make([]*models.IPAddress, 0, len(docs))
	for _, doc := range docs {
		var ip models.IPAddress
		if err := doc.Decode(&ip); err != nil {
			return nil, fmt.Errorf("failed to decode ip address %s: %w", doc.ID, err)
		}
		ips = append(ips, &ip)
	}
	return ips, nil
}

func (r *StoreIPRepository) MarkWhitelisted(ctx context.Context, id string, at time.Time) error {
	return r.store.Update(ctx, constants.CollectionIPs, id, map[string]interface{}{
		"is_whitelisted": true,
		"whitelisted_at": at,
		"updated_at":     at,
	})
}

func (r *StoreIPRepository) CountIPs(ctx context.Context) (int64, error) {
	return r.store.Count(ctx, constants.CollectionIPs, nil)
}

func (r *StoreIPRepository) CountWhitelisted(ctx context.Context) (int64, error) {
	return r.store.Count(ctx, constants.CollectionIPs, store.Eq("is_whitelisted", true))
}
