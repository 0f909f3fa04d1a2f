package repository

import (
	"context"

	"github.com/playmo/smartdns-api/internal/constants"
	"github.com/playmo/smartdns-api/internal/models"
	"github.com/playmo/smartdns-api/internal/store"
)

type WhitelistRepository interface {
	SaveEntry(ctx context.Context, entry *models.WhitelistEntry) error
	CountEntries(ctx context.Context) (int64, error)
}

type StoreWhitelistRepository struct {
	store store.Store
}

func NewWhitelistRepository(s store.Store) WhitelistRepository {
	return &StoreWhitelistRepository{store: s}
}

func (r *StoreWhitelistRepository) SaveEntry(ctx context.Context, entry *models.WhitelistEntry) error {
	entry.ID = ""
	id, err := r.store.Add(ctx, constants.CollectionWhitelist, entry)
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

func (r *StoreWhitelistRepository) CountEntries(ctx context.Context) (int64, error) {
	return r.store.Count(ctx, constants.CollectionWhitelist, nil)
}
