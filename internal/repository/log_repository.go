package repository

import (
	"context"
	"time"

	"github.com/playmo/smartdns-api/internal/constants"
	"github.com/playmo/smartdns-api/internal/models"
	"github.com/playmo/smartdns-api/internal/store"
)

type LogRepository interface {
	SaveLog(ctx context.Context, log *models.LogEntry) error
}

type StoreLogRepository struct {
	store store.Store
}

func NewLogRepository(s store.Store) LogRepository {
	return &StoreLogRepository{store: s}
}

func (r *StoreLogRepository) SaveLog(ctx context.Context, log *models.LogEntry) error {
	log.ID = ""
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}
	id, err := r.store.Add(ctx, constants.CollectionLogs, log)
	if err != nil {
		return err
	}
	log.ID = id
	return nil
}
