package service

import (
	"context"

	"github.com/playmo/smartdns-api/internal/models"
	"github.com/playmo/smartdns-api/internal/repository"
)

type StatsService interface {
	GetStats(ctx context.Context) (*models.Stats, error)
}

type statsService struct {
	clientRepo    repository.ClientRepository
	ipRepo        repository.IPRepository
	whitelistRepo repository.WhitelistRepository
}

func NewStatsService(clientRepo repository.ClientRepository, ipRepo repository.IPRepository, whitelistRepo repository.WhitelistRepository) StatsService {
	return &statsService{clientRepo: clientRepo, ipRepo: ipRepo, whitelistRepo: whitelistRepo}
}

func (s *statsService) GetStats(ctx context.Context) (*models.Stats, error) {
	var (
		stats models.Stats
		err   error
	)
	if stats.TotalClients, err = s.clientRepo.CountClients(ctx); err != nil {
		return nil, err
	}
	if stats.TotalIPs, err = s.ipRepo.CountIPs(ctx); err != nil {
		return nil, err
	}
	if stats.WhitelistedIPs, err = s.ipRepo.CountWhitelisted(ctx); err != nil {
		return nil, err
	}
	if stats.TotalWhitelistEntries, err = s.whitelistRepo.CountEntries(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}
