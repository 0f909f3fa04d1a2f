package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/playmo/smartdns-api/internal/models"
	"github.com/playmo/smartdns-api/internal/repository"
	"github.com/playmo/smartdns-api/internal/store"
)

const auditTimeout = 5 * time.Second

// LogService appends one audit record per API call. Writes are detached from
// the request and their errors never reach the caller.
type LogService interface {
	LogAPICall(entry models.LogEntry)
	Wait()
}

type logService struct {
	logRepo  repository.LogRepository
	failures prometheus.Counter
	wg       sync.WaitGroup
}

// NewLogService returns an audit logger. failures may be nil.
func NewLogService(logRepo repository.LogRepository, failures prometheus.Counter) LogService {
	return &logService{logRepo: logRepo, failures: failures}
}

func (s *logService) LogAPICall(entry models.LogEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Error("Audit write panicked", "endpoint", entry.Endpoint, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()

		err := s.logRepo.SaveLog(ctx, &entry)
		switch {
		case err == nil:
		case errors.Is(err, store.ErrUnavailable):
			log.Debug("Audit log skipped, store unavailable", "endpoint", entry.Endpoint)
		default:
			log.Error("Failed to log API call", "endpoint", entry.Endpoint, "method", entry.Method, "error", err)
			if s.failures != nil {
				s.failures.Inc()
			}
		}
	}()
}

// Wait blocks until every in-flight audit write has finished.
func (s *logService) Wait() {
	s.wg.Wait()
}
