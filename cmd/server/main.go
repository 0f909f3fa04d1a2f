package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/playmo/smartdns-api/internal/api"
	"github.com/playmo/smartdns-api/internal/config"
	"github.com/playmo/smartdns-api/internal/gateway"
	"github.com/playmo/smartdns-api/internal/metrics"
	"github.com/playmo/smartdns-api/internal/middleware"
	"github.com/playmo/smartdns-api/internal/notify"
	"github.com/playmo/smartdns-api/internal/repository"
	"github.com/playmo/smartdns-api/internal/service"
	"github.com/playmo/smartdns-api/internal/store"
	"github.com/playmo/smartdns-api/internal/ws"
)

const shutdownTimeout = 10 * time.Second

// @title SmartDNS Client API
// @version 1.0
// @description Registers clients, records their IP addresses and triggers the IP whitelisting gateway.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn("Unknown LOG_LEVEL, using info", "value", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := openStore(cfg)
	if cfg.SecurityGroupID != "" {
		log.Info("Security group configured", "security_group_id", cfg.SecurityGroupID)
	}

	m := metrics.New()
	gw := gateway.NewClient(cfg.WhitelistURL, m.WhitelistAttempts)
	if !gw.Configured() {
		log.Warn("WHITELIST_URL not set, IPs will be recorded but never whitelisted")
	}

	hub := ws.NewHub()
	go hub.Run()
	wsHandler := ws.NewWebSocketHandler(hub)

	publishers := []notify.Publisher{hub}
	var mqtt *notify.MQTTPublisher
	if cfg.MQTT.Broker != "" {
		mqtt, err = notify.ConnectMQTT(notify.MQTTConfig{
			Broker:      cfg.MQTT.Broker,
			ClientID:    cfg.MQTT.ClientID,
			TopicPrefix: cfg.MQTT.TopicPrefix,
		})
		if err != nil {
			log.Error("MQTT disabled", "broker", cfg.MQTT.Broker, "error", err)
		} else {
			log.Info("Publishing events to MQTT", "broker", cfg.MQTT.Broker, "prefix", cfg.MQTT.TopicPrefix)
			publishers = append(publishers, mqtt)
		}
	}
	events := notify.Multi(publishers...)

	clientRepo := repository.NewClientRepository(db)
	ipRepo := repository.NewIPRepository(db)
	whitelistRepo := repository.NewWhitelistRepository(db)
	logRepo := repository.NewLogRepository(db)

	clientService := service.NewClientService(clientRepo, ipRepo, gw, events)
	whitelistService := service.NewWhitelistService(whitelistRepo, ipRepo, gw, events)
	statsService := service.NewStatsService(clientRepo, ipRepo, whitelistRepo)
	logService := service.NewLogService(logRepo, m.AuditFailures)

	extractor, err := middleware.NewCallerExtractor(cfg.TrustProxyHeaders, m)
	if err != nil {
		log.Fatal("Failed to build caller address extractor", "error", err)
	}

	r := api.NewRouter(api.Dependencies{
		Store:            db,
		Gateway:          gw,
		ClientService:    clientService,
		WhitelistService: whitelistService,
		StatsService:     statsService,
		LogService:       logService,
		Metrics:          m,
		CallerExtractor:  extractor,
		WSHandler:        wsHandler,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting server", "addr", srv.Addr, "store", cfg.StoreDriver, "store_connected", store.Available(db))
		log.Info("Swagger UI available", "url", "http://"+srv.Addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}
	logService.Wait()
	hub.Stop()
	if mqtt != nil {
		mqtt.Close()
	}
	if err := db.Close(ctx); err != nil {
		log.Error("Failed to close document store", "error", err)
	}
}

// openStore never fails hard. A store that cannot be reached is replaced by
// one that answers every call with store.ErrUnavailable so /health still
// reports and /api routes answer 500.
func openStore(cfg *config.Config) store.Store {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn("Using in-memory document store, data is lost on restart")
		return store.NewMemoryStore()
	case config.DriverSQLite:
		s, err := store.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			log.Error("Failed to open SQLite document store", "path", cfg.SQLitePath, "error", err)
			return store.Unavailable()
		}
		log.Info("Document store opened", "driver", "sqlite", "path", cfg.SQLitePath)
		return s
	default:
		if cfg.StoreCredentials == nil {
			log.Error("No store credentials configured, set STORE_CREDENTIALS or MONGO_URI")
			return store.Unavailable()
		}
		s, err := store.ConnectMongo(ctx, cfg.StoreCredentials.URI, cfg.StoreCredentials.Database)
		if err != nil {
			log.Error("Failed to connect to MongoDB", "error", err)
			return store.Unavailable()
		}
		log.Info("Document store connected", "driver", "mongo", "database", cfg.StoreCredentials.Database)
		return s
	}
}
