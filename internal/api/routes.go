package api

import (
	"github.com/abczzz13/clientip"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/playmo/smartdns-api/docs"
	"github.com/playmo/smartdns-api/internal/gateway"
	"github.com/playmo/smartdns-api/internal/metrics"
	"github.com/playmo/smartdns-api/internal/middleware"
	"github.com/playmo/smartdns-api/internal/service"
	"github.com/playmo/smartdns-api/internal/store"
	"github.com/playmo/smartdns-api/internal/ws"
)

type Dependencies struct {
	Store            store.Store
	Gateway          gateway.Whitelister
	ClientService    service.ClientService
	WhitelistService service.WhitelistService
	StatsService     service.StatsService
	LogService       service.LogService
	Metrics          *metrics.Metrics
	CallerExtractor  *clientip.Extractor
	WSHandler        *ws.WebSocketHandler
}

func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.CallerAddressMiddleware(deps.CallerExtractor))
	r.Use(middleware.LoggerMiddleware(deps.Metrics))

	SetupRoutes(r, deps)
	return r
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	registerValidation()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
	}))

	healthHandler := NewHealthHandler(deps.Store, deps.Gateway)
	clientHandler := NewClientHandler(deps.ClientService)
	whitelistHandler := NewWhitelistHandler(deps.WhitelistService)
	statsHandler := NewStatsHandler(deps.StatsService)

	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}
	if deps.WSHandler != nil {
		r.GET("/ws/events", deps.WSHandler.HandleConnection)
	}

	v1 := r.Group("/api")
	v1.Use(middleware.AuditMiddleware(deps.LogService), middleware.RequireStore(deps.Store))
	{
		v1.GET("/clients", clientHandler.GetAllClients)
		v1.POST("/clients", clientHandler.CreateClient)
		v1.GET("/clients/:id", clientHandler.GetClient)
		v1.POST("/clients/:id/ips", clientHandler.AddClientIP)
		v1.POST("/ips/whitelist", whitelistHandler.WhitelistIP)
		v1.GET("/stats", statsHandler.GetStats)
	}
}
