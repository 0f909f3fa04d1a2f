package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/playmo/smartdns-api/internal/gateway"
	"github.com/playmo/smartdns-api/internal/middleware"
	"github.com/playmo/smartdns-api/internal/store"
)

type HealthHandler struct {
	store   store.Store
	gateway gateway.Whitelister
}

func NewHealthHandler(s store.Store, gw gateway.Whitelister) *HealthHandler {
	return &HealthHandler{store: s, gateway: gw}
}

// HealthCheck reports configuration state
// @Summary Health check
// @Description Reports whether the document store came up and whether a whitelist gateway is configured
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service health"
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":             "healthy",
		"store_connected":    store.Available(h.store),
		"gateway_configured": h.gateway.Configured(),
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
	})
}

// internalError answers 500 with the error text and snapshots it for audit.
func internalError(c *gin.Context, err error) {
	middleware.SetAuditData(c, err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
