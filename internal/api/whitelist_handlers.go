package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/playmo/smartdns-api/internal/gateway"
	"github.com/playmo/smartdns-api/internal/middleware"
	"github.com/playmo/smartdns-api/internal/service"
)

type WhitelistIPRequest struct {
	IPAddress     string `json:"ip_address" binding:"required,ip"`
	ClientID      string `json:"client_id"`
	Proto         string `json:"proto"`
	WhitelistedBy string `json:"whitelisted_by"`
}

type WhitelistHandler struct {
	whitelistService service.WhitelistService
}

func NewWhitelistHandler(whitelistService service.WhitelistService) *WhitelistHandler {
	return &WhitelistHandler{whitelistService: whitelistService}
}

// @Summary Whitelist an IP manually
// @Description Calls the whitelist gateway; on success records a whitelist entry and flags matching IP documents
// @Tags IPs
// @Accept json
// @Produce json
// @Param request body WhitelistIPRequest true "IP to whitelist"
// @Success 200 {object} map[string]string "IP whitelisted"
// @Failure 400 {object} map[string]string "Missing or malformed IP"
// @Failure 500 {object} map[string]string "Gateway misconfigured or failed"
// @Router /api/ips/whitelist [post]
func (h *WhitelistHandler) WhitelistIP(c *gin.Context) {
	var req WhitelistIPRequest
	if !bindJSON(c, &req) {
		return
	}
	middleware.SetAuditData(c, gin.H{"ip": req.IPAddress})

	_, err := h.whitelistService.WhitelistIP(c.Request.Context(), service.WhitelistRequest{
		IP:            req.IPAddress,
		ClientID:      req.ClientID,
		Proto:         req.Proto,
		WhitelistedBy: req.WhitelistedBy,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "IP whitelisted successfully", "ip": req.IPAddress})
	case errors.Is(err, gateway.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Whitelist gateway URL not configured"})
	case errors.Is(err, gateway.ErrRejected):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to whitelist IP"})
	default:
		internalError(c, err)
	}
}
