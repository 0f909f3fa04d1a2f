package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/playmo/smartdns-api/internal/service"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// @Summary Dashboard statistics
// @Description Counts clients, IP documents, whitelisted IP documents and whitelist entries
// @Tags Stats
// @Produce json
// @Success 200 {object} map[string]models.Stats
// @Failure 500 {object} map[string]string "Store unavailable"
// @Router /api/stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
