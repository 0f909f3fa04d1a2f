package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/playmo/smartdns-api/internal/middleware"
	"github.com/playmo/smartdns-api/internal/service"
)

type CreateClientRequest struct {
	Name     string                 `json:"name" binding:"required"`
	Email    string                 `json:"email" binding:"required"`
	Status   string                 `json:"status"`
	Metadata map[string]interface{} `json:"metadata"`
}

type AddIPRequest struct {
	IPAddress string `json:"ip_address" binding:"required,ip"`
	Source    string `json:"source"`
}

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// @Summary List clients
// @Description Returns every client with its embedded IP entries
// @Tags Clients
// @Produce json
// @Success 200 {object} map[string][]models.Client
// @Failure 500 {object} map[string]string "Store unavailable"
// @Router /api/clients [get]
func (h *ClientHandler) GetAllClients(c *gin.Context) {
	clients, err := h.clientService.GetAllClients(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// @Summary Create a client
// @Description Registers a client; status defaults to active and the IP list starts empty
// @Tags Clients
// @Accept json
// @Produce json
// @Param client body CreateClientRequest true "Client details"
// @Success 201 {object} map[string]models.Client
// @Failure 400 {object} map[string]string "Missing required field"
// @Failure 500 {object} map[string]string "Store unavailable"
// @Router /api/clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req.Name, req.Email, req.Status, req.Metadata)
	if err != nil {
		internalError(c, err)
		return
	}

	middleware.SetAuditData(c, gin.H{"client_id": client.ID})
	c.JSON(http.StatusCreated, gin.H{"client": client})
}

// @Summary Get a client
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} map[string]models.Client
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Store unavailable"
// @Router /api/clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.clientService.GetClient(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrClientNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client})
}

// @Summary Add or update a client IP
// @Description Merges the IP into the client's list, records an IP document and attempts whitelisting once. A gateway failure only yields whitelisted=false.
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param ip body AddIPRequest true "IP address"
// @Success 201 {object} map[string]interface{} "IP address added"
// @Failure 400 {object} map[string]string "Missing or malformed IP"
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Store unavailable"
// @Router /api/clients/{id}/ips [post]
func (h *ClientHandler) AddClientIP(c *gin.Context) {
	var req AddIPRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.clientService.AddIP(c.Request.Context(), c.Param("id"), req.IPAddress, req.Source)
	if errors.Is(err, service.ErrClientNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	middleware.SetAuditData(c, gin.H{"ip": result.IP})
	c.JSON(http.StatusCreated, gin.H{
		"message":     "IP address added successfully",
		"ip":          result.IP,
		"whitelisted": result.Whitelisted,
	})
}
