package handlers

import (
	"ma-helper/internal/adapters/http/middleware"
	"ma-helper/internal/core/services"
	"ma-helper/internal/pkg/jwt"
	"ma-helper/internal/pkg/pagination"
	"ma-helper/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ClientHandler handles client document endpoints
type ClientHandler struct {
	clientService services.ClientHistory
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService services.ClientHistory) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// canRead reports whether the caller may read clientID's data. Client tokens
// only reach their own document.
func canRead(c *fiber.Ctx, clientID string) bool {
	kind, _ := c.Locals(middleware.LocalKind).(string)
	if kind != jwt.KindClient {
		return true
	}
	subject, _ := c.Locals(middleware.LocalSubject).(string)
	return subject == clientID
}

// GetClient returns a client document
// @Summary Get client
// @Description Get a client document with its full maintenance history
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} domain.ClientDocument
// @Failure 404 {object} response.Response
// @Router /api/client/{id} [get]
func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	clientID := c.Params("id")
	if !canRead(c, clientID) {
		return response.Forbidden(c, "You can only view your own data")
	}

	doc, err := h.clientService.GetClient(c.UserContext(), clientID)
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, doc)
}

// GetMaintenance returns the client-facing maintenance history
// @Summary Get maintenance history
// @Description Equipment mapped to the summarized records a client may see
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Success 200 {object} map[string][]services.ClientFacingRecord
// @Failure 404 {object} response.Response
// @Router /api/maintenance/{clientId} [get]
func (h *ClientHandler) GetMaintenance(c *fiber.Ctx) error {
	clientID := c.Params("clientId")
	if !canRead(c, clientID) {
		return response.Forbidden(c, "You can only view your own data")
	}

	view, err := h.clientService.GetClientFacingMaintenance(c.UserContext(), clientID)
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, view)
}

// AppendMaintenance adds a record to a client's equipment
// @Summary Add maintenance record
// @Description Append a record, creating the equipment when needed
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Param body body services.AppendMaintenanceInput true "Record"
// @Success 200 {object} services.AppendMaintenanceResult
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/maintenance/{clientId} [post]
func (h *ClientHandler) AppendMaintenance(c *fiber.Ctx) error {
	var req services.AppendMaintenanceInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.clientService.AppendMaintenance(c.UserContext(), c.Params("clientId"), &req)
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, result)
}

// ListClients returns a page of client summaries
// @Summary List clients
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(50)
// @Success 200 {object} services.ClientList
// @Router /api/clients [get]
func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	list, err := h.clientService.ListClients(c.UserContext(), pagination.GetParams(c))
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, list)
}
