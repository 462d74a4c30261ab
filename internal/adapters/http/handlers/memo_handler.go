package handlers

import (
	"ma-helper/internal/core/services"
	"ma-helper/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemoHandler handles engineer time memo endpoints
type MemoHandler struct {
	memoService services.TimeMemos
}

// NewMemoHandler creates a new memo handler
func NewMemoHandler(memoService services.TimeMemos) *MemoHandler {
	return &MemoHandler{memoService: memoService}
}

// Create saves a memo
// @Summary Create time memo
// @Tags Memos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateMemoInput true "Memo"
// @Success 201 {object} services.CreateMemoResult
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/engineer-memo [post]
func (h *MemoHandler) Create(c *fiber.Ctx) error {
	var req services.CreateMemoInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.memoService.Create(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, result)
}

// List returns an engineer's memos, optionally for one date
// @Summary List time memos
// @Tags Memos
// @Produce json
// @Security BearerAuth
// @Param engineerId path string true "Engineer ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {array} domain.TimeMemo
// @Router /api/engineer-memo/{engineerId} [get]
func (h *MemoHandler) List(c *fiber.Ctx) error {
	memos, err := h.memoService.List(c.UserContext(), c.Params("engineerId"), c.Query("date"), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, memos)
}

// Update edits a memo's time and/or text
// @Summary Update time memo
// @Tags Memos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Memo ID"
// @Param body body services.MemoPatch true "Fields to change"
// @Success 200 {object} domain.TimeMemo
// @Failure 404 {object} response.Response
// @Router /api/engineer-memo/{id} [patch]
func (h *MemoHandler) Update(c *fiber.Ctx) error {
	var req services.MemoPatch
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	memo, err := h.memoService.Update(c.UserContext(), c.Params("id"), &req, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, memo)
}

// Delete removes a memo
// @Summary Delete time memo
// @Tags Memos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Memo ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} response.Response
// @Router /api/engineer-memo/{id} [delete]
func (h *MemoHandler) Delete(c *fiber.Ctx) error {
	if err := h.memoService.Delete(c.UserContext(), c.Params("id"), actorFrom(c)); err != nil {
		return respondError(c, err)
	}
	return response.OK(c, fiber.Map{"message": "Memo deleted"})
}
