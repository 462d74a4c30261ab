package handlers

import (
	"ma-helper/internal/core/services"
	"ma-helper/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EngineerHandler handles engineer roster and record endpoints
type EngineerHandler struct {
	recordService services.EngineerRecords
}

// NewEngineerHandler creates a new engineer handler
func NewEngineerHandler(recordService services.EngineerRecords) *EngineerHandler {
	return &EngineerHandler{recordService: recordService}
}

// ListEngineers returns the engineer roster
// @Summary List engineers
// @Tags Engineers
// @Produce json
// @Success 200 {array} domain.Engineer
// @Failure 404 {object} response.Response
// @Router /api/engineers [get]
func (h *EngineerHandler) ListEngineers(c *fiber.Ctx) error {
	engineers, err := h.recordService.ListEngineers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, engineers)
}

// AppendRecord adds a record written by an engineer
// @Summary Add engineer record
// @Description Resolve client and engineer by name and append the record
// @Tags Engineers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.EngineerRecordInput true "Record"
// @Success 201 {object} services.EngineerRecordView
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/engineer-record [post]
func (h *EngineerHandler) AppendRecord(c *fiber.Ctx) error {
	var req services.EngineerRecordInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	view, err := h.recordService.AppendEngineerRecord(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, view)
}

// ListRecords returns every record attributed to an engineer, newest first
// @Summary List engineer records
// @Tags Engineers
// @Produce json
// @Security BearerAuth
// @Param engineerId path string true "Engineer ID"
// @Success 200 {array} services.EngineerRecordView
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/engineer-records/{engineerId} [get]
func (h *EngineerHandler) ListRecords(c *fiber.Ctx) error {
	views, err := h.recordService.ListEngineerRecords(c.UserContext(), c.Params("engineerId"), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, views)
}

// UpdateRecord edits the date and/or content of a record
// @Summary Update engineer record
// @Description Record id is the record uuid or a legacy composite id
// @Tags Engineers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recordId path string true "Record ID"
// @Param body body services.RecordPatch true "Fields to change"
// @Success 200 {object} services.UpdateRecordResult
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/engineer-record/{recordId} [patch]
func (h *EngineerHandler) UpdateRecord(c *fiber.Ctx) error {
	var req services.RecordPatch
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.recordService.UpdateEngineerRecord(c.UserContext(), c.Params("recordId"), &req, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, result)
}

// DeleteRecord removes a record
// @Summary Delete engineer record
// @Tags Engineers
// @Produce json
// @Security BearerAuth
// @Param recordId path string true "Record ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} response.Response
// @Router /api/engineer-record/{recordId} [delete]
func (h *EngineerHandler) DeleteRecord(c *fiber.Ctx) error {
	if err := h.recordService.DeleteEngineerRecord(c.UserContext(), c.Params("recordId"), actorFrom(c)); err != nil {
		return respondError(c, err)
	}
	return response.OK(c, fiber.Map{"message": "Record deleted"})
}
