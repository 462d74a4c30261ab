package response

import "github.com/gofiber/fiber/v2"

// Response represents the standard API error/notice envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Fields  []string    `json:"fields,omitempty"`
}

// JSON sends payload as-is with the given status. Document endpoints keep
// their historical bare-body shape, so they do not use the envelope.
func JSON(c *fiber.Ctx, statusCode int, payload interface{}) error {
	return c.Status(statusCode).JSON(payload)
}

// OK sends a 200 bare-body response
func OK(c *fiber.Ctx, payload interface{}) error {
	return JSON(c, fiber.StatusOK, payload)
}

// Created sends a 201 bare-body response
func Created(c *fiber.Ctx, payload interface{}) error {
	return JSON(c, fiber.StatusCreated, payload)
}

// Message sends a 200 response carrying a message and optional data
func Message(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Message: message,
		Error:   message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// ValidationFailed sends a 400 response naming the offending fields
func ValidationFailed(c *fiber.Ctx, message string, fields []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Success: false,
		Message: message,
		Error:   message,
		Fields:  fields,
	})
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}
