package handlers

import (
	"errors"

	"ma-helper/internal/adapters/http/middleware"
	"ma-helper/internal/core/domain"
	"ma-helper/internal/core/services"
	"ma-helper/internal/pkg/jwt"
	"ma-helper/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// respondError maps domain errors to HTTP responses. Anything else is
// returned to fiber so the global error handler logs it and answers 500.
func respondError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return response.ValidationFailed(c, verr.Error(), verr.Fields())
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Invalid ID or password")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to access this resource")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return response.Conflict(c, err.Error())
	default:
		return err
	}
}

// actorFrom returns the identity set by the auth middleware, or nil for
// anonymous requests. Non-engineer identities own no engineer data.
func actorFrom(c *fiber.Ctx) *services.Actor {
	kind, _ := c.Locals(middleware.LocalKind).(string)
	if kind == "" {
		return nil
	}
	if kind != jwt.KindEngineer {
		return &services.Actor{}
	}
	subject, _ := c.Locals(middleware.LocalSubject).(string)
	name, _ := c.Locals(middleware.LocalName).(string)
	return &services.Actor{EngineerID: subject, Name: name}
}
