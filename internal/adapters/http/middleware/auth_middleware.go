package middleware

import (
	"errors"
	"strings"

	"ma-helper/internal/config"
	"ma-helper/internal/pkg/jwt"
	"ma-helper/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the auth middlewares
const (
	LocalSubject = "subject"
	LocalKind    = "kind"
	LocalName    = "name"
	LocalRole    = "role"
)

// tokenFrom reads the access token from the access_token cookie or the
// Authorization header
func tokenFrom(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func setIdentity(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals(LocalSubject, claims.Subject)
	c.Locals(LocalKind, claims.Kind)
	c.Locals(LocalName, claims.Name)
	c.Locals(LocalRole, claims.Role)
}

// AuthMiddleware rejects requests without a valid access token
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := tokenFrom(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		setIdentity(c, claims)
		return c.Next()
	}
}

// OptionalAuth doesn't require auth but sets identity if a valid token is present
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if accessToken := tokenFrom(c); accessToken != "" {
			if claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret); err == nil {
				setIdentity(c, claims)
			}
		}
		return c.Next()
	}
}

// Protected returns AuthMiddleware when AUTH_REQUIRED is set, OptionalAuth otherwise
func Protected(cfg *config.Config) fiber.Handler {
	if cfg.Security.AuthRequired {
		return AuthMiddleware(cfg)
	}
	return OptionalAuth(cfg)
}

// KindMiddleware allows only the given identity kinds. Anonymous requests
// pass through unless auth is required.
func KindMiddleware(cfg *config.Config, kinds ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, _ := c.Locals(LocalKind).(string)
		if kind == "" && !cfg.Security.AuthRequired {
			return c.Next()
		}
		for _, k := range kinds {
			if kind == k {
				return c.Next()
			}
		}
		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// RoleMiddleware allows only engineers holding one of the given roles.
// Anonymous requests pass through unless auth is required.
func RoleMiddleware(cfg *config.Config, allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, _ := c.Locals(LocalKind).(string)
		if kind == "" && !cfg.Security.AuthRequired {
			return c.Next()
		}
		role, _ := c.Locals(LocalRole).(string)
		if kind == jwt.KindEngineer {
			for _, allowedRole := range allowedRoles {
				if role == allowedRole {
					return c.Next()
				}
			}
		}
		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}
