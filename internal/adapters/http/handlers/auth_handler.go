package handlers

import (
	"strings"

	"ma-helper/internal/config"
	"ma-helper/internal/core/services"
	"ma-helper/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService services.Authenticator
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.Authenticator, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

func (r *LoginRequest) input() *services.LoginInput {
	return &services.LoginInput{ID: strings.TrimSpace(r.ID), Password: r.Password}
}

// Login handles client login
// @Summary Client login
// @Description Authenticate a client and return its document with an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} services.ClientLoginResult
// @Failure 401 {object} response.Response
// @Router /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.LoginClient(c.UserContext(), req.input())
	if err != nil {
		return respondError(c, err)
	}

	h.setAuthCookie(c, result.AccessToken)
	return response.OK(c, result)
}

// EngineerLogin handles engineer login
// @Summary Engineer login
// @Description Authenticate an engineer and return the profile with an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} services.EngineerLoginResult
// @Failure 401 {object} response.Response
// @Router /api/engineer-login [post]
func (h *AuthHandler) EngineerLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.LoginEngineer(c.UserContext(), req.input())
	if err != nil {
		return respondError(c, err)
	}

	h.setAuthCookie(c, result.AccessToken)
	return response.OK(c, result)
}

// Logout clears the access token cookie
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie("access_token")
	return response.Message(c, "Logged out successfully", nil)
}

// setAuthCookie sets the access token cookie
func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, accessToken string) {
	sameSite := fiber.CookieSameSiteLaxMode
	if h.cfg.IsProd() {
		// Frontend is served from another origin
		sameSite = fiber.CookieSameSiteNoneMode
	}
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60, // Convert minutes to seconds
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: sameSite,
	})
}
