package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"ma-helper/internal/adapters/http/middleware"
	"ma-helper/internal/core/domain"
	"ma-helper/internal/core/services"
	"ma-helper/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	validation := (&domain.Validator{}).Require("date", "").Require("text", "").Err()

	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantFields []any
		wantMsg    string
	}{
		{"validation", validation, fiber.StatusBadRequest, []any{"date", "text"}, ""},
		{"unauthorized", domain.ErrUnauthorized, fiber.StatusUnauthorized, nil, ""},
		{"forbidden", domain.ErrForbidden, fiber.StatusForbidden, nil, ""},
		{"not found variant", domain.ErrRecordNotFound, fiber.StatusNotFound, nil, "maintenance record not found"},
		{"conflict variant", domain.ErrAmbiguousClient, fiber.StatusConflict, nil, "client name matches several clients"},
		{"ambiguous record id", domain.ErrAmbiguousRecordID, fiber.StatusConflict, nil, "record id matches several records"},
		{"store fault", fmt.Errorf("load client: %w", errors.New("connection refused")), fiber.StatusInternalServerError, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantCode, resp.StatusCode)

			if tt.wantFields == nil && tt.wantMsg == "" {
				return
			}
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var out map[string]any
			require.NoError(t, json.Unmarshal(raw, &out))
			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, out["fields"])
			}
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, out["message"])
			}
		})
	}
}

func TestActorFrom(t *testing.T) {
	tests := []struct {
		name   string
		locals map[string]string
		want   *services.Actor
	}{
		{"anonymous", nil, nil},
		{"client token owns nothing", map[string]string{middleware.LocalKind: jwt.KindClient, middleware.LocalSubject: "test1@mesa.kr"}, &services.Actor{}},
		{"engineer", map[string]string{middleware.LocalKind: jwt.KindEngineer, middleware.LocalSubject: "eng7", middleware.LocalName: "이상우"}, &services.Actor{EngineerID: "eng7", Name: "이상우"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *services.Actor
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				for k, v := range tt.locals {
					c.Locals(k, v)
				}
				got = actorFrom(c)
				return nil
			})

			_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
