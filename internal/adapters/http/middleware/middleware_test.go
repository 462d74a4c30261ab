package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"ma-helper/internal/config"
	"ma-helper/internal/pkg/jwt"
	"ma-helper/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(mode string) *config.Config {
	return &config.Config{
		AppMode: mode,
		JWT:     config.JWTConfig{Secret: "test-secret", AccessTokenMins: 5},
	}
}

func body(t *testing.T, app *fiber.App, path, token string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestCustomErrorHandler(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		err       error
		wantCode  int
		wantError string
	}{
		{"dev shows detail", "dev", errors.New("db exploded"), fiber.StatusInternalServerError, "db exploded"},
		{"prod hides detail", "prod", errors.New("db exploded"), fiber.StatusInternalServerError, "Internal Server Error"},
		{"fiber errors keep code", "prod", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed, "Method Not Allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler(testConfig(tt.mode), logger.Nop())})
			app.Get("/boom", func(c *fiber.Ctx) error { return tt.err })

			code, out := body(t, app, "/boom", "")
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, false, out["success"])
			assert.Equal(t, tt.wantError, out["error"])
		})
	}
}

func TestKindAndRoleMiddleware(t *testing.T) {
	cfg := testConfig("dev")
	cfg.Security.AuthRequired = true

	app := fiber.New()
	app.Get("/engineers-only", AuthMiddleware(cfg), KindMiddleware(cfg, jwt.KindEngineer), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalName).(string))
	})
	app.Get("/leaders-only", AuthMiddleware(cfg), RoleMiddleware(cfg, "leader"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	client, err := jwt.GenerateAccessToken("test1@mesa.kr", jwt.KindClient, "SBS", "", cfg.JWT.Secret, 5)
	require.NoError(t, err)
	member, err := jwt.GenerateAccessToken("eng7", jwt.KindEngineer, "이상우", "member", cfg.JWT.Secret, 5)
	require.NoError(t, err)
	leader, err := jwt.GenerateAccessToken("eng1", jwt.KindEngineer, "강영구", "leader", cfg.JWT.Secret, 5)
	require.NoError(t, err)

	code, out := body(t, app, "/engineers-only", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, "Access token required", out["message"])

	code, _ = body(t, app, "/engineers-only", "not-a-token")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = body(t, app, "/engineers-only", client)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = body(t, app, "/engineers-only", member)
	assert.Equal(t, fiber.StatusOK, code)

	code, _ = body(t, app, "/leaders-only", member)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = body(t, app, "/leaders-only", leader)
	assert.Equal(t, fiber.StatusNoContent, code)
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	cfg := testConfig("dev")

	app := fiber.New()
	app.Get("/open", Protected(cfg), KindMiddleware(cfg, jwt.KindEngineer), NoCacheHeaders(), func(c *fiber.Ctx) error {
		kind, _ := c.Locals(LocalKind).(string)
		return c.JSON(fiber.Map{"kind": kind})
	})

	code, out := body(t, app, "/open", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "", out["kind"])

	// An invalid token is ignored rather than rejected
	code, out = body(t, app, "/open", "garbage")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "", out["kind"])
}

func TestRequestLoggerReachesServiceLogs(t *testing.T) {
	var buf bytes.Buffer
	root := logger.NewWithWriter(&buf, "info")
	records := root.Component("records")

	app := fiber.New(FiberConfig(testConfig("prod"), root))
	app.Use(requestid.New())
	app.Use(RequestLogger(root))
	app.Get("/work", func(c *fiber.Ctx) error {
		records.Ctx(c.UserContext()).Info().Msg("working")
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/work", nil), -1)
	require.NoError(t, err)
	requestID := resp.Header.Get(fiber.HeaderXRequestID)
	require.NotEmpty(t, requestID)

	var found bool
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		assert.Equal(t, requestID, entry["request_id"])
		if entry["message"] == "working" {
			found = true
			assert.Equal(t, "records", entry["component"])
		}
	}
	assert.True(t, found)
}

func TestFiberConfigDecodesParams(t *testing.T) {
	app := fiber.New(FiberConfig(testConfig("prod"), logger.Nop()))
	app.Get("/client/:id", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": c.Params("id")})
	})

	code, out := body(t, app, "/client/test1%40mesa.kr", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "test1@mesa.kr", out["id"])
}
