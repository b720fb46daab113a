package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stocksense-project/backend/internal/config"
)

func setupAuth(t *testing.T) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	if err := InitAuthMiddleware(cfg); err != nil {
		t.Fatalf("failed to init auth middleware: %v", err)
	}
}

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", Protected(), func(c *fiber.Ctx) error {
		id, err := GetUserID(c)
		if err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"id": id, "role": GetUserRole(c)})
	})
	app.Get("/admin", Protected(), AdminRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, token string, path string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestProtectedAcceptsValidToken(t *testing.T) {
	setupAuth(t)
	app := newProtectedApp()

	userID := uuid.New()
	token, err := GenerateToken(userID, "user")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	resp := doRequest(t, app, token, "/me")
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
}

func TestProtectedRejectsMissingHeader(t *testing.T) {
	setupAuth(t)
	app := newProtectedApp()

	resp := doRequest(t, app, "", "/me")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestProtectedRejectsGarbageToken(t *testing.T) {
	setupAuth(t)
	app := newProtectedApp()

	resp := doRequest(t, app, "not-a-jwt", "/me")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestProtectedRejectsExpiredToken(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = -time.Hour // already expired at issue time
	if err := InitAuthMiddleware(cfg); err != nil {
		t.Fatalf("failed to init auth middleware: %v", err)
	}
	app := newProtectedApp()

	token, err := GenerateToken(uuid.New(), "user")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	resp := doRequest(t, app, token, "/me")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", resp.StatusCode)
	}
}

func TestRoleGuard(t *testing.T) {
	setupAuth(t)
	app := newProtectedApp()

	userToken, err := GenerateToken(uuid.New(), "user")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	adminToken, err := GenerateToken(uuid.New(), "admin")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if resp := doRequest(t, app, userToken, "/admin"); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", resp.StatusCode)
	}
	if resp := doRequest(t, app, adminToken, "/admin"); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", resp.StatusCode)
	}
}
