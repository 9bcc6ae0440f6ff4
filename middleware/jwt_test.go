package middleware

import (
	"net/http/httptest"
	"testing"

	"certvault/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJWTTest(t *testing.T) *fiber.App {
	t.Helper()
	config.AppConfig = &config.Config{JWTKey: "test-secret-key"}

	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		userID := c.Locals("userId").(uint)
		return c.JSON(fiber.Map{"userId": userID})
	})
	return app
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	app := setupJWTTest(t)

	token, err := GenerateJWT(42, "Jane Doe", "USER", "jane@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	app := setupJWTTest(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareRejectsMalformedHeader(t *testing.T) {
	app := setupJWTTest(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareRejectsTamperedToken(t *testing.T) {
	app := setupJWTTest(t)

	token, err := GenerateJWT(42, "Jane Doe", "USER", "jane@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
