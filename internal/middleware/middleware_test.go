package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-book/pkg/jwt"
)

func newTestApp(jwtService jwt.JWTService) *fiber.App {
	m := NewMiddleware("")
	app := fiber.New()
	app.Use(m.MetricsMiddleware())

	app.Get("/whoami", m.AuthMiddleware(jwtService), func(c *fiber.Ctx) error {
		userID, role, ok := CurrentUser(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(userID + ":" + role)
	})
	return app
}

func call(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewJWTService("secret")
	app := newTestApp(jwtService)
	token := jwtService.GenerateTokenUser("6f1c1f5e-0000-4000-8000-000000000001", "admin")

	status, body := call(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "6f1c1f5e-0000-4000-8000-000000000001:admin", body)

	status, _ = call(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = call(t, app, "Token "+token)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = call(t, app, "Bearer garbage")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	other := jwt.NewJWTService("other").GenerateTokenUser("x", "user")
	status, _ = call(t, app, "Bearer "+other)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
