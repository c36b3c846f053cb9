package serverutils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin/ping", JwtMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.SendString("pong")
	})
	return app
}

func doGuardedRequest(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/admin/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestJwtMiddlewareAcceptsSignedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "operator"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, doGuardedRequest(t, app, token))
}

func TestJwtMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	assert.Equal(t, fiber.StatusUnauthorized, doGuardedRequest(t, app, ""))
}

func TestJwtMiddlewareRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "operator"}).
		SignedString([]byte("other-secret"))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, doGuardedRequest(t, app, token))
}

func TestJwtMiddlewareRejectsUnsignedAlgorithm(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	// A token declaring alg "none" carries no signature at all; only
	// HS256 tokens may pass the operator guard.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "operator"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, doGuardedRequest(t, app, token))
}
