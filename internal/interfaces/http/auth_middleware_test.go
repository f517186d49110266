package http_test

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecogestion/raee-api/internal/application/dto"
	"github.com/ecogestion/raee-api/internal/domain/entity"
	httpiface "github.com/ecogestion/raee-api/internal/interfaces/http"
	"github.com/ecogestion/raee-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

// newTestApp monta una ruta protegida que refleja los locals del token y una
// ruta de admin detrás de RequireAdmin.
func newTestApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/p", httpiface.AuthMiddleware(testSecret))
	protected.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": httpiface.GetUserID(c),
			"role":   httpiface.GetRole(c),
		})
	})
	protected.Get("/admin", httpiface.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) (*nethttp.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// Caso: un token válido expone user_id y role en el contexto.
func TestAuthMiddleware_TokenValido(t *testing.T) {
	token, err := jwt.Generate(testSecret, "usr-1", entity.RoleUser, "raee-api", 60)
	require.NoError(t, err)

	resp, body := doRequest(t, newTestApp(), "/p/whoami", "Bearer "+token)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "usr-1", out["userId"])
	assert.Equal(t, entity.RoleUser, out["role"])
}

// Caso: sin header Authorization.
func TestAuthMiddleware_SinHeader(t *testing.T) {
	resp, body := doRequest(t, newTestApp(), "/p/whoami", "")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "MISSING_TOKEN", out.Code)
}

// Caso: header sin esquema Bearer.
func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	resp, body := doRequest(t, newTestApp(), "/p/whoami", "Basic abc123")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "INVALID_TOKEN", out.Code)
}

// Caso: token firmado con otro secreto.
func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("otro-secreto", "usr-1", entity.RoleUser, "raee-api", 60)
	require.NoError(t, err)

	resp, body := doRequest(t, newTestApp(), "/p/whoami", "Bearer "+token)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "INVALID_TOKEN", out.Code)
}

// Caso: token expirado.
func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(testSecret, "usr-1", entity.RoleUser, "raee-api", -5)
	require.NoError(t, err)

	resp, _ := doRequest(t, newTestApp(), "/p/whoami", "Bearer "+token)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

// Caso: RequireAdmin deja pasar al admin y corta al resto.
func TestRequireAdmin(t *testing.T) {
	app := newTestApp()

	adminToken, err := jwt.Generate(testSecret, "adm-1", entity.RoleAdmin, "raee-api", 60)
	require.NoError(t, err)
	resp, _ := doRequest(t, app, "/p/admin", "Bearer "+adminToken)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	userToken, err := jwt.Generate(testSecret, "usr-1", entity.RoleUser, "raee-api", 60)
	require.NoError(t, err)
	resp, body := doRequest(t, app, "/p/admin", "Bearer "+userToken)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "FORBIDDEN", out.Code)
}

// Caso: Generate y Parse son inversos y preservan los claims propios.
func TestJWT_GenerateParse(t *testing.T) {
	token, err := jwt.Generate(testSecret, "usr-9", entity.RoleGuest, "raee-api", 60)
	require.NoError(t, err)

	userID, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "usr-9", userID)
	assert.Equal(t, entity.RoleGuest, role)
}

// Caso: secret vacío rechazado en ambas direcciones.
func TestJWT_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "usr-1", entity.RoleUser, "raee-api", 60)
	assert.Error(t, err)

	_, _, err = jwt.Parse("", "cualquier-token")
	assert.Error(t, err)
}
