package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Stockify-api/internal/application/auth"
	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
	"github.com/jhoicas/Stockify-api/internal/infrastructure/tokenstore"
	apphttp "github.com/jhoicas/Stockify-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testPassword = "Sup3r-secret!"

type memUsers struct {
	repository.UserRepository
	byID map[string]*entity.User
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) MarkSSOAuthenticated(_ context.Context, id string) error {
	m.byID[id].IsSSOAuthenticated = true
	return nil
}

func newAuthApp(t *testing.T) (*fiber.App, *memUsers) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	users := &memUsers{byID: map[string]*entity.User{
		"u-dir": {ID: "u-dir", Email: "direction@stockify.fr", PasswordHash: string(hash), Type: entity.UserTypeDirector, IsActive: true},
		"u-cpt": {ID: "u-cpt", Email: "compta@stockify.fr", PasswordHash: string(hash), Type: entity.UserTypeComptable, IsActive: true},
	}}
	uc := auth.NewAuthUseCase(users, tokenstore.NewMemoryStore(), auth.JWTConfig{
		Secret: "test-secret-key-for-unit-tests", ExpMinutes: 60, Issuer: "stockify-test",
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{AuthUC: uc})
	app.Get("/whoami", apphttp.AuthMiddleware(uc), func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetPrincipal(c).UserID)
	})
	return app, users
}

func send(t *testing.T, app *fiber.App, method, path, token, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(out)
}

func login(t *testing.T, app *fiber.App, email string) dto.LoginResponse {
	t.Helper()
	status, body := send(t, app, http.MethodPost, "/api/auth/login", "",
		`{"email":"`+email+`","password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, status, body)
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_DirectorObtieneTokenYMarcaSSO(t *testing.T) {
	app, users := newAuthApp(t)

	out := login(t, app, "Direction@Stockify.FR")

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "u-dir", out.User.ID)
	assert.True(t, out.User.IsSSOAuthenticated)
	assert.True(t, users.byID["u-dir"].IsSSOAuthenticated)
}

func TestLogin_ComptableNoMarcaSSO(t *testing.T) {
	app, users := newAuthApp(t)
	out := login(t, app, "compta@stockify.fr")
	assert.False(t, out.User.IsSSOAuthenticated)
	assert.False(t, users.byID["u-cpt"].IsSSOAuthenticated)
}

// Email inexistente, contraseña incorrecta y cuenta inactiva responden igual.
func TestLogin_FallosUniformes(t *testing.T) {
	app, users := newAuthApp(t)
	users.byID["u-cpt"].IsActive = false

	_, wrongPass := send(t, app, http.MethodPost, "/api/auth/login", "", `{"email":"direction@stockify.fr","password":"nope"}`)
	for _, body := range []string{
		`{"email":"nadie@stockify.fr","password":"` + testPassword + `"}`,
		`{"email":"compta@stockify.fr","password":"` + testPassword + `"}`,
	} {
		status, got := send(t, app, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, wrongPass, got)
	}
	assert.Contains(t, wrongPass, "UNAUTHORIZED")
}

func TestLogin_CuerpoInvalido(t *testing.T) {
	app, _ := newAuthApp(t)
	status, body := send(t, app, http.MethodPost, "/api/auth/login", "", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "INVALID_BODY")
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión y logout
// ──────────────────────────────────────────────────────────────────────────────

func TestLogout_RevocaElToken(t *testing.T) {
	app, _ := newAuthApp(t)
	tok := login(t, app, "direction@stockify.fr").Token

	status, body := send(t, app, http.MethodGet, "/whoami", tok, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "u-dir", body)

	status, _ = send(t, app, http.MethodPost, "/api/auth/logout", tok, "")
	assert.Equal(t, http.StatusOK, status)

	status, body = send(t, app, http.MethodGet, "/whoami", tok, "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, body, "FORBIDDEN")
}

func TestLogout_SinTokenTambienResponde200(t *testing.T) {
	app, _ := newAuthApp(t)
	status, _ := send(t, app, http.MethodPost, "/api/auth/logout", "basura", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestSesion_UsuarioDesactivadoPierdeAcceso(t *testing.T) {
	app, users := newAuthApp(t)
	tok := login(t, app, "compta@stockify.fr").Token
	users.byID["u-cpt"].IsActive = false

	status, _ := send(t, app, http.MethodGet, "/whoami", tok, "")
	assert.Equal(t, http.StatusForbidden, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Router: el middleware corta antes de llegar a los casos de uso
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_AnonimoRecibe403(t *testing.T) {
	app, _ := newAuthApp(t)
	for _, path := range []string{"/api/me", "/api/users", "/api/ranges", "/api/products", "/api/products/expired"} {
		status, body := send(t, app, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusForbidden, status, path)
		assert.Contains(t, body, "FORBIDDEN", path)
	}
}

func TestRouter_ComptableNoGestionaCatalogo(t *testing.T) {
	app, _ := newAuthApp(t)
	tok := login(t, app, "compta@stockify.fr").Token

	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/products"},
		{http.MethodPost, "/api/ranges"},
		{http.MethodDelete, "/api/packagings/p-1"},
		{http.MethodPost, "/api/users"},
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/users/u-dir/password-reset"},
	}
	for _, tc := range cases {
		status, _ := send(t, app, tc.method, tc.path, tok, `{}`)
		assert.Equal(t, http.StatusForbidden, status, tc.method+" "+tc.path)
	}
}
