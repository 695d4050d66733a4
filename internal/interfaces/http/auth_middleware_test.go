package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdu-dev/painel-api/internal/domain/entity"
	apphttp "github.com/kdu-dev/painel-api/internal/interfaces/http"
	pkgjwt "github.com/kdu-dev/painel-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUsername  = "maria.souza"
	testIssuer    = "painel-api-test"
	testExpMin    = 60
)

// buildTestApp constrói uma aplicação Fiber mínima com:
//   - AuthMiddleware para validar o JWT e carregar os claims
//   - RequirePermission para autorizar o módulo
//   - Um handler dummy que devolve 200 se passar pelos middlewares
func buildTestApp(module string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(module),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":       true,
				"username": apphttp.GetUsername(c),
			})
		},
	)
	return app
}

// tokenFor gera um JWT com as permissões indicadas.
func tokenFor(t *testing.T, isAdmin bool, permissions []string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, isAdmin, permissions, testIssuer, testExpMin)
	require.NoError(t, err, "deve gerar um token JWT válido")
	return "Bearer " + tok
}

// doRequest lança um GET /protected e devolve a resposta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: o usuário tem o módulo liberado → HTTP 200.
func TestRequirePermission_ModuloLiberado(t *testing.T) {
	app := buildTestApp(entity.PermissionFabrics)
	resp := doRequest(t, app, tokenFor(t, false, []string{entity.PermissionFabrics}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"usuário com o módulo liberado deve acessar a rota")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testUsername, body["username"])
}

// Caso 2: admin acessa qualquer módulo, mesmo sem a permissão explícita.
func TestRequirePermission_AdminAcessaTudo(t *testing.T) {
	app := buildTestApp(entity.PermissionFiscal)
	resp := doRequest(t, app, tokenFor(t, true, nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin deve acessar módulo sem permissão explícita")
}

// Caso 3: o usuário tem outros módulos, mas não o exigido → HTTP 403.
func TestRequirePermission_ModuloNaoLiberado(t *testing.T) {
	app := buildTestApp(entity.PermissionAccountsReceivable)
	resp := doRequest(t, app, tokenFor(t, false, []string{entity.PermissionProducts}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"usuário sem o módulo não deve acessar a rota")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MODULE_FORBIDDEN",
		"a resposta de erro deve incluir o código MODULE_FORBIDDEN")
}

// Caso 4: sem header Authorization → HTTP 401 MISSING_TOKEN.
func TestRequirePermission_SemAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(entity.PermissionProducts)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 5: token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestRequirePermission_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.PermissionProducts)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 6: secret errado invalida o token → HTTP 401.
func TestRequirePermission_SecretErrado_Retorna401(t *testing.T) {
	app := buildTestApp(entity.PermissionProducts)
	tok, err := pkgjwt.Generate("outro-secret-completamente-diferente", testUserID, testUsername, true, nil, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func buildAdminApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireAdmin(),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestRequireAdmin_AdminPassa(t *testing.T) {
	app := buildAdminApp()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", tokenFor(t, true, nil))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Usuário comum, mesmo com todos os módulos, não administra usuários.
func TestRequireAdmin_UsuarioComumBloqueado(t *testing.T) {
	app := buildAdminApp()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", tokenFor(t, false, entity.KnownPermissions))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ADMIN_ONLY")
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes AuthMiddleware — extração dos claims do token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraiClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"username": apphttp.GetUsername(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, false, []string{entity.PermissionProducts}))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testUsername, body["username"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes pkg/jwt — integridade do generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, false,
		[]string{entity.PermissionFabrics, entity.PermissionFiscal}, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testUsername, claims.Username)
	assert.False(t, claims.IsAdmin)
	assert.True(t, claims.HasPermission(entity.PermissionFiscal))
	assert.False(t, claims.HasPermission(entity.PermissionProducts))
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token com expiração -1 minuto (já expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, true, nil, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado deve retornar erro")
}
