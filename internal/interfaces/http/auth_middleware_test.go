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

	"github.com/fardsis/fsis-api/internal/domain/entity"
	apphttp "github.com/fardsis/fsis-api/internal/interfaces/http"
	pkgjwt "github.com/fardsis/fsis-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "fsis-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para resolver la sesión (Bearer o cookie)
//   - RequireRole con la allow-list indicada
//   - Un handler dummy que devuelve 200 si pasa el gate
func buildTestApp(allowed ...entity.Role) *fiber.App {
	app := fiber.New()
	app.Get("/reports/purchases",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c).String(),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, "Usuario de Prueba", testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// doJSONRequest petición de cliente API: Bearer + Accept JSON.
func doJSONRequest(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/reports/purchases", nil)
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// doBrowserRequest petición de navegador: cookie de sesión, sin Accept JSON.
func doBrowserRequest(t *testing.T, app *fiber.App, target, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Accept", "text/html")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.CookieName, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ResolveGate (decisión pura)
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveGate_SinSesion(t *testing.T) {
	got := apphttp.ResolveGate(false, "", []entity.Role{entity.RoleAdmin})
	assert.Equal(t, apphttp.GateUnauthenticated, got)
}

func TestResolveGate_ListaVaciaPermiteCualquierAutenticado(t *testing.T) {
	for _, role := range []entity.Role{entity.RoleCustomer, entity.RoleWarehouse, entity.RoleAdmin} {
		got := apphttp.ResolveGate(true, role, nil)
		assert.Equal(t, apphttp.GateAllowed, got, "rol %s debe pasar con lista vacía", role)
	}
}

func TestResolveGate_SinJerarquia_AdminSoloSiListado(t *testing.T) {
	// Admin NO está en la lista: se deniega aunque sea Admin.
	got := apphttp.ResolveGate(true, entity.RoleAdmin, []entity.Role{entity.RoleAccounting})
	assert.Equal(t, apphttp.GateDenied, got,
		"sin jerarquía: Admin solo entra si la lista lo incluye explícitamente")

	got = apphttp.ResolveGate(true, entity.RoleAdmin, []entity.Role{entity.RoleAccounting, entity.RoleAdmin})
	assert.Equal(t, apphttp.GateAllowed, got)
}

func TestResolveGate_RolNoListado(t *testing.T) {
	got := apphttp.ResolveGate(true, entity.RoleCustomer, []entity.Role{entity.RolePurchaser, entity.RoleAdmin})
	assert.Equal(t, apphttp.GateDenied, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole — clientes JSON
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AccountingAccedeReporte(t *testing.T) {
	app := buildTestApp(entity.RoleAccounting, entity.RoleAdmin)
	resp := doJSONRequest(t, app, tokenForRole(t, "Accounting"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"Accounting debe poder acceder al reporte de compras")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Accounting", body["role"])
}

func TestRequireRole_CustomerBloqueadoEnReporte(t *testing.T) {
	app := buildTestApp(entity.RoleAccounting, entity.RoleAdmin)
	resp := doJSONRequest(t, app, tokenForRole(t, "Customer"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"Customer no debe poder acceder al reporte")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_ComparacionSensibleAMayusculas(t *testing.T) {
	// "accounting" no es "Accounting": el token no pasa ni la resolución de sesión.
	app := buildTestApp(entity.RoleAccounting)
	resp := doJSONRequest(t, app, tokenForRole(t, "accounting"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"un rol fuera del conjunto cerrado se trata como sesión inválida")
}

func TestRequireRole_SinToken_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doJSONRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doJSONRequest(t, app, "token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_ListaVacia_CualquierAutenticado(t *testing.T) {
	app := buildTestApp() // allow-list vacía: dashboard
	resp := doJSONRequest(t, app, tokenForRole(t, "Warehouse"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"lista vacía debe dejar pasar a cualquier rol autenticado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de navegador — redirects con ruta de retorno
// ──────────────────────────────────────────────────────────────────────────────

func TestGate_NavegadorSinSesion_RedirigeALoginConNext(t *testing.T) {
	app := buildTestApp(entity.RoleAccounting)
	resp := doBrowserRequest(t, app, "/reports/purchases?status=charged", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	// La ruta original viaja percent-encoded en ?next= para volver tras el login.
	assert.Equal(t, "/login?next=%2Freports%2Fpurchases%3Fstatus%3Dcharged",
		resp.Header.Get("Location"))
}

func TestGate_NavegadorDenegado_RedirigeAHome(t *testing.T) {
	app := buildTestApp(entity.RoleAccounting)
	resp := doBrowserRequest(t, app, "/reports/purchases", tokenForRole(t, "Customer"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"),
		"rol no listado: redirect a home, nunca se rinde la vista protegida")
}

func TestGate_NavegadorConCookie_Accede(t *testing.T) {
	app := buildTestApp(entity.RoleAccounting)
	resp := doBrowserRequest(t, app, "/reports/purchases", tokenForRole(t, "Accounting"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"la cookie de sesión debe autenticar igual que el Bearer")
}

// Sign-out externo: la resolución es por petición, así que sin cookie la
// siguiente petición cae de ALLOWED a UNAUTHENTICATED.
func TestGate_SignOutExterno_ProximaPeticionCaeALogin(t *testing.T) {
	app := buildTestApp(entity.RoleAccounting)

	resp := doBrowserRequest(t, app, "/reports/purchases", tokenForRole(t, "Accounting"))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doBrowserRequest(t, app, "/reports/purchases", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/login?next=")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Purchaser", "Ana", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, displayName, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "Purchaser", role)
	assert.Equal(t, "Ana", displayName)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Admin", "Ana", testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Admin", "Ana", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
