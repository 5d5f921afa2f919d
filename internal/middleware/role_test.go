package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/property-booking/internal/utils"
)

func okHandler(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("role", "ADMIN")

    err := RequireRole("ADMIN")(okHandler)(c)
    require.NoError(t, err)
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("role", "GUEST")

    err := RequireRole("ADMIN")(okHandler)(c)
    require.NoError(t, err)
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    err := RequireRole("ADMIN", "GUEST")(okHandler)(c)
    require.NoError(t, err)
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuthInjectsClaims(t *testing.T) {
    const secret = "test-secret"
    at, err := utils.NewAccessToken(secret, 42, "GUEST", 15)
    require.NoError(t, err)

    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    req.Header.Set("Authorization", "Bearer "+at.Token)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    var gotRole interface{}
    h := JWTAuth(secret)(func(c echo.Context) error {
        gotRole = c.Get("role")
        return c.NoContent(http.StatusOK)
    })
    require.NoError(t, h(c))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "GUEST", gotRole)
}

func TestJWTAuthRejectsMissingAndBadTokens(t *testing.T) {
    e := echo.New()

    // No Authorization header at all.
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    require.NoError(t, JWTAuth("secret")(okHandler)(c))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    // Garbage token.
    req = httptest.NewRequest(http.MethodGet, "/", nil)
    req.Header.Set("Authorization", "Bearer not.a.jwt")
    rec = httptest.NewRecorder()
    c = e.NewContext(req, rec)
    require.NoError(t, JWTAuth("secret")(okHandler)(c))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    // Token signed with a different secret.
    at, err := utils.NewAccessToken("other-secret", 1, "ADMIN", 15)
    require.NoError(t, err)
    req = httptest.NewRequest(http.MethodGet, "/", nil)
    req.Header.Set("Authorization", "Bearer "+at.Token)
    rec = httptest.NewRecorder()
    c = e.NewContext(req, rec)
    require.NoError(t, JWTAuth("secret")(okHandler)(c))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
