package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safeline/internal/infrastructure/token"
)

func callAuthenticated(t *testing.T, m *AuthMiddleware, authorization string) (error, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	handler := m.Authenticate(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c), c
}

func TestAuthenticateSetsPhoneFromToken(t *testing.T) {
	tokens := token.NewManager("test-secret", 3600)
	m := NewAuthMiddleware(tokens)

	signed, err := tokens.Generate("+923001234567")
	require.NoError(t, err)

	err, c := callAuthenticated(t, m, "Bearer "+signed)
	require.NoError(t, err)
	assert.Equal(t, "+923001234567", c.Get("phone"))
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	m := NewAuthMiddleware(token.NewManager("test-secret", 3600))

	err, _ := callAuthenticated(t, m, "")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAuthenticateRejectsMalformedHeader(t *testing.T) {
	m := NewAuthMiddleware(token.NewManager("test-secret", 3600))

	err, _ := callAuthenticated(t, m, "Token abc")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAuthenticateRejectsForgedToken(t *testing.T) {
	signed, err := token.NewManager("other-secret", 3600).Generate("+1000")
	require.NoError(t, err)

	m := NewAuthMiddleware(token.NewManager("test-secret", 3600))
	err, _ = callAuthenticated(t, m, "Bearer "+signed)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
