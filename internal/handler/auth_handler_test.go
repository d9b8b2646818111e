package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-routine/routine-api/internal/middleware"
	"github.com/campus-routine/routine-api/internal/models"
	"github.com/campus-routine/routine-api/internal/service"
	"github.com/campus-routine/routine-api/pkg/config"
)

func newTestAuthHandler() *AuthHandler {
	cfg := config.AuthConfig{
		Secret:        "test-secret",
		SessionTTL:    time.Hour,
		CookieName:    "rp_admin",
		AdminPassword: "pw",
	}
	return NewAuthHandler(service.NewAuthService(cfg, nil), cfg)
}

func TestAuthHandlerLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestAuthHandler()

	t.Run("correct password sets the session cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"pw"}`))
		req.Header.Set("Content-Type", "application/json")

		w := performRequest(t, h.Login, req)
		require.Equal(t, http.StatusOK, w.Code)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "rp_admin", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.NotEmpty(t, cookies[0].Value)
	})

	t.Run("wrong password rejected without a cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"nope"}`))
		req.Header.Set("Content-Type", "application/json")

		w := performRequest(t, h.Login, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestAuthHandlerLogout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestAuthHandler()

	w := performRequest(t, h.Logout, httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestAuthHandlerMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestAuthHandler()

	t.Run("with session claims", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
		c.Set(middleware.ContextAdminKey, &models.AdminClaims{Role: "admin"})

		h.Me(c)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"admin"`)
	})

	t.Run("without claims", func(t *testing.T) {
		w := performRequest(t, h.Me, httptest.NewRequest(http.MethodGet, "/api/admin/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
