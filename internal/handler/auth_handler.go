package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-routine/routine-api/internal/middleware"
	"github.com/campus-routine/routine-api/internal/models"
	"github.com/campus-routine/routine-api/internal/service"
	"github.com/campus-routine/routine-api/pkg/config"
	appErrors "github.com/campus-routine/routine-api/pkg/errors"
	"github.com/campus-routine/routine-api/pkg/response"
)

// AuthHandler manages the admin session endpoints.
type AuthHandler struct {
	service *service.AuthService
	cfg     config.AuthConfig
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service *service.AuthService, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{service: service, cfg: cfg}
}

// Login godoc
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid login payload"))
		return
	}

	token, err := h.service.Login(req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, token, int(h.cfg.SessionTTL.Seconds()), "/", "", h.cfg.CookieSecure, true)
	response.JSON(c, http.StatusOK, gin.H{"role": "admin"})
}

// Logout godoc
// @Summary Admin logout
// @Tags Auth
// @Produce json
// @Success 204
// @Router /admin/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
	response.NoContent(c)
}

// Me godoc
// @Summary Current admin session
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := adminFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"role": claims.Role, "expiresAt": claims.ExpiresAt})
}

// adminFromContext extracts the session claims stored by the auth middleware.
func adminFromContext(c *gin.Context) *models.AdminClaims {
	value, ok := c.Get(middleware.ContextAdminKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*models.AdminClaims)
	if !ok {
		return nil
	}
	return claims
}
