package service

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus-routine/routine-api/internal/models"
	"github.com/campus-routine/routine-api/pkg/config"
	appErrors "github.com/campus-routine/routine-api/pkg/errors"
)

// AuthService issues and validates the single-admin session token. There is
// one admin identity, configured by password (or bcrypt hash); no user store.
type AuthService struct {
	cfg    config.AuthConfig
	logger *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(cfg config.AuthConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{cfg: cfg, logger: logger}
}

// Login checks the admin password and returns a signed session token.
func (s *AuthService) Login(password string) (string, error) {
	if password == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "password is required")
	}

	if !s.checkPassword(password) {
		s.logger.Warn("admin login rejected")
		return "", appErrors.ErrInvalidCredentials
	}

	now := time.Now()
	claims := models.AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "sign session token")
	}
	return signed, nil
}

// checkPassword prefers the bcrypt hash when configured; otherwise it falls
// back to a constant-time comparison with the plain configured password.
func (s *AuthService) checkPassword(password string) bool {
	if s.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)) == nil
	}
	if s.cfg.AdminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.cfg.AdminPassword), []byte(password)) == 1
}

// ValidateToken parses a session token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.AdminClaims, error) {
	claims := &models.AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}

// SessionTTL exposes the configured session lifetime for cookie max-age.
func (s *AuthService) SessionTTL() time.Duration {
	return s.cfg.SessionTTL
}
