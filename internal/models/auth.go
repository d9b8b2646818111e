package models

import "github.com/golang-jwt/jwt/v5"

// AdminClaims is the JWT payload carried by the admin session cookie.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}
