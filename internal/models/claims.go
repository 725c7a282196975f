package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the claims carried by externally issued access tokens.
// This backend verifies and consumes them; it never mints tokens.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
