package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserRole represents the roles recognised by the transport layer.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleManager UserRole = "MANAGER"
	RoleStudent UserRole = "STUDENT"
)

// JWTClaims represents the JWT payload for access tokens issued by the LMS bridge.
type JWTClaims struct {
	UserID   int64    `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// CanActFor reports whether the caller may read another user's progress.
func (c *JWTClaims) CanActFor(userID int64) bool {
	if c == nil {
		return false
	}
	if c.UserID == userID {
		return true
	}
	return c.Role == RoleAdmin || c.Role == RoleManager
}
