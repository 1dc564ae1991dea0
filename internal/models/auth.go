package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims is the payload of session tokens minted by the external
// identity provider. Only the stable user identifier matters to the
// paste lifecycle.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Identity returns the stable user identifier, or nil for absent claims.
func (c *JWTClaims) Identity() *string {
	if c == nil || c.UserID == "" {
		return nil
	}
	id := c.UserID
	return &id
}
