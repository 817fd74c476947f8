package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/cast"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
)

// Claims is the subset of token claims the client cares about. Parsing is
// unverified: the server is the only party that validates signatures; the
// client just needs role and expiry hints before the first /user round-trip.
type Claims struct {
	Subject   string
	Email     string
	Role      models.UserRole
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim has passed. Tokens without
// an exp claim never expire from the client's point of view.
func (c Claims) Expired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}

// ParseClaims extracts claims from a bearer token without verifying it.
func ParseClaims(token string) (*Claims, error) {
	parser := jwt.NewParser()
	mapClaims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, mapClaims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims := &Claims{
		Subject: cast.ToString(mapClaims["sub"]),
		Email:   cast.ToString(mapClaims["email"]),
		Role:    models.UserRole(cast.ToString(mapClaims["role"])),
	}
	if exp, ok := mapClaims["exp"]; ok {
		claims.ExpiresAt = time.Unix(cast.ToInt64(exp), 0)
	}
	return claims, nil
}
