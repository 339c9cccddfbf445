package auth

import "github.com/golang-jwt/jwt/v5"

// Identity is the minimal view of a credential the token service needs.
type Identity interface {
	Username() string
	Authorities() []string
}

// TokenClaims is the typed JWT payload. Refresh tokens leave Roles empty.
type TokenClaims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// StaticIdentity is an Identity backed by fixed values.
type StaticIdentity struct {
	Name  string
	Roles []string
}

func (s StaticIdentity) Username() string { return s.Name }

func (s StaticIdentity) Authorities() []string { return s.Roles }
