package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Emman-24/backendFlorist/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSigningMethod = jwt.SigningMethodHS256

var (
	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed covers bad signatures, structure, issuer and missing subject.
	ErrTokenMalformed = errors.New("token malformed")
)

// TokenService issues and validates stateless HS256 bearer tokens.
type TokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// Option customizes a TokenService.
type Option func(*TokenService)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewTokenService validates the signing configuration once at construction.
func NewTokenService(cfg config.JWTConfig, opts ...Option) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return nil, fmt.Errorf("jwt issuer is required")
	}
	if cfg.AccessTokenTTL() <= 0 {
		return nil, fmt.Errorf("jwt expiration minutes must be positive")
	}
	if cfg.RefreshTokenTTL() <= 0 {
		return nil, fmt.Errorf("jwt refresh expiration minutes must be positive")
	}

	s := &TokenService{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTokenTTL(),
		refreshTTL: cfg.RefreshTokenTTL(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AccessTTL returns the configured access token lifetime.
func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

// IssueAccessToken signs a token carrying the identity's authorities in the roles claim.
func (s *TokenService) IssueAccessToken(identity Identity) (string, error) {
	if identity == nil {
		return "", fmt.Errorf("identity is required")
	}
	roles := make([]string, 0, len(identity.Authorities()))
	roles = append(roles, identity.Authorities()...)
	return s.sign(identity.Username(), roles, s.accessTTL)
}

// IssueRefreshToken signs a longer lived token without role claims.
func (s *TokenService) IssueRefreshToken(identity Identity) (string, error) {
	if identity == nil {
		return "", fmt.Errorf("identity is required")
	}
	return s.sign(identity.Username(), nil, s.refreshTTL)
}

func (s *TokenService) sign(subject string, roles []string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", fmt.Errorf("token subject is required")
	}

	now := s.now()
	claims := TokenClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

func (s *TokenService) parse(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenMalformed)
	}
	return claims, nil
}

// ExtractSubject returns the username the token was issued to.
func (s *TokenService) ExtractSubject(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// IsValid reports whether the token is unexpired and was issued to identity.
func (s *TokenService) IsValid(tokenString string, identity Identity) bool {
	if identity == nil {
		return false
	}
	subject, err := s.ExtractSubject(tokenString)
	if err != nil {
		return false
	}
	return subject == identity.Username()
}

// ExtractRoles returns the roles claim, or an empty list when the token cannot be read.
func (s *TokenService) ExtractRoles(tokenString string) []string {
	claims, err := s.parse(tokenString)
	if err != nil || claims.Roles == nil {
		return []string{}
	}
	return claims.Roles
}
