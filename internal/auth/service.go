package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Emman-24/backendFlorist/internal/users"
	pkgAuth "github.com/Emman-24/backendFlorist/pkg/auth"
	"github.com/Emman-24/backendFlorist/pkg/db"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/logger"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "Invalid username or password"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error)
}

type tokenIssuer interface {
	IssueAccessToken(identity pkgAuth.Identity) (string, error)
	IssueRefreshToken(identity pkgAuth.Identity) (string, error)
	ExtractSubject(token string) (string, error)
	IsValid(token string, identity pkgAuth.Identity) bool
	AccessTTL() time.Duration
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

type service struct {
	db     *db.Client
	users  *users.Repository
	tokens tokenIssuer
	hasher passwordHasher
	logg   *logger.Logger
	now    func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	DB     *db.Client
	Tokens tokenIssuer
	Hasher passwordHasher
	Logger *logger.Logger
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Tokens == nil {
		return nil, fmt.Errorf("token service is required")
	}
	if params.Hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		db:     params.DB,
		users:  users.NewRepository(params.DB.DB()),
		tokens: params.Tokens,
		hasher: params.Hasher,
		logg:   logg,
		now:    time.Now,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now

	return s.issue(user, "")
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	token := strings.TrimSpace(req.RefreshToken)
	username, err := s.tokens.ExtractSubject(token)
	if err != nil {
		ctx = s.logg.WithField(ctx, "cause", err.Error())
		s.logg.Info(ctx, "auth.refresh.rejected")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid refresh token")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	if !s.tokens.IsValid(token, users.NewIdentity(user)) || !user.Usable() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid refresh token")
	}

	return s.issue(user, token)
}

func (s *service) authenticate(ctx context.Context, username, password string) (*models.User, error) {
	input := strings.TrimSpace(username)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	user, err := s.users.FindByUsername(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := s.hasher.Verify(password, user.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !user.Usable() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

// issue mints an access token and, when refreshToken is empty, a new refresh token.
func (s *service) issue(user *models.User, refreshToken string) (*AuthResponse, error) {
	identity := users.NewIdentity(user)

	accessToken, err := s.tokens.IssueAccessToken(identity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue access token")
	}
	if refreshToken == "" {
		refreshToken, err = s.tokens.IssueRefreshToken(identity)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue refresh token")
		}
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(s.tokens.AccessTTL() / time.Second),
		User:         users.FromModel(user),
	}, nil
}
