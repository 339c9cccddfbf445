package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/Emman-24/backendFlorist/internal/users"
	"github.com/Emman-24/backendFlorist/pkg/db"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/security"
	"gorm.io/gorm"
)

const (
	usernameTakenMessage   = "Username already exists"
	emailTakenMessage      = "Email already exists"
	defaultRoleDescription = "Usuario regular"
)

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooLong) {
			msg := "Password must be at most 72 bytes"
			return nil, pkgerrors.New(pkgerrors.CodeValidation, msg).
				WithDetails(map[string]string{"password": msg})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.users.WithTx(tx)

		taken, err := userRepo.ExistsByUsername(ctx, username)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeValidation, usernameTakenMessage)
		}

		taken, err = userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeValidation, emailTakenMessage)
		}

		role, err := defaultRole(ctx, userRepo)
		if err != nil {
			return err
		}

		user := &models.User{
			Username:              username,
			Email:                 email,
			Password:              passwordHash,
			FullName:              trimmedOrNil(req.FullName),
			Enabled:               true,
			AccountNonExpired:     true,
			AccountNonLocked:      true,
			CredentialsNonExpired: true,
			Roles:                 []models.Role{*role},
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return mapCreateUserError(err)
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.issue(created, "")
}

// defaultRole loads the USER role, creating it on first use.
func defaultRole(ctx context.Context, repo *users.Repository) (*models.Role, error) {
	role, err := repo.FindRoleByName(ctx, enums.RoleUser)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup default role")
	}

	description := defaultRoleDescription
	role = &models.Role{Name: enums.RoleUser, Description: &description}
	if err := repo.CreateRole(ctx, role); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create default role")
	}
	return role, nil
}

func mapCreateUserError(err error) error {
	switch {
	case db.IsUniqueViolation(err, "uq_users_username"), db.IsUniqueViolation(err, "users.username"):
		return pkgerrors.New(pkgerrors.CodeValidation, usernameTakenMessage)
	case db.IsUniqueViolation(err, "uq_users_email"), db.IsUniqueViolation(err, "users.email"):
		return pkgerrors.New(pkgerrors.CodeValidation, emailTakenMessage)
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
