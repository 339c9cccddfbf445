package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/Emman-24/backendFlorist/internal/users"
	pkgAuth "github.com/Emman-24/backendFlorist/pkg/auth"
	"github.com/Emman-24/backendFlorist/pkg/config"
	"github.com/Emman-24/backendFlorist/pkg/db/dbtest"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// plainHasher keeps the suite fast; bcrypt is covered in pkg/security.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "plain:" + password, nil }

func (plainHasher) Verify(password, encoded string) (bool, error) {
	return encoded == "plain:"+password, nil
}

func newTestService(t *testing.T) (*service, *pkgAuth.TokenService, *gorm.DB) {
	t.Helper()
	client, conn := dbtest.Client(t)
	tokens, err := pkgAuth.NewTokenService(config.JWTConfig{
		Secret:                   "0123456789abcdef0123456789abcdef",
		Issuer:                   "floristeria-akasia",
		ExpirationMinutes:        60,
		RefreshExpirationMinutes: 10080,
	})
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{DB: client, Tokens: tokens, Hasher: plainHasher{}})
	require.NoError(t, err)
	return svc.(*service), tokens, conn
}

func seedAdmin(t *testing.T, conn *gorm.DB, enabled bool) *models.User {
	t.Helper()
	role := models.Role{Name: enums.RoleAdmin}
	require.NoError(t, conn.Create(&role).Error)
	user := &models.User{
		Username:              "admin",
		Email:                 "admin@floristeria.co",
		Password:              "plain:admin123",
		Enabled:               enabled,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
		Roles:                 []models.Role{role},
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func TestLoginIssuesTokensAndRecordsLastLogin(t *testing.T) {
	svc, tokens, conn := newTestService(t)
	seeded := seedAdmin(t, conn, true)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "  admin ", Password: "admin123"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "admin", resp.User.Username)
	assert.Equal(t, []string{"ADMIN"}, resp.User.Roles)
	assert.Equal(t, []string{"ROLE_ADMIN"}, tokens.ExtractRoles(resp.AccessToken))
	assert.Empty(t, tokens.ExtractRoles(resp.RefreshToken))

	subject, err := tokens.ExtractSubject(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)

	reloaded, err := users.NewRepository(conn).FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.LastLoginAt)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, conn := newTestService(t)
	seedAdmin(t, conn, true)

	cases := []LoginRequest{
		{Username: "admin", Password: "wrong-password"},
		{Username: "ghost", Password: "admin123"},
		{Username: "   ", Password: "admin123"},
	}
	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized), "username %q", req.Username)
		assert.Equal(t, invalidCredentialsMessage, pkgerrors.As(err).Message())
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	svc, _, conn := newTestService(t)
	seedAdmin(t, conn, false)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "admin", Password: "admin123"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestRegisterCreatesUserWithDefaultRole(t *testing.T) {
	svc, tokens, conn := newTestService(t)
	fullName := " Maria Lopez "

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Username: "maria",
		Email:    " Maria@Example.com ",
		Password: "supersecret",
		FullName: &fullName,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_USER"}, tokens.ExtractRoles(resp.AccessToken))
	assert.Equal(t, "maria@example.com", resp.User.Email)
	require.NotNil(t, resp.User.FullName)
	assert.Equal(t, "Maria Lopez", *resp.User.FullName)

	stored, err := users.NewRepository(conn).FindByUsername(context.Background(), "maria")
	require.NoError(t, err)
	assert.Equal(t, "plain:supersecret", stored.Password)
	assert.True(t, stored.Usable())

	var role models.Role
	require.NoError(t, conn.Where("name = ?", enums.RoleUser).First(&role).Error)
	require.NotNil(t, role.Description)
	assert.Equal(t, "Usuario regular", *role.Description)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _, conn := newTestService(t)
	seedAdmin(t, conn, true)

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "admin", Email: "new@floristeria.co", Password: "supersecret"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, "Username already exists", pkgerrors.As(err).Message())

	_, err = svc.Register(context.Background(), RegisterRequest{Username: "other", Email: "ADMIN@floristeria.co", Password: "supersecret"})
	require.Error(t, err)
	assert.Equal(t, "Email already exists", pkgerrors.As(err).Message())

	var count int64
	require.NoError(t, conn.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterRejectsPasswordOverBcryptLimit(t *testing.T) {
	svc, _, conn := newTestService(t)
	svc.hasher = security.NewPasswordHasher(config.PasswordConfig{})

	// 40 two-byte runes pass the rune-based max=72 tag but exceed bcrypt's byte limit.
	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "maria",
		Email:    "maria@floristeria.co",
		Password: strings.Repeat("ñ", 40),
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, map[string]string{"password": "Password must be at most 72 bytes"}, pkgerrors.As(err).Details())

	var count int64
	require.NoError(t, conn.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterReusesExistingUserRole(t *testing.T) {
	svc, _, conn := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "first", Email: "first@floristeria.co", Password: "supersecret"})
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), RegisterRequest{Username: "second", Email: "second@floristeria.co", Password: "supersecret"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, conn.Model(&models.Role{}).Where("name = ?", enums.RoleUser).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRefreshEchoesRefreshToken(t *testing.T) {
	svc, tokens, conn := newTestService(t)
	seedAdmin(t, conn, true)

	login, err := svc.Login(context.Background(), LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, login.RefreshToken, refreshed.RefreshToken)

	subject, err := tokens.ExtractSubject(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
	assert.Equal(t, []string{"ROLE_ADMIN"}, tokens.ExtractRoles(refreshed.AccessToken))
}

func TestRefreshRejectsInvalidTokens(t *testing.T) {
	svc, tokens, conn := newTestService(t)
	seedAdmin(t, conn, true)

	ghostToken, err := tokens.IssueRefreshToken(pkgAuth.StaticIdentity{Name: "ghost"})
	require.NoError(t, err)

	for _, token := range []string{"not-a-token", ghostToken, strings.Repeat("x", 40)} {
		_, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: token})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected missing database error")
	}
}
