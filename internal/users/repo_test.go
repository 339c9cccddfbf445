package users

import (
	"context"
	"testing"
	"time"

	"github.com/Emman-24/backendFlorist/pkg/db/dbtest"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, r *Repository) *models.User {
	t.Helper()
	ctx := context.Background()
	role := &models.Role{Name: enums.RoleAdmin}
	require.NoError(t, r.CreateRole(ctx, role))

	user := &models.User{
		Username:              "admin",
		Email:                 "admin@floristeria.co",
		Password:              "hash",
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
		Roles:                 []models.Role{*role},
	}
	require.NoError(t, r.Create(ctx, user))
	return user
}

func TestRepositoryFindByUsernamePreloadsRoles(t *testing.T) {
	r := NewRepository(dbtest.Open(t))
	seeded := seedUser(t, r)

	found, err := r.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	assert.Equal(t, []string{"ROLE_ADMIN"}, found.Authorities())

	byID, err := r.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@floristeria.co", byID.Email)
}

func TestRepositoryExistsAndLastLogin(t *testing.T) {
	ctx := context.Background()
	r := NewRepository(dbtest.Open(t))
	seeded := seedUser(t, r)

	exists, err := r.ExistsByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = r.ExistsByEmail(ctx, "nobody@floristeria.co")
	require.NoError(t, err)
	assert.False(t, exists)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, r.UpdateLastLogin(ctx, seeded.ID, at))
	reloaded, err := r.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLoginAt)
	assert.True(t, reloaded.LastLoginAt.Equal(at))
}

func TestFromModelHidesPassword(t *testing.T) {
	dto := FromModel(&models.User{ID: 3, Username: "maria", Password: "secret", Roles: []models.Role{{Name: enums.RoleUser}}})
	assert.Equal(t, []string{"USER"}, dto.Roles)
	assert.Nil(t, FromModel(nil))

	identity := NewIdentity(&models.User{Username: "maria", Roles: []models.Role{{Name: enums.RoleManager}}})
	assert.Equal(t, "maria", identity.Username())
	assert.Equal(t, []string{"ROLE_MANAGER"}, identity.Authorities())
}
