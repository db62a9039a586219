package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/identity"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUserRepository_CreateAndFind(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	ctx := context.Background()

	user, err := identity.NewAdminUser("Editor@Example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByEmail(ctx, "EDITOR@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, found.VerifyPassword("secret123"))

	exists, err := repo.ExistsByEmail(ctx, "editor@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByEmail(ctx, "")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository_DuplicateEmailRejected(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	ctx := context.Background()

	a, err := identity.NewAdminUser("dup@example.com", "secret123")
	require.NoError(t, err)
	b, err := identity.NewAdminUser("dup@example.com", "secret456")
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, a))
	assert.Error(t, repo.Create(ctx, b))
}

func TestGormUserRepository_UpdateTracksLockout(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	ctx := context.Background()

	user, err := identity.NewAdminUser("lock@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	locked := user.RecordSignInFailure(1, time.Hour)
	require.True(t, locked)
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, found.IsLocked())

	ghost, err := identity.NewAdminUser("ghost@example.com", "secret123")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Update(ctx, ghost), shared.ErrNotFound)
}
