package persistence

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func createTestTenant(t *testing.T, ctx context.Context, store *TenantStore) TenantRecord {
	t.Helper()

	rec, err := store.CreateTenant(ctx, CreateTenantParams{
		TenantID: uuid.New(),
		Name:     "Test Tenant",
		Slug:     "tenant-" + uuid.NewString()[:8],
	})
	require.NoError(t, err)
	return rec
}

func TestUserStoreCreateAndLookup(t *testing.T) {
	pool, cleanup := mustTestPool(t)
	defer cleanup()

	ctx := context.Background()
	tenants, err := NewTenantStore(ctx, pool)
	require.NoError(t, err)
	store, err := NewUserStore(ctx, pool)
	require.NoError(t, err)

	tenant := createTestTenant(t, ctx, tenants)
	email := fmt.Sprintf("user-%s@example.test", uuid.NewString()[:8])

	created, err := store.CreateUser(ctx, CreateUserParams{
		UserID:       uuid.New(),
		Email:        "  " + email + " ",
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhash",
		FullName:     "Test User",
		TenantID:     tenant.TenantID,
	})
	require.NoError(t, err)
	require.Equal(t, email, created.Email)
	require.Equal(t, RoleMember, created.Role, "role defaults to MEMBER")
	require.Equal(t, tenant.TenantID, created.TenantID)

	byEmail, err := store.GetUserByEmail(ctx, email)
	require.NoError(t, err)
	require.Equal(t, created.UserID, byEmail.UserID)

	byID, err := store.GetUser(ctx, created.UserID)
	require.NoError(t, err)
	require.Equal(t, created.Email, byID.Email)
}

func TestUserStoreEmailConflictAcrossTenants(t *testing.T) {
	pool, cleanup := mustTestPool(t)
	defer cleanup()

	ctx := context.Background()
	tenants, err := NewTenantStore(ctx, pool)
	require.NoError(t, err)
	store, err := NewUserStore(ctx, pool)
	require.NoError(t, err)

	tenantA := createTestTenant(t, ctx, tenants)
	tenantB := createTestTenant(t, ctx, tenants)
	email := fmt.Sprintf("dup-%s@example.test", uuid.NewString()[:8])

	_, err = store.CreateUser(ctx, CreateUserParams{
		UserID:       uuid.New(),
		Email:        email,
		PasswordHash: "hash",
		TenantID:     tenantA.TenantID,
	})
	require.NoError(t, err)

	// Email uniqueness is global, not per-tenant.
	_, err = store.CreateUser(ctx, CreateUserParams{
		UserID:       uuid.New(),
		Email:        email,
		PasswordHash: "hash",
		TenantID:     tenantB.TenantID,
	})
	require.ErrorIs(t, err, ErrUserConflict)
}

func TestUserStoreNotFound(t *testing.T) {
	pool, cleanup := mustTestPool(t)
	defer cleanup()

	ctx := context.Background()
	store, err := NewUserStore(ctx, pool)
	require.NoError(t, err)

	_, err = store.GetUser(ctx, uuid.New())
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = store.GetUserByEmail(ctx, "nobody@example.test")
	require.ErrorIs(t, err, ErrUserNotFound)
}
