package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTenantStoreLifecycle(t *testing.T) {
	pool, cleanup := mustTestPool(t)
	defer cleanup()

	ctx := context.Background()
	store, err := NewTenantStore(ctx, pool)
	require.NoError(t, err)

	slug := "acme-" + uuid.NewString()[:8]

	created, err := store.CreateTenant(ctx, CreateTenantParams{
		TenantID: uuid.New(),
		Name:     "Acme",
		Slug:     slug,
	})
	require.NoError(t, err)
	require.Equal(t, PlanFree, created.Plan)
	require.Equal(t, slug, created.Slug)
	require.False(t, created.CreatedAt.IsZero())

	byID, err := store.GetTenant(ctx, created.TenantID)
	require.NoError(t, err)
	require.Equal(t, created.TenantID, byID.TenantID)

	bySlug, err := store.GetTenantBySlug(ctx, slug)
	require.NoError(t, err)
	require.Equal(t, created.TenantID, bySlug.TenantID)

	upgraded, err := store.UpdateTenantPlan(ctx, slug, PlanPro)
	require.NoError(t, err)
	require.Equal(t, PlanPro, upgraded.Plan)
}

func TestTenantStoreSlugConflict(t *testing.T) {
	pool, cleanup := mustTestPool(t)
	defer cleanup()

	ctx := context.Background()
	store, err := NewTenantStore(ctx, pool)
	require.NoError(t, err)

	slug := "dup-" + uuid.NewString()[:8]

	_, err = store.CreateTenant(ctx, CreateTenantParams{TenantID: uuid.New(), Name: "First", Slug: slug})
	require.NoError(t, err)

	_, err = store.CreateTenant(ctx, CreateTenantParams{TenantID: uuid.New(), Name: "Second", Slug: slug})
	require.ErrorIs(t, err, ErrTenantConflict)
}

func TestTenantStoreNotFound(t *testing.T) {
	pool, cleanup := mustTestPool(t)
	defer cleanup()

	ctx := context.Background()
	store, err := NewTenantStore(ctx, pool)
	require.NoError(t, err)

	_, err = store.GetTenant(ctx, uuid.New())
	require.ErrorIs(t, err, ErrTenantNotFound)

	_, err = store.GetTenantBySlug(ctx, "missing-"+uuid.NewString()[:8])
	require.ErrorIs(t, err, ErrTenantNotFound)

	_, err = store.UpdateTenantPlan(ctx, "missing-"+uuid.NewString()[:8], PlanPro)
	require.ErrorIs(t, err, ErrTenantNotFound)
}
