package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	platformauth "github.com/tidenote/tidenote/platform/go/auth"
	"github.com/tidenote/tidenote/platform/go/persistence"
)

type mockRepository struct {
	getBySlugFn  func(ctx context.Context, slug string) (persistence.TenantRecord, error)
	updatePlanFn func(ctx context.Context, slug, plan string) (persistence.TenantRecord, error)
}

func (m *mockRepository) GetTenantBySlug(ctx context.Context, slug string) (persistence.TenantRecord, error) {
	if m.getBySlugFn == nil {
		panic("getBySlugFn not configured")
	}
	return m.getBySlugFn(ctx, slug)
}

func (m *mockRepository) UpdateTenantPlan(ctx context.Context, slug, plan string) (persistence.TenantRecord, error) {
	if m.updatePlanFn == nil {
		panic("updatePlanFn not configured")
	}
	return m.updatePlanFn(ctx, slug, plan)
}

func adminClaims() *platformauth.Claims {
	return &platformauth.Claims{
		UserID:     uuid.New(),
		Email:      "admin@acme.test",
		Role:       persistence.RoleAdmin,
		TenantID:   uuid.New(),
		TenantSlug: "acme",
	}
}

func TestUpgradeRequiresAdmin(t *testing.T) {
	t.Parallel()

	claims := adminClaims()
	claims.Role = persistence.RoleMember

	_, err := New(&mockRepository{}).Upgrade(context.Background(), claims, "acme")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpgradeUnknownSlug(t *testing.T) {
	t.Parallel()

	repository := &mockRepository{
		getBySlugFn: func(ctx context.Context, slug string) (persistence.TenantRecord, error) {
			return persistence.TenantRecord{}, persistence.ErrTenantNotFound
		},
	}

	_, err := New(repository).Upgrade(context.Background(), adminClaims(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpgradeFreeToPro(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	repository := &mockRepository{
		getBySlugFn: func(ctx context.Context, slug string) (persistence.TenantRecord, error) {
			require.Equal(t, "acme", slug)
			return persistence.TenantRecord{TenantID: tenantID, Slug: "acme", Plan: persistence.PlanFree}, nil
		},
		updatePlanFn: func(ctx context.Context, slug, plan string) (persistence.TenantRecord, error) {
			require.Equal(t, "acme", slug)
			require.Equal(t, persistence.PlanPro, plan)
			return persistence.TenantRecord{TenantID: tenantID, Slug: "acme", Plan: plan}, nil
		},
	}

	result, err := New(repository).Upgrade(context.Background(), adminClaims(), "acme")
	require.NoError(t, err)
	require.Equal(t, "Tenant acme upgraded to PRO", result.Message)
	require.NotNil(t, result.Tenant)
	require.Equal(t, persistence.PlanPro, result.Tenant.Plan)
}

func TestUpgradeAlreadyPro(t *testing.T) {
	t.Parallel()

	repository := &mockRepository{
		getBySlugFn: func(ctx context.Context, slug string) (persistence.TenantRecord, error) {
			return persistence.TenantRecord{Slug: "acme", Plan: persistence.PlanPro}, nil
		},
		updatePlanFn: func(ctx context.Context, slug, plan string) (persistence.TenantRecord, error) {
			t.Fatal("no update must be issued for an already-PRO tenant")
			return persistence.TenantRecord{}, nil
		},
	}

	result, err := New(repository).Upgrade(context.Background(), adminClaims(), "acme")
	require.NoError(t, err)
	require.Equal(t, "Already on Pro plan", result.Message)
	require.Nil(t, result.Tenant)
}

func TestUpgradeOtherTenantAllowed(t *testing.T) {
	t.Parallel()

	// Admins are not restricted to their own tenant's slug.
	repository := &mockRepository{
		getBySlugFn: func(ctx context.Context, slug string) (persistence.TenantRecord, error) {
			return persistence.TenantRecord{TenantID: uuid.New(), Slug: "globex", Plan: persistence.PlanFree}, nil
		},
		updatePlanFn: func(ctx context.Context, slug, plan string) (persistence.TenantRecord, error) {
			return persistence.TenantRecord{TenantID: uuid.New(), Slug: "globex", Plan: plan}, nil
		},
	}

	result, err := New(repository).Upgrade(context.Background(), adminClaims(), "globex")
	require.NoError(t, err)
	require.Equal(t, "Tenant globex upgraded to PRO", result.Message)
}
