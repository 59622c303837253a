package repo

import (
	"context"

	"github.com/tidenote/tidenote/platform/go/persistence"
)

// Repository defines the persistence operations required by the tenants service.
type Repository interface {
	GetTenantBySlug(ctx context.Context, slug string) (persistence.TenantRecord, error)
	UpdateTenantPlan(ctx context.Context, slug, plan string) (persistence.TenantRecord, error)
}

type postgresRepository struct {
	tenants *persistence.TenantStore
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(tenants *persistence.TenantStore) Repository {
	if tenants == nil {
		panic("tenant store is required")
	}
	return &postgresRepository{tenants: tenants}
}

func (r *postgresRepository) GetTenantBySlug(ctx context.Context, slug string) (persistence.TenantRecord, error) {
	return r.tenants.GetTenantBySlug(ctx, slug)
}

func (r *postgresRepository) UpdateTenantPlan(ctx context.Context, slug, plan string) (persistence.TenantRecord, error) {
	return r.tenants.UpdateTenantPlan(ctx, slug, plan)
}
