package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/tidenote/tidenote/platform/go/persistence"
)

// Repository defines the persistence operations required by the auth service.
type Repository interface {
	CreateTenant(ctx context.Context, params persistence.CreateTenantParams) (persistence.TenantRecord, error)
	GetTenant(ctx context.Context, id uuid.UUID) (persistence.TenantRecord, error)
	CreateUser(ctx context.Context, params persistence.CreateUserParams) (persistence.User, error)
	GetUserByEmail(ctx context.Context, email string) (persistence.User, error)
}

type postgresRepository struct {
	tenants *persistence.TenantStore
	users   *persistence.UserStore
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(tenants *persistence.TenantStore, users *persistence.UserStore) Repository {
	if tenants == nil {
		panic("tenant store is required")
	}
	if users == nil {
		panic("user store is required")
	}
	return &postgresRepository{tenants: tenants, users: users}
}

func (r *postgresRepository) CreateTenant(ctx context.Context, params persistence.CreateTenantParams) (persistence.TenantRecord, error) {
	return r.tenants.CreateTenant(ctx, params)
}

func (r *postgresRepository) GetTenant(ctx context.Context, id uuid.UUID) (persistence.TenantRecord, error) {
	return r.tenants.GetTenant(ctx, id)
}

func (r *postgresRepository) CreateUser(ctx context.Context, params persistence.CreateUserParams) (persistence.User, error) {
	return r.users.CreateUser(ctx, params)
}

func (r *postgresRepository) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	return r.users.GetUserByEmail(ctx, email)
}
