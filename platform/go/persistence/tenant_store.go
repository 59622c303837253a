package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TenantsTable defines the table backing the tenant registry.
const TenantsTable = "tenants"

// Tenant plans. Plans only ever move FREE -> PRO; nothing in this codebase downgrades.
const (
	PlanFree = "FREE"
	PlanPro  = "PRO"
)

var (
	// ErrTenantNotFound indicates a missing tenant record.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrTenantConflict indicates a uniqueness violation on the slug.
	ErrTenantConflict = errors.New("tenant conflict")
)

// TenantRecord represents a row in the tenants table.
type TenantRecord struct {
	TenantID  uuid.UUID `db:"tenant_id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	Plan      string    `db:"plan" json:"plan"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// TenantStore provides access to the tenants table.
type TenantStore struct {
	pool *pgxpool.Pool
}

// NewTenantStore creates a store; assumes the schema already created the table.
func NewTenantStore(ctx context.Context, pool *pgxpool.Pool) (*TenantStore, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}
	return &TenantStore{pool: pool}, nil
}

// CreateTenantParams captures the fields required to insert a new tenant record.
type CreateTenantParams struct {
	TenantID uuid.UUID
	Name     string
	Slug     string
	Plan     string
}

// CreateTenant inserts a new tenant and returns the persisted record.
func (s *TenantStore) CreateTenant(ctx context.Context, params CreateTenantParams) (TenantRecord, error) {
	if params.TenantID == uuid.Nil {
		return TenantRecord{}, errors.New("tenant id is required")
	}
	plan := params.Plan
	if plan == "" {
		plan = PlanFree
	}

	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (tenant_id, name, slug, plan)
        VALUES ($1, $2, $3, $4)
        RETURNING tenant_id, name, slug, plan, created_at
    `, TenantsTable),
		params.TenantID, params.Name, params.Slug, plan,
	)

	rec, err := scanTenantRecord(row)
	if err != nil {
		if isUniqueViolation(err) {
			return TenantRecord{}, ErrTenantConflict
		}
		return TenantRecord{}, err
	}

	return rec, nil
}

// GetTenant fetches a tenant by identifier.
func (s *TenantStore) GetTenant(ctx context.Context, id uuid.UUID) (TenantRecord, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        SELECT tenant_id, name, slug, plan, created_at
        FROM %s WHERE tenant_id = $1
    `, TenantsTable), id)

	return scanTenantRecord(row)
}

// GetTenantBySlug fetches a tenant by its public slug.
func (s *TenantStore) GetTenantBySlug(ctx context.Context, slug string) (TenantRecord, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        SELECT tenant_id, name, slug, plan, created_at
        FROM %s WHERE slug = $1
    `, TenantsTable), slug)

	return scanTenantRecord(row)
}

// UpdateTenantPlan overwrites the plan for the tenant identified by slug and
// returns the updated record.
func (s *TenantStore) UpdateTenantPlan(ctx context.Context, slug, plan string) (TenantRecord, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        UPDATE %s SET plan = $1
        WHERE slug = $2
        RETURNING tenant_id, name, slug, plan, created_at
    `, TenantsTable), plan, slug)

	return scanTenantRecord(row)
}

func scanTenantRecord(row pgx.Row) (TenantRecord, error) {
	var rec TenantRecord
	if err := row.Scan(&rec.TenantID, &rec.Name, &rec.Slug, &rec.Plan, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TenantRecord{}, ErrTenantNotFound
		}
		return TenantRecord{}, err
	}
	return rec, nil
}
