package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidenote/tidenote/domains/tenants/be/repo"
	platformauth "github.com/tidenote/tidenote/platform/go/auth"
	"github.com/tidenote/tidenote/platform/go/persistence"
)

// Domain sentinel errors.
var (
	// ErrForbidden indicates the caller lacks the ADMIN role.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates no tenant exists with the given slug.
	ErrNotFound = errors.New("tenant not found")
)

// UpgradeResult carries the outcome of an upgrade attempt. Tenant is nil when
// the tenant was already on the PRO plan and nothing changed.
type UpgradeResult struct {
	Message string
	Tenant  *persistence.TenantRecord
}

// Service defines the tenant plan operations.
type Service interface {
	Upgrade(ctx context.Context, claims *platformauth.Claims, slug string) (UpgradeResult, error)
}

type service struct {
	repo repo.Repository
}

// New constructs a tenants Service backed by the provided repository.
func New(r repo.Repository) Service {
	if r == nil {
		panic("tenants repository is required")
	}
	return &service{repo: r}
}

// Upgrade moves the tenant identified by slug to the PRO plan. Any ADMIN may
// upgrade any tenant by slug; the caller's own tenant is not cross-checked.
// Upgrading an already-PRO tenant is a no-op reported as such.
func (s *service) Upgrade(ctx context.Context, claims *platformauth.Claims, slug string) (UpgradeResult, error) {
	if claims.Role != persistence.RoleAdmin {
		return UpgradeResult{}, ErrForbidden
	}

	tenant, err := s.repo.GetTenantBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, persistence.ErrTenantNotFound) {
			return UpgradeResult{}, ErrNotFound
		}
		return UpgradeResult{}, err
	}

	if tenant.Plan == persistence.PlanPro {
		return UpgradeResult{Message: "Already on Pro plan"}, nil
	}

	updated, err := s.repo.UpdateTenantPlan(ctx, slug, persistence.PlanPro)
	if err != nil {
		if errors.Is(err, persistence.ErrTenantNotFound) {
			return UpgradeResult{}, ErrNotFound
		}
		return UpgradeResult{}, err
	}

	return UpgradeResult{
		Message: fmt.Sprintf("Tenant %s upgraded to PRO", slug),
		Tenant:  &updated,
	}, nil
}
