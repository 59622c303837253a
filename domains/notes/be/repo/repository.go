package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/tidenote/tidenote/platform/go/persistence"
)

// Repository defines the persistence operations required by the notes service.
type Repository interface {
	GetTenant(ctx context.Context, id uuid.UUID) (persistence.TenantRecord, error)
	CountNotes(ctx context.Context, tenantID uuid.UUID) (int, error)
	CreateNote(ctx context.Context, params persistence.CreateNoteParams) (persistence.Note, error)
	ListNotes(ctx context.Context, tenantID uuid.UUID) ([]persistence.Note, error)
	GetNote(ctx context.Context, id uuid.UUID) (persistence.Note, error)
	UpdateNote(ctx context.Context, id uuid.UUID, title, content string) (persistence.Note, error)
	DeleteNote(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	tenants *persistence.TenantStore
	notes   *persistence.NoteStore
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(tenants *persistence.TenantStore, notes *persistence.NoteStore) Repository {
	if tenants == nil {
		panic("tenant store is required")
	}
	if notes == nil {
		panic("note store is required")
	}
	return &postgresRepository{tenants: tenants, notes: notes}
}

func (r *postgresRepository) GetTenant(ctx context.Context, id uuid.UUID) (persistence.TenantRecord, error) {
	return r.tenants.GetTenant(ctx, id)
}

func (r *postgresRepository) CountNotes(ctx context.Context, tenantID uuid.UUID) (int, error) {
	return r.notes.CountNotesByTenant(ctx, tenantID)
}

func (r *postgresRepository) CreateNote(ctx context.Context, params persistence.CreateNoteParams) (persistence.Note, error) {
	return r.notes.CreateNote(ctx, params)
}

func (r *postgresRepository) ListNotes(ctx context.Context, tenantID uuid.UUID) ([]persistence.Note, error) {
	return r.notes.ListNotesByTenant(ctx, tenantID)
}

func (r *postgresRepository) GetNote(ctx context.Context, id uuid.UUID) (persistence.Note, error) {
	return r.notes.GetNote(ctx, id)
}

func (r *postgresRepository) UpdateNote(ctx context.Context, id uuid.UUID, title, content string) (persistence.Note, error) {
	return r.notes.UpdateNote(ctx, id, title, content)
}

func (r *postgresRepository) DeleteNote(ctx context.Context, id uuid.UUID) error {
	return r.notes.DeleteNote(ctx, id)
}
