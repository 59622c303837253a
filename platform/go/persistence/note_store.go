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

const NotesTable = "notes"

// ErrNoteNotFound indicates a missing note record.
var ErrNoteNotFound = errors.New("note not found")

// Note represents a row in the notes table.
type Note struct {
	NoteID    uuid.UUID `db:"note_id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenantId"`
	AuthorID  uuid.UUID `db:"author_id" json:"authorId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NoteStore exposes persistence helpers for the notes table.
type NoteStore struct {
	pool *pgxpool.Pool
}

// NewNoteStore returns a store instance over the shared pool.
func NewNoteStore(ctx context.Context, pool *pgxpool.Pool) (*NoteStore, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}

	return &NoteStore{pool: pool}, nil
}

// CreateNoteParams captures the fields required to insert a new note record.
type CreateNoteParams struct {
	NoteID   uuid.UUID
	Title    string
	Content  string
	TenantID uuid.UUID
	AuthorID uuid.UUID
}

// CreateNote inserts a new note and returns the persisted record.
func (s *NoteStore) CreateNote(ctx context.Context, params CreateNoteParams) (Note, error) {
	if params.NoteID == uuid.Nil {
		return Note{}, errors.New("note id is required")
	}
	if params.TenantID == uuid.Nil {
		return Note{}, errors.New("tenant id is required")
	}

	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (note_id, title, content, tenant_id, author_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING note_id, title, content, tenant_id, author_id, created_at
    `, NotesTable),
		params.NoteID, params.Title, params.Content, params.TenantID, params.AuthorID,
	)

	return scanNote(row)
}

// ListNotesByTenant returns every note owned by the tenant, newest first.
// No pagination: the free-plan quota keeps tenant note sets small.
func (s *NoteStore) ListNotesByTenant(ctx context.Context, tenantID uuid.UUID) ([]Note, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
        SELECT note_id, title, content, tenant_id, author_id, created_at
        FROM %s WHERE tenant_id = $1
        ORDER BY created_at DESC
    `, NotesTable), tenantID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]Note, 0)
	for rows.Next() {
		note, scanErr := scanNote(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan note: %w", scanErr)
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return notes, nil
}

// GetNote returns a single note by identifier regardless of owning tenant.
// Tenant scoping is the service layer's responsibility so that cross-tenant
// reads stay indistinguishable from missing ids.
func (s *NoteStore) GetNote(ctx context.Context, id uuid.UUID) (Note, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        SELECT note_id, title, content, tenant_id, author_id, created_at
        FROM %s WHERE note_id = $1
    `, NotesTable), id)

	return scanNote(row)
}

// UpdateNote overwrites title and content unconditionally and returns the
// updated record.
func (s *NoteStore) UpdateNote(ctx context.Context, id uuid.UUID, title, content string) (Note, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        UPDATE %s SET title = $1, content = $2
        WHERE note_id = $3
        RETURNING note_id, title, content, tenant_id, author_id, created_at
    `, NotesTable), title, content, id)

	return scanNote(row)
}

// DeleteNote removes a note by identifier.
func (s *NoteStore) DeleteNote(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE note_id = $1`, NotesTable), id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// CountNotesByTenant returns the number of notes owned by the tenant. Used by
// the quota guard; the count-then-insert sequence is not atomic (accepted).
func (s *NoteStore) CountNotesByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var total int
	err := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE tenant_id = $1`, NotesTable), tenantID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return total, nil
}

func scanNote(row pgx.Row) (Note, error) {
	var note Note
	if err := row.Scan(&note.NoteID, &note.Title, &note.Content, &note.TenantID, &note.AuthorID, &note.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Note{}, ErrNoteNotFound
		}
		return Note{}, err
	}
	return note, nil
}
