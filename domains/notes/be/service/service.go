package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tidenote/tidenote/domains/notes/be/repo"
	platformauth "github.com/tidenote/tidenote/platform/go/auth"
	"github.com/tidenote/tidenote/platform/go/persistence"
)

// FreePlanNoteLimit caps the note count for tenants on the FREE plan.
const FreePlanNoteLimit = 3

// maxDerivedTitleLen bounds titles derived from note content.
const maxDerivedTitleLen = 50

// defaultTitle is used when no title can be derived. Only reachable if the
// empty-content validation is bypassed.
const defaultTitle = "Untitled Note"

// Domain sentinel errors.
var (
	// ErrNotFound covers both a missing note and a note owned by another
	// tenant; callers cannot tell the two apart.
	ErrNotFound = errors.New("note not found")
	// ErrTenantNotFound indicates the caller's tenant no longer exists.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrQuotaExceeded indicates the FREE plan note limit has been reached.
	ErrQuotaExceeded = errors.New("free plan note limit reached")
)

// ValidationError is returned when the input payload is invalid.
type ValidationError struct {
	Message string
}

func (v *ValidationError) Error() string {
	return v.Message
}

// Note represents the domain view of a note record.
type Note struct {
	ID        uuid.UUID
	Title     string
	Content   string
	TenantID  uuid.UUID
	AuthorID  uuid.UUID
	CreatedAt time.Time
}

// CreateInput represents the payload to create a note. Title is optional; a
// missing title is derived from the content.
type CreateInput struct {
	Title   string
	Content string
}

// UpdateInput carries the replacement title and content. Both fields are
// always rewritten; there are no partial-update semantics.
type UpdateInput struct {
	Title   string
	Content string
}

// Service defines the tenant-scoped note operations. Every operation is
// constrained to the tenant carried by the caller's verified claims.
type Service interface {
	List(ctx context.Context, claims *platformauth.Claims) ([]Note, error)
	Create(ctx context.Context, claims *platformauth.Claims, input CreateInput) (Note, error)
	Get(ctx context.Context, claims *platformauth.Claims, id uuid.UUID) (Note, error)
	Update(ctx context.Context, claims *platformauth.Claims, id uuid.UUID, input UpdateInput) (Note, error)
	Delete(ctx context.Context, claims *platformauth.Claims, id uuid.UUID) error
}

type service struct {
	repo repo.Repository
}

// New constructs a notes Service backed by the provided repository.
func New(r repo.Repository) Service {
	if r == nil {
		panic("notes repository is required")
	}
	return &service{repo: r}
}

// List returns every note owned by the caller's tenant, newest first.
func (s *service) List(ctx context.Context, claims *platformauth.Claims) ([]Note, error) {
	records, err := s.repo.ListNotes(ctx, claims.TenantID)
	if err != nil {
		return nil, err
	}

	notes := make([]Note, 0, len(records))
	for _, record := range records {
		notes = append(notes, mapNote(record))
	}
	return notes, nil
}

// Create inserts a note for the caller's tenant after checking the plan quota.
// The count-then-insert sequence is not transactional; concurrent creates can
// momentarily overshoot the limit (accepted for this domain).
func (s *service) Create(ctx context.Context, claims *platformauth.Claims, input CreateInput) (Note, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return Note{}, &ValidationError{Message: "content is required"}
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = deriveTitle(content)
	}

	tenant, err := s.repo.GetTenant(ctx, claims.TenantID)
	if err != nil {
		if errors.Is(err, persistence.ErrTenantNotFound) {
			return Note{}, ErrTenantNotFound
		}
		return Note{}, err
	}

	if tenant.Plan == persistence.PlanFree {
		count, countErr := s.repo.CountNotes(ctx, tenant.TenantID)
		if countErr != nil {
			return Note{}, countErr
		}
		if count >= FreePlanNoteLimit {
			return Note{}, ErrQuotaExceeded
		}
	}

	record, err := s.repo.CreateNote(ctx, persistence.CreateNoteParams{
		NoteID:   uuid.New(),
		Title:    title,
		Content:  content,
		TenantID: claims.TenantID,
		AuthorID: claims.UserID,
	})
	if err != nil {
		return Note{}, err
	}

	return mapNote(record), nil
}

// Get returns the note when it belongs to the caller's tenant. A note owned
// by another tenant surfaces as ErrNotFound, same as a missing id.
func (s *service) Get(ctx context.Context, claims *platformauth.Claims, id uuid.UUID) (Note, error) {
	record, err := s.ownedNote(ctx, claims, id)
	if err != nil {
		return Note{}, err
	}
	return mapNote(record), nil
}

// Update overwrites title and content unconditionally after the ownership check.
func (s *service) Update(ctx context.Context, claims *platformauth.Claims, id uuid.UUID, input UpdateInput) (Note, error) {
	if _, err := s.ownedNote(ctx, claims, id); err != nil {
		return Note{}, err
	}

	record, err := s.repo.UpdateNote(ctx, id, input.Title, input.Content)
	if err != nil {
		if errors.Is(err, persistence.ErrNoteNotFound) {
			return Note{}, ErrNotFound
		}
		return Note{}, err
	}

	return mapNote(record), nil
}

// Delete removes the note after the ownership check. Deletion is irreversible.
func (s *service) Delete(ctx context.Context, claims *platformauth.Claims, id uuid.UUID) error {
	if _, err := s.ownedNote(ctx, claims, id); err != nil {
		return err
	}

	if err := s.repo.DeleteNote(ctx, id); err != nil {
		if errors.Is(err, persistence.ErrNoteNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

func (s *service) ownedNote(ctx context.Context, claims *platformauth.Claims, id uuid.UUID) (persistence.Note, error) {
	record, err := s.repo.GetNote(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNoteNotFound) {
			return persistence.Note{}, ErrNotFound
		}
		return persistence.Note{}, err
	}

	if record.TenantID != claims.TenantID {
		return persistence.Note{}, ErrNotFound
	}

	return record, nil
}

func deriveTitle(content string) string {
	if content == "" {
		return defaultTitle
	}

	runes := []rune(content)
	if len(runes) <= maxDerivedTitleLen {
		return content
	}
	return string(runes[:maxDerivedTitleLen])
}

func mapNote(record persistence.Note) Note {
	return Note{
		ID:        record.NoteID,
		Title:     record.Title,
		Content:   record.Content,
		TenantID:  record.TenantID,
		AuthorID:  record.AuthorID,
		CreatedAt: record.CreatedAt,
	}
}
