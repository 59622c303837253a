package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tidenote/tidenote/domains/notes/be/service"
	platformauth "github.com/tidenote/tidenote/platform/go/auth"
	platformlogging "github.com/tidenote/tidenote/platform/go/logging"
)

// Handler wires the notes service to the HTTP surface.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("notes service is required")
	}
	if logger == nil {
		panic("logger is required")
	}

	return &Handler{svc: svc, logger: logger}
}

// Routes mounts the note endpoints. The router group must already enforce
// authentication so claims are present on the context.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/notes", h.List)
	r.Post("/notes", h.Create)
	r.Get("/notes/{id}", h.Get)
	r.Put("/notes/{id}", h.Update)
	r.Delete("/notes/{id}", h.Delete)
}

// noteResponse is the wire representation of a note.
type noteResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	TenantID  uuid.UUID `json:"tenantId"`
	AuthorID  uuid.UUID `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

type createNoteRequest struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

type updateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// List handles GET /notes.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := platformauth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	notes, err := h.svc.List(r.Context(), claims)
	if err != nil {
		h.writeServiceError(r, w, err, "notesList")
		return
	}

	items := make([]noteResponse, 0, len(notes))
	for _, note := range notes {
		items = append(items, toNoteResponse(note))
	}
	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /notes.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := platformauth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.svc.Create(r.Context(), claims, service.CreateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.writeServiceError(r, w, err, "notesCreate")
		return
	}

	writeJSON(w, http.StatusCreated, toNoteResponse(note))
}

// Get handles GET /notes/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := platformauth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := noteID(w, r)
	if !ok {
		return
	}

	note, err := h.svc.Get(r.Context(), claims, id)
	if err != nil {
		h.writeServiceError(r, w, err, "notesGet")
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

// Update handles PUT /notes/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := platformauth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := noteID(w, r)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.svc.Update(r.Context(), claims, id, service.UpdateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.writeServiceError(r, w, err, "notesUpdate")
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

// Delete handles DELETE /notes/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := platformauth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := noteID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), claims, id); err != nil {
		h.writeServiceError(r, w, err, "notesDelete")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// noteID parses the path id. Malformed ids surface as 404, matching the
// indistinguishable-not-found contract.
func noteID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "note not found")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeServiceError(r *http.Request, w http.ResponseWriter, err error, op string) {
	logger := platformlogging.FromRequest(r, h.logger)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.Warn("notes request rejected", zap.String("operation", op), zap.Error(err))
		writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, service.ErrQuotaExceeded):
		logger.Info("note quota reached", zap.String("operation", op))
		writeError(w, http.StatusForbidden, "free plan limit reached (3 notes max)")
	case errors.Is(err, service.ErrTenantNotFound):
		logger.Warn("tenant missing for note create", zap.String("operation", op))
		writeError(w, http.StatusNotFound, "tenant not found")
	case errors.Is(err, service.ErrNotFound):
		logger.Info("note not found", zap.String("operation", op))
		writeError(w, http.StatusNotFound, "note not found")
	default:
		logger.Error("notes operation failed", zap.String("operation", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toNoteResponse(note service.Note) noteResponse {
	return noteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		TenantID:  note.TenantID,
		AuthorID:  note.AuthorID,
		CreatedAt: note.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
