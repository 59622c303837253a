package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tidenote/tidenote/domains/tenants/be/service"
	platformauth "github.com/tidenote/tidenote/platform/go/auth"
	platformlogging "github.com/tidenote/tidenote/platform/go/logging"
)

// Handler wires the tenants service to the HTTP surface.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("tenants service is required")
	}
	if logger == nil {
		panic("logger is required")
	}

	return &Handler{svc: svc, logger: logger}
}

// Routes mounts the tenant endpoints. The router group must already enforce
// authentication and the ADMIN role.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/tenants/{slug}/upgrade", h.Upgrade)
}

type tenantResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
}

type upgradeResponse struct {
	Message string          `json:"message"`
	Tenant  *tenantResponse `json:"tenant,omitempty"`
}

// Upgrade handles POST /tenants/{slug}/upgrade.
func (h *Handler) Upgrade(w http.ResponseWriter, r *http.Request) {
	claims, ok := platformauth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	slug := chi.URLParam(r, "slug")
	result, err := h.svc.Upgrade(r.Context(), claims, slug)
	if err != nil {
		h.writeServiceError(r, w, err, slug)
		return
	}

	body := upgradeResponse{Message: result.Message}
	if result.Tenant != nil {
		body.Tenant = &tenantResponse{
			ID:        result.Tenant.TenantID,
			Name:      result.Tenant.Name,
			Slug:      result.Tenant.Slug,
			Plan:      result.Tenant.Plan,
			CreatedAt: result.Tenant.CreatedAt,
		}
	}

	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) writeServiceError(r *http.Request, w http.ResponseWriter, err error, slug string) {
	logger := platformlogging.FromRequest(r, h.logger)

	switch {
	case errors.Is(err, service.ErrForbidden):
		logger.Warn("tenant upgrade forbidden", zap.String("slug", slug))
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrNotFound):
		logger.Info("tenant not found for upgrade", zap.String("slug", slug))
		writeError(w, http.StatusNotFound, "tenant not found")
	default:
		logger.Error("tenant upgrade failed", zap.String("slug", slug), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
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
