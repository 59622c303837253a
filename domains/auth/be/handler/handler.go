package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tidenote/tidenote/domains/auth/be/service"
	platformlogging "github.com/tidenote/tidenote/platform/go/logging"
)

// Handler exposes the signup and login endpoints.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("auth service is required")
	}
	if logger == nil {
		panic("logger is required")
	}

	return &Handler{svc: svc, logger: logger}
}

// Routes mounts the public auth endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/auth/signup", h.Signup)
	r.Post("/auth/login", h.Login)
}

type signupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	TenantName string `json:"tenantName"`
	FullName   string `json:"fullName,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /auth/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Signup(r.Context(), service.SignupInput{
		Email:      req.Email,
		Password:   req.Password,
		TenantName: req.TenantName,
		FullName:   req.FullName,
	})
	if err != nil {
		h.writeServiceError(r, w, err, "signup")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user": map[string]any{
			"id":    result.UserID,
			"email": result.Email,
		},
	})
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(r, w, err, "login")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": result.Token,
		"user": map[string]any{
			"userId":     result.Claims.UserID,
			"email":      result.Claims.Email,
			"role":       result.Claims.Role,
			"tenantId":   result.Claims.TenantID,
			"tenantSlug": result.Claims.TenantSlug,
		},
	})
}

func (h *Handler) writeServiceError(r *http.Request, w http.ResponseWriter, err error, op string) {
	logger := platformlogging.FromRequest(r, h.logger)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.Warn("auth request rejected", zap.String("operation", op), zap.Error(err))
		writeError(w, http.StatusBadRequest, firstFieldError(validationErr.Fields))
	case errors.Is(err, service.ErrConflict):
		logger.Warn("auth conflict", zap.String("operation", op), zap.Error(err))
		writeError(w, http.StatusConflict, "user already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		logger.Info("login rejected", zap.String("operation", op))
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		logger.Error("auth operation failed", zap.String("operation", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func firstFieldError(fields service.FieldErrors) string {
	// Fixed field order keeps the reported message deterministic.
	for _, field := range []string{"email", "password", "tenantName"} {
		if messages := fields[field]; len(messages) > 0 {
			return messages[0]
		}
	}
	return "invalid request"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
