package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/tidenote/tidenote/domains/auth/be/repo"
	platformauth "github.com/tidenote/tidenote/platform/go/auth"
	"github.com/tidenote/tidenote/platform/go/persistence"
)

// FieldErrors maps request fields to validation issues.
type FieldErrors map[string][]string

// ValidationError is returned when the input payload is invalid.
type ValidationError struct {
	Fields FieldErrors
}

func (v *ValidationError) Error() string {
	return "validation error"
}

// Domain sentinel errors.
var (
	// ErrConflict indicates the email is already registered.
	ErrConflict = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and password mismatch;
	// the two are indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// SignupInput represents the payload required to register a user and its tenant.
type SignupInput struct {
	Email      string
	Password   string
	TenantName string
	FullName   string
}

// SignupResult is the public view returned after a successful signup.
type SignupResult struct {
	UserID uuid.UUID
	Email  string
}

// LoginResult carries the signed token together with the claims it embeds.
type LoginResult struct {
	Token  string
	Claims platformauth.Claims
}

// Service defines the authentication operations.
type Service interface {
	Signup(ctx context.Context, input SignupInput) (SignupResult, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Verify(token string) *platformauth.Claims
}

type service struct {
	repo  repo.Repository
	codec *platformauth.Codec
}

// New constructs an auth Service backed by the provided repository and token codec.
func New(r repo.Repository, codec *platformauth.Codec) Service {
	if r == nil {
		panic("auth repository is required")
	}
	if codec == nil {
		panic("token codec is required")
	}
	return &service{repo: r, codec: codec}
}

// Signup registers a new tenant and its first user. The tenant slug is derived
// from the tenant name; the user always starts as MEMBER on the FREE plan.
func (s *service) Signup(ctx context.Context, input SignupInput) (SignupResult, error) {
	fieldErrors := FieldErrors{}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		fieldErrors.add("email", "email is required")
	} else if !strings.Contains(email, "@") {
		fieldErrors.add("email", "email must contain '@'")
	}

	if input.Password == "" {
		fieldErrors.add("password", "password is required")
	}

	tenantName := strings.TrimSpace(input.TenantName)
	if tenantName == "" {
		fieldErrors.add("tenantName", "tenant name is required")
	}

	if len(fieldErrors) > 0 {
		return SignupResult{}, &ValidationError{Fields: fieldErrors}
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return SignupResult{}, ErrConflict
	} else if !errors.Is(err, persistence.ErrUserNotFound) {
		return SignupResult{}, err
	}

	tenant, err := s.repo.CreateTenant(ctx, persistence.CreateTenantParams{
		TenantID: uuid.New(),
		Name:     tenantName,
		Slug:     persistence.DeriveSlug(tenantName),
		Plan:     persistence.PlanFree,
	})
	if err != nil {
		if errors.Is(err, persistence.ErrTenantConflict) {
			return SignupResult{}, ErrConflict
		}
		return SignupResult{}, err
	}

	hash, err := platformauth.HashPassword(input.Password)
	if err != nil {
		return SignupResult{}, err
	}

	user, err := s.repo.CreateUser(ctx, persistence.CreateUserParams{
		UserID:       uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Role:         persistence.RoleMember,
		TenantID:     tenant.TenantID,
	})
	if err != nil {
		if errors.Is(err, persistence.ErrUserConflict) {
			return SignupResult{}, ErrConflict
		}
		return SignupResult{}, err
	}

	return SignupResult{UserID: user.UserID, Email: user.Email}, nil
}

// Login validates the credentials and issues a signed token. Unknown email and
// wrong password both return ErrInvalidCredentials.
func (s *service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, persistence.ErrUserNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !platformauth.CheckPassword(user.PasswordHash, password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	tenant, err := s.repo.GetTenant(ctx, user.TenantID)
	if err != nil {
		return LoginResult{}, err
	}

	claims := platformauth.Claims{
		UserID:     user.UserID,
		Email:      user.Email,
		Role:       user.Role,
		TenantID:   user.TenantID,
		TenantSlug: tenant.Slug,
	}

	token, err := s.codec.Sign(claims)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, Claims: claims}, nil
}

// Verify delegates to the token codec; nil means unauthenticated.
func (s *service) Verify(token string) *platformauth.Claims {
	return s.codec.Verify(token)
}

func (f FieldErrors) add(field, message string) {
	if f == nil {
		return
	}
	f[field] = append(f[field], message)
}
