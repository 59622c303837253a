package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const UsersTable = "users"

// User roles within a tenant.
const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// User represents a row in the users table. PasswordHash is deliberately
// excluded from JSON serialization; it never leaves the service boundary.
type User struct {
	UserID       uuid.UUID `db:"user_id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"fullName,omitempty"`
	Role         string    `db:"role" json:"role"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenantId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

var (
	// ErrUserNotFound indicates a missing user record.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserConflict indicates a uniqueness violation (duplicated email).
	ErrUserConflict = errors.New("user conflict")
)

// UserStore exposes persistence helpers for the users table.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore returns a store instance over the shared pool.
func NewUserStore(ctx context.Context, pool *pgxpool.Pool) (*UserStore, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}

	return &UserStore{pool: pool}, nil
}

// CreateUserParams captures the fields required to insert a new user record.
type CreateUserParams struct {
	UserID       uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         string
	TenantID     uuid.UUID
}

// CreateUser inserts a new user and returns the persisted record.
// Email uniqueness is global; violations map to ErrUserConflict.
func (s *UserStore) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	if params.UserID == uuid.Nil {
		return User{}, errors.New("user id is required")
	}
	if params.TenantID == uuid.Nil {
		return User{}, errors.New("tenant id is required")
	}
	role := params.Role
	if role == "" {
		role = RoleMember
	}

	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (user_id, email, password_hash, full_name, role, tenant_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING user_id, email, password_hash, full_name, role, tenant_id, created_at
    `, UsersTable),
		params.UserID,
		strings.ToLower(strings.TrimSpace(params.Email)),
		params.PasswordHash,
		strings.TrimSpace(params.FullName),
		role,
		params.TenantID,
	)

	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrUserConflict
		}
		return User{}, err
	}

	return user, nil
}

// GetUser returns a single user by identifier.
func (s *UserStore) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        SELECT user_id, email, password_hash, full_name, role, tenant_id, created_at
        FROM %s WHERE user_id = $1
    `, UsersTable), id)

	return scanUser(row)
}

// GetUserByEmail returns a single user by email. Lookups are case-insensitive
// because CreateUser lowercases on write.
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        SELECT user_id, email, password_hash, full_name, role, tenant_id, created_at
        FROM %s WHERE email = $1
    `, UsersTable), strings.ToLower(strings.TrimSpace(email)))

	return scanUser(row)
}

func scanUser(row pgx.Row) (User, error) {
	var user User

	if err := row.Scan(&user.UserID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role, &user.TenantID, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}

	return user, nil
}
