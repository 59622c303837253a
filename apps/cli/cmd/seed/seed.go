package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	sqlassets "github.com/tidenote/tidenote/database"
	platformauth "github.com/tidenote/tidenote/platform/go/auth"
	"github.com/tidenote/tidenote/platform/go/persistence"
)

// seedPassword is shared by every demo account.
const seedPassword = "password"

type seedUser struct {
	email    string
	fullName string
	role     string
}

type seedNote struct {
	title   string
	content string
}

type seedTenant struct {
	name  string
	slug  string
	users []seedUser
	notes []seedNote
}

// Acme gets exactly three notes so the FREE plan limit is already reached.
var seedTenants = []seedTenant{
	{
		name: "Acme",
		slug: "acme",
		users: []seedUser{
			{email: "admin@acme.test", fullName: "Acme Admin", role: persistence.RoleAdmin},
			{email: "user@acme.test", fullName: "Acme Member", role: persistence.RoleMember},
		},
		notes: []seedNote{
			{title: "Acme: Welcome", content: "Welcome to Acme notes!"},
			{title: "Acme: Meeting notes", content: "Meeting at 10 AM."},
			{title: "Acme: TODO", content: "Finish the demo app."},
		},
	},
	{
		name: "Globex",
		slug: "globex",
		users: []seedUser{
			{email: "admin@globex.test", fullName: "Globex Admin", role: persistence.RoleAdmin},
			{email: "user@globex.test", fullName: "Globex Member", role: persistence.RoleMember},
		},
		notes: []seedNote{
			{title: "Globex: Welcome", content: "Welcome Globex!"},
		},
	},
}

// Command seeds demo tenants, users and notes. Safe to run repeatedly.
func Command() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed demo tenants, users and notes",
		Long:  "Applies the embedded schema and inserts the demo tenants (acme, globex) with their users and notes. Existing records are left untouched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			pool, err := persistence.NewPool(ctx, persistence.PoolConfig{ConnString: databaseURL})
			if err != nil {
				return fmt.Errorf("init pool: %w", err)
			}
			defer persistence.ClosePool(pool)

			if err := applySchema(ctx, pool); err != nil {
				return err
			}

			if err := run(ctx, cmd, pool); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Seed finished. Test accounts:")
			for _, tenant := range seedTenants {
				for _, user := range tenant.users {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s / %s (%s, %s)\n", user.email, seedPassword, user.role, tenant.name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "postgres connection string")
	_ = cmd.MarkFlagRequired("database-url")

	return cmd
}

func applySchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range strings.Split(sqlassets.CoreSchemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func run(ctx context.Context, cmd *cobra.Command, pool *pgxpool.Pool) error {
	tenantStore, err := persistence.NewTenantStore(ctx, pool)
	if err != nil {
		return fmt.Errorf("init tenant store: %w", err)
	}
	userStore, err := persistence.NewUserStore(ctx, pool)
	if err != nil {
		return fmt.Errorf("init user store: %w", err)
	}
	noteStore, err := persistence.NewNoteStore(ctx, pool)
	if err != nil {
		return fmt.Errorf("init note store: %w", err)
	}

	passwordHash, err := platformauth.HashPassword(seedPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	for _, spec := range seedTenants {
		tenant, err := ensureTenant(ctx, tenantStore, spec)
		if err != nil {
			return err
		}

		// The first user of each tenant authors the demo notes.
		var author persistence.User
		for i, userSpec := range spec.users {
			user, err := ensureUser(ctx, userStore, tenant.TenantID, userSpec, passwordHash)
			if err != nil {
				return err
			}
			if i == 0 {
				author = user
			}
		}

		if err := ensureNotes(ctx, noteStore, tenant.TenantID, author.UserID, spec.notes); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "tenant %s ready\n", tenant.Slug)
	}

	return nil
}

func ensureTenant(ctx context.Context, store *persistence.TenantStore, spec seedTenant) (persistence.TenantRecord, error) {
	tenant, err := store.CreateTenant(ctx, persistence.CreateTenantParams{
		TenantID: uuid.New(),
		Name:     spec.name,
		Slug:     spec.slug,
		Plan:     persistence.PlanFree,
	})
	if errors.Is(err, persistence.ErrTenantConflict) {
		return store.GetTenantBySlug(ctx, spec.slug)
	}
	if err != nil {
		return persistence.TenantRecord{}, fmt.Errorf("seed tenant %s: %w", spec.slug, err)
	}
	return tenant, nil
}

func ensureUser(ctx context.Context, store *persistence.UserStore, tenantID uuid.UUID, spec seedUser, passwordHash string) (persistence.User, error) {
	user, err := store.CreateUser(ctx, persistence.CreateUserParams{
		UserID:       uuid.New(),
		Email:        spec.email,
		PasswordHash: passwordHash,
		FullName:     spec.fullName,
		Role:         spec.role,
		TenantID:     tenantID,
	})
	if errors.Is(err, persistence.ErrUserConflict) {
		return store.GetUserByEmail(ctx, spec.email)
	}
	if err != nil {
		return persistence.User{}, fmt.Errorf("seed user %s: %w", spec.email, err)
	}
	return user, nil
}

// ensureNotes inserts only the notes whose titles are not present yet, so a
// re-run never pushes a tenant past its plan limit.
func ensureNotes(ctx context.Context, store *persistence.NoteStore, tenantID, authorID uuid.UUID, specs []seedNote) error {
	existing, err := store.ListNotesByTenant(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}

	seen := make(map[string]bool, len(existing))
	for _, note := range existing {
		seen[note.Title] = true
	}

	for _, spec := range specs {
		if seen[spec.title] {
			continue
		}
		if _, err := store.CreateNote(ctx, persistence.CreateNoteParams{
			NoteID:   uuid.New(),
			Title:    spec.title,
			Content:  spec.content,
			TenantID: tenantID,
			AuthorID: authorID,
		}); err != nil {
			return fmt.Errorf("seed note %q: %w", spec.title, err)
		}
	}

	return nil
}
