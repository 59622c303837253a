package token

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	platformauth "github.com/tidenote/tidenote/platform/go/auth"
)

// Command mints a signed bearer token for dev/local use.
func Command() *cobra.Command {
	var (
		secret     string
		userID     string
		email      string
		role       string
		tenantID   string
		tenantSlug string
		expiresIn  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed bearer token for dev/local use",
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := platformauth.NewCodec(secret, expiresIn)
			if err != nil {
				return err
			}

			parsedUserID, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("parse user-id: %w", err)
			}
			parsedTenantID, err := uuid.Parse(tenantID)
			if err != nil {
				return fmt.Errorf("parse tenant-id: %w", err)
			}

			signed, err := codec.Sign(platformauth.Claims{
				UserID:     parsedUserID,
				Email:      email,
				Role:       role,
				TenantID:   parsedTenantID,
				TenantSlug: tenantSlug,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (must match the server's JWT_SECRET)")
	cmd.Flags().StringVar(&userID, "user-id", "", "userId claim (uuid)")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&role, "role", "MEMBER", "role claim (ADMIN or MEMBER)")
	cmd.Flags().StringVar(&tenantID, "tenant-id", "", "tenantId claim (uuid)")
	cmd.Flags().StringVar(&tenantSlug, "tenant-slug", "", "tenantSlug claim")
	cmd.Flags().DurationVar(&expiresIn, "expires-in", time.Hour, "token lifetime (e.g. 30m, 2h)")

	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("user-id")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("tenant-id")
	_ = cmd.MarkFlagRequired("tenant-slug")

	return cmd
}
