package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/learningpath-api/internal/models"
	"github.com/noah-isme/learningpath-api/internal/service"
)

func newTokenCmd(app *App) *cobra.Command {
	var (
		userID int64
		role   string
		email  string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token for calling the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Tokens == nil {
				return fmt.Errorf("token issuing is not configured")
			}
			token, expiresAt, err := app.Tokens.IssueToken(service.TokenSubject{
				UserID: userID,
				Role:   models.UserRole(strings.ToUpper(role)),
				Email:  email,
			})
			if err != nil {
				return err
			}
			return writeJSON(app.Out, map[string]string{
				"access_token": token,
				"expires_at":   expiresAt.UTC().Format(time.RFC3339),
			})
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "LMS user id")
	cmd.Flags().StringVar(&role, "role", string(models.RoleStudent), "Role claim (ADMIN, MANAGER or STUDENT)")
	cmd.Flags().StringVar(&email, "email", "", "Optional email claim")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
