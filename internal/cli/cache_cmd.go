package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the learning path result cache",
	}

	var userID int64
	flush := &cobra.Command{
		Use:   "flush",
		Short: "Drop cached path lists for one user, or for everyone without --user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID < 0 {
				return fmt.Errorf("--user must not be negative")
			}
			if err := app.Paths.InvalidateCache(context.Background(), userID); err != nil {
				return err
			}
			return writeJSON(app.Out, map[string]interface{}{"flushed": true, "user": userID})
		},
	}
	flush.Flags().Int64Var(&userID, "user", 0, "LMS user id, all users when omitted")

	cmd.AddCommand(flush)
	return cmd
}
