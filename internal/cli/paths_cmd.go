package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newPathsCmd(app *App) *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "List the published learning paths visible to a user with progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return fmt.Errorf("--user must be a positive id")
			}
			paths, _, err := app.Paths.ListPaths(context.Background(), userID)
			if err != nil {
				return err
			}
			return writeJSON(app.Out, paths)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "LMS user id")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newDetailCmd(app *App) *cobra.Command {
	var userID, pathID int64

	cmd := &cobra.Command{
		Use:   "detail",
		Short: "Show per-line status of one learning path for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 || pathID <= 0 {
				return fmt.Errorf("--path and --user must be positive ids")
			}
			records, err := app.Paths.GetPathDetail(context.Background(), pathID, userID)
			if err != nil {
				return err
			}
			return writeJSON(app.Out, records)
		},
	}

	cmd.Flags().Int64Var(&pathID, "path", 0, "Learning path id")
	cmd.Flags().Int64Var(&userID, "user", 0, "LMS user id")
	_ = cmd.MarkFlagRequired("path")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newExistsCmd(app *App) *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "exists",
		Short: "Report whether a user is assigned any learning path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return fmt.Errorf("--user must be a positive id")
			}
			exists, err := app.Paths.HasAnyPath(context.Background(), userID)
			if err != nil {
				return err
			}
			return writeJSON(app.Out, map[string]bool{"exists": exists})
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "LMS user id")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
