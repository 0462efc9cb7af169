package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		userID int64
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's learning path summary as CSV or PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return fmt.Errorf("--user must be a positive id")
			}
			payload, _, err := app.Paths.ExportPaths(context.Background(), userID, format)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = app.Out.Write(payload)
				return err
			}
			if err := os.WriteFile(output, payload, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(app.Out, "wrote %d bytes to %s\n", len(payload), output)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "LMS user id")
	cmd.Flags().StringVar(&format, "format", "csv", "Export format (csv or pdf)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, stdout when empty")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
