package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/learningpath-api/internal/models"
	"github.com/noah-isme/learningpath-api/internal/service"
)

// PathQueries is the subset of the learning path service the CLI drives.
type PathQueries interface {
	ListPaths(ctx context.Context, userID int64) ([]models.PathSummary, bool, error)
	GetPathDetail(ctx context.Context, pathID, userID int64) ([]models.LineRecord, error)
	HasAnyPath(ctx context.Context, userID int64) (bool, error)
	ExportPaths(ctx context.Context, userID int64, format string) ([]byte, string, error)
	InvalidateCache(ctx context.Context, userID int64) error
}

// TokenIssuer mints access tokens for local testing.
type TokenIssuer interface {
	IssueToken(subject service.TokenSubject) (string, time.Time, error)
}

// App holds references to the services used by CLI commands.
type App struct {
	Paths  PathQueries
	Tokens TokenIssuer
	Out    io.Writer
}

// NewRootCmd creates the top-level "lpctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.Out == nil {
		app.Out = os.Stdout
	}

	root := &cobra.Command{
		Use:           "lpctl",
		Short:         "Inspect learning path progress from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPathsCmd(app),
		newDetailCmd(app),
		newExistsCmd(app),
		newExportCmd(app),
		newCacheCmd(app),
		newTokenCmd(app),
	)

	return root
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
