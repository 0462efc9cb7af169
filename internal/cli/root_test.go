package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/learningpath-api/internal/models"
	"github.com/noah-isme/learningpath-api/internal/service"
)

type fakePaths struct {
	summaries []models.PathSummary
	records   []models.LineRecord
	exists    bool
	payload   []byte
	err       error

	lastPath    int64
	lastUser    int64
	lastFormat  string
	invalidated []int64
}

func (f *fakePaths) ListPaths(ctx context.Context, userID int64) ([]models.PathSummary, bool, error) {
	f.lastUser = userID
	return f.summaries, false, f.err
}

func (f *fakePaths) GetPathDetail(ctx context.Context, pathID, userID int64) ([]models.LineRecord, error) {
	f.lastPath, f.lastUser = pathID, userID
	return f.records, f.err
}

func (f *fakePaths) HasAnyPath(ctx context.Context, userID int64) (bool, error) {
	f.lastUser = userID
	return f.exists, f.err
}

func (f *fakePaths) ExportPaths(ctx context.Context, userID int64, format string) ([]byte, string, error) {
	f.lastUser, f.lastFormat = userID, format
	return f.payload, "text/csv", f.err
}

func (f *fakePaths) InvalidateCache(ctx context.Context, userID int64) error {
	f.invalidated = append(f.invalidated, userID)
	return f.err
}

type fakeTokens struct {
	subject service.TokenSubject
}

func (f *fakeTokens) IssueToken(subject service.TokenSubject) (string, time.Time, error) {
	f.subject = subject
	return "signed", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), nil
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app.Out = &out
	cmd := NewRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestPathsCommandPrintsSummaries(t *testing.T) {
	paths := &fakePaths{summaries: []models.PathSummary{{ID: 3, Name: "Onboarding", Progress: 50, ProgressClass: "warning"}}}

	out, err := execute(t, &App{Paths: paths}, "paths", "--user", "7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), paths.lastUser)

	var decoded []models.PathSummary
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Onboarding", decoded[0].Name)
	assert.Equal(t, 50, decoded[0].Progress)
}

func TestPathsCommandRequiresUser(t *testing.T) {
	_, err := execute(t, &App{Paths: &fakePaths{}}, "paths")
	require.Error(t, err)
}

func TestPathsCommandRejectsNonPositiveUser(t *testing.T) {
	_, err := execute(t, &App{Paths: &fakePaths{}}, "paths", "--user", "0")
	require.Error(t, err)
}

func TestDetailCommandPassesIDs(t *testing.T) {
	paths := &fakePaths{records: []models.LineRecord{{ID: 11, Name: "Safety 101", IsCourse: true, Progress: 100}}}

	out, err := execute(t, &App{Paths: paths}, "detail", "--path", "3", "--user", "7")
	require.NoError(t, err)
	assert.Equal(t, int64(3), paths.lastPath)
	assert.Equal(t, int64(7), paths.lastUser)
	assert.Contains(t, out, `"isCourse": true`)
}

func TestDetailCommandPropagatesErrors(t *testing.T) {
	paths := &fakePaths{err: errors.New("boom")}

	_, err := execute(t, &App{Paths: paths}, "detail", "--path", "3", "--user", "7")
	require.EqualError(t, err, "boom")
}

func TestExistsCommand(t *testing.T) {
	out, err := execute(t, &App{Paths: &fakePaths{exists: true}}, "exists", "--user", "4")
	require.NoError(t, err)

	var decoded map[string]bool
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.True(t, decoded["exists"])
}

func TestExportCommandWritesFile(t *testing.T) {
	paths := &fakePaths{payload: []byte("Name\nOnboarding\n")}
	target := filepath.Join(t.TempDir(), "paths.csv")

	out, err := execute(t, &App{Paths: paths}, "export", "--user", "7", "--format", "csv", "-o", target)
	require.NoError(t, err)
	assert.Equal(t, "csv", paths.lastFormat)
	assert.Contains(t, out, "wrote 16 bytes")

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, paths.payload, written)
}

func TestExportCommandWritesStdout(t *testing.T) {
	paths := &fakePaths{payload: []byte("Name\n")}

	out, err := execute(t, &App{Paths: paths}, "export", "--user", "7")
	require.NoError(t, err)
	assert.Equal(t, "Name\n", out)
}

func TestTokenCommandUppercasesRole(t *testing.T) {
	tokens := &fakeTokens{}

	out, err := execute(t, &App{Paths: &fakePaths{}, Tokens: tokens}, "token", "--user", "9", "--role", "manager")
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, tokens.subject.Role)
	assert.Equal(t, int64(9), tokens.subject.UserID)
	assert.Contains(t, out, `"access_token": "signed"`)
	assert.Contains(t, out, "2024-01-02T00:00:00Z")
}

func TestTokenCommandWithoutIssuer(t *testing.T) {
	_, err := execute(t, &App{Paths: &fakePaths{}}, "token", "--user", "9")
	require.Error(t, err)
}

func TestCacheFlushCommand(t *testing.T) {
	paths := &fakePaths{}

	_, err := execute(t, &App{Paths: paths}, "cache", "flush", "--user", "7")
	require.NoError(t, err)
	_, err = execute(t, &App{Paths: paths}, "cache", "flush")
	require.NoError(t, err)

	assert.Equal(t, []int64{7, 0}, paths.invalidated)
}
