package service

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/learningpath-api/internal/models"
	"github.com/noah-isme/learningpath-api/internal/repository"
)

var (
	storePathColumns = []string{"id", "name", "startdate", "enddate", "published", "credit"}
	storeLineColumns = []string{"id", "lpt_id", "course_id", "module_id", "catalogue_id", "required"}
)

func newRepositoryBackedService(t *testing.T) (*LearningPathService, *evaluatorFixture, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	f := newEvaluatorFixture()
	metrics := NewMetricsService()
	svc := NewLearningPathService(LearningPathServiceParams{
		Paths:      repository.NewLearningPathRepository(sqlx.NewDb(db, "sqlmock"), "mdl_"),
		Evaluator:  f.evaluator,
		Aggregator: NewPathAggregator(f.evaluator, metrics, 2),
		Catalog:    NewPathCatalog(&fakeAssignments{ids: []int64{7}}, &fakeAssignments{}, metrics, false),
		Config:     LearningPathServiceConfig{Concurrency: 2},
	})
	return svc, f, mock, func() { db.Close() }
}

func expectPathRow(mock sqlmock.Sqlmock, id int64, start, end interface{}) {
	mock.ExpectQuery(regexp.QuoteMeta("FROM mdl_local_learningpath WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(storePathColumns).AddRow(id, "Open ended", start, end, nil, nil))
}

func expectLineRows(mock sqlmock.Sqlmock, pathID int64) {
	mock.ExpectQuery(regexp.QuoteMeta("FROM mdl_local_learningpath_lines WHERE lpt_id = $1")).
		WithArgs(pathID).
		WillReturnRows(sqlmock.NewRows(storeLineColumns).AddRow(1, pathID, 10, nil, nil, nil))
}

func TestListPathsWithNullDatesFromStore(t *testing.T) {
	svc, f, mock, cleanup := newRepositoryBackedService(t)
	defer cleanup()
	f.completion.courses[10] = true

	expectPathRow(mock, 7, nil, nil)
	expectLineRows(mock, 7)

	summaries, hit, err := svc.ListPaths(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, hit)
	require.Len(t, summaries, 1)
	assert.Equal(t, models.PathSummary{
		ID:            7,
		Name:          "Open ended",
		StartDate:     dateUnavailable,
		EndDate:       dateUnavailable,
		Progress:      100,
		ProgressClass: "bg-success",
	}, summaries[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPathsWithZeroDatesFromStore(t *testing.T) {
	svc, _, mock, cleanup := newRepositoryBackedService(t)
	defer cleanup()

	expectPathRow(mock, 7, 0, 0)
	expectLineRows(mock, 7)

	summaries, _, err := svc.ListPaths(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "N/A", summaries[0].StartDate)
	assert.Equal(t, "N/A", summaries[0].EndDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPathDetailWithNullColumnsFromStore(t *testing.T) {
	svc, _, mock, cleanup := newRepositoryBackedService(t)
	defer cleanup()

	expectPathRow(mock, 7, nil, nil)
	expectLineRows(mock, 7)

	records, err := svc.GetPathDetail(context.Background(), 7, 42)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsCourse)
	assert.False(t, records[0].IsRequired)
	assert.Equal(t, "Go basics", records[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIndexWithNullDatesFromStore(t *testing.T) {
	svc, _, mock, cleanup := newRepositoryBackedService(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM mdl_local_learningpath ORDER BY startdate ASC, id ASC LIMIT 10 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows(storePathColumns).AddRow(7, "Open ended", nil, 0, 1, nil))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM mdl_local_learningpath")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows, pagination, err := svc.Index(context.Background(), models.LearningPathFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "N/A", rows[0].StartDate)
	assert.Equal(t, "N/A", rows[0].EndDate)
	assert.True(t, rows[0].Published)
	assert.Equal(t, 1, pagination.TotalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
