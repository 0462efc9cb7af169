package repository

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCohortAssignmentRepositoryPathsForUser(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCohortAssignmentRepository(db, "mdl_")

	mock.ExpectQuery(`SELECT DISTINCT ll.id FROM mdl_local_learningpath ll INNER JOIN mdl_local_learningpath_cohorts llc .* INNER JOIN mdl_cohort_members cm .* WHERE cm.userid = \$1 AND ll.published = 1 ORDER BY ll.id ASC`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(3))

	ids, err := repo.PathsForUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserAssignmentRepositoryPathsForUserError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserAssignmentRepository(db, "mdl_")

	mock.ExpectQuery(`INNER JOIN mdl_local_learningpath_users llu`).
		WithArgs(int64(42)).
		WillReturnError(errors.New("boom"))

	_, err := repo.PathsForUser(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list user learning paths")
}

func TestAssignmentRepositoryCountForUser(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserAssignmentRepository(db, "mdl_")

	mock.ExpectQuery(`SELECT COUNT\(ll.id\) .* WHERE llu.u_id = \$1 AND u.deleted <> 1$`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`AND u.deleted <> 1 AND ll.published = 1$`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	count, err := repo.CountForUser(context.Background(), 5, false)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = repo.CountForUser(context.Background(), 5, true)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
