package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathCatalogMergesCohortThenDirect(t *testing.T) {
	cohorts := &fakeAssignments{ids: []int64{5, 2}}
	direct := &fakeAssignments{ids: []int64{2, 9, 5, 1}}
	catalog := NewPathCatalog(cohorts, direct, nil, false)

	ids, err := catalog.PathsVisibleTo(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 2, 9, 1}, ids)
}

func TestPathCatalogNoAssignments(t *testing.T) {
	catalog := NewPathCatalog(&fakeAssignments{}, &fakeAssignments{}, nil, false)

	ids, err := catalog.PathsVisibleTo(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, ids)

	exists, err := catalog.HasAnyPathFor(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPathCatalogPropagatesFailure(t *testing.T) {
	catalog := NewPathCatalog(&fakeAssignments{}, &fakeAssignments{err: errors.New("db down")}, nil, false)

	_, err := catalog.PathsVisibleTo(context.Background(), 7)
	assert.Error(t, err)

	_, err = catalog.HasAnyPathFor(context.Background(), 7)
	assert.Error(t, err)
}

func TestPathCatalogHasAnyPathFor(t *testing.T) {
	cohorts := &fakeAssignments{count: 1}
	direct := &fakeAssignments{}
	catalog := NewPathCatalog(cohorts, direct, nil, false)

	exists, err := catalog.HasAnyPathFor(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []bool{false}, cohorts.published)
	assert.Empty(t, direct.published)

	strictCohorts := &fakeAssignments{}
	strictDirect := &fakeAssignments{count: 2}
	strict := NewPathCatalog(strictCohorts, strictDirect, nil, true)
	exists, err = strict.HasAnyPathFor(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []bool{true}, strictCohorts.published)
	assert.Equal(t, []bool{true}, strictDirect.published)
}
