package service

import (
	"context"
	"fmt"
	"time"
)

// PathAssignments resolves learning paths reachable through one assignment route.
type PathAssignments interface {
	PathsForUser(ctx context.Context, userID int64) ([]int64, error)
	CountForUser(ctx context.Context, userID int64, publishedOnly bool) (int, error)
}

// PathCatalog decides which learning paths a user can see.
type PathCatalog struct {
	cohorts          PathAssignments
	direct           PathAssignments
	metrics          *MetricsService
	requirePublished bool
}

// NewPathCatalog constructs a PathCatalog. When requirePublished is false the
// existence check counts unpublished assignments too, while listing never does.
func NewPathCatalog(cohorts, direct PathAssignments, metrics *MetricsService, requirePublished bool) *PathCatalog {
	return &PathCatalog{cohorts: cohorts, direct: direct, metrics: metrics, requirePublished: requirePublished}
}

// PathsVisibleTo returns published path ids reachable through cohorts, then
// through direct assignment, without duplicates.
func (c *PathCatalog) PathsVisibleTo(ctx context.Context, userID int64) ([]int64, error) {
	start := time.Now()
	fromCohorts, err := c.cohorts.PathsForUser(ctx, userID)
	c.metrics.ObserveDBQuery("paths_by_cohort", time.Since(start))
	if err != nil {
		return nil, err
	}

	start = time.Now()
	fromUser, err := c.direct.PathsForUser(ctx, userID)
	c.metrics.ObserveDBQuery("paths_by_user", time.Since(start))
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(fromCohorts)+len(fromUser))
	ids := make([]int64, 0, len(fromCohorts)+len(fromUser))
	for _, group := range [][]int64{fromCohorts, fromUser} {
		for _, id := range group {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// HasAnyPathFor reports whether a live user account holds any assignment.
func (c *PathCatalog) HasAnyPathFor(ctx context.Context, userID int64) (bool, error) {
	start := time.Now()
	defer func() { c.metrics.ObserveDBQuery("paths_exist", time.Since(start)) }()

	cohortCount, err := c.cohorts.CountForUser(ctx, userID, c.requirePublished)
	if err != nil {
		return false, fmt.Errorf("count cohort assignments: %w", err)
	}
	if cohortCount > 0 {
		return true, nil
	}
	directCount, err := c.direct.CountForUser(ctx, userID, c.requirePublished)
	if err != nil {
		return false, fmt.Errorf("count direct assignments: %w", err)
	}
	return directCount > 0, nil
}
