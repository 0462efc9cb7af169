package service

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/learningpath-api/internal/models"
)

type completionChecker interface {
	Resolve(line models.LearningPathLine) models.LineRef
	IsComplete(ctx context.Context, ref models.LineRef, userID int64) (bool, error)
}

// PathAggregator folds per-line completion into path progress.
type PathAggregator struct {
	lines       completionChecker
	metrics     *MetricsService
	concurrency int
}

// NewPathAggregator constructs a PathAggregator evaluating at most concurrency lines at once.
func NewPathAggregator(lines completionChecker, metrics *MetricsService, concurrency int) *PathAggregator {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &PathAggregator{lines: lines, metrics: metrics, concurrency: concurrency}
}

// ProgressOf computes the progress of userID over lines. Every line counts
// toward the total, including unresolvable ones. The first upstream failure
// cancels the remaining checks and is returned.
func (a *PathAggregator) ProgressOf(ctx context.Context, lines []models.LearningPathLine, userID int64) (models.PathProgress, error) {
	var completed int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for _, line := range lines {
		ref := a.lines.Resolve(line)
		if !ref.Resolvable() {
			continue
		}
		g.Go(func() error {
			done, err := a.lines.IsComplete(gctx, ref, userID)
			if err != nil {
				return err
			}
			if done {
				atomic.AddInt64(&completed, 1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.PathProgress{}, err
	}

	progress := NewPathProgress(int(completed), len(lines))
	a.metrics.RecordProgressBucket(progress.Bucket)
	return progress, nil
}
