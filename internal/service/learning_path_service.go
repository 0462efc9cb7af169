package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/learningpath-api/internal/models"
	appErrors "github.com/noah-isme/learningpath-api/pkg/errors"
	"github.com/noah-isme/learningpath-api/pkg/export"
)

type learningPathStore interface {
	FindByID(ctx context.Context, id int64) (*models.LearningPath, error)
	ListLines(ctx context.Context, pathID int64) ([]models.LearningPathLine, error)
	List(ctx context.Context, filter models.LearningPathFilter) ([]models.LearningPath, int, error)
}

type lineRecordEvaluator interface {
	Evaluate(ctx context.Context, line models.LearningPathLine, userID int64) (models.LineRecord, error)
}

type progressAggregator interface {
	ProgressOf(ctx context.Context, lines []models.LearningPathLine, userID int64) (models.PathProgress, error)
}

type pathVisibility interface {
	PathsVisibleTo(ctx context.Context, userID int64) ([]int64, error)
	HasAnyPathFor(ctx context.Context, userID int64) (bool, error)
}

// LearningPathServiceConfig tunes the service.
type LearningPathServiceConfig struct {
	CacheTTL       time.Duration
	Concurrency    int
	Location       *time.Location
	ExportsEnabled bool
}

// LearningPathServiceParams groups constructor dependencies.
type LearningPathServiceParams struct {
	Paths      learningPathStore
	Evaluator  lineRecordEvaluator
	Aggregator progressAggregator
	Catalog    pathVisibility
	Cache      *CacheService
	Logger     *zap.Logger
	Config     LearningPathServiceConfig
}

// LearningPathService exposes the learning path read operations.
type LearningPathService struct {
	paths      learningPathStore
	evaluator  lineRecordEvaluator
	aggregator progressAggregator
	catalog    pathVisibility
	cache      *CacheService
	logger     *zap.Logger
	cfg        LearningPathServiceConfig
}

// NewLearningPathService constructs a LearningPathService.
func NewLearningPathService(params LearningPathServiceParams) *LearningPathService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LearningPathService{
		paths:      params.Paths,
		evaluator:  params.Evaluator,
		aggregator: params.Aggregator,
		catalog:    params.Catalog,
		cache:      params.Cache,
		logger:     logger,
		cfg:        cfg,
	}
}

// ListPaths returns the published learning paths visible to the user with
// their progress. The boolean reports a cache hit.
func (s *LearningPathService) ListPaths(ctx context.Context, userID int64) ([]models.PathSummary, bool, error) {
	cacheKey := listCacheKey(userID)
	var cached []models.PathSummary
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, true, nil
	}

	// ids arrive deduplicated, so each path is loaded once.
	ids, err := s.catalog.PathsVisibleTo(ctx, userID)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to resolve learning paths")
	}

	summaries := make([]models.PathSummary, 0, len(ids))
	for _, id := range ids {
		path, err := s.paths.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				s.logger.Warn("assigned learning path missing", zap.Int64("path_id", id), zap.Int64("user_id", userID))
				continue
			}
			return nil, false, appErrors.Internal(err, "failed to load learning path")
		}
		lines, err := s.paths.ListLines(ctx, id)
		if err != nil {
			return nil, false, appErrors.Internal(err, "failed to load learning path lines")
		}
		progress, err := s.aggregator.ProgressOf(ctx, lines, userID)
		if err != nil {
			return nil, false, appErrors.Internal(err, "failed to compute learning path progress")
		}
		summaries = append(summaries, models.PathSummary{
			ID:            path.ID,
			Name:          path.Name,
			StartDate:     formatUnixDate(path.StartDate, s.cfg.Location),
			EndDate:       formatUnixDate(path.EndDate, s.cfg.Location),
			Progress:      progress.Percent,
			ProgressClass: progress.Bucket.ProgressClass(),
			Credit:        path.CreditValue(),
		})
	}

	s.cache.Set(ctx, cacheKey, summaries, s.cfg.CacheTTL)
	return summaries, false, nil
}

// InvalidateCache drops cached lists for one user, or all users when userID is zero.
func (s *LearningPathService) InvalidateCache(ctx context.Context, userID int64) error {
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		return appErrors.Internal(err, "failed to invalidate learning path cache")
	}
	return nil
}

// GetPathDetail evaluates every line of a path for the user, in line order.
// An unknown path is reported as not found.
func (s *LearningPathService) GetPathDetail(ctx context.Context, pathID, userID int64) ([]models.LineRecord, error) {
	if _, err := s.paths.FindByID(ctx, pathID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "learning path not found")
		}
		return nil, appErrors.Internal(err, "failed to load learning path")
	}

	lines, err := s.paths.ListLines(ctx, pathID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load learning path lines")
	}

	records := make([]models.LineRecord, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			record, err := s.evaluator.Evaluate(gctx, line, userID)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, appErrors.Internal(err, "failed to evaluate learning path lines")
	}
	return records, nil
}

// HasAnyPath reports whether the user holds any learning path assignment.
func (s *LearningPathService) HasAnyPath(ctx context.Context, userID int64) (bool, error) {
	exists, err := s.catalog.HasAnyPathFor(ctx, userID)
	if err != nil {
		return false, appErrors.Internal(err, "failed to check learning path assignments")
	}
	return exists, nil
}

// Index lists every learning path for administrators.
func (s *LearningPathService) Index(ctx context.Context, filter models.LearningPathFilter) ([]models.PathIndexRow, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 10
	}

	paths, total, err := s.paths.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list learning paths")
	}

	rows := make([]models.PathIndexRow, 0, len(paths))
	for _, path := range paths {
		rows = append(rows, models.PathIndexRow{
			ID:        path.ID,
			Name:      path.Name,
			StartDate: formatUnixDate(path.StartDate, s.cfg.Location),
			EndDate:   formatUnixDate(path.EndDate, s.cfg.Location),
			Published: path.Published,
			Credit:    path.CreditValue(),
		})
	}
	return rows, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// ExportPaths renders the user's learning path list. It returns the encoded
// document and its content type.
func (s *LearningPathService) ExportPaths(ctx context.Context, userID int64, format string) ([]byte, string, error) {
	if !s.cfg.ExportsEnabled {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "exports are disabled")
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, "", appErrors.Validation(err, "format must be csv or pdf")
	}

	summaries, _, err := s.ListPaths(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	dataset := export.Dataset{
		Title:   "Learning paths",
		Headers: []string{"Name", "Start date", "End date", "Progress", "Credit"},
	}
	for _, summary := range summaries {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Name":       summary.Name,
			"Start date": summary.StartDate,
			"End date":   summary.EndDate,
			"Progress":   strconv.Itoa(summary.Progress) + "%",
			"Credit":     strconv.Itoa(summary.Credit),
		})
	}

	payload, err := export.Render(f, dataset)
	if err != nil {
		return nil, "", appErrors.Internal(err, "failed to render export")
	}
	return payload, f.ContentType(), nil
}
