package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/learningpath-api/internal/models"
)

const (
	dateUnavailable   = "N/A"
	displayDateLayout = "01-02-2006"
)

// CompletionOracle answers whether a user completed an LMS entity.
type CompletionOracle interface {
	IsCourseComplete(ctx context.Context, courseID, userID int64) (bool, error)
	IsModuleComplete(ctx context.Context, moduleID, userID int64) (bool, error)
	IsCatalogueComplete(ctx context.Context, catalogueID, userID int64) (bool, error)
}

// CreditResolver reads credit values attached to LMS entities.
type CreditResolver interface {
	CreditFor(ctx context.Context, entityID int64) (int, error)
	CatalogueCreditFor(ctx context.Context, catalogueID, userID int64) (int, error)
}

// EntityLookup loads display metadata. Missing entities surface as sql.ErrNoRows.
type EntityLookup interface {
	Course(ctx context.Context, courseID int64) (*models.CourseInfo, error)
	Module(ctx context.Context, moduleID int64) (*models.ModuleInfo, error)
	CatalogueItem(ctx context.Context, catalogueID int64) (*models.CatalogueItemInfo, error)
}

type lineFinder interface {
	FindLine(ctx context.Context, lineID int64) (*models.LearningPathLine, error)
}

// LineEvaluatorParams groups constructor dependencies.
type LineEvaluatorParams struct {
	Completion CompletionOracle
	Credits    CreditResolver
	Entities   EntityLookup
	Lines      lineFinder
	Metrics    *MetricsService
	Logger     *zap.Logger
	BaseURL    string
	Location   *time.Location
}

// LineEvaluator turns a learning path line into its display record for one user.
type LineEvaluator struct {
	completion CompletionOracle
	credits    CreditResolver
	entities   EntityLookup
	lines      lineFinder
	metrics    *MetricsService
	logger     *zap.Logger
	baseURL    string
	location   *time.Location
}

// NewLineEvaluator constructs a LineEvaluator.
func NewLineEvaluator(params LineEvaluatorParams) *LineEvaluator {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	location := params.Location
	if location == nil {
		location = time.UTC
	}
	return &LineEvaluator{
		completion: params.Completion,
		credits:    params.Credits,
		entities:   params.Entities,
		lines:      params.Lines,
		metrics:    params.Metrics,
		logger:     logger,
		baseURL:    params.BaseURL,
		location:   location,
	}
}

// Resolve reads the reference of a raw line and reports anomalies.
func (e *LineEvaluator) Resolve(line models.LearningPathLine) models.LineRef {
	ref := models.ResolveLineRef(line)
	if ref.Anomaly != models.LineAnomalyNone {
		e.metrics.RecordLineAnomaly(ref.Anomaly)
		e.logger.Warn("learning path line anomaly",
			zap.Int64("line_id", line.ID),
			zap.Int64("path_id", line.PathID),
			zap.String("reason", string(ref.Anomaly)),
			zap.String("kind", string(ref.Kind)),
		)
	}
	return ref
}

// IsComplete asks the completion oracle about the referenced entity. Unresolvable
// references are never complete.
func (e *LineEvaluator) IsComplete(ctx context.Context, ref models.LineRef, userID int64) (bool, error) {
	if !ref.Resolvable() {
		return false, nil
	}

	start := time.Now()
	var (
		done bool
		err  error
	)
	switch ref.Kind {
	case models.LineKindCourse:
		done, err = e.completion.IsCourseComplete(ctx, ref.EntityID, userID)
	case models.LineKindModule:
		done, err = e.completion.IsModuleComplete(ctx, ref.EntityID, userID)
	case models.LineKindCatalogue:
		done, err = e.completion.IsCatalogueComplete(ctx, ref.EntityID, userID)
	}
	e.metrics.ObserveDBQuery("completion_"+string(ref.Kind), time.Since(start))
	if err != nil {
		return false, fmt.Errorf("%s %d completion: %w", ref.Kind, ref.EntityID, err)
	}
	return done, nil
}

// EvaluateByID loads a line and evaluates it. An unknown line yields an empty record.
func (e *LineEvaluator) EvaluateByID(ctx context.Context, lineID, userID int64) (models.LineRecord, error) {
	line, err := e.lines.FindLine(ctx, lineID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LineRecord{}, nil
		}
		return models.LineRecord{}, fmt.Errorf("load line %d: %w", lineID, err)
	}
	return e.Evaluate(ctx, *line, userID)
}

// Evaluate builds the display record of a line. A deleted entity leaves the
// name and url empty, dates N/A and progress at zero.
func (e *LineEvaluator) Evaluate(ctx context.Context, line models.LearningPathLine, userID int64) (models.LineRecord, error) {
	ref := e.Resolve(line)
	record := models.LineRecord{
		ID:          line.ID,
		StartDate:   dateUnavailable,
		EndDate:     dateUnavailable,
		IsRequired:  line.Required,
		IsCourse:    ref.Kind == models.LineKindCourse,
		IsModule:    ref.Kind == models.LineKindModule,
		IsCatalogue: ref.Kind == models.LineKindCatalogue,
	}
	if line.CatalogueID.Valid {
		record.CatalogueID = line.CatalogueID.Int64
	}

	found, err := e.describe(ctx, ref, &record)
	if err != nil {
		return models.LineRecord{}, err
	}
	if found {
		done, err := e.IsComplete(ctx, ref, userID)
		if err != nil {
			return models.LineRecord{}, err
		}
		if done {
			credit, err := e.creditFor(ctx, ref, userID)
			if err != nil {
				return models.LineRecord{}, err
			}
			record.Progress = 100
			record.Credit = credit
		}
	}

	record.ProgressClass = BucketFor(record.Progress).ProgressClass()
	return record, nil
}

// describe fills name, url and dates. It reports false when the entity is gone.
func (e *LineEvaluator) describe(ctx context.Context, ref models.LineRef, record *models.LineRecord) (bool, error) {
	if !ref.Resolvable() {
		return false, nil
	}

	start := time.Now()
	defer func() { e.metrics.ObserveDBQuery("entity_"+string(ref.Kind), time.Since(start)) }()

	var err error
	switch ref.Kind {
	case models.LineKindCourse:
		var course *models.CourseInfo
		if course, err = e.entities.Course(ctx, ref.EntityID); err == nil {
			record.Name = course.FullName
			record.URL = fmt.Sprintf("%s/course/view.php?id=%d", e.baseURL, course.ID)
			record.StartDate = e.formatDate(course.StartDate)
			record.EndDate = e.formatDate(course.EndDate)
		}
	case models.LineKindModule:
		var module *models.ModuleInfo
		if module, err = e.entities.Module(ctx, ref.EntityID); err == nil {
			record.Name = module.Name
			record.URL = fmt.Sprintf("%s/mod/%s/view.php?id=%d", e.baseURL, module.ModName, module.ID)
			record.StartDate = e.formatDate(module.OpensAt)
			record.EndDate = e.formatDate(module.ClosesAt)
		}
	case models.LineKindCatalogue:
		var item *models.CatalogueItemInfo
		if item, err = e.entities.CatalogueItem(ctx, ref.EntityID); err == nil {
			record.Name = item.Name
			record.URL = fmt.Sprintf("%s/local/catalogue/detail.php?id=%d", e.baseURL, item.ID)
		}
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			e.logger.Debug("learning path line entity missing",
				zap.Int64("line_id", record.ID),
				zap.String("kind", string(ref.Kind)),
				zap.Int64("entity_id", ref.EntityID),
			)
			return false, nil
		}
		return false, fmt.Errorf("load %s %d: %w", ref.Kind, ref.EntityID, err)
	}
	return true, nil
}

func (e *LineEvaluator) creditFor(ctx context.Context, ref models.LineRef, userID int64) (int, error) {
	start := time.Now()
	defer func() { e.metrics.ObserveDBQuery("credit_"+string(ref.Kind), time.Since(start)) }()

	var (
		credit int
		err    error
	)
	if ref.Kind == models.LineKindCatalogue {
		credit, err = e.credits.CatalogueCreditFor(ctx, ref.EntityID, userID)
	} else {
		credit, err = e.credits.CreditFor(ctx, ref.EntityID)
	}
	if err != nil {
		return 0, fmt.Errorf("%s %d credit: %w", ref.Kind, ref.EntityID, err)
	}
	if credit < 0 {
		credit = 0
	}
	return credit, nil
}

func (e *LineEvaluator) formatDate(ts int64) string {
	return formatUnixDate(ts, e.location)
}

// formatUnixDate renders an LMS timestamp as MM-DD-YYYY, or N/A when unset.
func formatUnixDate(ts int64, location *time.Location) string {
	if ts <= 0 {
		return dateUnavailable
	}
	return time.Unix(ts, 0).In(location).Format(displayDateLayout)
}
