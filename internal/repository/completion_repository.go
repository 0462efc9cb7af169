package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
)

// Module completion states that count as done.
const (
	completionComplete     = 1
	completionCompletePass = 2
)

// CompletionRepository answers completion and credit questions from the LMS
// completion tables and custom course fields.
type CompletionRepository struct {
	db             *sqlx.DB
	creditField    string
	catalogueField string

	courseQuery          string
	moduleQuery          string
	catalogueQuery       string
	creditQuery          string
	catalogueCourseQuery string
}

// CompletionRepositoryConfig names the custom fields holding credits and catalogue codes.
type CompletionRepositoryConfig struct {
	TablePrefix    string
	CreditField    string
	CatalogueField string
}

// NewCompletionRepository constructs the repository.
func NewCompletionRepository(db *sqlx.DB, cfg CompletionRepositoryConfig) *CompletionRepository {
	if cfg.CreditField == "" {
		cfg.CreditField = "credit"
	}
	if cfg.CatalogueField == "" {
		cfg.CatalogueField = "code"
	}
	courseDone := `SELECT 1 FROM {course_completions} cc WHERE cc.course = c.id AND cc.userid = $3 AND cc.timecompleted > 0`
	linkedCourses := `FROM {course} c
        INNER JOIN {customfield_data} cd ON cd.instanceid = c.id
        INNER JOIN {customfield_field} cf ON cf.id = cd.fieldid
        WHERE cf.shortname = $1 AND cd.value = $2 AND EXISTS (` + courseDone + `)`
	p := cfg.TablePrefix
	moduleDone := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM {course_modules_completion} WHERE coursemoduleid = $1 AND userid = $2 AND completionstate IN (%d, %d))`,
		completionComplete, completionCompletePass)
	credit := `SELECT d.intvalue FROM {customfield_data} d
        INNER JOIN {customfield_field} f ON f.id = d.fieldid
        WHERE f.shortname = $1 AND d.instanceid = $2 ORDER BY d.id ASC LIMIT 1`

	return &CompletionRepository{
		db:             db,
		creditField:    cfg.CreditField,
		catalogueField: cfg.CatalogueField,

		courseQuery:          withPrefix(p, `SELECT EXISTS (SELECT 1 FROM {course_completions} WHERE course = $1 AND userid = $2 AND timecompleted > 0)`),
		moduleQuery:          withPrefix(p, moduleDone),
		catalogueQuery:       withPrefix(p, `SELECT EXISTS (SELECT 1 `+linkedCourses+`)`),
		catalogueCourseQuery: withPrefix(p, `SELECT c.id `+linkedCourses+` ORDER BY c.id ASC LIMIT 1`),
		creditQuery:          withPrefix(p, credit),
	}
}

// IsCourseComplete reports whether the user has a completion record for the course.
func (r *CompletionRepository) IsCourseComplete(ctx context.Context, courseID, userID int64) (bool, error) {
	var done bool
	if err := r.db.GetContext(ctx, &done, r.courseQuery, courseID, userID); err != nil {
		return false, fmt.Errorf("check course completion: %w", err)
	}
	return done, nil
}

// IsModuleComplete reports whether the user completed (or passed) the course module.
func (r *CompletionRepository) IsModuleComplete(ctx context.Context, moduleID, userID int64) (bool, error) {
	var done bool
	if err := r.db.GetContext(ctx, &done, r.moduleQuery, moduleID, userID); err != nil {
		return false, fmt.Errorf("check module completion: %w", err)
	}
	return done, nil
}

// IsCatalogueComplete reports whether the user completed any course whose
// catalogue code field matches the catalogue item.
func (r *CompletionRepository) IsCatalogueComplete(ctx context.Context, catalogueID, userID int64) (bool, error) {
	var done bool
	if err := r.db.GetContext(ctx, &done, r.catalogueQuery, r.catalogueField, strconv.FormatInt(catalogueID, 10), userID); err != nil {
		return false, fmt.Errorf("check catalogue completion: %w", err)
	}
	return done, nil
}

// CreditFor returns the credit custom field of an entity, zero when unset.
func (r *CompletionRepository) CreditFor(ctx context.Context, entityID int64) (int, error) {
	var credit sql.NullInt64
	if err := r.db.GetContext(ctx, &credit, r.creditQuery, r.creditField, entityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("load credit: %w", err)
	}
	if !credit.Valid || credit.Int64 < 0 {
		return 0, nil
	}
	return int(credit.Int64), nil
}

// CatalogueCreditFor returns the credit of the first completed course linked to
// the catalogue item, zero when none is completed.
func (r *CompletionRepository) CatalogueCreditFor(ctx context.Context, catalogueID, userID int64) (int, error) {
	var courseID int64
	if err := r.db.GetContext(ctx, &courseID, r.catalogueCourseQuery, r.catalogueField, strconv.FormatInt(catalogueID, 10), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("find completed catalogue course: %w", err)
	}
	return r.CreditFor(ctx, courseID)
}
