package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/learningpath-api/internal/models"
)

var modNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// activityDateColumns maps activity modules that carry an availability window
// to their open and close columns. Other activities report no dates.
var activityDateColumns = map[string][2]string{
	"quiz":   {"timeopen", "timeclose"},
	"assign": {"allowsubmissionsfromdate", "duedate"},
}

// EntityRepository loads the courses, course modules and catalogue items that
// learning path lines point at.
type EntityRepository struct {
	db     *sqlx.DB
	prefix string
}

// NewEntityRepository constructs the repository for the given table prefix.
func NewEntityRepository(db *sqlx.DB, prefix string) *EntityRepository {
	return &EntityRepository{db: db, prefix: prefix}
}

// Course returns a course by id. Missing rows surface as sql.ErrNoRows.
func (r *EntityRepository) Course(ctx context.Context, courseID int64) (*models.CourseInfo, error) {
	query := withPrefix(r.prefix, `SELECT id, fullname, startdate, enddate FROM {course} WHERE id = $1`)
	var course models.CourseInfo
	if err := r.db.GetContext(ctx, &course, query, courseID); err != nil {
		return nil, err
	}
	return &course, nil
}

// Module returns a course module joined with its activity instance. Missing
// modules and missing instances both surface as sql.ErrNoRows.
func (r *EntityRepository) Module(ctx context.Context, moduleID int64) (*models.ModuleInfo, error) {
	query := withPrefix(r.prefix, `SELECT cm.id, cm.course, cm.instance, m.name AS modname
        FROM {course_modules} cm
        INNER JOIN {modules} m ON m.id = cm.module
        WHERE cm.id = $1`)

	var module models.ModuleInfo
	if err := r.db.GetContext(ctx, &module, query, moduleID); err != nil {
		return nil, err
	}
	if !modNamePattern.MatchString(module.ModName) {
		return nil, fmt.Errorf("invalid module name %q", module.ModName)
	}

	opens, closes := "0", "0"
	if columns, ok := activityDateColumns[module.ModName]; ok {
		opens = fmt.Sprintf("COALESCE(%s, 0)", columns[0])
		closes = fmt.Sprintf("COALESCE(%s, 0)", columns[1])
	}
	instanceQuery := fmt.Sprintf(`SELECT name, %s AS opens_at, %s AS closes_at FROM %s%s WHERE id = $1`,
		opens, closes, r.prefix, module.ModName)

	var instance struct {
		Name     string `db:"name"`
		OpensAt  int64  `db:"opens_at"`
		ClosesAt int64  `db:"closes_at"`
	}
	if err := r.db.GetContext(ctx, &instance, instanceQuery, module.Instance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("load %s instance: %w", module.ModName, err)
	}

	module.Name = instance.Name
	module.OpensAt = instance.OpensAt
	module.ClosesAt = instance.ClosesAt
	return &module, nil
}

// CatalogueItem returns a catalogue entry by id. Missing rows surface as sql.ErrNoRows.
func (r *EntityRepository) CatalogueItem(ctx context.Context, catalogueID int64) (*models.CatalogueItemInfo, error) {
	query := withPrefix(r.prefix, `SELECT id, name FROM {local_catalogue_courses} WHERE id = $1`)
	var item models.CatalogueItemInfo
	if err := r.db.GetContext(ctx, &item, query, catalogueID); err != nil {
		return nil, err
	}
	return &item, nil
}
