package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/learningpath-api/internal/models"
)

// LearningPathRepository reads learning paths and their lines.
type LearningPathRepository struct {
	db     *sqlx.DB
	prefix string
}

// Dates, published and required are nullable in the LMS schema. An unset date
// reads as 0 and an unset flag as false.
type pathRow struct {
	ID        int64         `db:"id"`
	Name      string        `db:"name"`
	StartDate sql.NullInt64 `db:"startdate"`
	EndDate   sql.NullInt64 `db:"enddate"`
	Published sql.NullBool  `db:"published"`
	Credit    sql.NullInt64 `db:"credit"`
}

func (r pathRow) toModel() models.LearningPath {
	return models.LearningPath{
		ID:        r.ID,
		Name:      r.Name,
		StartDate: r.StartDate.Int64,
		EndDate:   r.EndDate.Int64,
		Published: r.Published.Bool,
		Credit:    r.Credit,
	}
}

type lineRow struct {
	ID          int64         `db:"id"`
	PathID      int64         `db:"lpt_id"`
	CourseID    sql.NullInt64 `db:"course_id"`
	ModuleID    sql.NullInt64 `db:"module_id"`
	CatalogueID sql.NullInt64 `db:"catalogue_id"`
	Required    sql.NullBool  `db:"required"`
}

func (r lineRow) toModel() models.LearningPathLine {
	return models.LearningPathLine{
		ID:          r.ID,
		PathID:      r.PathID,
		CourseID:    r.CourseID,
		ModuleID:    r.ModuleID,
		CatalogueID: r.CatalogueID,
		Required:    r.Required.Bool,
	}
}

// NewLearningPathRepository constructs the repository for the given table prefix.
func NewLearningPathRepository(db *sqlx.DB, prefix string) *LearningPathRepository {
	return &LearningPathRepository{db: db, prefix: prefix}
}

// FindByID returns a learning path by id. Missing rows surface as sql.ErrNoRows.
func (r *LearningPathRepository) FindByID(ctx context.Context, id int64) (*models.LearningPath, error) {
	query := withPrefix(r.prefix, `SELECT id, name, startdate, enddate, published, credit FROM {local_learningpath} WHERE id = $1`)
	var row pathRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	path := row.toModel()
	return &path, nil
}

// ListLines returns every line of a path ordered by id.
func (r *LearningPathRepository) ListLines(ctx context.Context, pathID int64) ([]models.LearningPathLine, error) {
	query := withPrefix(r.prefix, `SELECT id, lpt_id, course_id, module_id, catalogue_id, required FROM {local_learningpath_lines} WHERE lpt_id = $1 ORDER BY id ASC`)
	var rows []lineRow
	if err := r.db.SelectContext(ctx, &rows, query, pathID); err != nil {
		return nil, fmt.Errorf("list learning path lines: %w", err)
	}
	lines := make([]models.LearningPathLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, row.toModel())
	}
	return lines, nil
}

// FindLine returns a single line by id. Missing rows surface as sql.ErrNoRows.
func (r *LearningPathRepository) FindLine(ctx context.Context, lineID int64) (*models.LearningPathLine, error) {
	query := withPrefix(r.prefix, `SELECT id, lpt_id, course_id, module_id, catalogue_id, required FROM {local_learningpath_lines} WHERE id = $1`)
	var row lineRow
	if err := r.db.GetContext(ctx, &row, query, lineID); err != nil {
		return nil, err
	}
	line := row.toModel()
	return &line, nil
}

// List returns learning paths for the admin index.
func (r *LearningPathRepository) List(ctx context.Context, filter models.LearningPathFilter) ([]models.LearningPath, int, error) {
	base := withPrefix(r.prefix, `FROM {local_learningpath}`)
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Published != nil {
		published := 0
		if *filter.Published {
			published = 1
		}
		conditions = append(conditions, fmt.Sprintf("published = $%d", len(args)+1))
		args = append(args, published)
	}

	clause := ""
	if len(conditions) > 0 {
		clause = " WHERE " + strings.Join(conditions, " AND ")
	}

	allowedSorts := map[string]string{
		"id":        "id",
		"name":      "name",
		"startdate": "startdate",
		"enddate":   "enddate",
		"credit":    "credit",
	}
	orderBy := allowedSorts[filter.SortBy]
	if orderBy == "" {
		orderBy = "startdate"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 10
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, name, startdate, enddate, published, credit %s ORDER BY %s %s, id ASC LIMIT %d OFFSET %d`, base+clause, orderBy, order, size, offset)
	var rows []pathRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list learning paths: %w", err)
	}
	paths := make([]models.LearningPath, 0, len(rows))
	for _, row := range rows {
		paths = append(paths, row.toModel())
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base+clause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count learning paths: %w", err)
	}
	return paths, total, nil
}
