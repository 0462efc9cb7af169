package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// AssignmentRepository resolves learning paths reachable by a user through one
// assignment route: cohort membership or direct assignment.
type AssignmentRepository struct {
	db         *sqlx.DB
	route      string
	pathsQuery string
	countQuery string
}

// NewCohortAssignmentRepository resolves paths assigned to cohorts the user belongs to.
func NewCohortAssignmentRepository(db *sqlx.DB, prefix string) *AssignmentRepository {
	joins := `FROM {local_learningpath} ll
        INNER JOIN {local_learningpath_cohorts} llc ON llc.lpt_id = ll.id
        INNER JOIN {cohort_members} cm ON cm.cohortid = llc.cohort_id
        INNER JOIN {user} u ON u.id = cm.userid
        WHERE cm.userid = $1`
	return &AssignmentRepository{
		db:         db,
		route:      "cohort",
		pathsQuery: withPrefix(prefix, `SELECT DISTINCT ll.id `+joins+` AND ll.published = 1 ORDER BY ll.id ASC`),
		countQuery: withPrefix(prefix, `SELECT COUNT(ll.id) `+joins+` AND u.deleted <> 1`),
	}
}

// NewUserAssignmentRepository resolves paths assigned to the user directly.
func NewUserAssignmentRepository(db *sqlx.DB, prefix string) *AssignmentRepository {
	joins := `FROM {local_learningpath} ll
        INNER JOIN {local_learningpath_users} llu ON llu.lpt_id = ll.id
        INNER JOIN {user} u ON u.id = llu.u_id
        WHERE llu.u_id = $1`
	return &AssignmentRepository{
		db:         db,
		route:      "user",
		pathsQuery: withPrefix(prefix, `SELECT DISTINCT ll.id `+joins+` AND ll.published = 1 ORDER BY ll.id ASC`),
		countQuery: withPrefix(prefix, `SELECT COUNT(ll.id) `+joins+` AND u.deleted <> 1`),
	}
}

// PathsForUser returns published path ids reachable through this route.
func (r *AssignmentRepository) PathsForUser(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, r.pathsQuery, userID); err != nil {
		return nil, fmt.Errorf("list %s learning paths: %w", r.route, err)
	}
	return ids, nil
}

// CountForUser counts assignments of a live (not deleted) user through this
// route. The published flag is only applied when publishedOnly is set.
func (r *AssignmentRepository) CountForUser(ctx context.Context, userID int64, publishedOnly bool) (int, error) {
	query := r.countQuery
	if publishedOnly {
		query += " AND ll.published = 1"
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count %s learning paths: %w", r.route, err)
	}
	return count, nil
}
