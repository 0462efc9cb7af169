package models

import "database/sql"

// LearningPath is a curated sequence of lines stored in the local_learningpath
// table. Unset dates are 0.
type LearningPath struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	StartDate int64         `json:"startdate"`
	EndDate   int64         `json:"enddate"`
	Published bool          `json:"published"`
	Credit    sql.NullInt64 `json:"-"`
}

// CreditValue returns the configured credit or zero when unset.
func (p LearningPath) CreditValue() int {
	if !p.Credit.Valid {
		return 0
	}
	return int(p.Credit.Int64)
}

// LearningPathLine is one raw row of local_learningpath_lines. Exactly one of the
// reference columns is expected to be set; use ResolveLineRef to read it.
type LearningPathLine struct {
	ID          int64
	PathID      int64
	CourseID    sql.NullInt64
	ModuleID    sql.NullInt64
	CatalogueID sql.NullInt64
	Required    bool
}

// LearningPathFilter drives the admin index listing.
type LearningPathFilter struct {
	Search    string
	Published *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// PathIndexRow is one row of the admin learning path index.
type PathIndexRow struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startdate"`
	EndDate   string `json:"enddate"`
	Published bool   `json:"published"`
	Credit    int    `json:"credit"`
}
