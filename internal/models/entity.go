package models

// CourseInfo is the subset of the course table the block displays.
type CourseInfo struct {
	ID        int64  `db:"id"`
	FullName  string `db:"fullname"`
	StartDate int64  `db:"startdate"`
	EndDate   int64  `db:"enddate"`
}

// ModuleInfo describes a course module together with its activity instance.
type ModuleInfo struct {
	ID       int64  `db:"id"`
	CourseID int64  `db:"course"`
	Instance int64  `db:"instance"`
	ModName  string `db:"modname"`
	Name     string `db:"name"`
	OpensAt  int64  `db:"opens_at"`
	ClosesAt int64  `db:"closes_at"`
}

// CatalogueItemInfo is an entry of the local catalogue.
type CatalogueItemInfo struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}
