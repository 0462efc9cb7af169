package models

// StatusBucket is the categorical progress band shown next to a percentage.
type StatusBucket string

const (
	BucketLow    StatusBucket = "low"
	BucketMedium StatusBucket = "medium"
	BucketHigh   StatusBucket = "high"
)

// ProgressClass maps the bucket to the CSS class used by the block templates.
func (b StatusBucket) ProgressClass() string {
	switch b {
	case BucketHigh:
		return "bg-success"
	case BucketMedium:
		return "bg-warning"
	default:
		return "bg-danger"
	}
}

// PathProgress is the aggregate completion of a learning path for one user.
type PathProgress struct {
	Percent   int          `json:"percent"`
	Bucket    StatusBucket `json:"bucket"`
	Completed int          `json:"completed"`
	Total     int          `json:"total"`
}

// PathSummary is one row of the learning path list.
type PathSummary struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	StartDate     string `json:"startdate"`
	EndDate       string `json:"enddate"`
	Progress      int    `json:"progress"`
	ProgressClass string `json:"progressClass"`
	Credit        int    `json:"credit"`
}

// LineRecord is one row of the learning path drill-down.
type LineRecord struct {
	ID            int64  `json:"id"`
	URL           string `json:"url"`
	Name          string `json:"name"`
	StartDate     string `json:"startdate"`
	EndDate       string `json:"enddate"`
	Progress      int    `json:"progress"`
	ProgressClass string `json:"progressClass"`
	IsRequired    bool   `json:"isRequired"`
	IsCourse      bool   `json:"isCourse"`
	IsModule      bool   `json:"isModule"`
	IsCatalogue   bool   `json:"isCatalogue"`
	CatalogueID   int64  `json:"catalogueId"`
	Credit        int    `json:"credit"`
}
