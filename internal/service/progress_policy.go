package service

import "github.com/noah-isme/learningpath-api/internal/models"

// Bucket thresholds are exclusive lower bounds.
const (
	highProgressThreshold   = 70
	mediumProgressThreshold = 40
)

// ProgressPercent converts a completed count into an integer percentage,
// truncating toward zero. An empty path is 0%.
func ProgressPercent(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	percent := completed * 100 / total
	if percent > 100 {
		return 100
	}
	return percent
}

// BucketFor maps a percentage to its status bucket. Line and path progress
// share this mapping.
func BucketFor(percent int) models.StatusBucket {
	switch {
	case percent > highProgressThreshold:
		return models.BucketHigh
	case percent > mediumProgressThreshold:
		return models.BucketMedium
	default:
		return models.BucketLow
	}
}

// NewPathProgress folds a completed count into a PathProgress.
func NewPathProgress(completed, total int) models.PathProgress {
	percent := ProgressPercent(completed, total)
	return models.PathProgress{
		Percent:   percent,
		Bucket:    BucketFor(percent),
		Completed: completed,
		Total:     total,
	}
}
