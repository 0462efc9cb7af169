package models

import "database/sql"

// LineKind tags the entity a learning path line points at.
type LineKind string

const (
	LineKindCourse    LineKind = "course"
	LineKindModule    LineKind = "module"
	LineKindCatalogue LineKind = "catalogue"
	LineKindUnknown   LineKind = "unknown"
)

// LineAnomaly describes a line whose reference columns do not hold exactly one value.
type LineAnomaly string

const (
	LineAnomalyNone         LineAnomaly = ""
	LineAnomalyUnreferenced LineAnomaly = "unreferenced"
	LineAnomalyAmbiguous    LineAnomaly = "ambiguous"
)

// LineRef is the resolved reference of a line: one kind and the referenced id.
type LineRef struct {
	Kind     LineKind
	EntityID int64
	Anomaly  LineAnomaly
}

// Resolvable reports whether the reference points at an entity.
func (r LineRef) Resolvable() bool {
	return r.Kind != LineKindUnknown && r.EntityID > 0
}

// ResolveLineRef reads the reference columns of a raw line. Ambiguous rows keep
// the first populated column in course, module, catalogue order and are flagged.
func ResolveLineRef(line LearningPathLine) LineRef {
	candidates := []struct {
		kind LineKind
		id   sql.NullInt64
	}{
		{LineKindCourse, line.CourseID},
		{LineKindModule, line.ModuleID},
		{LineKindCatalogue, line.CatalogueID},
	}

	ref := LineRef{Kind: LineKindUnknown}
	populated := 0
	for _, candidate := range candidates {
		if !candidate.id.Valid || candidate.id.Int64 <= 0 {
			continue
		}
		populated++
		if populated == 1 {
			ref.Kind = candidate.kind
			ref.EntityID = candidate.id.Int64
		}
	}

	switch {
	case populated == 0:
		ref.Anomaly = LineAnomalyUnreferenced
	case populated > 1:
		ref.Anomaly = LineAnomalyAmbiguous
	}
	return ref
}
