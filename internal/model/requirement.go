package model

import "github.com/google/uuid"

// Requirement gives the minimum weeks of Category a resident of a
// given PGY (and, when set, Track) must accumulate. Annual
// requirements (see AnnualCategories) reset every year; cumulative
// ones (see CumulativeCategories) accrue toward a graduation minimum
// across Completion rows from prior years.
type Requirement struct {
	PGY           PGY
	Track         Track // TrackNone means "applies to every track of this PGY"
	Category      Category
	RequiredWeeks int
}

// RequirementKey identifies the (PGY, Track) bucket a set of
// requirements belongs to.
type RequirementKey struct {
	PGY   PGY
	Track Track
}

// Completion is prior-year credit toward a cumulative Category.
type Completion struct {
	ResidentID uuid.UUID
	Category   Category
	WeeksDone  int
}
