// Package model declares the pure domain types the scheduling engine
// operates on: residents, cohorts, requirements, vacation requests, and
// the solved assignment. Nothing here talks to a database or an HTTP
// request; persistence-shaped types live in internal/storepg.
package model

import "github.com/google/uuid"

// PGY is a resident's post-graduate year level.
type PGY string

const (
	PGY1 PGY = "PGY1"
	PGY2 PGY = "PGY2"
	PGY3 PGY = "PGY3"
	TY   PGY = "TY"
)

// Track narrows a resident's requirement profile beyond PGY.
type Track string

const (
	TrackNone       Track = ""
	TrackAnesthesia Track = "anesthesia"
	TrackNeurology  Track = "neurology"
)

// Overrides captures the small set of per-resident exceptions the
// engine honours (Ramirez-rule threshold today; extend here if more
// are added).
type Overrides struct {
	NoCardioBeforeWeek *int // nil = use config.NoCardioBeforeWk
}

// Resident is one programme member eligible for a week-by-week
// assignment in a given year.
type Resident struct {
	ID              uuid.UUID
	Name            string
	PGY             PGY
	Track           Track
	CohortID        *uuid.UUID
	IsPlaceholder   bool
	Overrides       Overrides
	PriorResidentID *uuid.UUID // back-link for history walks (rollover, cumulative credit)
}

// IsSenior reports whether the resident fills senior coverage slots.
func (r Resident) IsSenior() bool {
	return r.PGY == PGY2 || r.PGY == PGY3
}

// IsIntern reports whether the resident fills intern coverage slots.
func (r Resident) IsIntern() bool {
	return r.PGY == PGY1 || r.PGY == TY
}

// IsTY reports whether the resident is a transitional-year resident.
func (r Resident) IsTY() bool {
	return r.PGY == TY
}

// NoCardioBeforeWeek resolves the Ramirez-rule threshold for this
// resident, falling back to the supplied configuration default.
func (r Resident) NoCardioBeforeWeek(configDefault int) int {
	if r.Overrides.NoCardioBeforeWeek != nil {
		return *r.Overrides.NoCardioBeforeWeek
	}
	return configDefault
}
