package model

import "github.com/google/uuid"

// MaxCohortSize is the hard cap on residents (interns + their paired
// seniors) in a single cohort.
const MaxCohortSize = 12

// Cohort groups interns (and the seniors paired with them) who share a
// clinic cadence.
type Cohort struct {
	ID   uuid.UUID
	Name string
}

// CohortDefinition is the clinic-week schedule a cohort follows and the
// target intern headcount the next rollover plans toward.
type CohortDefinition struct {
	CohortID           uuid.UUID
	ClinicWeeks        []int // week numbers in [1,52] the cohort attends clinic
	TargetInternCount  int   // used by rollover planning, not by the solver
}
