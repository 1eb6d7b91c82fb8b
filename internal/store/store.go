// Package store declares the read-only collaborator interfaces the
// Context Builder (internal/schedcontext) consumes. Concrete
// implementations live outside the engine — internal/storepg provides
// a Postgres-backed one — so each small per-concern interface is
// declared where it's consumed rather than importing a repository
// package directly.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/tolga/resident-scheduler/internal/model"
)

// ResidentSource lists the residents eligible for a solve year.
type ResidentSource interface {
	ListResidents(ctx context.Context, year int) ([]model.Resident, error)
}

// RequirementSource lists the requirements in force for a solve year.
type RequirementSource interface {
	ListRequirements(ctx context.Context, year int) ([]model.Requirement, error)
}

// CompletionSource lists prior-year cumulative credit per resident.
type CompletionSource interface {
	ListCompletions(ctx context.Context, year int) ([]model.Completion, error)
}

// VacationRequestSource lists vacation requests for a solve year.
type VacationRequestSource interface {
	ListVacationRequests(ctx context.Context, year int) ([]model.VacationRequest, error)
}

// CohortSource lists cohort membership and clinic-cadence definitions.
type CohortSource interface {
	ListCohorts(ctx context.Context, year int) ([]model.Cohort, error)
	ListCohortDefinitions(ctx context.Context, year int) ([]model.CohortDefinition, error)
}

// ConfigSource resolves the solver configuration for a year, falling
// back to model.DefaultSolverConfig for anything unset.
type ConfigSource interface {
	GetSolverConfig(ctx context.Context, year int) (model.SolverConfig, error)
}

// Sources bundles every collaborator the Context Builder needs. It is
// the engine's entire input boundary to the external store.
type Sources struct {
	Residents        ResidentSource
	Requirements     RequirementSource
	Completions      CompletionSource
	VacationRequests VacationRequestSource
	Cohorts          CohortSource
	Config           ConfigSource
}

// AssignmentWriter persists a solved assignment. Implemented by
// internal/storepg; not used by the engine itself.
type AssignmentWriter interface {
	SaveAssignment(ctx context.Context, year int, assignment model.Assignment) error
}

// AssignmentReader loads the currently persisted assignment for a
// year, used by the standalone validate/export paths that don't run a
// fresh search.
type AssignmentReader interface {
	GetAssignment(ctx context.Context, year int) (model.Assignment, error)
}

// ResidentByID is a convenience lookup some collaborators (rollover,
// export) need beyond the list-all shape above.
type ResidentByID interface {
	GetResident(ctx context.Context, id uuid.UUID) (model.Resident, error)
}

// RosterWriter persists the next year's roster (promoted residents,
// new placeholders, and their cohort membership) produced by rollover.
type RosterWriter interface {
	SaveRoster(ctx context.Context, year int, residents []model.Resident, cohorts []model.Cohort, defs []model.CohortDefinition) error
}
