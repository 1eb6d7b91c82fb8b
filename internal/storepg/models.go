// Package storepg is the Postgres-backed implementation of
// internal/store's collaborator interfaces, using gorm-tagged row
// types: persistence shapes live only here, never in internal/model,
// which stays a pure domain package.
package storepg

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Resident is the persisted row backing model.Resident.
type Resident struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Year            int        `gorm:"not null;index" json:"year"`
	Name            string     `gorm:"type:varchar(255);not null" json:"name"`
	PGY             string     `gorm:"type:varchar(10);not null" json:"pgy"`
	Track           string     `gorm:"type:varchar(20)" json:"track"`
	CohortID        *uuid.UUID `gorm:"type:uuid;index" json:"cohort_id,omitempty"`
	IsPlaceholder   bool       `gorm:"default:false" json:"is_placeholder"`
	NoCardioBefore  *int       `json:"no_cardio_before_week,omitempty"`
	PriorResidentID *uuid.UUID `gorm:"type:uuid" json:"prior_resident_id,omitempty"`
	CreatedAt       time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"default:now()" json:"updated_at"`
}

func (Resident) TableName() string { return "residents" }

// Cohort is the persisted row backing model.Cohort.
type Cohort struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Year int       `gorm:"not null;index" json:"year"`
	Name string    `gorm:"type:varchar(255);not null" json:"name"`
}

func (Cohort) TableName() string { return "cohorts" }

// CohortDefinition is the persisted row backing model.CohortDefinition.
// ClinicWeeks is stored as a Postgres integer array via pq.Int64Array
// at the driver layer (see adapter.go's row conversion).
type CohortDefinition struct {
	CohortID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"cohort_id"`
	ClinicWeeks       string    `gorm:"type:integer[]" json:"clinic_weeks"` // pq.Array-encoded
	TargetInternCount int       `json:"target_intern_count"`
}

func (CohortDefinition) TableName() string { return "cohort_definitions" }

// Requirement is the persisted row backing model.Requirement.
type Requirement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Year          int       `gorm:"not null;index" json:"year"`
	PGY           string    `gorm:"type:varchar(10);not null" json:"pgy"`
	Track         string    `gorm:"type:varchar(20)" json:"track"`
	Category      string    `gorm:"type:varchar(20);not null" json:"category"`
	RequiredWeeks int       `json:"required_weeks"`
}

func (Requirement) TableName() string { return "requirements" }

// Completion is the persisted row backing model.Completion.
type Completion struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ResidentID uuid.UUID `gorm:"type:uuid;not null;index" json:"resident_id"`
	Category   string    `gorm:"type:varchar(20);not null" json:"category"`
	WeeksDone  int       `json:"weeks_done"`
}

func (Completion) TableName() string { return "completions" }

// VacationRequest is the persisted row backing model.VacationRequest.
// The candidate-start lists and hard-lock windows are stored as a JSON
// column (gorm.io/datatypes) since they are small, shape-free, and
// read back whole rather than queried piecemeal.
type VacationRequest struct {
	ResidentID uuid.UUID      `gorm:"type:uuid;primaryKey" json:"resident_id"`
	Year       int            `gorm:"not null;index" json:"year"`
	Priority   int            `json:"priority"`
	Blocks     datatypes.JSON `gorm:"type:jsonb" json:"blocks"`
}

func (VacationRequest) TableName() string { return "vacation_requests" }

// vacationBlocksJSON is the shape Blocks marshals/unmarshals.
type vacationBlocksJSON struct {
	BlockA    []int `json:"block_a_start_weeks"`
	BlockB    []int `json:"block_b_start_weeks"`
	HardLockA *int  `json:"hard_lock_a_start_week,omitempty"`
	HardLockB *int  `json:"hard_lock_b_start_week,omitempty"`
}

// SolverConfigRow is the persisted, per-year override of
// model.SolverConfig. A nil/zero field falls back to
// model.DefaultSolverConfig in the adapter.
type SolverConfigRow struct {
	Year                      int  `gorm:"primaryKey" json:"year"`
	MaxNightsPerYear          *int `json:"max_nights_per_year,omitempty"`
	EDCapPerWeek              *int `json:"ed_cap_per_week,omitempty"`
	NoCardioBeforeWk          *int `json:"no_cardio_before_week,omitempty"`
	TimeLimitSeconds          *int `json:"time_limit_seconds,omitempty"`
	NumWorkers                *int `json:"num_workers,omitempty"`
	RandomSeed                *int64 `json:"random_seed,omitempty"`
	RelaxVacationBlocks       bool `json:"relax_vacation_blocks"`
	RelaxGeriatricsCoverage   bool `json:"relax_geriatrics_coverage"`
}

func (SolverConfigRow) TableName() string { return "solver_configs" }

// ScheduleAssignment is one persisted (resident, week) cell.
type ScheduleAssignment struct {
	ResidentID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"resident_id"`
	Year         int       `gorm:"primaryKey" json:"year"`
	WeekNumber   int       `gorm:"primaryKey" json:"week_number"`
	RotationCode string    `gorm:"type:varchar(20);not null" json:"rotation_code"`
}

func (ScheduleAssignment) TableName() string { return "schedule_assignments" }

// ScheduleBackup is a JSON snapshot of a year's assignments taken
// immediately before a truncate-and-insert save.
type ScheduleBackup struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Year      int            `gorm:"not null;index" json:"year"`
	Snapshot  datatypes.JSON `gorm:"type:jsonb" json:"snapshot"`
	CreatedAt time.Time      `gorm:"default:now()" json:"created_at"`
}

func (ScheduleBackup) TableName() string { return "schedule_backups" }
