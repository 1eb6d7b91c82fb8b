package storepg

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tolga/resident-scheduler/internal/model"
)

// Store is the Postgres-backed implementation of every internal/store
// collaborator interface: a single struct wrapping *gorm.DB.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// New wraps db for use as a store.Sources / store.AssignmentWriter /
// store.ResidentByID implementation.
func New(db *gorm.DB, log zerolog.Logger) *Store {
	return &Store{db: db, log: log}
}

// ListResidents implements store.ResidentSource.
func (s *Store) ListResidents(ctx context.Context, year int) ([]model.Resident, error) {
	var rows []Resident
	if err := s.db.WithContext(ctx).Where("year = ?", year).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	out := make([]model.Resident, 0, len(rows))
	for _, r := range rows {
		out = append(out, residentFromRow(r))
	}
	return out, nil
}

// GetResident implements store.ResidentByID.
func (s *Store) GetResident(ctx context.Context, id uuid.UUID) (model.Resident, error) {
	var row Resident
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return model.Resident{}, fmt.Errorf("get resident %s: %w", id, err)
	}
	return residentFromRow(row), nil
}

func residentFromRow(r Resident) model.Resident {
	return model.Resident{
		ID:              r.ID,
		Name:            r.Name,
		PGY:             model.PGY(r.PGY),
		Track:           model.Track(r.Track),
		CohortID:        r.CohortID,
		IsPlaceholder:   r.IsPlaceholder,
		Overrides:       model.Overrides{NoCardioBeforeWeek: r.NoCardioBefore},
		PriorResidentID: r.PriorResidentID,
	}
}

// ListRequirements implements store.RequirementSource.
func (s *Store) ListRequirements(ctx context.Context, year int) ([]model.Requirement, error) {
	var rows []Requirement
	if err := s.db.WithContext(ctx).Where("year = ?", year).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	out := make([]model.Requirement, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Requirement{
			PGY:           model.PGY(r.PGY),
			Track:         model.Track(r.Track),
			Category:      model.Category(r.Category),
			RequiredWeeks: r.RequiredWeeks,
		})
	}
	return out, nil
}

// ListCompletions implements store.CompletionSource.
func (s *Store) ListCompletions(ctx context.Context, year int) ([]model.Completion, error) {
	var rows []Completion
	if err := s.db.WithContext(ctx).
		Joins("JOIN residents ON residents.id = completions.resident_id").
		Where("residents.year = ?", year).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	out := make([]model.Completion, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Completion{
			ResidentID: r.ResidentID,
			Category:   model.Category(r.Category),
			WeeksDone:  r.WeeksDone,
		})
	}
	return out, nil
}

// ListVacationRequests implements store.VacationRequestSource.
func (s *Store) ListVacationRequests(ctx context.Context, year int) ([]model.VacationRequest, error) {
	var rows []VacationRequest
	if err := s.db.WithContext(ctx).Where("year = ?", year).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list vacation requests: %w", err)
	}
	out := make([]model.VacationRequest, 0, len(rows))
	for _, r := range rows {
		var blocks vacationBlocksJSON
		if err := json.Unmarshal(r.Blocks, &blocks); err != nil {
			return nil, fmt.Errorf("decode vacation blocks for %s: %w", r.ResidentID, err)
		}
		vr := model.VacationRequest{
			ResidentID: r.ResidentID,
			Priority:   r.Priority,
			BlockA:     model.BlockOptions{StartWeeks: blocks.BlockA},
			BlockB:     model.BlockOptions{StartWeeks: blocks.BlockB},
		}
		if blocks.HardLockA != nil {
			vr.HardLockA = &model.HardLock{StartWeek: *blocks.HardLockA}
		}
		if blocks.HardLockB != nil {
			vr.HardLockB = &model.HardLock{StartWeek: *blocks.HardLockB}
		}
		out = append(out, vr)
	}
	return out, nil
}

// ListCohorts implements store.CohortSource.
func (s *Store) ListCohorts(ctx context.Context, year int) ([]model.Cohort, error) {
	var rows []Cohort
	if err := s.db.WithContext(ctx).Where("year = ?", year).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list cohorts: %w", err)
	}
	out := make([]model.Cohort, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Cohort{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// ListCohortDefinitions implements store.CohortSource.
func (s *Store) ListCohortDefinitions(ctx context.Context, year int) ([]model.CohortDefinition, error) {
	var rows []CohortDefinition
	if err := s.db.WithContext(ctx).
		Joins("JOIN cohorts ON cohorts.id = cohort_definitions.cohort_id").
		Where("cohorts.year = ?", year).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list cohort definitions: %w", err)
	}
	out := make([]model.CohortDefinition, 0, len(rows))
	for _, r := range rows {
		var weeks pq.Int64Array
		if err := weeks.Scan(r.ClinicWeeks); err != nil {
			return nil, fmt.Errorf("decode clinic weeks for cohort %s: %w", r.CohortID, err)
		}
		ints := make([]int, len(weeks))
		for i, w := range weeks {
			ints[i] = int(w)
		}
		out = append(out, model.CohortDefinition{
			CohortID:          r.CohortID,
			ClinicWeeks:       ints,
			TargetInternCount: r.TargetInternCount,
		})
	}
	return out, nil
}

// GetSolverConfig implements store.ConfigSource, layering a stored
// per-year override over model.DefaultSolverConfig.
func (s *Store) GetSolverConfig(ctx context.Context, year int) (model.SolverConfig, error) {
	cfg := model.DefaultSolverConfig()

	var row SolverConfigRow
	err := s.db.WithContext(ctx).Where("year = ?", year).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load solver config for year %d: %w", year, err)
	}

	if row.MaxNightsPerYear != nil {
		cfg.MaxNightsPerYear = *row.MaxNightsPerYear
	}
	if row.EDCapPerWeek != nil {
		cfg.EDCapPerWeek = *row.EDCapPerWeek
	}
	if row.NoCardioBeforeWk != nil {
		cfg.NoCardioBeforeWk = *row.NoCardioBeforeWk
	}
	if row.TimeLimitSeconds != nil {
		cfg.TimeLimitSeconds = *row.TimeLimitSeconds
	}
	if row.NumWorkers != nil {
		cfg.NumWorkers = *row.NumWorkers
	}
	cfg.RandomSeed = row.RandomSeed
	cfg.RelaxVacationBlocks = row.RelaxVacationBlocks
	cfg.RelaxGeriatricsCoverage = row.RelaxGeriatricsCoverage

	return cfg, nil
}

// GetAssignment implements store.AssignmentReader.
func (s *Store) GetAssignment(ctx context.Context, year int) (model.Assignment, error) {
	var rows []ScheduleAssignment
	if err := s.db.WithContext(ctx).Where("year = ?", year).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load assignment for year %d: %w", year, err)
	}
	out := make(model.Assignment)
	for _, r := range rows {
		out.Set(r.ResidentID, r.WeekNumber, r.RotationCode)
	}
	return out, nil
}

// SaveRoster implements store.RosterWriter: it inserts the next year's
// residents, cohorts, and cohort definitions inside one transaction.
func (s *Store) SaveRoster(ctx context.Context, year int, residents []model.Resident, cohorts []model.Cohort, defs []model.CohortDefinition) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range cohorts {
			row := Cohort{ID: c.ID, Year: year, Name: c.Name}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert cohort %s: %w", c.Name, err)
			}
		}
		for _, d := range defs {
			weeks := make(pq.Int64Array, len(d.ClinicWeeks))
			for i, w := range d.ClinicWeeks {
				weeks[i] = int64(w)
			}
			value, err := weeks.Value()
			if err != nil {
				return fmt.Errorf("encode clinic weeks for cohort %s: %w", d.CohortID, err)
			}
			encoded, _ := value.(string)
			row := CohortDefinition{
				CohortID:          d.CohortID,
				ClinicWeeks:       encoded,
				TargetInternCount: d.TargetInternCount,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert cohort definition %s: %w", d.CohortID, err)
			}
		}
		for _, r := range residents {
			row := Resident{
				ID: r.ID, Year: year, Name: r.Name, PGY: string(r.PGY), Track: string(r.Track),
				CohortID: r.CohortID, IsPlaceholder: r.IsPlaceholder,
				NoCardioBefore: r.Overrides.NoCardioBeforeWeek, PriorResidentID: r.PriorResidentID,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert resident %s: %w", r.Name, err)
			}
		}
		s.log.Info().Int("year", year).Int("residents", len(residents)).Msg("saved rollover roster")
		return nil
	})
}

// SaveAssignment implements store.AssignmentWriter: it snapshots the
// year's current rows into schedule_backups, then truncates and
// re-inserts inside one transaction.
func (s *Store) SaveAssignment(ctx context.Context, year int, assignment model.Assignment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []ScheduleAssignment
		if err := tx.Where("year = ?", year).Find(&existing).Error; err != nil {
			return fmt.Errorf("load existing assignments for backup: %w", err)
		}
		if len(existing) > 0 {
			snapshot, err := json.Marshal(existing)
			if err != nil {
				return fmt.Errorf("marshal backup snapshot: %w", err)
			}
			if err := tx.Create(&ScheduleBackup{Year: year, Snapshot: snapshot}).Error; err != nil {
				return fmt.Errorf("write backup snapshot: %w", err)
			}
		}

		if err := tx.Where("year = ?", year).Delete(&ScheduleAssignment{}).Error; err != nil {
			return fmt.Errorf("clear existing assignments: %w", err)
		}

		rows := make([]ScheduleAssignment, 0, len(assignment)*model.WeeksPerYear)
		for residentID, weeks := range assignment {
			for w, code := range weeks {
				rows = append(rows, ScheduleAssignment{
					ResidentID: residentID, Year: year, WeekNumber: w, RotationCode: code,
				})
			}
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 500).Error; err != nil {
			return fmt.Errorf("insert new assignments: %w", err)
		}
		s.log.Info().Int("year", year).Int("cells", len(rows)).Msg("saved schedule assignment")
		return nil
	})
}
