// Package rollover implements the programme-year transition described
// informatively in the CLI surface: promote residents a PGY level,
// drop graduates, backfill placeholders, and re-cap cohort membership
// for the next solve year. It is consumed by both cmd/schedulectl and
// internal/handler as a domain package each transport dispatches into
// rather than owning the logic itself.
package rollover

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tolga/resident-scheduler/internal/engineerr"
	"github.com/tolga/resident-scheduler/internal/model"
	"github.com/tolga/resident-scheduler/internal/store"
)

// Options controls the one rollover decision an operator can override.
type Options struct {
	// ChiefCoverage keeps PGY3/TY residents on the roster an extra year
	// instead of dropping them as graduates.
	ChiefCoverage bool
}

// Plan is the computed next-year roster, ready for RosterWriter.SaveRoster.
type Plan struct {
	Year       int
	Residents  []model.Resident
	Cohorts    []model.Cohort
	CohortDefs []model.CohortDefinition
}

// Run reads fromYear's roster and cohort definitions, applies PGY
// promotion/graduation and placeholder backfill, and returns the
// toYear plan. It does not persist; call writer.SaveRoster with the
// result, or inspect it first (as the CLI's dry-run flag does).
func Run(ctx context.Context, src store.Sources, fromYear, toYear int, opts Options) (Plan, error) {
	residents, err := src.Residents.ListResidents(ctx, fromYear)
	if err != nil {
		return Plan{}, fmt.Errorf("list residents for year %d: %w", fromYear, err)
	}
	cohorts, err := src.Cohorts.ListCohorts(ctx, fromYear)
	if err != nil {
		return Plan{}, fmt.Errorf("list cohorts for year %d: %w", fromYear, err)
	}
	defs, err := src.Cohorts.ListCohortDefinitions(ctx, fromYear)
	if err != nil {
		return Plan{}, fmt.Errorf("list cohort definitions for year %d: %w", fromYear, err)
	}
	defByCohort := make(map[uuid.UUID]model.CohortDefinition, len(defs))
	for _, d := range defs {
		defByCohort[d.CohortID] = d
	}

	byCohort := make(map[uuid.UUID][]model.Resident)
	var noCohort []model.Resident
	for _, r := range residents {
		if r.CohortID != nil {
			byCohort[*r.CohortID] = append(byCohort[*r.CohortID], r)
		} else {
			noCohort = append(noCohort, r)
		}
	}

	plan := Plan{Year: toYear}

	for _, cohort := range cohorts {
		members := byCohort[cohort.ID]
		promoted := promoteMembers(members, opts)

		target := defByCohort[cohort.ID].TargetInternCount
		interns := countInterns(promoted)
		placeholders := backfillPlaceholders(target, interns, cohort.ID)
		promoted = append(promoted, placeholders...)

		if len(promoted) > model.MaxCohortSize {
			return Plan{}, engineerr.NewContextError(fmt.Sprintf(
				"cohort %s would exceed the %d-resident cap after rollover (%d residents)",
				cohort.Name, model.MaxCohortSize, len(promoted)))
		}
		if countInterns(promoted)%2 != 0 {
			return Plan{}, engineerr.NewContextError(fmt.Sprintf(
				"cohort %s would have an odd intern count after rollover", cohort.Name))
		}

		plan.Residents = append(plan.Residents, promoted...)
		plan.Cohorts = append(plan.Cohorts, model.Cohort{ID: cohort.ID, Name: cohort.Name})
		if d, ok := defByCohort[cohort.ID]; ok {
			plan.CohortDefs = append(plan.CohortDefs, d)
		}
	}
	plan.Residents = append(plan.Residents, promoteMembers(noCohort, opts)...)

	return plan, nil
}

// promoteMembers advances each resident one PGY level, dropping
// graduates unless opts.ChiefCoverage keeps them.
func promoteMembers(members []model.Resident, opts Options) []model.Resident {
	var out []model.Resident
	for _, r := range members {
		switch r.PGY {
		case model.PGY1:
			out = append(out, nextYearResident(r, model.PGY2))
		case model.PGY2:
			out = append(out, nextYearResident(r, model.PGY3))
		case model.PGY3, model.TY:
			if opts.ChiefCoverage {
				out = append(out, nextYearResident(r, r.PGY))
			}
			// else: graduates, drops off the roster
		}
	}
	return out
}

func nextYearResident(r model.Resident, pgy model.PGY) model.Resident {
	priorID := r.ID
	return model.Resident{
		ID:              uuid.New(),
		Name:            r.Name,
		PGY:             pgy,
		Track:           r.Track,
		CohortID:        r.CohortID,
		IsPlaceholder:   false,
		Overrides:       r.Overrides,
		PriorResidentID: &priorID,
	}
}

func countInterns(residents []model.Resident) int {
	n := 0
	for _, r := range residents {
		if r.IsIntern() {
			n++
		}
	}
	return n
}

// backfillPlaceholders creates placeholder PGY1 residents until the
// cohort's intern headcount reaches target, always in pairs so the
// co-intern parity invariant holds without an odd leftover.
func backfillPlaceholders(target, current int, cohortID uuid.UUID) []model.Resident {
	needed := target - current
	if needed <= 0 {
		return nil
	}
	if needed%2 != 0 {
		needed++
	}
	id := cohortID
	placeholders := make([]model.Resident, 0, needed)
	for i := 0; i < needed; i++ {
		placeholders = append(placeholders, model.Resident{
			ID:            uuid.New(),
			Name:          fmt.Sprintf("Incoming Intern %d", i+1),
			PGY:           model.PGY1,
			CohortID:      &id,
			IsPlaceholder: true,
		})
	}
	return placeholders
}
