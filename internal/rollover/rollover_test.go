package rollover_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/resident-scheduler/internal/model"
	"github.com/tolga/resident-scheduler/internal/rollover"
	"github.com/tolga/resident-scheduler/internal/store"
)

type fakeResidentCohortSource struct {
	residents []model.Resident
	cohorts   []model.Cohort
	defs      []model.CohortDefinition
}

func (f *fakeResidentCohortSource) ListResidents(context.Context, int) ([]model.Resident, error) {
	return f.residents, nil
}

func (f *fakeResidentCohortSource) ListCohorts(context.Context, int) ([]model.Cohort, error) {
	return f.cohorts, nil
}

func (f *fakeResidentCohortSource) ListCohortDefinitions(context.Context, int) ([]model.CohortDefinition, error) {
	return f.defs, nil
}

func newFixture(residents []model.Resident, target int, cohortID uuid.UUID) store.Sources {
	f := &fakeResidentCohortSource{
		residents: residents,
		cohorts:   []model.Cohort{{ID: cohortID, Name: "Cohort 2027"}},
		defs:      []model.CohortDefinition{{CohortID: cohortID, TargetInternCount: target}},
	}
	return store.Sources{Residents: f, Cohorts: f}
}

func TestRun_PromotesEachPGYLevel(t *testing.T) {
	cohortID := uuid.New()
	residents := []model.Resident{
		{ID: uuid.New(), Name: "Alice", PGY: model.PGY1, CohortID: &cohortID},
		{ID: uuid.New(), Name: "Bob", PGY: model.PGY1, CohortID: &cohortID},
		{ID: uuid.New(), Name: "Carol", PGY: model.PGY2, CohortID: &cohortID},
		{ID: uuid.New(), Name: "Dave", PGY: model.PGY2, CohortID: &cohortID},
	}
	src := newFixture(residents, 2, cohortID)

	plan, err := rollover.Run(context.Background(), src, 2026, 2027, rollover.Options{})
	require.NoError(t, err)

	byName := make(map[string]model.PGY)
	for _, r := range plan.Residents {
		byName[r.Name] = r.PGY
	}
	assert.Equal(t, model.PGY2, byName["Alice"])
	assert.Equal(t, model.PGY2, byName["Bob"])
	assert.Equal(t, model.PGY3, byName["Carol"])
	assert.Equal(t, model.PGY3, byName["Dave"])
}

func TestRun_DropsGraduatesWithoutChiefCoverage(t *testing.T) {
	cohortID := uuid.New()
	residents := []model.Resident{
		{ID: uuid.New(), Name: "Grad", PGY: model.PGY3, CohortID: &cohortID},
	}
	src := newFixture(residents, 0, cohortID)

	plan, err := rollover.Run(context.Background(), src, 2026, 2027, rollover.Options{ChiefCoverage: false})
	require.NoError(t, err)

	for _, r := range plan.Residents {
		assert.NotEqual(t, "Grad", r.Name)
	}
}

func TestRun_ChiefCoverageKeepsGraduate(t *testing.T) {
	cohortID := uuid.New()
	residents := []model.Resident{
		{ID: uuid.New(), Name: "Chief", PGY: model.PGY3, CohortID: &cohortID},
	}
	src := newFixture(residents, 0, cohortID)

	plan, err := rollover.Run(context.Background(), src, 2026, 2027, rollover.Options{ChiefCoverage: true})
	require.NoError(t, err)

	var found bool
	for _, r := range plan.Residents {
		if r.Name == "Chief" {
			found = true
			assert.Equal(t, model.PGY3, r.PGY)
		}
	}
	assert.True(t, found, "chief-coverage resident should remain on the roster")
}

func TestRun_BacksFillPlaceholdersToTargetInPairs(t *testing.T) {
	cohortID := uuid.New()
	// One promoted PGY2->PGY3 senior; no interns promoted in. Target 4 interns.
	residents := []model.Resident{
		{ID: uuid.New(), Name: "Senior", PGY: model.PGY2, CohortID: &cohortID},
	}
	src := newFixture(residents, 4, cohortID)

	plan, err := rollover.Run(context.Background(), src, 2026, 2027, rollover.Options{})
	require.NoError(t, err)

	interns := 0
	for _, r := range plan.Residents {
		if r.IsIntern() {
			interns++
			assert.True(t, r.IsPlaceholder)
		}
	}
	assert.Equal(t, 4, interns)
}

func TestRun_RejectsOversizeCohortAfterRollover(t *testing.T) {
	cohortID := uuid.New()
	var residents []model.Resident
	for i := 0; i < 13; i++ {
		residents = append(residents, model.Resident{ID: uuid.New(), Name: "R", PGY: model.PGY1, CohortID: &cohortID})
	}
	src := newFixture(residents, 0, cohortID)

	_, err := rollover.Run(context.Background(), src, 2026, 2027, rollover.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceed")
}
