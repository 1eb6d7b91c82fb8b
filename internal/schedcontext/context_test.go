package schedcontext_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/resident-scheduler/internal/model"
	"github.com/tolga/resident-scheduler/internal/schedcontext"
	"github.com/tolga/resident-scheduler/internal/store"
)

type fakeSources struct {
	residents    []model.Resident
	requirements []model.Requirement
	completions  []model.Completion
	vacations    []model.VacationRequest
	cohorts      []model.Cohort
	cohortDefs   []model.CohortDefinition
	config       model.SolverConfig
}

func (f fakeSources) ListResidents(ctx context.Context, year int) ([]model.Resident, error) {
	return f.residents, nil
}
func (f fakeSources) ListRequirements(ctx context.Context, year int) ([]model.Requirement, error) {
	return f.requirements, nil
}
func (f fakeSources) ListCompletions(ctx context.Context, year int) ([]model.Completion, error) {
	return f.completions, nil
}
func (f fakeSources) ListVacationRequests(ctx context.Context, year int) ([]model.VacationRequest, error) {
	return f.vacations, nil
}
func (f fakeSources) ListCohorts(ctx context.Context, year int) ([]model.Cohort, error) {
	return f.cohorts, nil
}
func (f fakeSources) ListCohortDefinitions(ctx context.Context, year int) ([]model.CohortDefinition, error) {
	return f.cohortDefs, nil
}
func (f fakeSources) GetSolverConfig(ctx context.Context, year int) (model.SolverConfig, error) {
	return f.config, nil
}

func sourcesFor(f fakeSources) store.Sources {
	return store.Sources{
		Residents:        f,
		Requirements:     f,
		Completions:      f,
		VacationRequests: f,
		Cohorts:          f,
		Config:           f,
	}
}

func TestBuild_PairsCoInternsTwoByTwoWithinCohort(t *testing.T) {
	cohortID := uuid.New()
	a := model.Resident{ID: uuid.New(), Name: "Alice", PGY: model.PGY1, CohortID: &cohortID}
	b := model.Resident{ID: uuid.New(), Name: "Bob", PGY: model.PGY1, CohortID: &cohortID}

	f := fakeSources{residents: []model.Resident{a, b}, config: model.DefaultSolverConfig()}
	sc, err := schedcontext.Build(context.Background(), 2026, sourcesFor(f))
	require.NoError(t, err)

	require.Len(t, sc.CoInternPairs, 1)
	pair := sc.CoInternPairs[0]
	assert.Equal(t, a.ID, pair[0])
	assert.Equal(t, b.ID, pair[1])
}

func TestBuild_RejectsOddInternCountInCohort(t *testing.T) {
	cohortID := uuid.New()
	residents := []model.Resident{
		{ID: uuid.New(), Name: "Alice", PGY: model.PGY1, CohortID: &cohortID},
		{ID: uuid.New(), Name: "Bob", PGY: model.PGY1, CohortID: &cohortID},
		{ID: uuid.New(), Name: "Cara", PGY: model.PGY1, CohortID: &cohortID},
	}
	f := fakeSources{residents: residents, config: model.DefaultSolverConfig()}
	_, err := schedcontext.Build(context.Background(), 2026, sourcesFor(f))
	require.Error(t, err)
}

func TestBuild_RejectsOversizeCohort(t *testing.T) {
	cohortID := uuid.New()
	var residents []model.Resident
	for i := 0; i < model.MaxCohortSize+1; i++ {
		residents = append(residents, model.Resident{ID: uuid.New(), Name: "R", PGY: model.PGY3, CohortID: &cohortID})
	}
	f := fakeSources{residents: residents, config: model.DefaultSolverConfig()}
	_, err := schedcontext.Build(context.Background(), 2026, sourcesFor(f))
	require.Error(t, err)
}

func TestBuild_ExcludesHolidayWeeksFromCohortClinicWeeks(t *testing.T) {
	cohortID := uuid.New()
	residents := []model.Resident{{ID: uuid.New(), Name: "Alice", PGY: model.PGY3, CohortID: &cohortID}}
	defs := []model.CohortDefinition{{CohortID: cohortID, ClinicWeeks: []int{10, 26, 27, 30}}}

	f := fakeSources{residents: residents, cohortDefs: defs, config: model.DefaultSolverConfig()}
	sc, err := schedcontext.Build(context.Background(), 2026, sourcesFor(f))
	require.NoError(t, err)

	assert.Equal(t, []int{10, 30}, sc.CohortDefs[cohortID].ClinicWeeks)
}

func TestBuild_FiltersVacationStartsOverlappingHolidayWeeks(t *testing.T) {
	res := model.Resident{ID: uuid.New(), Name: "Alice", PGY: model.PGY1}
	vr := model.VacationRequest{
		ResidentID: res.ID,
		BlockA:     model.BlockOptions{StartWeeks: []int{8, 25, 26}},
		BlockB:     model.BlockOptions{StartWeeks: []int{27, 40}},
	}
	f := fakeSources{residents: []model.Resident{res}, vacations: []model.VacationRequest{vr}, config: model.DefaultSolverConfig()}
	sc, err := schedcontext.Build(context.Background(), 2026, sourcesFor(f))
	require.NoError(t, err)

	got := sc.VacationBlockOptions[res.ID]
	assert.Equal(t, []int{8}, got.BlockA.StartWeeks)
	assert.Equal(t, []int{40}, got.BlockB.StartWeeks)
}

func TestBuild_SeparatesSeniorsFromInterns(t *testing.T) {
	intern := model.Resident{ID: uuid.New(), Name: "Intern", PGY: model.PGY1}
	senior := model.Resident{ID: uuid.New(), Name: "Senior", PGY: model.PGY2}
	ty := model.Resident{ID: uuid.New(), Name: "TY", PGY: model.TY}

	f := fakeSources{residents: []model.Resident{intern, senior, ty}, config: model.DefaultSolverConfig()}
	sc, err := schedcontext.Build(context.Background(), 2026, sourcesFor(f))
	require.NoError(t, err)

	assert.ElementsMatch(t, []uuid.UUID{senior.ID}, sc.SeniorIDs)
	assert.ElementsMatch(t, []uuid.UUID{intern.ID, ty.ID}, sc.InternIDs)
	assert.ElementsMatch(t, []uuid.UUID{ty.ID}, sc.TYIDs)
}
