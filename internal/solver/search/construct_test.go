package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/model"
	"github.com/tolga/resident-scheduler/internal/schedcontext"
	"github.com/tolga/resident-scheduler/internal/solver/search"
	"github.com/tolga/resident-scheduler/internal/store"
)

type fakeSources struct {
	residents []model.Resident
	config    model.SolverConfig
}

func (f fakeSources) ListResidents(ctx context.Context, year int) ([]model.Resident, error) {
	return f.residents, nil
}
func (f fakeSources) ListRequirements(ctx context.Context, year int) ([]model.Requirement, error) {
	return nil, nil
}
func (f fakeSources) ListCompletions(ctx context.Context, year int) ([]model.Completion, error) {
	return nil, nil
}
func (f fakeSources) ListVacationRequests(ctx context.Context, year int) ([]model.VacationRequest, error) {
	return nil, nil
}
func (f fakeSources) ListCohorts(ctx context.Context, year int) ([]model.Cohort, error) {
	return nil, nil
}
func (f fakeSources) ListCohortDefinitions(ctx context.Context, year int) ([]model.CohortDefinition, error) {
	return nil, nil
}
func (f fakeSources) GetSolverConfig(ctx context.Context, year int) (model.SolverConfig, error) {
	return f.config, nil
}

func buildContext(t *testing.T, residents []model.Resident) *schedcontext.SolveContext {
	t.Helper()
	f := fakeSources{residents: residents, config: model.DefaultSolverConfig()}
	sources := store.Sources{
		Residents: f, Requirements: f, Completions: f,
		VacationRequests: f, Cohorts: f, Config: f,
	}
	sc, err := schedcontext.Build(context.Background(), 2026, sources)
	require.NoError(t, err)
	return sc
}

func TestConstruct_PinsTYAnesthesiaTerminalBlock(t *testing.T) {
	ty := model.Resident{ID: uuid.New(), Name: "Casey", PGY: model.TY, Track: model.TrackAnesthesia}
	sc := buildContext(t, []model.Resident{ty})
	cat := catalog.New()
	rng := rand.New(rand.NewSource(1))

	a := search.Construct(sc, cat, rng)
	for w := 49; w <= 52; w++ {
		assert.Equal(t, catalog.CodeElective, a[ty.ID][w])
	}
}

func TestConstruct_EveryWeekEndsUpAssigned(t *testing.T) {
	residents := []model.Resident{
		{ID: uuid.New(), Name: "Alice", PGY: model.PGY1},
		{ID: uuid.New(), Name: "Bob", PGY: model.PGY2},
	}
	sc := buildContext(t, residents)
	cat := catalog.New()
	rng := rand.New(rand.NewSource(7))

	a := search.Construct(sc, cat, rng)
	for _, res := range residents {
		for w := 1; w <= model.WeeksPerYear; w++ {
			assert.NotEmpty(t, a[res.ID][w], "resident %s week %d should be assigned", res.Name, w)
		}
	}
}

func TestConstruct_PlacesTwoVacationRunsPerResident(t *testing.T) {
	residents := []model.Resident{
		{ID: uuid.New(), Name: "Alice", PGY: model.PGY1},
	}
	sc := buildContext(t, residents)
	cat := catalog.New()
	rng := rand.New(rand.NewSource(42))

	a := search.Construct(sc, cat, rng)
	count := 0
	for w := 1; w <= model.WeeksPerYear; w++ {
		if a[residents[0].ID][w] == catalog.CodeVacation {
			count++
		}
	}
	assert.Equal(t, 2*model.DefaultSolverConfig().VacationRunLength, count)
}
