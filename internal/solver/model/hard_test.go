package model_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/model"
	solvermodel "github.com/tolga/resident-scheduler/internal/solver/model"
	"github.com/tolga/resident-scheduler/internal/schedcontext"
)

func newContext(residents []model.Resident) *schedcontext.SolveContext {
	return &schedcontext.SolveContext{
		Residents:             residents,
		Config:                model.DefaultSolverConfig(),
		CompletionsByResident: make(map[uuid.UUID]map[model.Category]int),
		CohortDefs:            make(map[uuid.UUID]model.CohortDefinition),
		CohortMembers:         make(map[uuid.UUID][]uuid.UUID),
		VacationBlockOptions:  make(map[uuid.UUID]model.VacationRequest),
	}
}

func TestCheckRamirez_FlagsCardioBeforeThreshold(t *testing.T) {
	res := model.Resident{ID: uuid.New(), PGY: model.PGY1}
	sc := newContext([]model.Resident{res})
	cat := catalog.New()
	hc := solvermodel.NewHardChecker(sc, cat)

	assignment := model.Assignment{res.ID: {3: catalog.CodeCardio}}
	violations := hc.CheckRamirez(assignment)
	assert.Len(t, violations, 1)
	assert.Equal(t, "H7", violations[0].Rule)
}

func TestCheckRamirez_AllowsCardioAtOrAfterThreshold(t *testing.T) {
	res := model.Resident{ID: uuid.New(), PGY: model.PGY1}
	sc := newContext([]model.Resident{res})
	cat := catalog.New()
	hc := solvermodel.NewHardChecker(sc, cat)

	assignment := model.Assignment{res.ID: {7: catalog.CodeCardio}}
	assert.Empty(t, hc.CheckRamirez(assignment))
}

func TestCheckRamirez_PerResidentOverrideWins(t *testing.T) {
	threshold := 3
	res := model.Resident{ID: uuid.New(), PGY: model.PGY1, Overrides: model.Overrides{NoCardioBeforeWeek: &threshold}}
	sc := newContext([]model.Resident{res})
	cat := catalog.New()
	hc := solvermodel.NewHardChecker(sc, cat)

	assignment := model.Assignment{res.ID: {3: catalog.CodeCardio}}
	assert.Empty(t, hc.CheckRamirez(assignment))
}

func TestCheckPGY2Week1_FlagsRestrictedCodeInWeekOne(t *testing.T) {
	res := model.Resident{ID: uuid.New(), PGY: model.PGY2}
	sc := newContext([]model.Resident{res})
	cat := catalog.New()
	hc := solvermodel.NewHardChecker(sc, cat)

	assignment := model.Assignment{res.ID: {1: catalog.CodeA}}
	violations := hc.CheckPGY2Week1(assignment)
	assert.Len(t, violations, 1)
	assert.Equal(t, "H8", violations[0].Rule)
}

func TestCheckGeriatricsRole_FlagsInternOnGeriatrics(t *testing.T) {
	res := model.Resident{ID: uuid.New(), PGY: model.PGY1}
	sc := newContext([]model.Resident{res})
	cat := catalog.New()
	hc := solvermodel.NewHardChecker(sc, cat)

	assignment := model.Assignment{res.ID: {10: catalog.CodeGeriatrics}}
	violations := hc.CheckGeriatricsRole(assignment)
	assert.Len(t, violations, 1)
	assert.Equal(t, "H16", violations[0].Rule)
}

func TestCheckGeriatricsRole_AllowsSenior(t *testing.T) {
	res := model.Resident{ID: uuid.New(), PGY: model.PGY2}
	sc := newContext([]model.Resident{res})
	cat := catalog.New()
	hc := solvermodel.NewHardChecker(sc, cat)

	assignment := model.Assignment{res.ID: {10: catalog.CodeGeriatrics}}
	assert.Empty(t, hc.CheckGeriatricsRole(assignment))
}

func TestCheckED_FlagsCapExceededAndJulyBlackout(t *testing.T) {
	residents := []model.Resident{
		{ID: uuid.New(), PGY: model.PGY1},
		{ID: uuid.New(), PGY: model.PGY1},
		{ID: uuid.New(), PGY: model.PGY1},
		{ID: uuid.New(), PGY: model.PGY1},
	}
	sc := newContext(residents)
	cat := catalog.New()
	hc := solvermodel.NewHardChecker(sc, cat)

	assignment := model.Assignment{}
	for _, r := range residents {
		assignment[r.ID] = map[int]string{2: catalog.CodeED} // week 2 is a July week by default
	}
	violations := hc.CheckED(assignment)

	var capViolation, julyViolation bool
	for _, v := range violations {
		if v.Detail == "4 residents on ED, cap is 3" {
			capViolation = true
		}
		if v.Detail == "ED assigned during a July week" {
			julyViolation = true
		}
	}
	assert.True(t, capViolation, "expected a cap violation")
	assert.True(t, julyViolation, "expected a July blackout violation")
}

func TestCheckICUBlock_FlagsThreeConsecutiveICUWeeks(t *testing.T) {
	res := model.Resident{ID: uuid.New(), PGY: model.PGY1}
	sc := newContext([]model.Resident{res})
	cat := catalog.New()
	hc := solvermodel.NewHardChecker(sc, cat)

	assignment := model.Assignment{res.ID: {10: catalog.CodeICU, 11: catalog.CodeICUE, 12: catalog.CodeICUN}}
	violations := hc.CheckICUBlock(assignment)
	assert.Len(t, violations, 1)
	assert.Equal(t, "H10", violations[0].Rule)
}

func TestCheckNightLimits_FlagsThreeConsecutiveNights(t *testing.T) {
	res := model.Resident{ID: uuid.New(), PGY: model.PGY1}
	sc := newContext([]model.Resident{res})
	cat := catalog.New()
	hc := solvermodel.NewHardChecker(sc, cat)

	assignment := model.Assignment{res.ID: {20: catalog.CodeNF, 21: catalog.CodeSWING, 22: catalog.CodeICUN}}
	violations := hc.CheckNightLimits(assignment)

	var consecutive bool
	for _, v := range violations {
		if v.Rule == "H9" && v.Detail == "3 consecutive night weeks starting week 20" {
			consecutive = true
		}
	}
	assert.True(t, consecutive)
}

func TestCheckNightLimits_FlagsAnnualCapExceeded(t *testing.T) {
	res := model.Resident{ID: uuid.New(), PGY: model.PGY1}
	sc := newContext([]model.Resident{res})
	cat := catalog.New()
	hc := solvermodel.NewHardChecker(sc, cat)

	weeks := make(map[int]string)
	// 9 non-consecutive night weeks exceeds the default cap of 8.
	for i, w := range []int{1, 3, 5, 7, 9, 11, 13, 15, 17} {
		if i%3 == 0 {
			weeks[w] = catalog.CodeNF
		} else if i%3 == 1 {
			weeks[w] = catalog.CodeICUN
		} else {
			weeks[w] = catalog.CodeSWING
		}
	}
	violations := hc.CheckNightLimits(model.Assignment{res.ID: weeks})

	var capHit bool
	for _, v := range violations {
		if v.Detail == "9 night weeks this year, cap is 8" {
			capHit = true
		}
	}
	assert.True(t, capHit)
}

func TestCheckCoIntern_FlagsMismatchedFloorTeams(t *testing.T) {
	i1, i2 := uuid.New(), uuid.New()
	sc := newContext([]model.Resident{{ID: i1, PGY: model.PGY1}, {ID: i2, PGY: model.PGY1}})
	sc.CoInternPairs = [][2]uuid.UUID{{i1, i2}}
	cat := catalog.New()
	hc := solvermodel.NewHardChecker(sc, cat)

	assignment := model.Assignment{
		i1: {5: catalog.CodeA},
		i2: {5: catalog.CodeB},
	}
	violations := hc.CheckCoIntern(assignment)
	assert.Len(t, violations, 1)
	assert.Equal(t, "H18", violations[0].Rule)
}

func TestCheckCoIntern_AllowsMatchingTeams(t *testing.T) {
	i1, i2 := uuid.New(), uuid.New()
	sc := newContext([]model.Resident{{ID: i1, PGY: model.PGY1}, {ID: i2, PGY: model.PGY1}})
	sc.CoInternPairs = [][2]uuid.UUID{{i1, i2}}
	cat := catalog.New()
	hc := solvermodel.NewHardChecker(sc, cat)

	assignment := model.Assignment{
		i1: {5: catalog.CodeA},
		i2: {5: catalog.CodeA},
	}
	assert.Empty(t, hc.CheckCoIntern(assignment))
}
