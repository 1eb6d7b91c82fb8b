package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/model"
	solvermodel "github.com/tolga/resident-scheduler/internal/solver/model"
)

func TestEligibleCodes_TYAnesthesiaTerminalBlockPinsElective(t *testing.T) {
	sc := newContext(nil)
	cat := catalog.New()
	d := solvermodel.NewDomain(sc, cat)

	res := model.Resident{PGY: model.TY, Track: model.TrackAnesthesia}
	codes := d.EligibleCodes(res, 50)
	assert.Equal(t, []string{catalog.CodeElective}, codes)
}

func TestForcedCode_MatchesTerminalBlockWindow(t *testing.T) {
	sc := newContext(nil)
	cat := catalog.New()
	d := solvermodel.NewDomain(sc, cat)

	res := model.Resident{PGY: model.TY, Track: model.TrackAnesthesia}
	code, ok := d.ForcedCode(res, 49)
	assert.True(t, ok)
	assert.Equal(t, catalog.CodeElective, code)

	_, ok = d.ForcedCode(res, 48)
	assert.False(t, ok)
}

func TestEligibleCodes_PGY1BarredFromCardioBeforeThreshold(t *testing.T) {
	sc := newContext(nil)
	cat := catalog.New()
	d := solvermodel.NewDomain(sc, cat)

	res := model.Resident{PGY: model.PGY1}
	codes := d.EligibleCodes(res, 3)
	assert.NotContains(t, codes, catalog.CodeCardio)

	codes = d.EligibleCodes(res, 7)
	assert.Contains(t, codes, catalog.CodeCardio)
}

func TestEligibleCodes_PGY2Week1ExcludesCoverageCodes(t *testing.T) {
	sc := newContext(nil)
	cat := catalog.New()
	d := solvermodel.NewDomain(sc, cat)

	res := model.Resident{PGY: model.PGY2}
	codes := d.EligibleCodes(res, 1)
	assert.NotContains(t, codes, catalog.CodeA)
	assert.NotContains(t, codes, catalog.CodeNF)
}

func TestEligibleCodes_HolidayWeekExcludesTeamGAndVacation(t *testing.T) {
	sc := newContext(nil)
	cat := catalog.New()
	d := solvermodel.NewDomain(sc, cat)

	res := model.Resident{PGY: model.PGY2}
	codes := d.EligibleCodes(res, 26)
	assert.NotContains(t, codes, catalog.CodeG)
	assert.NotContains(t, codes, catalog.CodeVacation)
	assert.Contains(t, codes, catalog.CodeA)
}

func TestEligibleCodes_NonNeurologyTYExcludesNeuro(t *testing.T) {
	sc := newContext(nil)
	cat := catalog.New()
	d := solvermodel.NewDomain(sc, cat)

	tyGeneral := model.Resident{PGY: model.TY, Track: model.TrackNone}
	assert.NotContains(t, d.EligibleCodes(tyGeneral, 15), catalog.CodeNeuro)

	tyNeuro := model.Resident{PGY: model.TY, Track: model.TrackNeurology}
	assert.Contains(t, d.EligibleCodes(tyNeuro, 15), catalog.CodeNeuro)
}
