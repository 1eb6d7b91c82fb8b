package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/model"
)

func TestLookup_KnownAndUnknownCodes(t *testing.T) {
	cat := catalog.New()

	rot, ok := cat.Lookup(catalog.CodeICU)
	require.True(t, ok)
	assert.Equal(t, []model.Category{model.CategoryICU}, rot.Categories)
	assert.True(t, rot.ICUDay)

	_, ok = cat.Lookup("NOT_A_CODE")
	assert.False(t, ok)
}

func TestEligibleForRole_SeniorOnlyCode(t *testing.T) {
	cat := catalog.New()
	rot, ok := cat.Lookup(catalog.CodeG)
	require.True(t, ok)

	pgy1 := model.Resident{PGY: model.PGY1}
	pgy2 := model.Resident{PGY: model.PGY2}

	assert.False(t, rot.EligibleForRole(pgy1))
	assert.True(t, rot.EligibleForRole(pgy2))
}

func TestEligibleForPGYTrack_TYClinicRestrictedToTY(t *testing.T) {
	cat := catalog.New()
	rot, ok := cat.Lookup(catalog.CodeTYClinic)
	require.True(t, ok)

	assert.True(t, rot.EligibleForPGYTrack(model.Resident{PGY: model.TY}))
	assert.False(t, rot.EligibleForPGYTrack(model.Resident{PGY: model.PGY1}))
}

func TestEligibleForPGYTrack_ClinicExcludesTY(t *testing.T) {
	cat := catalog.New()
	rot, ok := cat.Lookup(catalog.CodeClinic)
	require.True(t, ok)

	assert.True(t, rot.EligibleForPGYTrack(model.Resident{PGY: model.PGY1}))
	assert.False(t, rot.EligibleForPGYTrack(model.Resident{PGY: model.TY}))
}

func TestEligibleForPGYTrack_GenSurgRequiresAnesthesiaTrack(t *testing.T) {
	cat := catalog.New()
	rot, ok := cat.Lookup(catalog.CodeGenSurg)
	require.True(t, ok)

	assert.True(t, rot.EligibleForPGYTrack(model.Resident{PGY: model.TY, Track: model.TrackAnesthesia}))
	assert.False(t, rot.EligibleForPGYTrack(model.Resident{PGY: model.TY, Track: model.TrackNone}))
	assert.False(t, rot.EligibleForPGYTrack(model.Resident{PGY: model.PGY1, Track: model.TrackAnesthesia}))
}

func TestFloorTeams_ExcludesG(t *testing.T) {
	cat := catalog.New()
	teams := cat.FloorTeams()
	assert.ElementsMatch(t, []string{catalog.CodeA, catalog.CodeB, catalog.CodeC, catalog.CodeD}, teams)
	assert.NotContains(t, teams, catalog.CodeG)
}

func TestCodes_ContainsEveryRegisteredRotation(t *testing.T) {
	cat := catalog.New()
	codes := cat.Codes()
	assert.Contains(t, codes, catalog.CodeVacation)
	assert.Contains(t, codes, catalog.CodeElectiveGen)
	assert.Len(t, codes, len(codes)) // sanity: no panic building the slice
}
