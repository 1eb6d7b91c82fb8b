package validate_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/engineerr"
	"github.com/tolga/resident-scheduler/internal/model"
	"github.com/tolga/resident-scheduler/internal/schedcontext"
	"github.com/tolga/resident-scheduler/internal/solver/validate"
)

func emptyContext(residents []model.Resident) *schedcontext.SolveContext {
	return &schedcontext.SolveContext{
		Residents:             residents,
		Config:                model.DefaultSolverConfig(),
		CompletionsByResident: make(map[uuid.UUID]map[model.Category]int),
		CohortDefs:            make(map[uuid.UUID]model.CohortDefinition),
		CohortMembers:         make(map[uuid.UUID][]uuid.UUID),
		VacationBlockOptions:  make(map[uuid.UUID]model.VacationRequest),
	}
}

func TestValidate_FlagsRamirezViolationAsPostValidationFailure(t *testing.T) {
	res := model.Resident{ID: uuid.New(), PGY: model.PGY1}
	sc := emptyContext([]model.Resident{res})
	cat := catalog.New()

	assignment := model.Assignment{res.ID: {3: catalog.CodeCardio}}
	err := validate.Validate(sc, cat, assignment)

	require.Error(t, err)
	var ee *engineerr.EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, engineerr.CodePostValidation, ee.Code)
	assert.NotEmpty(t, ee.Hints)
}

func TestCheckTotality_FlagsMissingAndUnknownCodes(t *testing.T) {
	res := model.Resident{ID: uuid.New(), Name: "Alice", PGY: model.PGY1}
	sc := emptyContext([]model.Resident{res})
	cat := catalog.New()

	assignment := model.Assignment{res.ID: {1: "NOT_A_CODE"}}
	problems := validate.CheckTotality(sc, cat, assignment)

	assert.Contains(t, problems, "unknown rotation code NOT_A_CODE for Alice")
	var missingFound bool
	for _, p := range problems {
		if p == "missing assignment for Alice" {
			missingFound = true
		}
	}
	assert.True(t, missingFound, "week 2 has no recorded code and should be flagged")
}
