package model_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/model"
	solvermodel "github.com/tolga/resident-scheduler/internal/solver/model"
)

func TestScore_EmptyAssignmentHasNoTransitionsOrVacationBonus(t *testing.T) {
	res := model.Resident{ID: uuid.New(), PGY: model.PGY1}
	sc := newContext([]model.Resident{res})
	cat := catalog.New()
	scorer := solvermodel.NewSoftScorer(sc, cat)

	breakdown := scorer.Score(model.Assignment{res.ID: {}})
	assert.True(t, breakdown.Transitions.Equal(decimal.Zero))
	assert.True(t, breakdown.VacationBonus.Equal(decimal.Zero))
}

func TestScore_VacationBonusAwardedWhenPreferredStartHonoured(t *testing.T) {
	res := model.Resident{ID: uuid.New(), PGY: model.PGY1}
	sc := newContext([]model.Resident{res})
	sc.VacationBlockOptions[res.ID] = model.VacationRequest{
		ResidentID: res.ID,
		Priority:   1,
		BlockA:     model.BlockOptions{StartWeeks: []int{10}},
	}
	cat := catalog.New()
	scorer := solvermodel.NewSoftScorer(sc, cat)

	weeks := map[int]string{10: catalog.CodeVacation, 11: catalog.CodeVacation}
	breakdown := scorer.Score(model.Assignment{res.ID: weeks})

	assert.True(t, breakdown.VacationBonus.Equal(solvermodel.VacationPriorityBonus(1)))
}

func TestScore_TeamGStaggerPenalisesRunsBeyondTwoWeeks(t *testing.T) {
	res := model.Resident{ID: uuid.New(), PGY: model.PGY2}
	sc := newContext([]model.Resident{res})
	cat := catalog.New()
	scorer := solvermodel.NewSoftScorer(sc, cat)

	weeks := map[int]string{1: catalog.CodeG, 2: catalog.CodeG, 3: catalog.CodeG, 4: catalog.CodeG}
	breakdown := scorer.Score(model.Assignment{res.ID: weeks})

	// 4-week run exceeds the 2-week threshold by 2.
	expected := solvermodel.WeightTeamGStagger.Mul(decimal.NewFromInt(2))
	assert.True(t, breakdown.TeamGStagger.Equal(expected))
}

func TestScore_TransitionsCountsCodeChanges(t *testing.T) {
	res := model.Resident{ID: uuid.New(), PGY: model.PGY1}
	sc := newContext([]model.Resident{res})
	cat := catalog.New()
	scorer := solvermodel.NewSoftScorer(sc, cat)

	weeks := make(map[int]string, model.WeeksPerYear)
	for w := 1; w <= model.WeeksPerYear; w++ {
		weeks[w] = catalog.CodeA
	}
	weeks[3] = catalog.CodeB
	breakdown := scorer.Score(model.Assignment{res.ID: weeks})

	// Two transitions: week2->week3 (A->B) and week3->week4 (B->A).
	assert.True(t, breakdown.Transitions.Equal(solvermodel.WeightTransition.Mul(decimal.NewFromInt(2))))
}
