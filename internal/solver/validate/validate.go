// Package validate implements the Post-Solution Validator (C5): an
// independent re-check of a solved Assignment against the same H1-H18
// predicates the Search Driver scores during search, plus a
// requirement-sync re-verification of every minimum. A validation
// failure always indicates a modelling or search bug, never a caller
// input problem — see internal/engineerr.
package validate

import (
	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/engineerr"
	"github.com/tolga/resident-scheduler/internal/model"
	"github.com/tolga/resident-scheduler/internal/reqsync"
	solvermodel "github.com/tolga/resident-scheduler/internal/solver/model"
	"github.com/tolga/resident-scheduler/internal/schedcontext"
)

// Validate re-checks a, returning nil when every hard constraint and
// every requirement minimum holds, or a CodePostValidation
// *engineerr.EngineError listing every violation otherwise.
func Validate(sc *schedcontext.SolveContext, cat *catalog.Catalogue, a model.Assignment) error {
	hc := solvermodel.NewHardChecker(sc, cat)
	violations := hc.CheckAll(a)

	tallies := reqsync.Compute(sc, cat, a)
	for _, res := range sc.Residents {
		t := tallies[res.ID]
		for category := range model.AnnualCategories {
			req := reqsync.RequirementWeeks(sc, res, category)
			if t[category] < req {
				violations = append(violations, solvermodel.Violation{
					Rule:       "REQSYNC",
					ResidentID: &res.ID,
					Detail:     "annual requirement shortfall after sync",
				})
			}
		}
	}

	if len(violations) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, v.String())
	}
	return engineerr.NewPostValidationFailure(msgs)
}

// CheckTotality verifies every resident has a code recorded for every
// week 1..52 and that each code belongs to the catalogue — the one
// property the hard-constraint predicates assume rather than check.
func CheckTotality(sc *schedcontext.SolveContext, cat *catalog.Catalogue, a model.Assignment) []string {
	var problems []string
	for _, res := range sc.Residents {
		weeks := a[res.ID]
		for w := 1; w <= model.WeeksPerYear; w++ {
			code, ok := weeks[w]
			if !ok {
				problems = append(problems, "missing assignment for "+res.Name)
				continue
			}
			if _, ok := cat.Lookup(code); !ok {
				problems = append(problems, "unknown rotation code "+code+" for "+res.Name)
			}
		}
	}
	return problems
}
