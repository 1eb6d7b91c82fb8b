// Package reqsync implements the Requirement Sync component (C6): it
// projects a solved Assignment back into per-resident, per-category
// week tallies, applying the NF/ICU/SWING split and CLINIC-overflow
// rules, for cumulative tracking across years and for UI progress
// display.
package reqsync

import (
	"github.com/google/uuid"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/model"
	"github.com/tolga/resident-scheduler/internal/schedcontext"
)

// Tally is one resident's computed weeks-per-category for the solved
// year, before cumulative categories are combined with prior
// completions (see WithPriorCompletions).
type Tally map[model.Category]int

// Compute projects assignment into a Tally per resident:
//   - NF contributes to FLOORS.
//   - SWING splits between NF and ICU_NIGHT to balance the two:
//     x = clamp((icun - nf + swing) / 2, 0, swing) SWING weeks count
//     as NF, the remaining swing-x count as ICU_NIGHT.
//   - ICU day and ICU_N both contribute to ICU.
//   - CLINIC weeks beyond the CLINIC requirement spill into ELECTIVE.
func Compute(sc *schedcontext.SolveContext, cat *catalog.Catalogue, assignment model.Assignment) map[uuid.UUID]Tally {
	out := make(map[uuid.UUID]Tally, len(sc.Residents))

	for _, res := range sc.Residents {
		weeks := assignment[res.ID]
		raw := make(map[string]int)
		for w := 1; w <= model.WeeksPerYear; w++ {
			code, ok := weeks[w]
			if !ok {
				continue
			}
			raw[code]++
		}

		t := make(Tally)

		// Direct category credits for every code that isn't NF/SWING/ICU_N
		// (those three need the split/merge rules below) nor CLINIC
		// (needs the overflow rule below).
		for code, n := range raw {
			rot, ok := cat.Lookup(code)
			if !ok {
				continue
			}
			switch code {
			case catalog.CodeNF, catalog.CodeSWING, catalog.CodeICUN, catalog.CodeClinic, catalog.CodeClinicStar:
				continue
			default:
				for _, c := range rot.Categories {
					t[c] += n
				}
			}
		}

		nf := raw[catalog.CodeNF]
		icun := raw[catalog.CodeICUN]
		swing := raw[catalog.CodeSWING]
		x := (icun - nf + swing) / 2
		if x < 0 {
			x = 0
		}
		if x > swing {
			x = swing
		}
		t[model.CategoryNF] += nf + x
		t[model.CategoryICUNight] += icun + (swing - x)
		// NF rotation weeks also count toward FLOORS.
		t[model.CategoryFloors] += nf
		// ICU day and ICU_N both contribute to the ICU category.
		t[model.CategoryICU] += raw[catalog.CodeICU] + raw[catalog.CodeICUE] + icun

		clinicWeeks := raw[catalog.CodeClinic] + raw[catalog.CodeClinicStar]
		clinicReq := requirementWeeks(sc, res, model.CategoryClinic)
		if clinicWeeks > clinicReq {
			t[model.CategoryClinic] += clinicReq
			t[model.CategoryElective] += clinicWeeks - clinicReq
		} else {
			t[model.CategoryClinic] += clinicWeeks
		}

		out[res.ID] = t
	}

	return out
}

// WithPriorCompletions adds prior-year credit to every cumulative
// category in tally, leaving annual categories untouched (they reset
// each year by definition).
func WithPriorCompletions(sc *schedcontext.SolveContext, residentID uuid.UUID, tally Tally) Tally {
	combined := make(Tally, len(tally))
	for c, n := range tally {
		combined[c] = n
	}
	prior := sc.CompletionsByResident[residentID]
	for c, n := range prior {
		if c.IsCumulative() {
			combined[c] += n
		}
	}
	return combined
}

// requirementWeeks looks up the required_weeks for category applying
// to res's (PGY, track), falling back to the untracked PGY default
// when no track-specific row exists.
func requirementWeeks(sc *schedcontext.SolveContext, res model.Resident, category model.Category) int {
	if res.Track != model.TrackNone {
		if reqs, ok := sc.RequirementsByPGYTrack[model.RequirementKey{PGY: res.PGY, Track: res.Track}]; ok {
			for _, r := range reqs {
				if r.Category == category {
					return r.RequiredWeeks
				}
			}
		}
	}
	if reqs, ok := sc.RequirementsByPGYTrack[model.RequirementKey{PGY: res.PGY}]; ok {
		for _, r := range reqs {
			if r.Category == category {
				return r.RequiredWeeks
			}
		}
	}
	return 0
}

// RequirementWeeks exposes requirementWeeks for other engine
// components (the decision model's H14/H15/strict-requirement terms)
// that need the same (PGY, track) resolution rule.
func RequirementWeeks(sc *schedcontext.SolveContext, res model.Resident, category model.Category) int {
	return requirementWeeks(sc, res, category)
}
