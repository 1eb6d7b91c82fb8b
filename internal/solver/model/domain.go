// Package model is the Decision Model (C3): it declares the
// categorical decision variable domain for every (resident, week)
// cell, the hard-constraint predicates H1-H18, the soft-constraint
// score, and the objective that composes them. The Search Driver
// (internal/solver/search) consumes this package; the
// Post-Solution Validator (internal/solver/validate) reuses the same
// H1-H18 predicates so that a validation failure can only mean the
// search produced a genuinely bad assignment, not that the checker
// disagrees with itself (see DESIGN.md).
package model

import (
	"github.com/google/uuid"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/model"
	"github.com/tolga/resident-scheduler/internal/schedcontext"
)

// Domain computes the decision variable A[r,w]'s eligible codes: every
// rule that depends only on the resident and the week (never on other
// residents' assignments) is pruned here so the search space the
// constructive builder and local search explore already respects it.
type Domain struct {
	sc  *schedcontext.SolveContext
	cat *catalog.Catalogue
}

// NewDomain builds the per-cell domain calculator for sc/cat.
func NewDomain(sc *schedcontext.SolveContext, cat *catalog.Catalogue) *Domain {
	return &Domain{sc: sc, cat: cat}
}

// EligibleCodes returns every rotation code res may occupy in week w,
// honouring the catalogue's role/PGY/track fences plus the
// week-dependent structural rules: H4 holiday-week code set, H13's
// terminal anesthesia pin (weeks 49-52), H8's PGY2 week-1 delay, H7's
// Ramirez threshold, and the non-neurology-TY NEURO fence.
func (d *Domain) EligibleCodes(res model.Resident, w int) []string {
	// H13: TY/anesthesia residents have weeks 49..52 pinned.
	if res.IsTY() && res.Track == model.TrackAnesthesia && w >= 49 && w <= 52 {
		return []string{catalog.CodeElective}
	}

	holiday := d.sc.Config.IsHolidayWeek(w)

	var out []string
	for _, code := range d.cat.Codes() {
		rot, _ := d.cat.Lookup(code)

		if rot.HolidayOnly && !holiday {
			continue // ICU_H forbidden outside holiday weeks
		}
		if holiday && !holidayEligible(rot) {
			continue // H4: only core coverage / clinic / ICU_H allowed on 26,27
		}
		if code == catalog.CodeVacation && holiday {
			continue // vacation never lands on 26 or 27
		}
		if !rot.EligibleForRole(res) {
			continue
		}
		if !rot.EligibleForPGYTrack(res) {
			continue
		}
		if code == catalog.CodeNeuro && res.IsTY() && res.Track != model.TrackNeurology {
			continue // H13: non-neurology TYs never on NEURO
		}
		if code == catalog.CodeCardio && !res.IsTY() && res.PGY == model.PGY1 &&
			w < res.NoCardioBeforeWeek(d.sc.Config.NoCardioBeforeWk) {
			continue // H7 Ramirez rule
		}
		if w == 1 && res.PGY == model.PGY2 && week1Restricted(code) {
			continue // H8
		}
		out = append(out, code)
	}
	return out
}

// holidayEligible reports whether a code belongs to the set H4
// permits on weeks 26/27: core coverage codes, the two clinic
// channels (incl. TY_CLINIC), or ICU_H.
func holidayEligible(rot catalog.Rotation) bool {
	if rot.HolidayOnly {
		return true
	}
	if rot.FloorTeam {
		return rot.Code != catalog.CodeG // G is disabled on holiday weeks
	}
	if rot.ICUDay {
		return true
	}
	switch rot.Code {
	case catalog.CodeNF, catalog.CodeICUN, catalog.CodeSWING,
		catalog.CodeClinic, catalog.CodeClinicStar, catalog.CodeTYClinic:
		return true
	}
	return false
}

// week1Restricted reports whether code is one of the coverage codes
// H8 bars PGY2 residents from in week 1.
func week1Restricted(code string) bool {
	switch code {
	case catalog.CodeA, catalog.CodeB, catalog.CodeC, catalog.CodeD, catalog.CodeG,
		catalog.CodeNF, catalog.CodeSWING, catalog.CodeICU, catalog.CodeICUE, catalog.CodeICUN:
		return true
	}
	return false
}

// ForcedCode returns the code a cell is pinned to independent of
// search, and true, when one applies (the anesthesia terminal block
// today). Callers should assign it directly rather than search over it.
func (d *Domain) ForcedCode(res model.Resident, w int) (string, bool) {
	if res.IsTY() && res.Track == model.TrackAnesthesia && w >= 49 && w <= 52 {
		return catalog.CodeElective, true
	}
	return "", false
}

// residentsOf is a small helper local search and construction share:
// resolve a slice of IDs back to Resident values in the same order.
func residentsOf(sc *schedcontext.SolveContext, ids []uuid.UUID) []model.Resident {
	out := make([]model.Resident, 0, len(ids))
	for _, id := range ids {
		if r, ok := sc.Resident(id); ok {
			out = append(out, r)
		}
	}
	return out
}
