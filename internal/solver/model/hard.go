package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/model"
	"github.com/tolga/resident-scheduler/internal/reqsync"
	"github.com/tolga/resident-scheduler/internal/schedcontext"
)

// Violation names the rule, the resident/week it implicates (when
// applicable), and a human-readable detail. Returned by every H-check
// and reused verbatim by internal/solver/validate.
type Violation struct {
	Rule       string
	ResidentID *uuid.UUID
	Week       *int
	Detail     string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Detail)
}

func vio(rule string, r *uuid.UUID, w *int, format string, args ...any) Violation {
	return Violation{Rule: rule, ResidentID: r, Week: w, Detail: fmt.Sprintf(format, args...)}
}

func wk(w int) *int { return &w }
func rid(r uuid.UUID) *uuid.UUID { return &r }

// HardChecker replays H1-H18 against a candidate Assignment. The
// Search Driver's local search scores violations it returns as
// penalties; internal/solver/validate runs the exact same checks as
// an independent post-solve safety net.
type HardChecker struct {
	sc  *schedcontext.SolveContext
	cat *catalog.Catalogue
}

// NewHardChecker builds a checker bound to sc/cat.
func NewHardChecker(sc *schedcontext.SolveContext, cat *catalog.Catalogue) *HardChecker {
	return &HardChecker{sc: sc, cat: cat}
}

// CheckAll runs every hard constraint and returns every violation
// found. When cfg.RelaxGeriatricsCoverage is set, the senior
// GERIATRICS/NEURO coverage check is skipped here and only the
// seniorCoverage soft term in soft.go scores it. When
// cfg.RelaxVacationBlocks is set, the vacation shape and placement
// checks (H1/H2) are skipped and no soft term scores vacation shape or
// placement.
func (hc *HardChecker) CheckAll(a model.Assignment) []Violation {
	var v []Violation
	cfg := hc.sc.Config

	if !cfg.RelaxVacationBlocks {
		v = append(v, hc.CheckVacationShape(a)...)
		v = append(v, hc.CheckVacationPlacement(a)...)
	}
	v = append(v, hc.CheckCoverageNonHoliday(a)...)
	v = append(v, hc.CheckCoverageHoliday(a)...)
	v = append(v, hc.CheckHolidayReciprocity(a)...)
	v = append(v, hc.CheckED(a)...)
	v = append(v, hc.CheckRamirez(a)...)
	v = append(v, hc.CheckPGY2Week1(a)...)
	v = append(v, hc.CheckNightLimits(a)...)
	v = append(v, hc.CheckICUBlock(a)...)
	v = append(v, hc.CheckFloorBlock(a)...)
	v = append(v, hc.CheckTeamLimits(a)...)
	v = append(v, hc.CheckRoleFences(a)...)
	v = append(v, hc.CheckCumulativeMinima(a)...)
	v = append(v, hc.CheckElectiveCeilings(a)...)
	v = append(v, hc.CheckGeriatricsRole(a)...)
	v = append(v, hc.CheckCohortCadence(a)...)
	v = append(v, hc.CheckCoIntern(a)...)
	if !cfg.RelaxGeriatricsCoverage {
		v = append(v, hc.CheckSeniorSpecialtyCoverage(a)...)
	}
	return v
}

// --- H1 / H2: vacation shape and placement --------------------------------

// CheckVacationShape verifies each resident has exactly 4 VACATION
// weeks forming exactly two runs of length 2, the runs' starts differ
// by at least MinInterblockGapWeeks, and neither holiday week is
// VACATION.
func (hc *HardChecker) CheckVacationShape(a model.Assignment) []Violation {
	var v []Violation
	cfg := hc.sc.Config
	for _, res := range hc.sc.Residents {
		weeks := a[res.ID]
		var vacWeeks []int
		for w := 1; w <= model.WeeksPerYear; w++ {
			if weeks[w] == catalog.CodeVacation {
				vacWeeks = append(vacWeeks, w)
			}
		}
		for _, hw := range cfg.HolidayWeeks {
			if weeks[hw] == catalog.CodeVacation {
				v = append(v, vio("H1", rid(res.ID), wk(hw), "VACATION lands on a holiday week"))
			}
		}
		if len(vacWeeks) != cfg.VacationWeeksPerResident {
			v = append(v, vio("H1", rid(res.ID), nil, "expected %d VACATION weeks, found %d", cfg.VacationWeeksPerResident, len(vacWeeks)))
			continue
		}
		runs := consecutiveRuns(vacWeeks)
		if len(runs) != 2 {
			v = append(v, vio("H1", rid(res.ID), nil, "expected exactly two VACATION runs, found %d", len(runs)))
			continue
		}
		for _, r := range runs {
			if r.length != cfg.VacationRunLength {
				v = append(v, vio("H1", rid(res.ID), wk(r.start), "VACATION run has length %d, expected %d", r.length, cfg.VacationRunLength))
			}
		}
		if len(runs) == 2 {
			gap := runs[1].start - runs[0].start
			if gap < cfg.MinInterblockGapWeeks {
				v = append(v, vio("H1", rid(res.ID), nil, "VACATION runs only %d weeks apart, need >= %d", gap, cfg.MinInterblockGapWeeks))
			}
		}
	}
	return v
}

type run struct{ start, length int }

func consecutiveRuns(weeks []int) []run {
	if len(weeks) == 0 {
		return nil
	}
	var runs []run
	start := weeks[0]
	length := 1
	for i := 1; i < len(weeks); i++ {
		if weeks[i] == weeks[i-1]+1 {
			length++
			continue
		}
		runs = append(runs, run{start: start, length: length})
		start = weeks[i]
		length = 1
	}
	runs = append(runs, run{start: start, length: length})
	return runs
}

// CheckVacationPlacement verifies that, absent a hard lock, each
// VACATION run's start week is one of the resident's requested block
// options (one run matching block A's options, the other block B's).
func (hc *HardChecker) CheckVacationPlacement(a model.Assignment) []Violation {
	var v []Violation
	for _, res := range hc.sc.Residents {
		req, ok := hc.sc.VacationBlockOptions[res.ID]
		if !ok {
			continue // no preference on file; any placement satisfying H1 is fine
		}
		weeks := a[res.ID]
		var vacWeeks []int
		for w := 1; w <= model.WeeksPerYear; w++ {
			if weeks[w] == catalog.CodeVacation {
				vacWeeks = append(vacWeeks, w)
			}
		}
		runs := consecutiveRuns(vacWeeks)
		if len(runs) != 2 {
			continue // already reported by CheckVacationShape
		}
		if req.HardLockA != nil {
			if !runStartsAt(runs, req.HardLockA.StartWeek) {
				v = append(v, vio("H2", rid(res.ID), wk(req.HardLockA.StartWeek), "hard-locked block A not honoured"))
			}
		} else if len(req.BlockA.StartWeeks) > 0 && !anyRunStarts(runs, req.BlockA.StartWeeks) {
			v = append(v, vio("H2", rid(res.ID), nil, "no VACATION run starts at a requested block-A option"))
		}
		if req.HardLockB != nil {
			if !runStartsAt(runs, req.HardLockB.StartWeek) {
				v = append(v, vio("H2", rid(res.ID), wk(req.HardLockB.StartWeek), "hard-locked block B not honoured"))
			}
		} else if len(req.BlockB.StartWeeks) > 0 && !anyRunStarts(runs, req.BlockB.StartWeeks) {
			v = append(v, vio("H2", rid(res.ID), nil, "no VACATION run starts at a requested block-B option"))
		}
	}
	return v
}

func runStartsAt(runs []run, w int) bool {
	for _, r := range runs {
		if r.start == w {
			return true
		}
	}
	return false
}

func anyRunStarts(runs []run, starts []int) bool {
	for _, s := range starts {
		if runStartsAt(runs, s) {
			return true
		}
	}
	return false
}

// --- H3 / H4: coverage ------------------------------------------------------

// CheckCoverageNonHoliday verifies the per-team senior/intern coverage
// quotas for every non-holiday week.
func (hc *HardChecker) CheckCoverageNonHoliday(a model.Assignment) []Violation {
	var v []Violation
	for w := 1; w <= model.WeeksPerYear; w++ {
		if hc.sc.Config.IsHolidayWeek(w) {
			continue
		}
		seniors, interns := hc.countByCodeAndRole(a, w)

		for _, team := range hc.cat.FloorTeams() {
			if seniors[team] != 1 {
				v = append(v, vio("H3", nil, wk(w), "team %s has %d seniors, expected 1", team, seniors[team]))
			}
			if interns[team] != 2 {
				v = append(v, vio("H3", nil, wk(w), "team %s has %d interns, expected 2", team, interns[team]))
			}
		}
		icuSeniors := seniors[catalog.CodeICU] + seniors[catalog.CodeICUE]
		icuInterns := interns[catalog.CodeICU] + interns[catalog.CodeICUE]
		if icuSeniors != 2 {
			v = append(v, vio("H3", nil, wk(w), "ICU day has %d seniors, expected 2", icuSeniors))
		}
		if icuInterns != 2 {
			v = append(v, vio("H3", nil, wk(w), "ICU day has %d interns, expected 2", icuInterns))
		}
		for _, code := range []string{catalog.CodeNF, catalog.CodeICUN, catalog.CodeSWING} {
			if seniors[code] != 1 {
				v = append(v, vio("H3", nil, wk(w), "%s has %d seniors, expected 1", code, seniors[code]))
			}
			if interns[code] != 1 {
				v = append(v, vio("H3", nil, wk(w), "%s has %d interns, expected 1", code, interns[code]))
			}
		}
		if interns[catalog.CodeG] != 0 {
			v = append(v, vio("H3", nil, wk(w), "team G has %d interns, must be 0", interns[catalog.CodeG]))
		}
	}
	return v
}

// CheckCoverageHoliday verifies the per-team coverage totals for weeks
// 26 and 27, and that every resident's assignment that week is one of
// the permitted codes.
func (hc *HardChecker) CheckCoverageHoliday(a model.Assignment) []Violation {
	var v []Violation
	for _, w := range hc.sc.Config.HolidayWeeks {
		totals := hc.countTotalsByCode(a, w)
		seniors, _ := hc.countByCodeAndRole(a, w)

		for _, res := range hc.sc.Residents {
			code, ok := a[res.ID][w]
			if !ok {
				continue
			}
			if rot, known := hc.cat.Lookup(code); known && !holidayEligible(rot) {
				v = append(v, vio("H4", rid(res.ID), wk(w), "%s is not permitted on a holiday week", code))
			}
		}

		for _, team := range hc.cat.FloorTeams() {
			if totals[team] != 3 {
				v = append(v, vio("H4", nil, wk(w), "team %s has %d residents on a holiday week, expected 3", team, totals[team]))
			}
			if seniors[team] < 1 {
				v = append(v, vio("H4", nil, wk(w), "team %s has no senior on a holiday week", team))
			}
		}
		icuTotal := totals[catalog.CodeICU] + totals[catalog.CodeICUE]
		icuSeniors := seniors[catalog.CodeICU] + seniors[catalog.CodeICUE]
		if icuTotal != 4 {
			v = append(v, vio("H4", nil, wk(w), "ICU day has %d residents on a holiday week, expected 4", icuTotal))
		}
		if icuSeniors < 1 {
			v = append(v, vio("H4", nil, wk(w), "ICU day has no senior on a holiday week"))
		}
		for _, code := range []string{catalog.CodeNF, catalog.CodeICUN, catalog.CodeSWING} {
			if totals[code] != 2 {
				v = append(v, vio("H4", nil, wk(w), "%s has %d residents on a holiday week, expected 2", code, totals[code]))
			}
		}
		if totals[catalog.CodeG] != 0 {
			v = append(v, vio("H4", nil, wk(w), "team G must be disabled on a holiday week"))
		}
		clinicTotal := totals[catalog.CodeClinic] + totals[catalog.CodeClinicStar]
		if clinicTotal > 5 {
			v = append(v, vio("H5", nil, wk(w), "holiday-week clinic occupancy %d exceeds 5", clinicTotal))
		}
	}
	return v
}

// countByCodeAndRole tallies, for week w, how many seniors and interns
// carry each code.
func (hc *HardChecker) countByCodeAndRole(a model.Assignment, w int) (seniors, interns map[string]int) {
	seniors = make(map[string]int)
	interns = make(map[string]int)
	for _, res := range hc.sc.Residents {
		code, ok := a[res.ID][w]
		if !ok {
			continue
		}
		if res.IsSenior() {
			seniors[code]++
		} else {
			interns[code]++
		}
	}
	return
}

func (hc *HardChecker) countTotalsByCode(a model.Assignment, w int) map[string]int {
	totals := make(map[string]int)
	for _, res := range hc.sc.Residents {
		code, ok := a[res.ID][w]
		if !ok {
			continue
		}
		totals[code]++
	}
	return totals
}

// --- H5: holiday reciprocity -------------------------------------------

// CheckHolidayReciprocity verifies that every resident works at most
// one of the two holiday weeks, and that non-PGY3 residents work
// exactly one.
func (hc *HardChecker) CheckHolidayReciprocity(a model.Assignment) []Violation {
	var v []Violation
	cfg := hc.sc.Config
	if len(cfg.HolidayWeeks) != 2 {
		return v
	}
	w1, w2 := cfg.HolidayWeeks[0], cfg.HolidayWeeks[1]
	for _, res := range hc.sc.Residents {
		weeks := a[res.ID]
		worked1 := weeks[w1] != catalog.CodeICUH
		worked2 := weeks[w2] != catalog.CodeICUH
		workedBoth := worked1 && worked2
		workedNeither := !worked1 && !worked2
		if workedBoth {
			v = append(v, vio("H5", rid(res.ID), nil, "worked both holiday weeks"))
		}
		if res.PGY != model.PGY3 && workedNeither {
			v = append(v, vio("H5", rid(res.ID), nil, "non-PGY3 resident must work exactly one holiday week"))
		}
	}
	return v
}

// --- H6: ED ----------------------------------------------------------------

// CheckED verifies the per-week ED cap and the July ED blackout.
func (hc *HardChecker) CheckED(a model.Assignment) []Violation {
	var v []Violation
	cfg := hc.sc.Config
	for w := 1; w <= model.WeeksPerYear; w++ {
		count := 0
		for _, res := range hc.sc.Residents {
			if a[res.ID][w] == catalog.CodeED {
				count++
			}
		}
		if count > cfg.EDCapPerWeek {
			v = append(v, vio("H6", nil, wk(w), "%d residents on ED, cap is %d", count, cfg.EDCapPerWeek))
		}
		if cfg.IsJulyWeek(w) && count > 0 {
			v = append(v, vio("H6", nil, wk(w), "ED assigned during a July week"))
		}
	}
	return v
}

// --- H7: Ramirez rule --------------------------------------------------

// CheckRamirez verifies no PGY1 (non-TY) resident is on CARDIO before
// their configured threshold week. Enforced at the domain level too;
// this is the independent re-check.
func (hc *HardChecker) CheckRamirez(a model.Assignment) []Violation {
	var v []Violation
	for _, res := range hc.sc.Residents {
		if res.PGY != model.PGY1 {
			continue
		}
		threshold := res.NoCardioBeforeWeek(hc.sc.Config.NoCardioBeforeWk)
		for w := 1; w < threshold; w++ {
			if a[res.ID][w] == catalog.CodeCardio {
				v = append(v, vio("H7", rid(res.ID), wk(w), "PGY1 on CARDIO before week %d", threshold))
			}
		}
	}
	return v
}

// --- H8: PGY2 delayed start ---------------------------------------------

// CheckPGY2Week1 verifies no PGY2 resident is on a floor/night/ICU
// code in week 1.
func (hc *HardChecker) CheckPGY2Week1(a model.Assignment) []Violation {
	var v []Violation
	for _, res := range hc.sc.Residents {
		if res.PGY != model.PGY2 {
			continue
		}
		if week1Restricted(a[res.ID][1]) {
			v = append(v, vio("H8", rid(res.ID), wk(1), "PGY2 resident on %s in week 1", a[res.ID][1]))
		}
	}
	return v
}

// --- H9: night limits --------------------------------------------------

// CheckNightLimits verifies the annual night cap, the cumulative
// prior-carry cap, and the no-3-consecutive-nights rule.
func (hc *HardChecker) CheckNightLimits(a model.Assignment) []Violation {
	var v []Violation
	cfg := hc.sc.Config
	nightSet := map[string]bool{catalog.CodeNF: true, catalog.CodeICUN: true, catalog.CodeSWING: true}

	for _, res := range hc.sc.Residents {
		weeks := a[res.ID]
		nightWeeks := 0
		isNight := make([]bool, model.WeeksPerYear+1)
		for w := 1; w <= model.WeeksPerYear; w++ {
			if nightSet[weeks[w]] {
				nightWeeks++
				isNight[w] = true
			}
		}
		if nightWeeks > cfg.MaxNightsPerYear {
			v = append(v, vio("H9", rid(res.ID), nil, "%d night weeks this year, cap is %d", nightWeeks, cfg.MaxNightsPerYear))
		}
		prior := hc.sc.CompletionsByResident[res.ID]
		priorNights := prior[model.CategoryNF] + prior[model.CategoryICUNight]
		if priorNights+nightWeeks > cfg.PriorNightCarryCap {
			v = append(v, vio("H9", rid(res.ID), nil, "cumulative night weeks %d exceed cap %d", priorNights+nightWeeks, cfg.PriorNightCarryCap))
		}
		for w := 1; w+2 <= model.WeeksPerYear; w++ {
			if isNight[w] && isNight[w+1] && isNight[w+2] {
				v = append(v, vio("H9", rid(res.ID), wk(w), "3 consecutive night weeks starting week %d", w))
			}
		}
	}
	return v
}

// --- H10: ICU block ------------------------------------------------------

// CheckICUBlock verifies no resident has 3 consecutive ICU (day or
// night) weeks.
func (hc *HardChecker) CheckICUBlock(a model.Assignment) []Violation {
	var v []Violation
	icuSet := map[string]bool{catalog.CodeICU: true, catalog.CodeICUE: true, catalog.CodeICUN: true}
	for _, res := range hc.sc.Residents {
		weeks := a[res.ID]
		for w := 1; w+2 <= model.WeeksPerYear; w++ {
			if icuSet[weeks[w]] && icuSet[weeks[w+1]] && icuSet[weeks[w+2]] {
				v = append(v, vio("H10", rid(res.ID), wk(w), "3 consecutive ICU weeks starting week %d", w))
			}
		}
	}
	return v
}

// --- H11: floor block -----------------------------------------------------

// CheckFloorBlock verifies no resident has 5 consecutive weeks in the
// floor+night supergroup.
func (hc *HardChecker) CheckFloorBlock(a model.Assignment) []Violation {
	var v []Violation
	super := make(map[string]bool)
	for _, c := range hc.cat.FloorSupergroup() {
		super[c] = true
	}
	for _, res := range hc.sc.Residents {
		weeks := a[res.ID]
		for w := 1; w+4 <= model.WeeksPerYear; w++ {
			all := true
			for i := 0; i < 5; i++ {
				if !super[weeks[w+i]] {
					all = false
					break
				}
			}
			if all {
				v = append(v, vio("H11", rid(res.ID), wk(w), "5 consecutive floor-supergroup weeks starting week %d", w))
			}
		}
	}
	return v
}

// --- H12: per-team stagnation limits --------------------------------------

// CheckTeamLimits verifies no resident sits on the same ABCD team for
// more than their role's consecutive-week limit.
func (hc *HardChecker) CheckTeamLimits(a model.Assignment) []Violation {
	var v []Violation
	cfg := hc.sc.Config
	for _, res := range hc.sc.Residents {
		limit := cfg.InternABCDStagnationLimit
		if res.IsSenior() {
			limit = cfg.SeniorABCDStagnationLimit
		}
		weeks := a[res.ID]
		span := limit + 1
		for w := 1; w+span-1 <= model.WeeksPerYear; w++ {
			first := weeks[w]
			if !isABCD(first) {
				continue
			}
			all := true
			for i := 1; i < span; i++ {
				if weeks[w+i] != first {
					all = false
					break
				}
			}
			if all {
				v = append(v, vio("H12", rid(res.ID), wk(w), "%d consecutive weeks on team %s exceeds limit %d", span, first, limit))
			}
		}
	}
	return v
}

func isABCD(code string) bool {
	switch code {
	case catalog.CodeA, catalog.CodeB, catalog.CodeC, catalog.CodeD:
		return true
	}
	return false
}

// --- H13: TY/anesthesia/neurology role fences -----------------------------

// CheckRoleFences verifies TY clinic exclusivity, GEN_SURG/ELECTIVE
// scoping, the anesthesia terminal block, and the NEURO fence. All are
// domain-enforced; this is the independent re-check.
func (hc *HardChecker) CheckRoleFences(a model.Assignment) []Violation {
	var v []Violation
	for _, res := range hc.sc.Residents {
		weeks := a[res.ID]
		for w := 1; w <= model.WeeksPerYear; w++ {
			code := weeks[w]
			switch code {
			case catalog.CodeClinic, catalog.CodeClinicStar:
				if res.IsTY() {
					v = append(v, vio("H13", rid(res.ID), wk(w), "TY resident on standard CLINIC"))
				}
			case catalog.CodeTYClinic:
				if !res.IsTY() {
					v = append(v, vio("H13", rid(res.ID), wk(w), "non-TY resident on TY_CLINIC"))
				}
			case catalog.CodeGenSurg:
				if !(res.IsTY() && res.Track == model.TrackAnesthesia) {
					v = append(v, vio("H13", rid(res.ID), wk(w), "GEN_SURG restricted to TY-anesthesia residents"))
				}
			case catalog.CodeNeuro:
				if res.IsTY() && res.Track != model.TrackNeurology {
					v = append(v, vio("H13", rid(res.ID), wk(w), "non-neurology TY on NEURO"))
				}
			}
			if res.IsTY() && res.Track == model.TrackAnesthesia && w >= 49 && w <= 52 && code != catalog.CodeElective {
				v = append(v, vio("H13", rid(res.ID), wk(w), "TY-anesthesia week %d must be the terminal elective", w))
			}
		}
	}
	return v
}

// --- H14: cumulative PGY3 graduation minima -------------------------------

var graduationMinima = map[model.Category]int{
	model.CategoryCardio:     4,
	model.CategoryNeuro:      2,
	model.CategoryID:         4,
	model.CategoryGeriatrics: 2,
	model.CategoryED:         4,
}

// CheckCumulativeMinima verifies every PGY3's prior-completions +
// this-year count meets the graduation minimum for each cumulative
// category.
func (hc *HardChecker) CheckCumulativeMinima(a model.Assignment) []Violation {
	var v []Violation
	tallies := reqsync.Compute(hc.sc, hc.cat, a)
	for _, res := range hc.sc.Residents {
		if res.PGY != model.PGY3 {
			continue
		}
		combined := reqsync.WithPriorCompletions(hc.sc, res.ID, tallies[res.ID])
		for category, min := range graduationMinima {
			if combined[category] < min {
				v = append(v, vio("H14", rid(res.ID), nil, "PGY3 %s total %d below graduation minimum %d", category, combined[category], min))
			}
		}
	}
	return v
}

// --- H15: core-elective ceilings ------------------------------------------

// CheckElectiveCeilings verifies non-TY residents never exceed the
// required_weeks ceiling for CARDIO/NEURO/ID/ED/GERIATRICS.
func (hc *HardChecker) CheckElectiveCeilings(a model.Assignment) []Violation {
	var v []Violation
	coreCategories := []model.Category{model.CategoryCardio, model.CategoryNeuro, model.CategoryID, model.CategoryED, model.CategoryGeriatrics}
	tallies := reqsync.Compute(hc.sc, hc.cat, a)
	for _, res := range hc.sc.Residents {
		if res.IsTY() {
			continue
		}
		t := tallies[res.ID]
		for _, category := range coreCategories {
			ceiling := reqsync.RequirementWeeks(hc.sc, res, category)
			if t[category] > ceiling {
				v = append(v, vio("H15", rid(res.ID), nil, "%s weeks %d exceed required_weeks ceiling %d", category, t[category], ceiling))
			}
		}
	}
	return v
}

// --- H16: geriatrics role --------------------------------------------------

// CheckGeriatricsRole verifies no intern is ever on GERIATRICS.
// Domain-enforced via catalog.RoleSeniorOnly; independent re-check.
func (hc *HardChecker) CheckGeriatricsRole(a model.Assignment) []Violation {
	var v []Violation
	for _, res := range hc.sc.Residents {
		if res.IsIntern() {
			for w := 1; w <= model.WeeksPerYear; w++ {
				if a[res.ID][w] == catalog.CodeGeriatrics {
					v = append(v, vio("H16", rid(res.ID), wk(w), "intern on GERIATRICS"))
				}
			}
		}
	}
	return v
}

// --- H17: cohort-forced clinic cadence -------------------------------------

// CheckCohortCadence verifies every cohort member is on the correct
// clinic code during every cohort clinic week, and that non-holiday
// non-TY clinic occupancy lies in [ClinicMinPerWeek, ClinicMaxPerWeek].
func (hc *HardChecker) CheckCohortCadence(a model.Assignment) []Violation {
	var v []Violation
	cfg := hc.sc.Config

	for cohortID, members := range hc.sc.CohortMembers {
		def, ok := hc.sc.CohortDefs[cohortID]
		if !ok {
			continue
		}
		for _, w := range def.ClinicWeeks {
			for _, residentID := range members {
				res, ok := hc.sc.Resident(residentID)
				if !ok {
					continue
				}
				code := a[residentID][w]
				if res.IsTY() {
					if code != catalog.CodeTYClinic {
						v = append(v, vio("H17", rid(residentID), wk(w), "TY cohort member not on TY_CLINIC during a forced clinic week"))
					}
				} else if code != catalog.CodeClinic && code != catalog.CodeClinicStar {
					v = append(v, vio("H17", rid(residentID), wk(w), "cohort member not on a clinic code during a forced clinic week"))
				}
			}
		}
	}

	for w := 1; w <= model.WeeksPerYear; w++ {
		if cfg.IsHolidayWeek(w) {
			continue
		}
		occ := 0
		for _, res := range hc.sc.Residents {
			if res.IsTY() {
				continue
			}
			code := a[res.ID][w]
			if code == catalog.CodeClinic || code == catalog.CodeClinicStar {
				occ++
			}
		}
		if occ < cfg.ClinicMinPerWeek || occ > cfg.ClinicMaxPerWeek {
			v = append(v, vio("H17", nil, wk(w), "non-TY clinic occupancy %d outside [%d,%d]", occ, cfg.ClinicMinPerWeek, cfg.ClinicMaxPerWeek))
		}
	}
	return v
}

// --- H18: co-intern pairing ------------------------------------------------

// CheckCoIntern verifies every co-intern pair shares a floor team (or
// ICU-day code) whenever both are on one.
func (hc *HardChecker) CheckCoIntern(a model.Assignment) []Violation {
	var v []Violation
	for _, pair := range hc.sc.CoInternPairs {
		i, j := pair[0], pair[1]
		for w := 1; w <= model.WeeksPerYear; w++ {
			ci, cj := a[i][w], a[j][w]
			if isABCD(ci) && isABCD(cj) && ci != cj {
				v = append(v, vio("H18", rid(i), wk(w), "co-intern pair on different floor teams (%s vs %s)", ci, cj))
			}
			if isICUDay(ci) && isICUDay(cj) && ci != cj {
				v = append(v, vio("H18", rid(i), wk(w), "co-intern pair on different ICU-day codes (%s vs %s)", ci, cj))
			}
		}
	}
	return v
}

func isICUDay(code string) bool {
	return code == catalog.CodeICU || code == catalog.CodeICUE
}

// --- Senior GERIATRICS/NEURO coverage (soft-relaxable hard check) --------

// CheckSeniorSpecialtyCoverage verifies at least one senior is on
// GERIATRICS or NEURO whenever any resident is, on non-holiday weeks.
// Kept hard by default and demoted to soft when RelaxGeriatricsCoverage
// is set.
func (hc *HardChecker) CheckSeniorSpecialtyCoverage(a model.Assignment) []Violation {
	var v []Violation
	for w := 1; w <= model.WeeksPerYear; w++ {
		if hc.sc.Config.IsHolidayWeek(w) {
			continue
		}
		for _, code := range []string{catalog.CodeGeriatrics, catalog.CodeNeuro} {
			hasAny, hasSenior := false, false
			for _, res := range hc.sc.Residents {
				if a[res.ID][w] != code {
					continue
				}
				hasAny = true
				if res.IsSenior() {
					hasSenior = true
				}
			}
			if hasAny && !hasSenior {
				v = append(v, vio("H3", nil, wk(w), "%s staffed without a senior", code))
			}
		}
	}
	return v
}
