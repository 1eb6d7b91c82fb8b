package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/model"
	"github.com/tolga/resident-scheduler/internal/reqsync"
	"github.com/tolga/resident-scheduler/internal/schedcontext"
)

// strictRequirementCategories are the annual categories whose deficit
// is penalised at the "strict requirement" tier, plus every cumulative
// category (the annual shortfall toward the graduation minimum also
// counts here, separately from the graduation-tier deficit itself).
var strictRequirementCategories = []model.Category{
	model.CategoryFloors, model.CategoryICU, model.CategoryClinic, model.CategoryED,
	model.CategoryNeuro, model.CategoryGeriatrics, model.CategoryCardio, model.CategoryID,
	model.CategoryTYClinic,
}

// SoftBreakdown itemises every soft term so callers (local search
// scoring, operator-facing diagnostics) can see which tier dominates.
type SoftBreakdown struct {
	Graduation        decimal.Decimal
	StrictRequirement decimal.Decimal
	TeamGStagger      decimal.Decimal
	SeniorCoverage    decimal.Decimal
	SurplusFloor      decimal.Decimal
	ElectiveSoft      decimal.Decimal
	GlobalStagger     decimal.Decimal
	ElectiveBurst     decimal.Decimal
	ClinicBurst       decimal.Decimal
	TeamGOff          decimal.Decimal
	PGY3Holiday       decimal.Decimal
	PGY3LateCore      decimal.Decimal
	Transitions       decimal.Decimal
	VacationBonus     decimal.Decimal // positive magnitude; Total() subtracts it
}

// Total sums every penalty tier and subtracts the vacation bonus.
func (b SoftBreakdown) Total() decimal.Decimal {
	sum := b.Graduation.
		Add(b.StrictRequirement).
		Add(b.TeamGStagger).
		Add(b.SeniorCoverage).
		Add(b.SurplusFloor).
		Add(b.ElectiveSoft).
		Add(b.GlobalStagger).
		Add(b.ElectiveBurst).
		Add(b.ClinicBurst).
		Add(b.TeamGOff).
		Add(b.PGY3Holiday).
		Add(b.PGY3LateCore).
		Add(b.Transitions)
	return sum.Sub(b.VacationBonus)
}

// SoftScorer evaluates the weighted soft objective for a candidate
// Assignment; the local search uses it (plus HardChecker's violation
// count at HardViolationWeight) as its energy function.
type SoftScorer struct {
	sc  *schedcontext.SolveContext
	cat *catalog.Catalogue
}

// NewSoftScorer builds a scorer bound to sc/cat.
func NewSoftScorer(sc *schedcontext.SolveContext, cat *catalog.Catalogue) *SoftScorer {
	return &SoftScorer{sc: sc, cat: cat}
}

// Score computes every soft term over a.
func (s *SoftScorer) Score(a model.Assignment) SoftBreakdown {
	var b SoftBreakdown
	tallies := reqsync.Compute(s.sc, s.cat, a)

	b.Graduation = s.graduationDeficits(tallies)
	b.StrictRequirement = s.strictRequirementDeficits(tallies)
	b.TeamGStagger = s.teamGStagger(a)
	b.SeniorCoverage = s.seniorCoverage(a)
	b.SurplusFloor = s.surplusFloor(tallies)
	b.ElectiveSoft = s.electiveSoft(tallies)
	b.GlobalStagger = s.globalStagger(a)
	b.ElectiveBurst = s.electiveBurst(a)
	b.ClinicBurst = s.clinicBurst(a)
	b.TeamGOff = s.teamGOff(a)
	b.PGY3Holiday = s.pgy3Holiday(a, tallies)
	b.PGY3LateCore = s.pgy3LateCore(a)
	b.Transitions = s.transitions(a)
	b.VacationBonus = s.vacationBonus(a)
	return b
}

func (s *SoftScorer) graduationDeficits(tallies map[uuid.UUID]reqsync.Tally) decimal.Decimal {
	total := decimal.Zero
	for _, res := range s.sc.Residents {
		if res.PGY != model.PGY3 {
			continue
		}
		combined := reqsync.WithPriorCompletions(s.sc, res.ID, tallies[res.ID])
		for category, min := range graduationMinima {
			deficit := min - combined[category]
			if deficit > 0 {
				total = total.Add(WeightGraduation.Mul(decimal.NewFromInt(int64(deficit))))
			}
		}
	}
	return total
}

func (s *SoftScorer) strictRequirementDeficits(tallies map[uuid.UUID]reqsync.Tally) decimal.Decimal {
	total := decimal.Zero
	for _, res := range s.sc.Residents {
		t := tallies[res.ID]
		for _, category := range strictRequirementCategories {
			req := reqsync.RequirementWeeks(s.sc, res, category)
			deficit := req - t[category]
			if deficit > 0 {
				total = total.Add(WeightStrictRequirement.Mul(decimal.NewFromInt(int64(deficit))))
			}
		}
	}
	return total
}

func (s *SoftScorer) surplusFloor(tallies map[uuid.UUID]reqsync.Tally) decimal.Decimal {
	total := decimal.Zero
	for _, res := range s.sc.Residents {
		t := tallies[res.ID]
		req := reqsync.RequirementWeeks(s.sc, res, model.CategoryFloors)
		surplus := t[model.CategoryFloors] - req
		if surplus > 0 {
			total = total.Add(WeightSurplusFloor.Mul(decimal.NewFromInt(int64(surplus))))
		}
	}
	return total
}

func (s *SoftScorer) electiveSoft(tallies map[uuid.UUID]reqsync.Tally) decimal.Decimal {
	total := decimal.Zero
	for _, res := range s.sc.Residents {
		t := tallies[res.ID]
		req := reqsync.RequirementWeeks(s.sc, res, model.CategoryElective)
		deficit := req - t[model.CategoryElective]
		if deficit > 0 {
			total = total.Add(WeightElectiveSoft.Mul(decimal.NewFromInt(int64(deficit))))
		}
	}
	return total
}

// teamGStagger penalises each week beyond 2 in a senior's consecutive
// run on team G.
func (s *SoftScorer) teamGStagger(a model.Assignment) decimal.Decimal {
	total := decimal.Zero
	for _, res := range s.sc.Residents {
		if !res.IsSenior() {
			continue
		}
		weeks := a[res.ID]
		run := 0
		for w := 1; w <= model.WeeksPerYear+1; w++ {
			onG := w <= model.WeeksPerYear && weeks[w] == catalog.CodeG
			if onG {
				run++
				continue
			}
			if run > 2 {
				total = total.Add(WeightTeamGStagger.Mul(decimal.NewFromInt(int64(run - 2))))
			}
			run = 0
		}
	}
	return total
}

// seniorCoverage penalises GERIATRICS/NEURO weeks with no senior, as a
// soft term. Only meaningful when RelaxGeriatricsCoverage moved the
// hard check (CheckSeniorSpecialtyCoverage) off; left harmless (always
// zero once the hard check already guarantees it) otherwise.
func (s *SoftScorer) seniorCoverage(a model.Assignment) decimal.Decimal {
	total := decimal.Zero
	for w := 1; w <= model.WeeksPerYear; w++ {
		if s.sc.Config.IsHolidayWeek(w) {
			continue
		}
		for _, code := range []string{catalog.CodeGeriatrics, catalog.CodeNeuro} {
			hasAny, hasSenior := false, false
			for _, res := range s.sc.Residents {
				if a[res.ID][w] != code {
					continue
				}
				hasAny = true
				if res.IsSenior() {
					hasSenior = true
				}
			}
			if hasAny && !hasSenior {
				total = total.Add(WeightSeniorCoverage)
			}
		}
	}
	return total
}

var macroGroups = [][]string{
	{catalog.CodeA, catalog.CodeB, catalog.CodeC, catalog.CodeD, catalog.CodeG},
	{catalog.CodeNF, catalog.CodeICUN, catalog.CodeSWING},
}

// globalStagger penalises any 6-of-6 consecutive weeks in the same
// macro-group (FLOOR or NIGHTS).
func (s *SoftScorer) globalStagger(a model.Assignment) decimal.Decimal {
	total := decimal.Zero
	for _, res := range s.sc.Residents {
		weeks := a[res.ID]
		for _, group := range macroGroups {
			member := func(code string) bool {
				for _, c := range group {
					if c == code {
						return true
					}
				}
				return false
			}
			for w := 1; w+5 <= model.WeeksPerYear; w++ {
				all := true
				for i := 0; i < 6; i++ {
					if !member(weeks[w+i]) {
						all = false
						break
					}
				}
				if all {
					total = total.Add(WeightGlobalStagger)
				}
			}
		}
	}
	return total
}

var electiveCodes = map[string]bool{
	catalog.CodeCardio: true, catalog.CodeID: true, catalog.CodeNeuro: true,
	catalog.CodeGeriatrics: true, catalog.CodeED: true, catalog.CodeElectiveGen: true,
}

// electiveBurst penalises 3- and 4-week consecutive elective runs for
// PGY1/PGY2 residents (PGY3 and TY residents are not penalised).
func (s *SoftScorer) electiveBurst(a model.Assignment) decimal.Decimal {
	total := decimal.Zero
	for _, res := range s.sc.Residents {
		if res.PGY != model.PGY1 && res.PGY != model.PGY2 {
			continue
		}
		weeks := a[res.ID]
		run := 0
		flush := func() {
			switch {
			case run >= 4:
				total = total.Add(WeightElectiveBurst4)
			case run == 3:
				total = total.Add(WeightElectiveBurst3)
			}
		}
		for w := 1; w <= model.WeeksPerYear; w++ {
			if electiveCodes[weeks[w]] {
				run++
				continue
			}
			flush()
			run = 0
		}
		flush()
	}
	return total
}

// clinicBurst penalises any 3-of-3 consecutive clinic weeks.
func (s *SoftScorer) clinicBurst(a model.Assignment) decimal.Decimal {
	total := decimal.Zero
	for _, res := range s.sc.Residents {
		weeks := a[res.ID]
		for w := 1; w+2 <= model.WeeksPerYear; w++ {
			if isClinic(weeks[w]) && isClinic(weeks[w+1]) && isClinic(weeks[w+2]) {
				total = total.Add(WeightClinicBurst)
			}
		}
	}
	return total
}

func isClinic(code string) bool {
	return code == catalog.CodeClinic || code == catalog.CodeClinicStar || code == catalog.CodeTYClinic
}

// teamGOff rewards (via penalty when absent) a staffed team G each
// non-holiday week.
func (s *SoftScorer) teamGOff(a model.Assignment) decimal.Decimal {
	total := decimal.Zero
	for w := 1; w <= model.WeeksPerYear; w++ {
		if s.sc.Config.IsHolidayWeek(w) {
			continue
		}
		staffed := false
		for _, res := range s.sc.Residents {
			if a[res.ID][w] == catalog.CodeG {
				staffed = true
				break
			}
		}
		if !staffed {
			total = total.Add(WeightTeamGOff)
		}
	}
	return total
}

// pgy3Holiday penalises a PGY3 working (i.e., not ICU_H) a holiday
// week, discounted by that resident's already-completed core weeks.
func (s *SoftScorer) pgy3Holiday(a model.Assignment, tallies map[uuid.UUID]reqsync.Tally) decimal.Decimal {
	total := decimal.Zero
	for _, res := range s.sc.Residents {
		if res.PGY != model.PGY3 {
			continue
		}
		combined := reqsync.WithPriorCompletions(s.sc, res.ID, tallies[res.ID])
		priorCore := combined[model.CategoryCardio] + combined[model.CategoryNeuro] +
			combined[model.CategoryID] + combined[model.CategoryGeriatrics] + combined[model.CategoryED]
		for _, w := range s.sc.Config.HolidayWeeks {
			if a[res.ID][w] != catalog.CodeICUH {
				total = total.Add(PGY3HolidayPenalty(priorCore))
			}
		}
	}
	return total
}

// pgy3LateCore penalises a PGY3 in FLOORS or ICU after week 30.
func (s *SoftScorer) pgy3LateCore(a model.Assignment) decimal.Decimal {
	total := decimal.Zero
	for _, res := range s.sc.Residents {
		if res.PGY != model.PGY3 {
			continue
		}
		for w := 31; w <= model.WeeksPerYear; w++ {
			code := a[res.ID][w]
			if isABCD(code) || isICUDay(code) {
				total = total.Add(WeightPGY3LateCore)
			}
		}
	}
	return total
}

// transitions counts, across every resident, the number of consecutive
// week pairs whose code differs (favours multi-week blocks).
func (s *SoftScorer) transitions(a model.Assignment) decimal.Decimal {
	count := 0
	for _, res := range s.sc.Residents {
		weeks := a[res.ID]
		for w := 1; w < model.WeeksPerYear; w++ {
			if weeks[w] != weeks[w+1] {
				count++
			}
		}
	}
	return WeightTransition.Mul(decimal.NewFromInt(int64(count)))
}

// vacationBonus returns the positive magnitude the objective subtracts
// for every non-hard-lock vacation request whose placed run start
// matches a requested option.
func (s *SoftScorer) vacationBonus(a model.Assignment) decimal.Decimal {
	total := decimal.Zero
	for _, res := range s.sc.Residents {
		req, ok := s.sc.VacationBlockOptions[res.ID]
		if !ok {
			continue
		}
		weeks := a[res.ID]
		var vacWeeks []int
		for w := 1; w <= model.WeeksPerYear; w++ {
			if weeks[w] == catalog.CodeVacation {
				vacWeeks = append(vacWeeks, w)
			}
		}
		runs := consecutiveRuns(vacWeeks)
		bonus := VacationPriorityBonus(req.Priority)
		if req.HardLockA == nil && len(req.BlockA.StartWeeks) > 0 && anyRunStarts(runs, req.BlockA.StartWeeks) {
			total = total.Add(bonus)
		}
		if req.HardLockB == nil && len(req.BlockB.StartWeeks) > 0 && anyRunStarts(runs, req.BlockB.StartWeeks) {
			total = total.Add(bonus)
		}
	}
	return total
}
