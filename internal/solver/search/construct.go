// Package search implements the Search Driver (C4): a constructive
// initial-assignment builder followed by simulated-annealing local
// search, grounded on the annealing loop the pack's timetabling solver
// uses (temperature schedule, Metropolis acceptance, random-neighbour
// generation) and adapted to this engine's penalty model in
// internal/solver/model.
package search

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/model"
	solvermodel "github.com/tolga/resident-scheduler/internal/solver/model"
	"github.com/tolga/resident-scheduler/internal/schedcontext"
)

// Construct builds a starting Assignment: forced codes, vacation
// placement, cohort-forced clinic, holiday reciprocity, then a greedy
// fill of the remaining weekly coverage slots and elective credit. The
// result is not guaranteed hard-feasible — local search repairs
// whatever construction could not satisfy outright.
func Construct(sc *schedcontext.SolveContext, cat *catalog.Catalogue, rng *rand.Rand) model.Assignment {
	a := make(model.Assignment, len(sc.Residents))
	for _, res := range sc.Residents {
		a[res.ID] = make(map[int]string, model.WeeksPerYear)
	}

	dom := solvermodel.NewDomain(sc, cat)
	placeForcedCodes(sc, dom, a)
	placeVacations(sc, a, rng)
	placeCohortClinic(sc, a)
	placeHolidayReciprocity(sc, a, rng)
	fillCoverage(sc, cat, dom, a, rng)
	fillElectives(sc, cat, dom, a)
	return a
}

func placeForcedCodes(sc *schedcontext.SolveContext, dom *solvermodel.Domain, a model.Assignment) {
	for _, res := range sc.Residents {
		for w := 1; w <= model.WeeksPerYear; w++ {
			if code, ok := dom.ForcedCode(res, w); ok {
				a.Set(res.ID, w, code)
			}
		}
	}
}

// placeVacations assigns each resident's two VACATION runs, preferring
// a hard-locked window, then the requested block options, then any
// pair of starts ≥12 weeks apart that avoids the holiday weeks and
// already-forced cells.
func placeVacations(sc *schedcontext.SolveContext, a model.Assignment, rng *rand.Rand) {
	cfg := sc.Config
	for _, res := range sc.Residents {
		req := sc.VacationBlockOptions[res.ID]
		startA := pickVacationStart(req.HardLockA, req.BlockA.StartWeeks, res.ID, a, cfg, -1)
		startB := pickVacationStart(req.HardLockB, req.BlockB.StartWeeks, res.ID, a, cfg, startA)
		for _, start := range []int{startA, startB} {
			if start == 0 {
				continue
			}
			a.Set(res.ID, start, catalog.CodeVacation)
			a.Set(res.ID, start+1, catalog.CodeVacation)
		}
	}
}

func pickVacationStart(lock *model.HardLock, options []int, residentID uuid.UUID, a model.Assignment, cfg model.SolverConfig, other int) int {
	if lock != nil {
		return lock.StartWeek
	}
	for _, start := range options {
		if validVacationStart(start, a[residentID], cfg, other) {
			return start
		}
	}
	for start := 1; start+1 <= model.WeeksPerYear; start++ {
		if validVacationStart(start, a[residentID], cfg, other) {
			return start
		}
	}
	return 0
}

func validVacationStart(start int, weeks map[int]string, cfg model.SolverConfig, other int) bool {
	if start < 1 || start+1 > model.WeeksPerYear {
		return false
	}
	if cfg.IsHolidayWeek(start) || cfg.IsHolidayWeek(start+1) {
		return false
	}
	if other > 0 {
		gap := start - other
		if gap < 0 {
			gap = -gap
		}
		if gap < cfg.MinInterblockGapWeeks {
			return false
		}
	}
	if _, ok := weeks[start]; ok {
		return false
	}
	if _, ok := weeks[start+1]; ok {
		return false
	}
	return true
}

// placeCohortClinic forces every cohort member onto the right clinic
// channel during the cohort's clinic weeks.
func placeCohortClinic(sc *schedcontext.SolveContext, a model.Assignment) {
	for cohortID, members := range sc.CohortMembers {
		def, ok := sc.CohortDefs[cohortID]
		if !ok {
			continue
		}
		for _, w := range def.ClinicWeeks {
			for _, residentID := range members {
				if _, set := a[residentID][w]; set {
					continue
				}
				res, ok := sc.Resident(residentID)
				if !ok {
					continue
				}
				if res.IsTY() {
					a.Set(residentID, w, catalog.CodeTYClinic)
				} else {
					a.Set(residentID, w, catalog.CodeClinic)
				}
			}
		}
	}
}

// placeHolidayReciprocity decides, for each resident not already
// pinned by a forced code, whether they work week 26 or week 27 (non-
// PGY3: exactly one; PGY3: a random draw among neither, only the second,
// or only the first), marking the non-worked week(s) ICU_H.
func placeHolidayReciprocity(sc *schedcontext.SolveContext, a model.Assignment, rng *rand.Rand) {
	if len(sc.Config.HolidayWeeks) != 2 {
		return
	}
	w1, w2 := sc.Config.HolidayWeeks[0], sc.Config.HolidayWeeks[1]
	for _, res := range sc.Residents {
		weeks := a[res.ID]
		_, set1 := weeks[w1]
		_, set2 := weeks[w2]
		if set1 && set2 {
			continue
		}
		if res.PGY == model.PGY3 {
			switch rng.Intn(3) {
			case 0:
				if !set1 {
					a.Set(res.ID, w1, catalog.CodeICUH)
				}
				if !set2 {
					a.Set(res.ID, w2, catalog.CodeICUH)
				}
			case 1:
				if !set1 {
					a.Set(res.ID, w1, catalog.CodeICUH)
				}
			default:
				if !set2 {
					a.Set(res.ID, w2, catalog.CodeICUH)
				}
			}
			continue
		}
		if rng.Intn(2) == 0 {
			if !set1 {
				a.Set(res.ID, w1, catalog.CodeICUH)
			}
		} else {
			if !set2 {
				a.Set(res.ID, w2, catalog.CodeICUH)
			}
		}
	}
}

type coverageSlot struct {
	code       string
	seniors    int
	interns    int
}

func nonHolidaySlots() []coverageSlot {
	return []coverageSlot{
		{catalog.CodeA, 1, 2}, {catalog.CodeB, 1, 2}, {catalog.CodeC, 1, 2}, {catalog.CodeD, 1, 2},
		{catalog.CodeICU, 2, 2},
		{catalog.CodeNF, 1, 1}, {catalog.CodeICUN, 1, 1}, {catalog.CodeSWING, 1, 1},
	}
}

// fillCoverage greedily fills the per-week coverage slots from
// residents whose cell is still unset, honouring co-intern pairing
// (a pair is placed together whenever both halves are free).
func fillCoverage(sc *schedcontext.SolveContext, cat *catalog.Catalogue, dom *solvermodel.Domain, a model.Assignment, rng *rand.Rand) {
	pairOf := make(map[uuid.UUID]uuid.UUID, len(sc.CoInternPairs)*2)
	for _, p := range sc.CoInternPairs {
		pairOf[p[0]] = p[1]
		pairOf[p[1]] = p[0]
	}

	residentIDs := make([]uuid.UUID, len(sc.Residents))
	for i, r := range sc.Residents {
		residentIDs[i] = r.ID
	}

	for w := 1; w <= model.WeeksPerYear; w++ {
		free := make([]uuid.UUID, 0, len(residentIDs))
		for _, id := range residentIDs {
			if _, set := a[id][w]; !set {
				free = append(free, id)
			}
		}
		rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

		slots := nonHolidaySlots()
		if !sc.Config.IsHolidayWeek(w) {
			slots = append(slots, coverageSlot{catalog.CodeG, 1, 0})
		}

		for _, slot := range slots {
			needSenior, needIntern := slot.seniors, slot.interns
			for needSenior > 0 || needIntern > 0 {
				id := takeEligible(sc, dom, free, w, slot.code, needSenior > 0, needIntern > 0)
				if id == uuid.Nil {
					break
				}
				free = removeID(free, id)
				res, _ := sc.Resident(id)
				a.Set(id, w, slot.code)
				if res.IsSenior() {
					needSenior--
				} else {
					needIntern--
				}
				if partner, ok := pairOf[id]; ok {
					if _, set := a[partner][w]; !set && containsID(free, partner) {
						pres, _ := sc.Resident(partner)
						if slotWants(slot, pres, needSenior, needIntern) {
							free = removeID(free, partner)
							a.Set(partner, w, slot.code)
							if pres.IsSenior() {
								needSenior--
							} else {
								needIntern--
							}
						}
					}
				}
			}
		}
	}
}

func slotWants(slot coverageSlot, res model.Resident, needSenior, needIntern int) bool {
	if res.IsSenior() {
		return needSenior > 0
	}
	return needIntern > 0
}

func takeEligible(sc *schedcontext.SolveContext, dom *solvermodel.Domain, candidates []uuid.UUID, w int, code string, wantSenior, wantIntern bool) uuid.UUID {
	for _, id := range candidates {
		res, ok := sc.Resident(id)
		if !ok {
			continue
		}
		if res.IsSenior() && !wantSenior {
			continue
		}
		if res.IsIntern() && !wantIntern {
			continue
		}
		if !codeEligible(dom.EligibleCodes(res, w), code) {
			continue
		}
		return id
	}
	return uuid.Nil
}

func codeEligible(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

func removeID(ids []uuid.UUID, target uuid.UUID) []uuid.UUID {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func containsID(ids []uuid.UUID, target uuid.UUID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}

// electiveCandidate names the rotation code and the category weight
// that ranks candidates for a given deficit.
type electiveCandidate struct {
	code     string
	category model.Category
}

var electiveCandidates = []electiveCandidate{
	{catalog.CodeCardio, model.CategoryCardio},
	{catalog.CodeID, model.CategoryID},
	{catalog.CodeNeuro, model.CategoryNeuro},
	{catalog.CodeGeriatrics, model.CategoryGeriatrics},
	{catalog.CodeED, model.CategoryED},
	{catalog.CodeClinic, model.CategoryClinic},
	{catalog.CodeElectiveGen, model.CategoryElective},
}

// fillElectives assigns every still-unset cell to whichever eligible
// elective code has the largest outstanding requirement deficit for
// that resident, falling back to the generic elective slot.
func fillElectives(sc *schedcontext.SolveContext, cat *catalog.Catalogue, dom *solvermodel.Domain, a model.Assignment) {
	for _, res := range sc.Residents {
		deficits := make(map[model.Category]int, len(electiveCandidates))
		have := make(map[model.Category]int, len(electiveCandidates))
		for w := 1; w <= model.WeeksPerYear; w++ {
			if code, ok := a[res.ID][w]; ok {
				if rot, ok := cat.Lookup(code); ok {
					for _, c := range rot.Categories {
						have[c]++
					}
				}
			}
		}
		for _, cand := range electiveCandidates {
			deficits[cand.category] = requirementDeficit(sc, res, cand.category, have[cand.category])
		}

		for w := 1; w <= model.WeeksPerYear; w++ {
			if _, set := a[res.ID][w]; set {
				continue
			}
			eligible := dom.EligibleCodes(res, w)
			best := pickBestElective(eligible, deficits)
			a.Set(res.ID, w, best)
			for _, cand := range electiveCandidates {
				if cand.code == best {
					have[cand.category]++
					deficits[cand.category] = requirementDeficit(sc, res, cand.category, have[cand.category])
				}
			}
		}
	}
}

func requirementDeficit(sc *schedcontext.SolveContext, res model.Resident, category model.Category, have int) int {
	req := 0
	if reqs, ok := sc.RequirementsByPGYTrack[model.RequirementKey{PGY: res.PGY, Track: res.Track}]; ok {
		for _, r := range reqs {
			if r.Category == category {
				req = r.RequiredWeeks
			}
		}
	}
	if req == 0 {
		if reqs, ok := sc.RequirementsByPGYTrack[model.RequirementKey{PGY: res.PGY}]; ok {
			for _, r := range reqs {
				if r.Category == category {
					req = r.RequiredWeeks
				}
			}
		}
	}
	return req - have
}

func pickBestElective(eligible []string, deficits map[model.Category]int) string {
	ranked := make([]electiveCandidate, len(electiveCandidates))
	copy(ranked, electiveCandidates)
	sort.Slice(ranked, func(i, j int) bool {
		return deficits[ranked[i].category] > deficits[ranked[j].category]
	})
	for _, cand := range ranked {
		if codeEligible(eligible, cand.code) {
			return cand.code
		}
	}
	if len(eligible) > 0 {
		return eligible[0]
	}
	return catalog.CodeElectiveGen
}
