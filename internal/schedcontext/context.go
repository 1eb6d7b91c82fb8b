// Package schedcontext implements the Context Builder (C2): it
// assembles the immutable SolveContext the Decision Model runs
// against from the external store's collaborator interfaces
// (internal/store), computing the derived groupings (senior/intern
// indices, co-intern pairs) the solver needs.
package schedcontext

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/tolga/resident-scheduler/internal/engineerr"
	"github.com/tolga/resident-scheduler/internal/model"
	"github.com/tolga/resident-scheduler/internal/store"
)

// SolveContext is the immutable input the Decision Model and Search
// Driver operate on. The caller must not mutate it during a solve.
type SolveContext struct {
	Year      int
	Config    model.SolverConfig
	Residents []model.Resident

	residentByID map[uuid.UUID]model.Resident

	SeniorIDs []uuid.UUID
	InternIDs []uuid.UUID
	TYIDs     []uuid.UUID

	// CoInternPairs pairs intern indices two-by-two per cohort, in
	// sorted order within the cohort: (0,1), (2,3), ...
	CoInternPairs [][2]uuid.UUID

	RequirementsByPGYTrack map[model.RequirementKey][]model.Requirement
	CompletionsByResident  map[uuid.UUID]map[model.Category]int

	// VacationBlockOptions is keyed by resident, pre-filtered so that
	// no candidate start falls in {25, 26, 27}.
	VacationBlockOptions map[uuid.UUID]model.VacationRequest

	CohortDefs    map[uuid.UUID]model.CohortDefinition
	CohortMembers map[uuid.UUID][]uuid.UUID // cohort -> resident IDs, in roster order
}

// Resident looks up a resident by ID. Panics are never used; callers
// within the engine only ever look up IDs the context itself produced.
func (sc *SolveContext) Resident(id uuid.UUID) (model.Resident, bool) {
	r, ok := sc.residentByID[id]
	return r, ok
}

// Build assembles a SolveContext from the external store's
// collaborator interfaces for the given year, applying every derived
// computation the solver needs. Returns a CodeContextError
// *engineerr.EngineError on malformed input (odd cohort intern count,
// oversize cohort).
func Build(ctx context.Context, year int, src store.Sources) (*SolveContext, error) {
	residents, err := src.Residents.ListResidents(ctx, year)
	if err != nil {
		return nil, engineerr.NewContextError("failed to list residents: " + err.Error())
	}
	requirements, err := src.Requirements.ListRequirements(ctx, year)
	if err != nil {
		return nil, engineerr.NewContextError("failed to list requirements: " + err.Error())
	}
	completions, err := src.Completions.ListCompletions(ctx, year)
	if err != nil {
		return nil, engineerr.NewContextError("failed to list completions: " + err.Error())
	}
	vacationRequests, err := src.VacationRequests.ListVacationRequests(ctx, year)
	if err != nil {
		return nil, engineerr.NewContextError("failed to list vacation requests: " + err.Error())
	}
	cohorts, err := src.Cohorts.ListCohorts(ctx, year)
	if err != nil {
		return nil, engineerr.NewContextError("failed to list cohorts: " + err.Error())
	}
	cohortDefs, err := src.Cohorts.ListCohortDefinitions(ctx, year)
	if err != nil {
		return nil, engineerr.NewContextError("failed to list cohort definitions: " + err.Error())
	}
	cfg, err := src.Config.GetSolverConfig(ctx, year)
	if err != nil {
		return nil, engineerr.NewContextError("failed to load solver config: " + err.Error())
	}

	sc := &SolveContext{
		Year:                   year,
		Config:                 cfg,
		Residents:              residents,
		residentByID:           make(map[uuid.UUID]model.Resident, len(residents)),
		RequirementsByPGYTrack: make(map[model.RequirementKey][]model.Requirement),
		CompletionsByResident:  make(map[uuid.UUID]map[model.Category]int),
		VacationBlockOptions:   make(map[uuid.UUID]model.VacationRequest),
		CohortDefs:             make(map[uuid.UUID]model.CohortDefinition, len(cohortDefs)),
		CohortMembers:          make(map[uuid.UUID][]uuid.UUID),
	}

	for _, r := range residents {
		sc.residentByID[r.ID] = r
		if r.IsSenior() {
			sc.SeniorIDs = append(sc.SeniorIDs, r.ID)
		} else {
			sc.InternIDs = append(sc.InternIDs, r.ID)
		}
		if r.IsTY() {
			sc.TYIDs = append(sc.TYIDs, r.ID)
		}
		if r.CohortID != nil {
			sc.CohortMembers[*r.CohortID] = append(sc.CohortMembers[*r.CohortID], r.ID)
		}
	}

	for _, req := range requirements {
		key := model.RequirementKey{PGY: req.PGY, Track: req.Track}
		sc.RequirementsByPGYTrack[key] = append(sc.RequirementsByPGYTrack[key], req)
	}

	for _, comp := range completions {
		byCat, ok := sc.CompletionsByResident[comp.ResidentID]
		if !ok {
			byCat = make(map[model.Category]int)
			sc.CompletionsByResident[comp.ResidentID] = byCat
		}
		byCat[comp.Category] += comp.WeeksDone
	}

	for _, vr := range vacationRequests {
		sc.VacationBlockOptions[vr.ResidentID] = filterVacationStarts(vr)
	}

	_ = cohorts // membership is derived from residents; the roster is informative only
	for _, def := range cohortDefs {
		def.ClinicWeeks = excludeHolidayWeeks(def.ClinicWeeks, cfg)
		sc.CohortDefs[def.CohortID] = def
	}

	for _, members := range sc.CohortMembers {
		if len(members) > model.MaxCohortSize {
			return nil, engineerr.NewContextError(
				"cohort exceeds the maximum of 12 residents")
		}
	}

	pairs, err := buildCoInternPairs(sc)
	if err != nil {
		return nil, err
	}
	sc.CoInternPairs = pairs

	return sc, nil
}

// filterVacationStarts drops block-option start weeks in {25,26,27},
// which would overlap the holiday weeks.
func filterVacationStarts(vr model.VacationRequest) model.VacationRequest {
	vr.BlockA.StartWeeks = filterStarts(vr.BlockA.StartWeeks)
	vr.BlockB.StartWeeks = filterStarts(vr.BlockB.StartWeeks)
	return vr
}

func filterStarts(starts []int) []int {
	out := starts[:0:0]
	for _, s := range starts {
		if s == 25 || s == 26 || s == 27 {
			continue
		}
		out = append(out, s)
	}
	return out
}

func excludeHolidayWeeks(weeks []int, cfg model.SolverConfig) []int {
	out := weeks[:0:0]
	for _, w := range weeks {
		if !cfg.IsHolidayWeek(w) {
			out = append(out, w)
		}
	}
	return out
}

// buildCoInternPairs pairs intern indices two-by-two in sorted order
// per cohort: (0,1), (2,3), … Interns with no partner (odd cohort
// intern count) raise a context-build error.
func buildCoInternPairs(sc *SolveContext) ([][2]uuid.UUID, error) {
	var pairs [][2]uuid.UUID

	for cohortID, members := range sc.CohortMembers {
		var interns []model.Resident
		for _, id := range members {
			r := sc.residentByID[id]
			if r.IsIntern() {
				interns = append(interns, r)
			}
		}
		sort.Slice(interns, func(i, j int) bool {
			if interns[i].Name != interns[j].Name {
				return interns[i].Name < interns[j].Name
			}
			return interns[i].ID.String() < interns[j].ID.String()
		})
		if len(interns)%2 != 0 {
			return nil, engineerr.NewContextError(
				"cohort has an odd number of interns and cannot form co-intern pairs: " + cohortID.String())
		}
		for i := 0; i+1 < len(interns); i += 2 {
			pairs = append(pairs, [2]uuid.UUID{interns[i].ID, interns[i+1].ID})
		}
	}

	return pairs, nil
}
