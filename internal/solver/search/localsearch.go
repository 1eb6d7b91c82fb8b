package search

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/model"
	solvermodel "github.com/tolga/resident-scheduler/internal/solver/model"
	"github.com/tolga/resident-scheduler/internal/schedcontext"
)

// AnnealConfig tunes the Metropolis acceptance schedule.
type AnnealConfig struct {
	InitialTemp float64
	CoolingRate float64 // multiplicative decay applied every iteration
	Iterations  int
}

// DefaultAnnealConfig scales iteration count to the roster size so
// larger years get proportionally more search budget within the same
// wall-clock window.
func DefaultAnnealConfig(residentCount int) AnnealConfig {
	return AnnealConfig{
		InitialTemp: 50_000,
		CoolingRate: 0.999,
		Iterations:  residentCount * model.WeeksPerYear * 40,
	}
}

// energy combines the hard-violation count (at HardViolationWeight
// each) with the soft objective, enforcing a minimise-hard-then-soft
// priority via the weight gap between tiers.
func energy(hc *solvermodel.HardChecker, soft *solvermodel.SoftScorer, a model.Assignment) decimal.Decimal {
	violations := hc.CheckAll(a)
	hardCost := solvermodel.HardViolationWeight.Mul(decimal.NewFromInt(int64(len(violations))))
	return hardCost.Add(soft.Score(a).Total())
}

// Anneal runs simulated annealing over a starting Assignment: each
// iteration proposes a single-cell reassignment to a different
// domain-eligible code (drawn uniformly from all (resident, week)
// cells) and accepts it per the Metropolis criterion, cooling the
// temperature geometrically every iteration.
func Anneal(sc *schedcontext.SolveContext, cat *catalog.Catalogue, a model.Assignment, cfg AnnealConfig, rng *rand.Rand) model.Assignment {
	dom := solvermodel.NewDomain(sc, cat)
	hc := solvermodel.NewHardChecker(sc, cat)
	soft := solvermodel.NewSoftScorer(sc, cat)

	residentIDs := make([]uuid.UUID, len(sc.Residents))
	for i, r := range sc.Residents {
		residentIDs[i] = r.ID
	}

	current := energy(hc, soft, a)
	temperature := cfg.InitialTemp

	for i := 0; i < cfg.Iterations; i++ {
		if i > 0 {
			temperature *= cfg.CoolingRate
			if temperature < 1e-6 {
				temperature = 1e-6
			}
		}
		residentID := residentIDs[rng.Intn(len(residentIDs))]
		res, ok := sc.Resident(residentID)
		if !ok {
			continue
		}
		w := rng.Intn(model.WeeksPerYear) + 1
		if _, forced := dom.ForcedCode(res, w); forced {
			continue
		}

		eligible := dom.EligibleCodes(res, w)
		if len(eligible) < 2 {
			continue
		}
		oldCode := a[residentID][w]
		newCode := eligible[rng.Intn(len(eligible))]
		if newCode == oldCode {
			continue
		}

		a.Set(residentID, w, newCode)
		candidate := energy(hc, soft, a)
		delta := candidate.Sub(current)

		if delta.Sign() <= 0 || rng.Float64() < math.Exp(-delta.InexactFloat64()/temperature) {
			current = candidate
		} else {
			a.Set(residentID, w, oldCode)
		}
	}

	return a
}
