package search

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/engineerr"
	"github.com/tolga/resident-scheduler/internal/model"
	solvermodel "github.com/tolga/resident-scheduler/internal/solver/model"
	"github.com/tolga/resident-scheduler/internal/schedcontext"
)

// Result is what Drive returns on every terminal state.
type Result struct {
	Status     model.SolveStatus
	Assignment model.Assignment
	Conflict   *model.ConflictReport
}

// Drive runs the Search Driver: one Construct + Anneal attempt per
// worker (sc.Config.NumWorkers), each on its own *rand.Rand, racing
// against sc.Config.TimeLimitSeconds (0 = unbounded). The
// lowest-energy attempt wins; CheckAll on the winner decides the
// terminal status.
func Drive(ctx context.Context, sc *schedcontext.SolveContext, cat *catalog.Catalogue, log zerolog.Logger) (Result, error) {
	cfg := sc.Config
	workers := cfg.NumWorkers
	if workers < 1 {
		workers = 1
	}

	runCtx := ctx
	var cancel context.CancelFunc
	timedOut := false
	if cfg.TimeLimitSeconds > 0 {
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeLimitSeconds)*time.Second)
		defer cancel()
	}

	type attempt struct {
		assignment model.Assignment
		energy     decimal.Decimal
	}
	results := make(chan attempt, workers)

	hc := solvermodel.NewHardChecker(sc, cat)
	soft := solvermodel.NewSoftScorer(sc, cat)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		seed := workerSeed(cfg.RandomSeed, i)
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			a := Construct(sc, cat, rng)
			annealCfg := DefaultAnnealConfig(len(sc.Residents))
			a = annealWithDeadline(runCtx, sc, cat, a, annealCfg, rng)
			results <- attempt{assignment: a, energy: energy(hc, soft, a)}
		}(seed)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var best attempt
	haveBest := false
	for r := range results {
		if !haveBest || r.energy.LessThan(best.energy) {
			best = r
			haveBest = true
		}
	}
	if runCtx.Err() == context.DeadlineExceeded {
		timedOut = true
	}
	log.Info().Int("workers", workers).Bool("timed_out", timedOut).Msg("search driver finished")

	if !haveBest {
		return Result{}, engineerr.NewInfeasible("search produced no candidate assignment", hardLockHints(sc))
	}

	violations := hc.CheckAll(best.assignment)
	if len(violations) == 0 {
		status := model.StatusOptimal
		if timedOut {
			status = model.StatusFeasible
		}
		return Result{Status: status, Assignment: best.assignment}, nil
	}

	hints := make([]string, 0, len(violations))
	for _, v := range violations {
		hints = append(hints, v.String())
	}
	hints = append(hints, hardLockHints(sc)...)

	if timedOut {
		return Result{Status: model.StatusTimeout, Conflict: &model.ConflictReport{
			Status: model.StatusTimeout, Hints: hints, HardLockWindows: hardLockWindows(sc),
		}}, engineerr.NewTimeout("search budget elapsed with unresolved hard violations", hints)
	}
	return Result{Status: model.StatusInfeasible, Conflict: &model.ConflictReport{
		Status: model.StatusInfeasible, Hints: hints, HardLockWindows: hardLockWindows(sc),
	}}, engineerr.NewInfeasible("search converged without resolving every hard violation", hints)
}

func workerSeed(base *int64, worker int) int64 {
	if base != nil {
		return *base + int64(worker)
	}
	return time.Now().UnixNano() + int64(worker)
}

// annealWithDeadline runs Anneal in bounded chunks so a cancelled
// context stops the search promptly instead of riding out the full
// iteration budget.
func annealWithDeadline(ctx context.Context, sc *schedcontext.SolveContext, cat *catalog.Catalogue, a model.Assignment, cfg AnnealConfig, rng *rand.Rand) model.Assignment {
	const chunk = 2000
	remaining := cfg.Iterations
	for remaining > 0 {
		select {
		case <-ctx.Done():
			return a
		default:
		}
		n := chunk
		if n > remaining {
			n = remaining
		}
		a = Anneal(sc, cat, a, AnnealConfig{InitialTemp: cfg.InitialTemp, CoolingRate: cfg.CoolingRate, Iterations: n}, rng)
		remaining -= n
		cfg.InitialTemp *= math.Pow(cfg.CoolingRate, float64(n))
	}
	return a
}

func hardLockHints(sc *schedcontext.SolveContext) []string {
	var hints []string
	for _, w := range hardLockWindows(sc) {
		hints = append(hints, w.ResidentName)
	}
	return hints
}

func hardLockWindows(sc *schedcontext.SolveContext) []model.HardLockWindow {
	var windows []model.HardLockWindow
	for _, res := range sc.Residents {
		req, ok := sc.VacationBlockOptions[res.ID]
		if !ok {
			continue
		}
		if req.HardLockA != nil {
			windows = append(windows, model.HardLockWindow{
				ResidentID: res.ID, ResidentName: res.Name,
				StartWeek: req.HardLockA.StartWeek, Length: sc.Config.VacationRunLength,
			})
		}
		if req.HardLockB != nil {
			windows = append(windows, model.HardLockWindow{
				ResidentID: res.ID, ResidentName: res.Name,
				StartWeek: req.HardLockB.StartWeek, Length: sc.Config.VacationRunLength,
			})
		}
	}
	return windows
}
