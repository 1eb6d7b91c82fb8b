// Package engine is the thin service layer both the HTTP handlers and
// the CLI dispatch into: Context Builder → Search Driver → Post-Solution
// Validator → persistence → Requirement Sync, composed from small
// per-concern services rather than having transports call the engine
// components directly.
package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/engineerr"
	"github.com/tolga/resident-scheduler/internal/model"
	"github.com/tolga/resident-scheduler/internal/reqsync"
	"github.com/tolga/resident-scheduler/internal/schedcontext"
	"github.com/tolga/resident-scheduler/internal/solver/search"
	"github.com/tolga/resident-scheduler/internal/solver/validate"
	"github.com/tolga/resident-scheduler/internal/store"
)

// Engine runs solves and validations for a given store-backed programme.
type Engine struct {
	src     store.Sources
	writer  store.AssignmentWriter
	cat     *catalog.Catalogue
	log     zerolog.Logger
}

// New builds an Engine over src (read collaborators) and writer
// (persistence), using the fixed rotation catalogue.
func New(src store.Sources, writer store.AssignmentWriter, log zerolog.Logger) *Engine {
	return &Engine{src: src, writer: writer, cat: catalog.New(), log: log}
}

// SolveResult is what Solve returns on every path, successful or not.
type SolveResult struct {
	Status     model.SolveStatus
	Assignment model.Assignment
	Tallies    map[string]reqsync.Tally
	Conflict   *model.ConflictReport
}

// Solve runs one full solve for year: builds context, drives the
// search, independently validates the result, persists it when the
// solve succeeded, and then re-syncs requirement tallies.
func (e *Engine) Solve(ctx context.Context, year int) (SolveResult, error) {
	sc, err := schedcontext.Build(ctx, year, e.src)
	if err != nil {
		return SolveResult{}, err
	}

	result, err := search.Drive(ctx, sc, e.cat, e.log)
	if err != nil {
		return SolveResult{Status: result.Status, Conflict: result.Conflict}, err
	}

	if err := validate.Validate(sc, e.cat, result.Assignment); err != nil {
		return SolveResult{Status: result.Status}, err
	}

	if err := e.writer.SaveAssignment(ctx, year, result.Assignment); err != nil {
		return SolveResult{Status: result.Status}, fmt.Errorf("save assignment for year %d: %w", year, err)
	}

	tallies := reqsync.Compute(sc, e.cat, result.Assignment)
	byName := make(map[string]reqsync.Tally, len(tallies))
	for _, res := range sc.Residents {
		byName[res.Name] = tallies[res.ID]
	}

	e.log.Info().Int("year", year).Str("status", string(result.Status)).Msg("solve completed")
	return SolveResult{Status: result.Status, Assignment: result.Assignment, Tallies: byName}, nil
}

// ValidateStored re-checks the assignment currently persisted for year
// against every hard constraint and requirement minimum, without
// running a new search.
func (e *Engine) ValidateStored(ctx context.Context, year int, reader store.AssignmentReader) error {
	sc, err := schedcontext.Build(ctx, year, e.src)
	if err != nil {
		return err
	}
	a, err := reader.GetAssignment(ctx, year)
	if err != nil {
		return err
	}
	return validate.Validate(sc, e.cat, a)
}

// BuildContext exposes the Context Builder for callers (rollover, CLI)
// that need a SolveContext without running a full solve.
func (e *Engine) BuildContext(ctx context.Context, year int) (*schedcontext.SolveContext, error) {
	return schedcontext.Build(ctx, year, e.src)
}

// Catalogue returns the shared, read-only rotation catalogue.
func (e *Engine) Catalogue() *catalog.Catalogue {
	return e.cat
}

// AsEngineError unwraps err into an *engineerr.EngineError if it is
// one, so transports can map engine failure codes to status codes.
func AsEngineError(err error) (*engineerr.EngineError, bool) {
	ee, ok := err.(*engineerr.EngineError)
	return ee, ok
}
