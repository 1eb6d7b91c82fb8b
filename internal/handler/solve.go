package handler

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/tolga/resident-scheduler/internal/engine"
	"github.com/tolga/resident-scheduler/internal/engineerr"
	"github.com/tolga/resident-scheduler/internal/store"
)

// SolveHandler exposes the engine's solve/validate operations over
// HTTP, serialising concurrent requests for the same year with a
// per-year mutex — informative transport-level concurrency control,
// not part of the engine itself.
type SolveHandler struct {
	eng    *engine.Engine
	reader store.AssignmentReader

	mu      sync.Mutex
	perYear map[int]*sync.Mutex
}

// NewSolveHandler wires eng (the engine service) and reader (used by
// Validate to load the currently persisted assignment).
func NewSolveHandler(eng *engine.Engine, reader store.AssignmentReader) *SolveHandler {
	return &SolveHandler{eng: eng, reader: reader, perYear: make(map[int]*sync.Mutex)}
}

func (h *SolveHandler) lockFor(year int) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.perYear[year]
	if !ok {
		l = &sync.Mutex{}
		h.perYear[year] = l
	}
	return l
}

func yearParam(r *http.Request) (int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	return year, err == nil
}

// Solve handles POST /api/v1/years/{year}/solve.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid year")
		return
	}

	lock := h.lockFor(year)
	lock.Lock()
	defer lock.Unlock()

	result, err := h.eng.Solve(r.Context(), year)
	if err != nil {
		writeEngineError(w, err, result.Conflict)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Validate handles POST /api/v1/years/{year}/validate.
func (h *SolveHandler) Validate(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid year")
		return
	}

	lock := h.lockFor(year)
	lock.Lock()
	defer lock.Unlock()

	if err := h.eng.ValidateStored(r.Context(), year, h.reader); err != nil {
		writeEngineError(w, err, nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"valid": true})
}

func writeEngineError(w http.ResponseWriter, err error, conflict any) {
	ee, ok := engine.AsEngineError(err)
	if !ok {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch ee.Code {
	case engineerr.CodeContextError:
		status = http.StatusUnprocessableEntity
	case engineerr.CodeInfeasible, engineerr.CodeTimeout:
		status = http.StatusConflict
	case engineerr.CodePostValidation:
		status = http.StatusInternalServerError
	}

	respondJSON(w, status, map[string]any{
		"error":    string(ee.Code),
		"message":  ee.Message,
		"hints":    ee.Hints,
		"conflict": conflict,
	})
}
