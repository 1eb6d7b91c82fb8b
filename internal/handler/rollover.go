package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tolga/resident-scheduler/internal/rollover"
	"github.com/tolga/resident-scheduler/internal/store"
)

// RolloverHandler exposes rollover.Run over HTTP.
type RolloverHandler struct {
	src    store.Sources
	writer store.RosterWriter
}

// NewRolloverHandler wires src (read collaborators) and writer
// (roster persistence) for the rollover route.
func NewRolloverHandler(src store.Sources, writer store.RosterWriter) *RolloverHandler {
	return &RolloverHandler{src: src, writer: writer}
}

type rolloverRequest struct {
	FromYear      int  `json:"from_year"`
	ToYear        int  `json:"to_year"`
	ChiefCoverage bool `json:"chief_coverage"`
	DryRun        bool `json:"dry_run"`
}

// Rollover handles POST /api/v1/rollover.
func (h *RolloverHandler) Rollover(w http.ResponseWriter, r *http.Request) {
	var req rolloverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plan, err := rollover.Run(r.Context(), h.src, req.FromYear, req.ToYear, rollover.Options{ChiefCoverage: req.ChiefCoverage})
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if !req.DryRun {
		if err := h.writer.SaveRoster(r.Context(), req.ToYear, plan.Residents, plan.Cohorts, plan.CohortDefs); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	respondJSON(w, http.StatusOK, plan)
}
