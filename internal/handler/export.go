package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/model"
	"github.com/tolga/resident-scheduler/internal/scheduleexport"
	"github.com/tolga/resident-scheduler/internal/store"
)

// ExportHandler renders a solved year's schedule as an .xlsx download.
type ExportHandler struct {
	residents store.ResidentSource
	cohorts   store.CohortSource
	reader    store.AssignmentReader
	cat       *catalog.Catalogue
}

// NewExportHandler wires the collaborators Build needs.
func NewExportHandler(residents store.ResidentSource, cohorts store.CohortSource, reader store.AssignmentReader, cat *catalog.Catalogue) *ExportHandler {
	return &ExportHandler{residents: residents, cohorts: cohorts, reader: reader, cat: cat}
}

// Export handles GET /api/v1/years/{year}/export.xlsx.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid year")
		return
	}

	residents, err := h.residents.ListResidents(r.Context(), year)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	cohorts, err := h.cohorts.ListCohorts(r.Context(), year)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	assignment, err := h.reader.GetAssignment(r.Context(), year)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	names := make(map[uuid.UUID]string, len(cohorts))
	for _, c := range cohorts {
		names[c.ID] = c.Name
	}
	cohortName := func(res *model.Resident) string {
		if res.CohortID == nil {
			return "￿" // sort unassigned residents last
		}
		return names[*res.CohortID]
	}

	xlsx, err := scheduleexport.Build(h.cat, residents, assignment, cohortName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"schedule.xlsx\"")
	_, _ = w.Write(xlsx)
}
