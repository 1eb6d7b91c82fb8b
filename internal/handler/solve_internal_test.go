package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/resident-scheduler/internal/engineerr"
)

func requestWithYear(year string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/years/"+year+"/solve", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("year", year)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestYearParam_ParsesValidYearFromRouteContext(t *testing.T) {
	year, ok := yearParam(requestWithYear("2026"))
	require.True(t, ok)
	assert.Equal(t, 2026, year)
}

func TestYearParam_RejectsNonNumericYear(t *testing.T) {
	_, ok := yearParam(requestWithYear("abc"))
	assert.False(t, ok)
}

func TestWriteEngineError_MapsInfeasibleToConflictStatus(t *testing.T) {
	w := httptest.NewRecorder()
	writeEngineError(w, engineerr.NewInfeasible("no candidate", []string{"Alice"}), nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(engineerr.CodeInfeasible), body["error"])
}

func TestWriteEngineError_MapsContextErrorToUnprocessableEntity(t *testing.T) {
	w := httptest.NewRecorder()
	writeEngineError(w, engineerr.NewContextError("odd cohort"), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestWriteEngineError_FallsBackToInternalServerErrorForPlainErrors(t *testing.T) {
	w := httptest.NewRecorder()
	writeEngineError(w, assertionError("boom"), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type assertionError string

func (e assertionError) Error() string { return string(e) }
