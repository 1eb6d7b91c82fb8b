package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON_WritesStatusAndBody(t *testing.T) {
	w := httptest.NewRecorder()
	respondJSON(w, 201, map[string]string{"ok": "yes"})

	assert.Equal(t, 201, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "yes", body["ok"])
}

func TestRespondError_IncludesMessageAndStatus(t *testing.T) {
	w := httptest.NewRecorder()
	respondError(w, 400, "invalid year")

	assert.Equal(t, 400, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid year", body["message"])
	assert.Equal(t, float64(400), body["status"])
}
