package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/events", nil)

	JSON(w, r, http.StatusCreated, map[string]string{"id": "abc"})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.JSONEq(t, `{"id":"abc"}`, w.Body.String())
}

func TestErrorClient(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/events", nil)

	Error(w, r, http.StatusForbidden, "you can only modify your own events", nil)

	require.Equal(t, http.StatusForbidden, w.Code)
	var body Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "you can only modify your own events", body.Message)
}

func TestErrorServerHidesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/events", nil)

	Error(w, r, http.StatusInternalServerError, "anything", errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "internal server error", body.Message)
	require.NotContains(t, w.Body.String(), "connection refused")
}
