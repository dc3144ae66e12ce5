package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func TestHandleHealth(t *testing.T) {
	s := NewServer(Config{ServiceName: "fireball-picks", Port: 0})

	recorder := httptest.NewRecorder()
	s.handleHealth(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body HealthResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "fireball-picks", body.Service)
}

func TestHandleReadyBeforeStart(t *testing.T) {
	s := NewServer(Config{ServiceName: "fireball-picks", Port: 0})

	recorder := httptest.NewRecorder()
	s.handleReady(recorder, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	s.SetReady(true)
	recorder = httptest.NewRecorder()
	s.handleReady(recorder, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandleReadyChecksDatabase(t *testing.T) {
	s := NewServer(Config{ServiceName: "fireball-picks", Port: 0, DB: fakePinger{err: errors.New("connection refused")}})
	s.SetReady(true)

	recorder := httptest.NewRecorder()
	s.handleReady(recorder, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body ReadyResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "not ready", body.Status)
	assert.Contains(t, body.Checks["database"], "connection refused")
}
