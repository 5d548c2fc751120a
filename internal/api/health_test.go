// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package api_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/buihoang/memoria/internal/api"
)

// countingRecorder tracks how many times the status line is written.
type countingRecorder struct {
	*httptest.ResponseRecorder
	headerWrites int
}

func (r *countingRecorder) WriteHeader(code int) {
	r.headerWrites++
	r.ResponseRecorder.WriteHeader(code)
}

func newReadiness(deps api.HealthDependencies) http.HandlerFunc {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	_, readiness := api.NewHealthHandlers(deps, logger)
	return readiness
}

/*
TestReadiness_Ready verifies a fully healthy system reports 200.
*/
func TestReadiness_Ready(t *testing.T) {
	readiness := newReadiness(api.HealthDependencies{
		CheckDatabase:  func() error { return nil },
		CheckCache:     func() error { return nil },
		CheckMediaRoot: func() error { return nil },
	})

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"ready"`)
}

/*
TestReadiness_Degraded verifies one failing dependency flips the probe to
503 with a single status-line write.
*/
func TestReadiness_Degraded(t *testing.T) {
	readiness := newReadiness(api.HealthDependencies{
		CheckDatabase:  func() error { return nil },
		CheckCache:     func() error { return errors.New("connection refused") },
		CheckMediaRoot: func() error { return nil },
	})

	recorder := &countingRecorder{ResponseRecorder: httptest.NewRecorder()}
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, 1, recorder.headerWrites)
	assert.Contains(t, recorder.Body.String(), `"degraded"`)
	assert.Contains(t, recorder.Body.String(), "connection refused")
}
