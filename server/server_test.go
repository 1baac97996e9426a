package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppaxe-backend-controller/domain/report"
	"ppaxe-backend-controller/logging"
	"ppaxe-backend-controller/metrics"
)

func TestServer_Routes(t *testing.T) {
	logging.SetDefaultConfig(logging.GenerateTestConfig(t))

	s := New(&Config{
		Port:           8003,
		Policy:         report.AcceptUnscored,
		MetricsHandler: metrics.EnablePrometheus(),
	})
	defer metrics.SetRecorder(nil)

	metrics.Default().IncStageTotal("segment", true)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ppaxe_stage_total")

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
