package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, handler http.Handler) string {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestTimeStage_Noop(t *testing.T) {
	SetRecorder(&noopRecorder{})
	done := TimeStage("segment")
	done(true)
}

func TestPromRecorder(t *testing.T) {
	registry := prom.NewRegistry()
	p := newPromRecorder(registry)

	SetRecorder(p)
	defer SetRecorder(&noopRecorder{})

	TimeStage("annotate")(true)
	TimeStage("annotate")(false)
	TimeStage("annotate")(true)
	Default().AddCandidates(true, 3)
	Default().AddCandidates(false, 2)
	Default().IncTaskItems("done")

	body := scrape(t, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	assert.Contains(t, body, `ppaxe_stage_total{stage="annotate",success="true"} 2`)
	assert.Contains(t, body, `ppaxe_stage_total{stage="annotate",success="false"} 1`)
	assert.Contains(t, body, `ppaxe_candidates_total{accepted="true"} 3`)
	assert.Contains(t, body, `ppaxe_task_items_total{status="done"} 1`)
}

func TestEnablePrometheus(t *testing.T) {
	handler := EnablePrometheus()
	defer SetRecorder(&noopRecorder{})

	Default().IncTaskItems("fail")

	assert.Contains(t, scrape(t, handler), `ppaxe_task_items_total{status="fail"} 1`)
}
