package metrics

import (
	"net/http"
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

type promRecorder struct {
	stageTotal   *prom.CounterVec
	stageSeconds *prom.HistogramVec
	candidates   *prom.CounterVec
	taskItems    *prom.CounterVec
}

func (p *promRecorder) IncStageTotal(stage string, success bool) {
	p.stageTotal.WithLabelValues(stage, strconv.FormatBool(success)).Inc()
}

func (p *promRecorder) ObserveStageSeconds(stage string, success bool, seconds float64) {
	p.stageSeconds.WithLabelValues(stage, strconv.FormatBool(success)).Observe(seconds)
}

func (p *promRecorder) AddCandidates(accepted bool, n int) {
	p.candidates.WithLabelValues(strconv.FormatBool(accepted)).Add(float64(n))
}

func (p *promRecorder) IncTaskItems(status string) {
	p.taskItems.WithLabelValues(status).Inc()
}

func newPromRecorder(registry *prom.Registry) *promRecorder {
	p := &promRecorder{
		stageTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "ppaxe_stage_total",
			Help: "Total number of pipeline stage runs",
		}, []string{"stage", "success"}),
		stageSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "ppaxe_stage_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: prom.DefBuckets,
		}, []string{"stage", "success"}),
		candidates: prom.NewCounterVec(prom.CounterOpts{
			Name: "ppaxe_candidates_total",
			Help: "Interaction candidates produced, by acceptance",
		}, []string{"accepted"}),
		taskItems: prom.NewCounterVec(prom.CounterOpts{
			Name: "ppaxe_task_items_total",
			Help: "Analysis task items, by status transition",
		}, []string{"status"}),
	}

	registry.MustRegister(p.stageTotal, p.stageSeconds, p.candidates, p.taskItems)
	return p
}

// EnablePrometheus installs a Prometheus recorder and returns the handler serving its registry.
func EnablePrometheus() http.Handler {
	registry := prom.NewRegistry()
	SetRecorder(newPromRecorder(registry))
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
