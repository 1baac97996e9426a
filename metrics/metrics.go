package metrics

import (
	"sync"
	"time"
)

// Recorder is the instrumentation surface of the pipeline and the task queue.
type Recorder interface {
	IncStageTotal(stage string, success bool)
	ObserveStageSeconds(stage string, success bool, seconds float64)
	AddCandidates(accepted bool, n int)
	IncTaskItems(status string)
}

type noopRecorder struct{}

func (n *noopRecorder) IncStageTotal(string, bool)                {}
func (n *noopRecorder) ObserveStageSeconds(string, bool, float64) {}
func (n *noopRecorder) AddCandidates(bool, int)                   {}
func (n *noopRecorder) IncTaskItems(string)                       {}

var (
	recMu    sync.RWMutex
	recorder Recorder = &noopRecorder{}
)

func Default() Recorder {
	recMu.RLock()
	defer recMu.RUnlock()
	return recorder
}

// SetRecorder installs r; nil restores the noop recorder.
func SetRecorder(r Recorder) {
	if r == nil {
		r = &noopRecorder{}
	}

	recMu.Lock()
	defer recMu.Unlock()
	recorder = r
}

// TimeStage starts timing one pipeline stage; call the result once the stage is over.
func TimeStage(stage string) func(success bool) {
	start := time.Now()
	return func(success bool) {
		dur := time.Since(start).Seconds()
		Default().IncStageTotal(stage, success)
		Default().ObserveStageSeconds(stage, success, dur)
	}
}
