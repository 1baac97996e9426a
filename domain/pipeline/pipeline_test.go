package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppaxe-backend-controller/domain/annotate"
	"ppaxe-backend-controller/domain/feature"
	"ppaxe-backend-controller/domain/ppi"
	"ppaxe-backend-controller/domain/report"
	"ppaxe-backend-controller/domain/scorer"
	"ppaxe-backend-controller/domain/tagger"
	"ppaxe-backend-controller/logging"
)

func newTestProcessor(t *testing.T, annotator ppi.Annotator, sc *scorer.Scorer) *Processor {
	logging.SetDefaultConfig(logging.GenerateTestConfig(t))
	return NewProcessor(GenerateTestConfig(), annotator, sc, logging.NewLogger())
}

func dictionary() *tagger.Tagger {
	return tagger.NewTagger("MAPK", "MAPK4", "chloroacetate esterase", "cryoglobulin", "peroxydase",
		"THOC2", "nuclear receptor protein 2", "CPP3", "Akt3")
}

func TestProcess_FirstCandidate(t *testing.T) {
	p := newTestProcessor(t, dictionary(), nil)

	article := ppi.NewArticle("1234", "However, MAPK is a better target for chloroacetate esterase which is an essential protein for cryoglobulin.")
	require.Nil(t, p.Process(context.Background(), article))

	require.Equal(t, 1, len(article.Sentences))
	candidates := article.Candidates()
	require.Equal(t, 2, len(candidates))
	assert.Equal(t, "[MAPK] may interact with [chloroacetate esterase]", candidates[0].String())

	for _, c := range candidates {
		assert.Equal(t, feature.Width(), len(c.Features))
		assert.False(t, c.Scored())
	}
}

func TestProcess_SentenceHTML(t *testing.T) {
	p := newTestProcessor(t, dictionary(), nil)

	article := ppi.NewArticle("1234", "The transcription factor of THOC2 seems to be interacting with the nuclear receptor protein 2.")
	require.Nil(t, p.Process(context.Background(), article))

	require.Equal(t, 1, len(article.Sentences))
	assert.Equal(t, "The transcription factor of <prot> THOC2 </prot> seems to be interacting with the <prot> nuclear receptor protein 2 </prot> .",
		article.Sentences[0].ToHTML())
}

func TestProcess_ProteinSummary(t *testing.T) {
	p := newTestProcessor(t, dictionary(), nil)

	article := ppi.NewArticle("1234", `
             MAPK seems to interact with chloroacetate esterase.
             However, MAPK is a better target for peroxydase.
             The thing is, Schmidtea mediterranea is a good model organism because reasons.
             However, cryoglobulin is better.
         `)
	require.Nil(t, p.Process(context.Background(), article))
	require.Equal(t, 4, len(article.Sentences))

	summary := report.SummarizeArticles([]*ppi.Article{article}, report.AcceptUnscored)
	mapk, ok := summary.Get("MAPK")
	require.True(t, ok)
	assert.Equal(t, 2, mapk.TotalCount)
	assert.Equal(t, 2, mapk.Left)

	cryoglobulin, ok := summary.Get("cryoglobulin")
	require.True(t, ok)
	assert.Equal(t, 1, cryoglobulin.TotalCount)
}

func TestProcess_UniqInteractions(t *testing.T) {
	sc := scorer.New(scorer.ClassifierFunc(func(context.Context, []float64) (float64, error) {
		return 0.9, nil
	}), nil)
	p := newTestProcessor(t, dictionary(), sc)
	assert.True(t, p.Scoring())

	article := ppi.NewArticle("1234", `
             MAPK seems to interact with MAPK4.
             However, Mapk4 interacts directly with MAPK.
             CPP3 is a molecular target of Akt3.
             AKT3 is also known to interact with CPP3.
         `)
	require.Nil(t, p.Process(context.Background(), article))

	candidates := article.Candidates()
	assert.Equal(t, 4, len(candidates))
	for _, c := range candidates {
		assert.True(t, c.Label)
	}

	graph := report.SummarizeGraph(candidates)
	assert.Equal(t, 2, graph.UniqInteractions())
}

type countingAnnotator struct {
	inner   ppi.Annotator
	delay   time.Duration
	calls   atomic.Int32
	running atomic.Int32
	peak    atomic.Int32
	lock    sync.Mutex
}

func (a *countingAnnotator) Annotate(ctx context.Context, text string) ([]ppi.Token, error) {
	a.calls.Add(1)
	now := a.running.Add(1)
	defer a.running.Add(-1)

	a.lock.Lock()
	if now > a.peak.Load() {
		a.peak.Store(now)
	}
	a.lock.Unlock()

	time.Sleep(a.delay)
	return a.inner.Annotate(ctx, text)
}

func TestProcess_BoundedConcurrency(t *testing.T) {
	annotator := &countingAnnotator{inner: dictionary(), delay: 10 * time.Millisecond}
	logging.SetDefaultConfig(logging.GenerateTestConfig(t))
	p := NewProcessor(&Config{Concurrency: 2}, annotator, nil, logging.NewLogger())

	article := ppi.NewArticle("1", "MAPK binds MAPK4. MAPK binds CPP3. Akt3 binds CPP3. THOC2 binds MAPK. Akt3 binds MAPK4. CPP3 binds THOC2.")
	require.Nil(t, p.Process(context.Background(), article))

	assert.Equal(t, int32(6), annotator.calls.Load())
	assert.LessOrEqual(t, annotator.peak.Load(), int32(2))
	for _, sentence := range article.Sentences {
		assert.True(t, sentence.Annotated())
		assert.Equal(t, 1, len(sentence.Candidates))
	}
}

func TestProcess_AnnotatorUnavailable(t *testing.T) {
	failing := annotate.AnnotatorFunc(func(ctx context.Context, text string) ([]ppi.Token, error) {
		return nil, annotate.ErrServiceUnavailable
	})
	p := newTestProcessor(t, failing, nil)

	article := ppi.NewArticle("1", "MAPK binds MAPK4. MAPK binds CPP3.")
	err := p.Process(context.Background(), article)
	assert.True(t, errors.Is(err, ppi.ErrServiceUnavailable))
	assert.Nil(t, article.Candidates())
}

func TestProcess_ScorerUnavailable(t *testing.T) {
	sc := scorer.New(scorer.ClassifierFunc(func(context.Context, []float64) (float64, error) {
		return 0, scorer.ErrServiceUnavailable
	}), nil)
	p := newTestProcessor(t, dictionary(), sc)

	err := p.ProcessAll(context.Background(), []*ppi.Article{ppi.NewArticle("1", "MAPK binds MAPK4.")})
	assert.True(t, errors.Is(err, ppi.ErrServiceUnavailable))
}

func TestProcess_EmptyArticle(t *testing.T) {
	p := newTestProcessor(t, dictionary(), nil)

	article := ppi.NewArticle("1", "   ")
	require.Nil(t, p.Process(context.Background(), article))
	assert.Equal(t, 0, len(article.Sentences))
	assert.Equal(t, 0, report.NewReport([]*ppi.Article{article}, report.AcceptUnscored).Graph.UniqInteractions())
}
