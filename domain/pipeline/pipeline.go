package pipeline

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"ppaxe-backend-controller/domain/feature"
	"ppaxe-backend-controller/domain/ppi"
	"ppaxe-backend-controller/domain/scorer"
	"ppaxe-backend-controller/domain/segment"
	"ppaxe-backend-controller/metrics"
	"ppaxe-backend-controller/utils"
)

const (
	StageSegment  = "segment"
	StageAnnotate = "annotate"
	StageGenerate = "generate"
	StageExtract  = "extract"
	StageScore    = "score"
)

type Config struct {
	// sentences annotated at the same time
	Concurrency      int
	MaxSentenceRunes int
}

func GenerateTestConfig() *Config {
	return &Config{
		Concurrency:      4,
		MaxSentenceRunes: segment.DefaultMaxSentenceRunes,
	}
}

/*
Processor runs an article through segment, annotate, generate, extract and, when a scorer is
set, score. Only annotation runs in parallel; each sentence is annotated at most once.
*/
type Processor struct {
	concurrency int
	segment     segment.Config
	annotator   ppi.Annotator
	scorer      *scorer.Scorer
	logger      *logrus.Logger
}

func NewProcessor(config *Config, annotator ppi.Annotator, sc *scorer.Scorer, logger *logrus.Logger) *Processor {
	concurrency := config.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Processor{
		concurrency: concurrency,
		segment:     segment.Config{MaxSentenceRunes: config.MaxSentenceRunes},
		annotator:   annotator,
		scorer:      sc,
		logger:      logger,
	}
}

func (p *Processor) Scoring() bool {
	return p.scorer != nil
}

func (p *Processor) Process(ctx context.Context, article *ppi.Article) error {
	done := metrics.TimeStage(StageSegment)
	// a Segmenter keeps splitting state, one per call
	article.ExtractSentences(segment.New(&p.segment))
	done(true)

	p.logger.Debugf("article [%s] segmented into %d sentences", article.PMID, len(article.Sentences))

	if err := p.annotate(ctx, article.Sentences); err != nil {
		return utils.WrapErrorf(err, "annotate article [%s] fail", article.PMID)
	}

	done = metrics.TimeStage(StageGenerate)
	for _, sentence := range article.Sentences {
		if err := sentence.GenerateCandidates(); err != nil {
			done(false)
			return utils.WrapErrorf(err, "generate candidates of article [%s] fail", article.PMID)
		}
	}
	done(true)

	candidates := article.Candidates()

	done = metrics.TimeStage(StageExtract)
	for _, c := range candidates {
		feature.Apply(c)
	}
	done(true)

	if p.scorer != nil {
		done = metrics.TimeStage(StageScore)
		if err := p.scorer.ScoreAll(ctx, candidates); err != nil {
			done(false)
			return utils.WrapErrorf(err, "score article [%s] fail", article.PMID)
		}
		done(true)
	}

	accepted := 0
	for _, c := range candidates {
		if c.Label {
			accepted++
		}
	}
	metrics.Default().AddCandidates(true, accepted)
	metrics.Default().AddCandidates(false, len(candidates)-accepted)

	p.logger.Infof("article [%s]: %d sentences, %d candidates, %d labelled", article.PMID,
		len(article.Sentences), len(candidates), accepted)

	return nil
}

// ProcessAll stops at the first article that fails.
func (p *Processor) ProcessAll(ctx context.Context, articles []*ppi.Article) error {
	for _, article := range articles {
		if err := p.Process(ctx, article); err != nil {
			return err
		}
	}
	return nil
}

// annotate returns the first failure and cancels the sentences still waiting.
func (p *Processor) annotate(ctx context.Context, sentences []*ppi.Sentence) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.concurrency)
	errChan := make(chan error, len(sentences))

	for _, sentence := range sentences {
		if sentence.Annotated() {
			continue
		}

		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(s *ppi.Sentence) {
			defer wg.Done()
			defer func() { <-semaphore }()

			done := metrics.TimeStage(StageAnnotate)
			err := s.Annotate(ctx, p.annotator)
			done(err == nil)

			if err != nil {
				errChan <- err
				cancel()
			}
		}(sentence)
	}

	wg.Wait()
	close(errChan)

	if err, ok := <-errChan; ok {
		return err
	}
	return ctx.Err()
}
