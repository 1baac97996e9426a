package scorer

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"ppaxe-backend-controller/domain/feature"
	"ppaxe-backend-controller/domain/ppi"
	"ppaxe-backend-controller/utils"
)

// DecisionThreshold is the lowest score labelled as an interaction.
const DecisionThreshold = 0.55

var ErrServiceUnavailable = ppi.ErrServiceUnavailable

// Classifier maps a flat feature vector of feature.SchemaVersion to a confidence in [0, 1].
type Classifier interface {
	Predict(ctx context.Context, features []float64) (float64, error)
}

type ClassifierFunc func(ctx context.Context, features []float64) (float64, error)

func (f ClassifierFunc) Predict(ctx context.Context, features []float64) (float64, error) {
	return f(ctx, features)
}

type Scorer struct {
	classifier Classifier
	logger     *logrus.Logger
}

func New(classifier Classifier, logger *logrus.Logger) *Scorer {
	return &Scorer{
		classifier: classifier,
		logger:     logger,
	}
}

func Accepted(score float64) bool {
	return score >= DecisionThreshold
}

/*
Score asks the classifier about the candidate and stores score and label on it.
Features are computed first when the candidate has none.
*/
func (s *Scorer) Score(ctx context.Context, c *ppi.InteractionCandidate) (float64, error) {
	if c.Features == nil {
		feature.Apply(c)
	}

	score, err := s.classifier.Predict(ctx, c.Features)
	if err != nil {
		return 0, utils.WrapErrorf(err, "predict %s fail", c)
	}

	if math.IsNaN(score) || score < 0 || score > 1 {
		return 0, utils.WrapErrorf(ErrServiceUnavailable, "classifier answered %v for %s", score, c)
	}

	c.Score = utils.Float64ToPtr(score)
	c.Label = Accepted(score)

	if s.logger != nil {
		s.logger.Debugf("%s: score=%.3f label=%t", c, score, c.Label)
	}

	return score, nil
}

func (s *Scorer) ScoreAll(ctx context.Context, candidates []*ppi.InteractionCandidate) error {
	for _, c := range candidates {
		if _, err := s.Score(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
