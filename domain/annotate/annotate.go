package annotate

import (
	"context"

	"ppaxe-backend-controller/domain/ppi"
)

// ErrServiceUnavailable is returned when the annotation service is unreachable or answers garbage.
var ErrServiceUnavailable = ppi.ErrServiceUnavailable

// Annotator turns one sentence into tokens. Implementations must be safe for concurrent use.
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]ppi.Token, error)
}

type AnnotatorFunc func(ctx context.Context, text string) ([]ppi.Token, error)

func (f AnnotatorFunc) Annotate(ctx context.Context, text string) ([]ppi.Token, error) {
	return f(ctx, text)
}
