package pipeline

import (
	"context"
	"errors"

	"ppaxe-backend-controller/domain/ppi"
)

var ErrNotInitialized = errors.New("pipeline processor not initialized")

var globalProcessor *Processor

func Init(processor *Processor) {
	globalProcessor = processor
}

// Default is the processor installed by Init, nil before.
func Default() *Processor {
	return globalProcessor
}

func Process(ctx context.Context, article *ppi.Article) error {
	if globalProcessor == nil {
		return ErrNotInitialized
	}
	return globalProcessor.Process(ctx, article)
}
