package scorer

import (
	"fmt"
	"time"
)

const (
	KindNone = ""
	KindHTTP = "http"
	KindOnnx = "onnx"
)

type Config struct {
	Kind    string
	URL     string
	Timeout time.Duration
	Onnx    OnnxConfig
}

// NewClassifier builds the configured classifier; KindNone gives nil, nil.
func NewClassifier(config *Config) (Classifier, error) {
	switch config.Kind {
	case KindNone:
		return nil, nil
	case KindHTTP:
		return NewHTTPClassifier(config.URL, config.Timeout), nil
	case KindOnnx:
		classifier, err := NewOnnxClassifier(&config.Onnx)
		if err != nil {
			return nil, err
		}
		return classifier, nil
	}
	return nil, fmt.Errorf("unknown classifier kind [%s]", config.Kind)
}
