package ppi

import "errors"

var (
	// ErrServiceUnavailable marks failures of an external collaborator (annotation service, classifier).
	ErrServiceUnavailable = errors.New("service unavailable")

	ErrMalformedCandidate = errors.New("malformed interaction candidate")
	ErrNotAnnotated       = errors.New("sentence is not annotated")
)
