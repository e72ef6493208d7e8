package entity

import (
	"errors"
	"fmt"
)

// ErrTaskRequired is returned when a generation request has no task description.
var ErrTaskRequired = errors.New("task is required")

// ErrorKind classifies why an SOP generation failed.
type ErrorKind string

const (
	KindEmptyResponse     ErrorKind = "empty_response"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindSchemaMismatch    ErrorKind = "schema_mismatch"
	KindUpstreamFailure   ErrorKind = "upstream_call_failure"
)

// GenerationError is a classified failure of a single generation call.
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func NewGenerationError(kind ErrorKind, message string, err error) *GenerationError {
	return &GenerationError{Kind: kind, Message: message, Err: err}
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is matches any GenerationError of the same kind, so callers can write
// errors.Is(err, &GenerationError{Kind: KindEmptyResponse}).
func (e *GenerationError) Is(target error) bool {
	var t *GenerationError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first GenerationError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Kind, true
	}
	return "", false
}
