package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSOPPrompt_Render(t *testing.T) {
	task := `Reconcile the "petty cash" account, 100% of receipts`
	rendered := SOPPrompt.Render(task)

	assert.Contains(t, rendered, task)
	assert.Contains(t, rendered, `"title"`)
	assert.Contains(t, rendered, `"content"`)
	assert.Contains(t, rendered, "JSON object")
	assert.Equal(t, 1, strings.Count(rendered, task))
}

func TestKindOf(t *testing.T) {
	base := NewGenerationError(KindSchemaMismatch, "invalid SOP response", nil)
	wrapped := fmt.Errorf("handler: %w", fmt.Errorf("generate sop: %w", base))

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindSchemaMismatch, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)

	_, ok = KindOf(nil)
	assert.False(t, ok)
}

func TestGenerationError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := fmt.Errorf("generate sop: %w", NewGenerationError(KindMalformedResponse, "invalid JSON response from model", cause))

	assert.True(t, errors.Is(err, &GenerationError{Kind: KindMalformedResponse}))
	assert.False(t, errors.Is(err, &GenerationError{Kind: KindEmptyResponse}))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "generate sop: invalid JSON response from model: unexpected end of JSON input", err.Error())
}

func TestGenerationError_MessageWithoutCause(t *testing.T) {
	err := NewGenerationError(KindEmptyResponse, "no response from model", nil)
	assert.Equal(t, "no response from model", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Equal(t, "rid-1", RequestIDFromContext(WithRequestID(context.Background(), "rid-1")))
}
