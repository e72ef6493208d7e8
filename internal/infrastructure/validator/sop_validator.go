package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"financeflow/internal/domain/entity"
)

// Required keys of a generated SOP object, in the order they are checked.
var requiredSOPFields = []string{"title", "content"}

type Validator interface {
	Validate(payload string) (entity.GenerationResult, error)
}

// SOPValidator turns the raw text of a completion into a GenerationResult.
type SOPValidator struct{}

func NewSOPValidator() *SOPValidator {
	return &SOPValidator{}
}

func (v *SOPValidator) Validate(payload string) (entity.GenerationResult, error) {
	if strings.TrimSpace(payload) == "" {
		return entity.GenerationResult{}, entity.NewGenerationError(
			entity.KindEmptyResponse, "no response from model", nil)
	}

	var decoded any
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return entity.GenerationResult{}, entity.NewGenerationError(
			entity.KindMalformedResponse, "invalid JSON response from model", err)
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return entity.GenerationResult{}, entity.NewGenerationError(
			entity.KindSchemaMismatch,
			fmt.Sprintf("invalid SOP response: expected JSON object, got %s", jsonKind(decoded)), nil)
	}

	fields := make(map[string]string, len(requiredSOPFields))
	for _, key := range requiredSOPFields {
		raw, present := obj[key]
		if !present {
			return entity.GenerationResult{}, entity.NewGenerationError(
				entity.KindSchemaMismatch,
				fmt.Sprintf("invalid SOP response: missing field %q", key), nil)
		}
		s, isString := raw.(string)
		if !isString {
			return entity.GenerationResult{}, entity.NewGenerationError(
				entity.KindSchemaMismatch,
				fmt.Sprintf("invalid SOP response: field %q must be a string, got %s", key, jsonKind(raw)), nil)
		}
		fields[key] = s
	}

	return entity.GenerationResult{
		Title:   fields["title"],
		Content: fields["content"],
	}, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
