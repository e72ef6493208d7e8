package repository

import (
	"context"

	"financeflow/internal/domain/entity"
)

// SOPGenerator интерфейс для генерации SOP через LLM
type SOPGenerator interface {
	// GenerateSOP makes exactly one model call and returns a validated result
	// or a *entity.GenerationError.
	GenerateSOP(ctx context.Context, task string) (entity.GenerationResult, error)
}
