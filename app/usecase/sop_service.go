package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"financeflow/internal/domain/entity"
	"financeflow/internal/domain/repository"
	"financeflow/internal/infrastructure/metrics"
)

type SOPUsecase interface {
	Generate(ctx context.Context, req entity.GenerationRequest) (entity.GenerationResult, error)
}

var _ SOPUsecase = (*SOPService)(nil)

type SOPService struct {
	generator repository.SOPGenerator
	logger    *slog.Logger

	callTimeout time.Duration
}

func NewSOPService(
	generator repository.SOPGenerator,
	callTimeout time.Duration,
	logger *slog.Logger,
) *SOPService {
	return &SOPService{
		generator:   generator,
		logger:      logger,
		callTimeout: callTimeout,
	}
}

// Generate validates the request and makes a single generation attempt.
// Failures are never retried.
func (s *SOPService) Generate(ctx context.Context, req entity.GenerationRequest) (entity.GenerationResult, error) {
	if strings.TrimSpace(req.Task) == "" {
		return entity.GenerationResult{}, entity.ErrTaskRequired
	}
	if req.Format == "" {
		req.Format = entity.DefaultSOPFormat
	}

	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}

	logger := s.logger.With("request_id", entity.RequestIDFromContext(ctx))
	start := time.Now()
	logger.Info("generating sop", "task_len", len(req.Task), "format", req.Format)

	result, err := s.generator.GenerateSOP(ctx, req.Task)
	duration := time.Since(start)
	if err != nil {
		kind, ok := entity.KindOf(err)
		if !ok {
			kind = "unknown"
		}
		metrics.ObserveGenerationDuration(string(kind), duration)
		// Returned to the caller, which logs it at error level.
		logger.Warn("sop generation failed", "kind", kind, "duration", duration, "err", err)
		return entity.GenerationResult{}, fmt.Errorf("generate sop for task: %w", err)
	}

	metrics.IncSOPsGenerated()
	metrics.ObserveGenerationDuration("success", duration)
	logger.Info("sop generated", "title", result.Title, "duration", duration)
	return result, nil
}
