package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"financeflow/internal/domain/entity"
	"financeflow/internal/domain/repository"
	"financeflow/internal/infrastructure/metrics"
	"financeflow/internal/infrastructure/validator"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = openai.GPT4o
)

type OpenAIGenerator struct {
	client    *openai.Client
	model     string
	prompt    entity.Prompt
	validator validator.Validator
	logger    *slog.Logger
}

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

var _ repository.SOPGenerator = (*OpenAIGenerator)(nil)

func NewOpenAIGenerator(opts Options, v validator.Validator, logger *slog.Logger) *OpenAIGenerator {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}

	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIGenerator{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		prompt:    entity.SOPPrompt,
		validator: v,
		logger:    logger,
	}
}

func (g *OpenAIGenerator) GenerateSOP(ctx context.Context, task string) (entity.GenerationResult, error) {
	metrics.IncLLMRequest(g.model)
	logger := g.logger.With("request_id", entity.RequestIDFromContext(ctx))

	request := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: g.prompt.Render(task),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, request)
	if err != nil {
		g.logUpstreamError(logger, err)
		return g.fail(entity.NewGenerationError(entity.KindUpstreamFailure, "model API error", err))
	}

	if len(resp.Choices) == 0 {
		return g.fail(entity.NewGenerationError(entity.KindEmptyResponse, "no response from model", nil))
	}

	result, err := g.validator.Validate(resp.Choices[0].Message.Content)
	if err != nil {
		return g.fail(err)
	}

	logger.Debug("sop generated", "model", g.model, "prompt_id", g.prompt.ID,
		"total_tokens", resp.Usage.TotalTokens)
	return result, nil
}

func (g *OpenAIGenerator) fail(err error) (entity.GenerationResult, error) {
	typ := "unknown"
	if kind, ok := entity.KindOf(err); ok {
		typ = string(kind)
	}
	metrics.IncError("llm", typ)
	return entity.GenerationResult{}, fmt.Errorf("generate sop: %w", err)
}

func (g *OpenAIGenerator) logUpstreamError(logger *slog.Logger, err error) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		logger.Warn("model api returned error",
			"model", g.model, "status", apiErr.HTTPStatusCode, "type", apiErr.Type, "err", apiErr.Message)
		return
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		logger.Warn("model request failed", "model", g.model, "status", reqErr.HTTPStatusCode, "err", reqErr.Err)
		return
	}
	logger.Warn("model call failed", "model", g.model, "err", err)
}
