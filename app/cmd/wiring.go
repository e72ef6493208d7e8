package main

import (
	"log/slog"

	"financeflow/app/config"
	"financeflow/app/usecase"
	"financeflow/internal/infrastructure/llm"
	"financeflow/internal/infrastructure/validator"
)

func newSOPService(cfg *config.Config, logger *slog.Logger) *usecase.SOPService {
	generator := llm.NewOpenAIGenerator(
		llm.Options{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		},
		validator.NewSOPValidator(),
		logger,
	)
	return usecase.NewSOPService(generator, cfg.LLM.Timeout, logger)
}
