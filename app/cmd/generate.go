package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"financeflow/internal/domain/entity"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single SOP and print it as JSON",
	Long:  `Makes one generation call for the given task and writes the resulting SOP to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg.LogLevel)

		task, _ := cmd.Flags().GetString("task")
		format, _ := cmd.Flags().GetString("format")

		ctx := entity.WithRequestID(cmd.Context(), uuid.NewString())
		result, err := newSOPService(cfg, logger).Generate(ctx, entity.GenerationRequest{
			Task:   task,
			Format: format,
		})
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode sop: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	generateCmd.Flags().String("task", "", "Finance task to write an SOP for")
	generateCmd.Flags().String("format", entity.DefaultSOPFormat, "SOP format")
	_ = generateCmd.MarkFlagRequired("task")
	rootCmd.AddCommand(generateCmd)
}
