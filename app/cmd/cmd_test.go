package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financeflow/internal/domain/entity"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "FinanceFlow API vdev\n", out)
}

func TestGenerateCommand(t *testing.T) {
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]any{{
				"index":   0,
				"message": map[string]any{"role": "assistant", "content": `{"title": "Month-end close", "content": "1. Reconcile."}`},
			}},
		})
	}))
	defer model.Close()

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", model.URL+"/v1")
	t.Setenv("LOG_LEVEL", "error")

	out, err := runCommand(t, "generate", "--env-file", "", "--task", "Close the books for the month")
	require.NoError(t, err)

	var got entity.GenerationResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, entity.GenerationResult{Title: "Month-end close", Content: "1. Reconcile."}, got)
}

func TestGenerateCommand_ModelFailure(t *testing.T) {
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id": "chatcmpl-test", "object": "chat.completion", "choices": []}`)
	}))
	defer model.Close()

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", model.URL+"/v1")
	t.Setenv("LOG_LEVEL", "error")

	_, err := runCommand(t, "generate", "--env-file", "", "--task", "Close the books")
	require.Error(t, err)

	kind, ok := entity.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, entity.KindEmptyResponse, kind)
}

func TestNewLogger_Level(t *testing.T) {
	ctx := context.Background()
	assert.True(t, newLogger("debug").Enabled(ctx, slog.LevelDebug))
	assert.False(t, newLogger("warn").Enabled(ctx, slog.LevelInfo))
	assert.True(t, newLogger("bogus").Enabled(ctx, slog.LevelInfo))
	assert.False(t, newLogger("bogus").Enabled(ctx, slog.LevelDebug))
}
