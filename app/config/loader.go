package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"financeflow/internal/infrastructure/llm"
)

// DefaultEnvFile is read when present; a missing file is not an error.
const DefaultEnvFile = ".env"

// Default returns the configuration used when no variables are set.
func Default() *Config {
	return &Config{
		Environment: "development",
		LogLevel:    "info",
		Server: HTTPServerConfig{
			Host:         "0.0.0.0",
			Port:         5001,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		LLM: LLMConfig{
			BaseURL: llm.DefaultBaseURL,
			Model:   llm.DefaultModel,
			Timeout: 60 * time.Second,
		},
		Metrics: MetricsConfig{
			Addr: ":2112",
		},
	}
}

// Load builds the configuration from defaults, the optional env file and the
// process environment. Process variables win over the file.
func Load(envFile string) (*Config, error) {
	fileEnv, err := readEnvFile(envFile)
	if err != nil {
		return nil, err
	}
	env := envSource{file: fileEnv}

	cfg := Default()
	cfg.Environment = env.get("ENVIRONMENT", cfg.Environment)
	cfg.LogLevel = env.get("LOG_LEVEL", cfg.LogLevel)

	cfg.Server.Host = env.get("SERVER_HOST", cfg.Server.Host)
	if cfg.Server.Port, err = env.getInt("SERVER_PORT", cfg.Server.Port); err != nil {
		return nil, err
	}
	if cfg.Server.ReadTimeout, err = env.getDuration("SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = env.getDuration("SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout); err != nil {
		return nil, err
	}

	cfg.LLM.APIKey = env.get("OPENAI_API_KEY", "")
	cfg.LLM.BaseURL = env.get("OPENAI_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.Model = env.get("OPENAI_MODEL", cfg.LLM.Model)
	if cfg.LLM.Timeout, err = env.getDuration("LLM_TIMEOUT", cfg.LLM.Timeout); err != nil {
		return nil, err
	}

	if addr, ok := env.lookup("METRICS_ADDR"); ok {
		cfg.Metrics.Addr = addr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return errors.New("OPENAI_API_KEY env variable is required")
	}
	if c.LLM.Model == "" {
		return errors.New("llm model must not be empty")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm timeout must be positive, got %s", c.LLM.Timeout)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	return nil
}

// Addr is the host:port the HTTP server listens on.
func (c HTTPServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}

type envSource struct {
	file map[string]string
}

// lookup returns a present variable. METRICS_ADDR may be set to "" on purpose.
func (e envSource) lookup(key string) (string, bool) {
	if value, ok := os.LookupEnv(key); ok {
		return value, true
	}
	value, ok := e.file[key]
	return value, ok
}

func (e envSource) get(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value := e.file[key]; value != "" {
		return value
	}
	return defaultValue
}

func (e envSource) getInt(key string, defaultValue int) (int, error) {
	raw := e.get(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func (e envSource) getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := e.get(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
