package config

import "time"

type Config struct {
	Environment string           `json:"environment"`
	LogLevel    string           `json:"log_level"`
	Server      HTTPServerConfig `json:"server"`
	LLM         LLMConfig        `json:"llm"`
	Metrics     MetricsConfig    `json:"metrics"`
}

type HTTPServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
}

type LLMConfig struct {
	APIKey  string        `json:"-"`
	BaseURL string        `json:"base_url"`
	Model   string        `json:"model"`
	Timeout time.Duration `json:"timeout"`
}

type MetricsConfig struct {
	// Addr of the standalone metrics listener; empty disables it.
	Addr string `json:"addr"`
}
