package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const insecureJWTSecret = "supersecretkey"

type Config struct {
	Addr          string          `yaml:"addr"`
	JWTSecret     string          `yaml:"jwt_secret"`
	APITimeout    time.Duration   `yaml:"timeout"`
	DatabasePath  string          `yaml:"database_path"`
	TokenDuration time.Duration   `yaml:"token_duration"`
	Assistant     AssistantConfig `yaml:"assistant"`
	Ollama        OllamaConfig    `yaml:"ollama"`
}

// AssistantConfig configures the conversational assistant engine.
type AssistantConfig struct {
	Model          string        `yaml:"model"`
	Timeout        time.Duration `yaml:"timeout"`
	FallbackPrompt string        `yaml:"fallback_prompt"`
	WorkerCount    int           `yaml:"worker_count"`
}

type OllamaConfig struct {
	BaseURL                 string        `yaml:"base_url"`
	DefaultModelNames       []string      `yaml:"models"`
	Timeout                 time.Duration `yaml:"timeout"`
	Retries                 int           `yaml:"retries"`
	Backoff                 time.Duration `yaml:"backoff"`
	CircuitFailureThreshold int           `yaml:"circuit_failure_threshold"`
	CircuitReset            time.Duration `yaml:"circuit_reset"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("OFFERDESK_ADDR", ":8080"),
		JWTSecret:     getEnv("OFFERDESK_JWT_SECRET", insecureJWTSecret),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("OFFERDESK_DATABASE_PATH", "offerdesk.db"),
		TokenDuration: 1 * time.Hour,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks the configuration for unsafe or incomplete values and
// fills Ollama/assistant defaults.
func (c *Config) Validate() error {
	if c.JWTSecret == insecureJWTSecret && os.Getenv("OFFERDESK_ENV") != "development" {
		return fmt.Errorf("jwt_secret is the insecure default; set OFFERDESK_JWT_SECRET")
	}
	if c.Assistant.Model == "" {
		return fmt.Errorf("assistant.model is required")
	}
	if c.Assistant.Timeout == 0 {
		c.Assistant.Timeout = 20 * time.Second
	}
	if c.Assistant.WorkerCount <= 0 {
		c.Assistant.WorkerCount = 2
	}

	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = getEnv("OFFERDESK_OLLAMA_URL", "http://localhost:11434")
	}
	if c.Ollama.Timeout <= 0 {
		c.Ollama.Timeout = 30 * time.Second
	}
	if c.Ollama.Retries == 0 {
		c.Ollama.Retries = 2
	}
	if c.Ollama.Backoff <= 0 {
		c.Ollama.Backoff = 500 * time.Millisecond
	}
	if c.Ollama.CircuitFailureThreshold <= 0 {
		c.Ollama.CircuitFailureThreshold = 5
	}
	if c.Ollama.CircuitReset <= 0 {
		c.Ollama.CircuitReset = 30 * time.Second
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
