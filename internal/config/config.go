// Package config provides configuration management for the application
package config

import (
	"fmt"
	"os"
	"sprout/internal/logger"
	"strconv"
	"strings"
	"time"
)

// Supported model wire protocols
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Built-in defaults, matching a stock local Ollama install
const (
	DefaultProvider   = ProviderOpenAI
	DefaultBaseURL    = "http://localhost:11434/v1"
	DefaultModel      = "llama3.2"
	DefaultAPIKey     = "ollama"
	DefaultMaxTokens  = 1024
	DefaultTimeout    = 120 * time.Second
	DefaultListenAddr = ":8000"
)

// Config contains all configuration for the application
type Config struct {
	// Model server settings
	Provider    string
	BaseURL     string
	Model       string
	APIKey      string
	MaxTokens   int64
	Temperature *float64
	Timeout     time.Duration

	// HTTP settings
	ListenAddr string

	// Prompt texts, possibly overridden from PromptsFile
	PromptsFile string
	Prompts     Prompts

	Debug bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	log := logger.Get()
	log.Debug().Msg("Loading configuration from environment")

	config := &Config{
		Provider:    strings.ToLower(getEnvOrDefault("MODEL_PROVIDER", DefaultProvider)),
		BaseURL:     getEnvOrDefault("MODEL_BASE_URL", DefaultBaseURL),
		Model:       getEnvOrDefault("MODEL_NAME", DefaultModel),
		APIKey:      getEnvOrDefault("MODEL_API_KEY", DefaultAPIKey),
		ListenAddr:  getEnvOrDefault("LISTEN_ADDR", DefaultListenAddr),
		PromptsFile: os.Getenv("PROMPTS_FILE"),
		Debug:       os.Getenv("DEBUG") == "true",
	}

	log.Debug().
		Str("provider", config.Provider).
		Str("baseURL", config.BaseURL).
		Str("model", config.Model).
		Msg("Loaded model configuration")

	maxTokensStr := getEnvOrDefault("MAX_TOKENS", strconv.Itoa(DefaultMaxTokens))
	maxTokens, err := strconv.ParseInt(maxTokensStr, 10, 64)
	if err != nil {
		log.Error().Err(err).Str("value", maxTokensStr).Msg("Invalid MAX_TOKENS value")
		return nil, fmt.Errorf("invalid MAX_TOKENS value: %w", err)
	}
	config.MaxTokens = maxTokens

	if v := os.Getenv("TEMPERATURE"); v != "" {
		temperature, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Error().Err(err).Str("value", v).Msg("Invalid TEMPERATURE value")
			return nil, fmt.Errorf("invalid TEMPERATURE value: %w", err)
		}
		config.Temperature = &temperature
	}

	if v := os.Getenv("MODEL_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			log.Error().Err(err).Str("value", v).Msg("Invalid MODEL_TIMEOUT value")
			return nil, fmt.Errorf("invalid MODEL_TIMEOUT value: %w", err)
		}
		config.Timeout = timeout
	}

	config.Prompts = DefaultPrompts()
	if config.PromptsFile != "" {
		overrides, err := LoadPrompts(config.PromptsFile)
		if err != nil {
			log.Error().Err(err).Str("path", config.PromptsFile).Msg("Failed to load prompts file")
			return nil, err
		}
		config.Prompts = config.Prompts.Merge(overrides)
		log.Debug().Str("path", config.PromptsFile).Msg("Applied prompt overrides")
	}

	return config, nil
}

// WithDefaults sets default values for configuration fields that aren't set
func (c *Config) WithDefaults() *Config {
	log := logger.Get()
	log.Debug().Msg("Applying default configuration values")

	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.APIKey == "" {
		c.APIKey = DefaultAPIKey
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	c.Prompts = DefaultPrompts().Merge(c.Prompts)

	return c
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	log := logger.Get()
	log.Debug().Msg("Validating configuration")

	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		log.Error().Str("provider", c.Provider).Msg("Unknown model provider")
		return fmt.Errorf("unknown MODEL_PROVIDER %q (want %q or %q)", c.Provider, ProviderOpenAI, ProviderAnthropic)
	}

	if c.BaseURL == "" {
		return fmt.Errorf("model base URL is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model name is required")
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", *c.Temperature)
	}

	return nil
}

// getEnvOrDefault gets an environment variable or returns the default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
