// Package config loads and validates gitgauge configuration from file,
// environment, and defaults.
package config

import "errors"

// Default configuration values.
const (
	// DefaultMonths is the analysis window in months (0 = full history).
	DefaultMonths = 1
	// DefaultSortBy is the metric results are sorted by.
	DefaultSortBy = "value"
	// DefaultFormat is the output format.
	DefaultFormat = "table"
	// DefaultWorkers means one worker per CPU.
	DefaultWorkers = 0
	// DefaultClassifierMode uses the built-in heuristic line classifier.
	DefaultClassifierMode = "heuristic"
	// DefaultLLMModel is the model requested from an OpenAI-compatible API.
	DefaultLLMModel = "gpt-4o-mini"
)

// Classifier modes.
const (
	ClassifierHeuristic = "heuristic"
	ClassifierLLM       = "llm"
)

// Config is the top-level configuration struct for gitgauge.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Months     int              `mapstructure:"months"`
	SortBy     string           `mapstructure:"sort_by"`
	Format     string           `mapstructure:"format"`
	Workers    int              `mapstructure:"workers"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
}

// ClassifierConfig selects and configures the line classifier.
type ClassifierConfig struct {
	Mode string    `mapstructure:"mode"`
	LLM  LLMConfig `mapstructure:"llm"`
}

// LLMConfig holds settings for the OpenAI-compatible remote classifier.
type LLMConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidMonths indicates the months window is negative.
	ErrInvalidMonths = errors.New("months must be non-negative")
	// ErrInvalidWorkers indicates the workers value is negative.
	ErrInvalidWorkers = errors.New("workers must be non-negative")
	// ErrInvalidSortBy indicates an unrecognized sort key.
	ErrInvalidSortBy = errors.New("sort_by must be one of value, quality, difficulty, commits")
	// ErrInvalidFormat indicates an unrecognized output format.
	ErrInvalidFormat = errors.New("format must be one of table, detailed, json, yaml")
	// ErrInvalidClassifierMode indicates an unrecognized classifier mode.
	ErrInvalidClassifierMode = errors.New("classifier.mode must be heuristic or llm")
	// ErrMissingAPIKey indicates the llm classifier is selected without credentials.
	ErrMissingAPIKey = errors.New("classifier.llm.api_key is required when classifier.mode is llm")
)

var validSortKeys = map[string]bool{
	"value":      true,
	"quality":    true,
	"difficulty": true,
	"commits":    true,
}

var validFormats = map[string]bool{
	"table":    true,
	"detailed": true,
	"json":     true,
	"yaml":     true,
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Months < 0 {
		return ErrInvalidMonths
	}

	if c.Workers < 0 {
		return ErrInvalidWorkers
	}

	if !validSortKeys[c.SortBy] {
		return ErrInvalidSortBy
	}

	if !validFormats[c.Format] {
		return ErrInvalidFormat
	}

	switch c.Classifier.Mode {
	case ClassifierHeuristic:
	case ClassifierLLM:
		if c.Classifier.LLM.APIKey == "" {
			return ErrMissingAPIKey
		}
	default:
		return ErrInvalidClassifierMode
	}

	return nil
}
