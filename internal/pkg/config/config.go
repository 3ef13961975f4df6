// Package config provides configuration management for genie-git.
package config

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/geniegit/geniegit/internal/pkg/errors"
)

// Default values used when a field is absent from the config file.
const (
	DefaultProvider              = "gemini"
	DefaultModel                 = "gemini-2.5-flash"
	DefaultNumberOfCommits       = 5
	DefaultMessageSpecifications = "concise and clear"
)

// SupportedProviders lists the provider names accepted in the provider field.
var SupportedProviders = []string{"gemini", "openai", "deepseek", "ollama"}

// IsSupportedProvider reports whether name is a known provider.
func IsSupportedProvider(name string) bool {
	for _, p := range SupportedProviders {
		if p == name {
			return true
		}
	}
	return false
}

// Config represents the complete genie-git configuration.
type Config struct {
	APIKey                string   `mapstructure:"api_key"`
	Model                 string   `mapstructure:"model"`
	ExcludeFiles          []string `mapstructure:"exclude_files"`
	NumberOfCommits       int      `mapstructure:"number_of_commits"`
	MessageSpecifications string   `mapstructure:"message_specifications"`
	AlwaysCopy            bool     `mapstructure:"always_copy"`
	Provider              string   `mapstructure:"provider"`
	Endpoint              string   `mapstructure:"endpoint"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		APIKey:                "",
		Model:                 DefaultModel,
		ExcludeFiles:          []string{},
		NumberOfCommits:       DefaultNumberOfCommits,
		MessageSpecifications: DefaultMessageSpecifications,
		AlwaysCopy:            false,
		Provider:              DefaultProvider,
		Endpoint:              "",
	}
}

// Update is a sparse set of changes to a Config.
// A nil field was not provided; a non-nil field overwrites the current value,
// even when it points at a zero value.
type Update struct {
	APIKey                *string
	Model                 *string
	NumberOfCommits       *int
	MessageSpecifications *string
	AlwaysCopy            *bool
	Provider              *string
	Endpoint              *string
}

// IsEmpty reports whether the update carries no changes.
func (u *Update) IsEmpty() bool {
	return u.APIKey == nil && u.Model == nil && u.NumberOfCommits == nil &&
		u.MessageSpecifications == nil && u.AlwaysCopy == nil &&
		u.Provider == nil && u.Endpoint == nil
}

// Validate checks the provided fields without touching any Config.
func (u *Update) Validate() error {
	if u.NumberOfCommits != nil && *u.NumberOfCommits < 1 {
		return apperrors.NewInvalidArgumentsError(
			fmt.Sprintf("number of commits must be a positive integer, got %d", *u.NumberOfCommits))
	}
	if u.Model != nil && strings.TrimSpace(*u.Model) == "" {
		return apperrors.NewInvalidArgumentsError("model name cannot be empty")
	}
	if u.Provider != nil && !IsSupportedProvider(*u.Provider) {
		return apperrors.NewInvalidArgumentsError(
			fmt.Sprintf("unsupported provider %q (supported: %s)", *u.Provider, strings.Join(SupportedProviders, ", ")))
	}
	return nil
}

// Apply overwrites the fields of cfg that were provided in the update.
func (u *Update) Apply(cfg *Config) {
	if u.APIKey != nil {
		cfg.APIKey = *u.APIKey
	}
	if u.Model != nil {
		cfg.Model = *u.Model
	}
	if u.NumberOfCommits != nil {
		cfg.NumberOfCommits = *u.NumberOfCommits
	}
	if u.MessageSpecifications != nil {
		cfg.MessageSpecifications = *u.MessageSpecifications
	}
	if u.AlwaysCopy != nil {
		cfg.AlwaysCopy = *u.AlwaysCopy
	}
	if u.Provider != nil {
		cfg.Provider = *u.Provider
	}
	if u.Endpoint != nil {
		cfg.Endpoint = *u.Endpoint
	}
}

// Entry is a single rendered configuration value.
type Entry struct {
	Key   string
	Value string
}

// Entries returns the configuration as display-ready key/value pairs in a fixed order.
// The API key is masked.
func Entries(cfg *Config) []Entry {
	apiKey := "(not set)"
	if cfg.APIKey != "" {
		apiKey = MaskAPIKey(cfg.APIKey)
	}

	excludes := "(none)"
	if len(cfg.ExcludeFiles) > 0 {
		excludes = strings.Join(cfg.ExcludeFiles, ", ")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "(provider default)"
	}

	return []Entry{
		{Key: "provider", Value: cfg.Provider},
		{Key: "model", Value: cfg.Model},
		{Key: "endpoint", Value: endpoint},
		{Key: "api_key", Value: apiKey},
		{Key: "exclude_files", Value: excludes},
		{Key: "number_of_commits", Value: strconv.Itoa(cfg.NumberOfCommits)},
		{Key: "message_specifications", Value: cfg.MessageSpecifications},
		{Key: "always_copy", Value: strconv.FormatBool(cfg.AlwaysCopy)},
	}
}

// Manager defines the interface for configuration persistence.
type Manager interface {
	Load() (*Config, error)
	Save(config *Config) error
	GetConfigPath() string
}
