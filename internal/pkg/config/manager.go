package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/geniegit/geniegit/internal/pkg/errors"
)

const (
	// DefaultConfigDir is the per-user directory holding the config file.
	DefaultConfigDir = ".genie-git"
	// DefaultConfigFileName is the default config file name.
	DefaultConfigFileName = "config.yaml"
	// DefaultConfigFileExt is the default config file extension.
	DefaultConfigFileExt = "yaml"
	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "GENIE_GIT"
)

// ViperManager implements the Manager interface using Viper.
type ViperManager struct {
	v          *viper.Viper
	configPath string
}

// NewManager creates a new configuration manager.
// If configPath is empty, it uses the default path (~/.genie-git/config.yaml).
func NewManager(configPath string) (*ViperManager, error) {
	if configPath == "" {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = path
	}

	v := viper.New()
	v.SetConfigType(DefaultConfigFileExt)
	v.SetConfigFile(configPath)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvVars(v)

	return &ViperManager{
		v:          v,
		configPath: configPath,
	}, nil
}

// DefaultPath returns ~/.genie-git/config.yaml for the current user.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, DefaultConfigDir, DefaultConfigFileName), nil
}

// bindEnvVars explicitly binds environment variables for all config keys.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("api_key", "GENIE_GIT_API_KEY")
	_ = v.BindEnv("model", "GENIE_GIT_MODEL")
	_ = v.BindEnv("provider", "GENIE_GIT_PROVIDER")
	_ = v.BindEnv("endpoint", "GENIE_GIT_ENDPOINT")
	_ = v.BindEnv("number_of_commits", "GENIE_GIT_NUMBER_OF_COMMITS")
	_ = v.BindEnv("message_specifications", "GENIE_GIT_MESSAGE_SPECIFICATIONS")
	_ = v.BindEnv("always_copy", "GENIE_GIT_ALWAYS_COPY")
}

// setDefaults sets the default configuration values.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("model", d.Model)
	v.SetDefault("exclude_files", d.ExcludeFiles)
	v.SetDefault("number_of_commits", d.NumberOfCommits)
	v.SetDefault("message_specifications", d.MessageSpecifications)
	v.SetDefault("always_copy", d.AlwaysCopy)
	v.SetDefault("provider", d.Provider)
	v.SetDefault("endpoint", d.Endpoint)
}

// GetConfigPath returns the path to the configuration file.
func (m *ViperManager) GetConfigPath() string {
	return m.configPath
}

// ConfigExists checks if the configuration file exists.
func (m *ViperManager) ConfigExists() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}

// Load loads the configuration from file, environment, and defaults.
// A missing file is not an error: the defaults are returned.
// Priority: env > file > defaults
func (m *ViperManager) Load() (*Config, error) {
	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig,
				fmt.Sprintf("failed to read config file %s", m.configPath))
		}
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to unmarshal config")
	}

	if cfg.ExcludeFiles == nil {
		cfg.ExcludeFiles = []string{}
	}

	return &cfg, nil
}

// Save writes every field of the configuration to file, replacing its previous contents.
// The file is created with permissions 0600 since it holds an API key.
func (m *ViperManager) Save(config *Config) error {
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to create config directory")
	}

	excludes := config.ExcludeFiles
	if excludes == nil {
		excludes = []string{}
	}

	m.v.Set("api_key", config.APIKey)
	m.v.Set("model", config.Model)
	m.v.Set("exclude_files", excludes)
	m.v.Set("number_of_commits", config.NumberOfCommits)
	m.v.Set("message_specifications", config.MessageSpecifications)
	m.v.Set("always_copy", config.AlwaysCopy)
	m.v.Set("provider", config.Provider)
	m.v.Set("endpoint", config.Endpoint)

	if err := m.v.WriteConfigAs(m.configPath); err != nil {
		return apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to write config file")
	}

	if err := os.Chmod(m.configPath, 0600); err != nil {
		return apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to set config file permissions")
	}

	return nil
}

// MaskAPIKey masks an API key, showing only the last 4 characters.
func MaskAPIKey(key string) string {
	return apperrors.MaskAPIKey(key)
}
