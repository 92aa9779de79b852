// Copyright 2024 Police Portal Assistant Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/your-org/police-portal-assistant/internal/lang"
)

var (
	// ErrMissingRequiredField is returned when a required configuration field is missing
	ErrMissingRequiredField = errors.New("missing required configuration field")
	// ErrInvalidConfigValue is returned when a configuration value is invalid
	ErrInvalidConfigValue = errors.New("invalid configuration value")
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Session   SessionConfig   `mapstructure:"session"`
	QueryLog  QueryLogConfig  `mapstructure:"querylog"`
	SMS       SMSConfig       `mapstructure:"sms"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// AssistantConfig contains query answering settings
type AssistantConfig struct {
	MatchThreshold  float64 `mapstructure:"match_threshold"`
	DefaultLanguage string  `mapstructure:"default_language"`
}

// SessionConfig contains session management settings
type SessionConfig struct {
	DefaultTTL      time.Duration `mapstructure:"default_ttl"`
	MaxSessions     int           `mapstructure:"max_sessions"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// QueryLogConfig contains activity database configuration
type QueryLogConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// SMSConfig contains SMS gateway configuration. An empty gateway URL
// selects the logging sender.
type SMSConfig struct {
	GatewayURL string `mapstructure:"gateway_url"`
	APIKey     string `mapstructure:"api_key"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed for field '%s': %s", e.Field, e.Message)
}

// LoadOptions contains options for configuration loading
type LoadOptions struct {
	ConfigPath       string
	ValidateRequired bool
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over config file values.
func Load(configPath string) (*Config, error) {
	return LoadWithOptions(LoadOptions{
		ConfigPath:       configPath,
		ValidateRequired: true,
	})
}

// LoadWithOptions loads configuration with additional options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if err := setConfigFile(v, opts.ConfigPath); err != nil {
		return nil, fmt.Errorf("failed to set config file: %w", err)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("ASSISTANT")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error if env vars are set
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	setEnvironmentMappings(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if opts.ValidateRequired {
		if err := validateConfig(&config); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	// Assistant defaults
	v.SetDefault("assistant.match_threshold", 0.3)
	v.SetDefault("assistant.default_language", "english")

	// Session defaults
	v.SetDefault("session.default_ttl", "30m")
	v.SetDefault("session.max_sessions", 1000)
	v.SetDefault("session.cleanup_interval", "5m")

	// Activity log defaults
	v.SetDefault("querylog.db_path", "./assistant.db")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
}

// setConfigFile sets the configuration file path with fallback logic
func setConfigFile(v *viper.Viper, configPath string) error {
	// Check for CONFIG_PATH environment variable
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return fmt.Errorf("config file specified by CONFIG_PATH does not exist: %s", envPath)
		}
		v.SetConfigFile(envPath)
		return nil
	}

	// Use provided config path
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return fmt.Errorf("config file does not exist: %s", configPath)
		}
		v.SetConfigFile(configPath)
		return nil
	}

	// Default fallback locations; running purely off defaults and env
	// vars is fine, so a missing file is not an error here.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	return nil
}

// setEnvironmentMappings sets explicit environment variable mappings
func setEnvironmentMappings(v *viper.Viper) {
	envMappings := map[string]string{
		"SERVER_PORT":      "server.port",
		"QUERYLOG_DB_PATH": "querylog.db_path",
		"SMS_GATEWAY_URL":  "sms.gateway_url",
		"SMS_API_KEY":      "sms.api_key",
		"LOG_LEVEL":        "logging.level",
		"LOG_FORMAT":       "logging.format",
		"LOG_OUTPUT":       "logging.output",
	}

	for envVar, configKey := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			v.Set(configKey, value)
		}
	}
}

// validateConfig validates the configuration for required fields and valid values
func validateConfig(config *Config) error {
	var errors []ValidationError

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "server.port",
			Message: "port must be between 1 and 65535",
		})
	}

	if config.Assistant.MatchThreshold <= 0 || config.Assistant.MatchThreshold > 1 {
		errors = append(errors, ValidationError{
			Field:   "assistant.match_threshold",
			Message: "match_threshold must be between 0 and 1",
		})
	}

	if _, err := lang.Parse(config.Assistant.DefaultLanguage); err != nil {
		errors = append(errors, ValidationError{
			Field:   "assistant.default_language",
			Message: fmt.Sprintf("default_language must be one of: %s", joinLanguages()),
		})
	}

	if config.Session.MaxSessions <= 0 {
		errors = append(errors, ValidationError{
			Field:   "session.max_sessions",
			Message: "max_sessions must be greater than 0",
		})
	}

	if config.Session.DefaultTTL <= 0 {
		errors = append(errors, ValidationError{
			Field:   "session.default_ttl",
			Message: "default_ttl must be a positive duration",
		})
	}

	if config.Session.CleanupInterval < 0 {
		errors = append(errors, ValidationError{
			Field:   "session.cleanup_interval",
			Message: "cleanup_interval must not be negative",
		})
	}

	if config.QueryLog.DBPath == "" {
		errors = append(errors, ValidationError{
			Field:   "querylog.db_path",
			Message: "activity database path is required",
		})
	} else if err := validateDirectoryExists(filepath.Dir(config.QueryLog.DBPath)); err != nil {
		errors = append(errors, ValidationError{
			Field:   "querylog.db_path",
			Message: fmt.Sprintf("activity database directory does not exist: %s", filepath.Dir(config.QueryLog.DBPath)),
		})
	}

	if config.SMS.GatewayURL != "" && config.SMS.APIKey == "" {
		errors = append(errors, ValidationError{
			Field:   "sms.api_key",
			Message: "api_key is required when a gateway URL is configured. Set via config file or SMS_API_KEY environment variable",
		})
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, config.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("log level must be one of: %s", strings.Join(validLogLevels, ", ")),
		})
	}

	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, config.Logging.Format) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("log format must be one of: %s", strings.Join(validLogFormats, ", ")),
		})
	}

	if len(errors) > 0 {
		var errorMessages []string
		for _, err := range errors {
			errorMessages = append(errorMessages, err.Error())
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errorMessages, "\n"))
	}

	return nil
}

// DefaultLanguage returns the configured default language.
func (c *Config) DefaultLanguage() lang.Language {
	l, err := lang.Parse(c.Assistant.DefaultLanguage)
	if err != nil {
		return lang.English
	}
	return l
}

// MaskSensitiveValues returns a copy of the config with sensitive values masked
func (c *Config) MaskSensitiveValues() *Config {
	masked := *c

	if masked.SMS.APIKey != "" {
		masked.SMS.APIKey = maskValue(masked.SMS.APIKey)
	}

	return &masked
}

// maskValue masks sensitive values, showing only the first 8 characters
func maskValue(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:8] + strings.Repeat("*", len(value)-8)
}

// contains checks if a slice contains a specific string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func joinLanguages() string {
	all := lang.All()
	names := make([]string, len(all))
	for i, l := range all {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}

// validateDirectoryExists checks if a directory exists
func validateDirectoryExists(path string) error {
	if path == "" || path == "." {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	return nil
}

// WatchConfig enables configuration hot-reloading for development
func WatchConfig(configPath string, callback func(*Config)) error {
	v := viper.New()

	if err := setConfigFile(v, configPath); err != nil {
		return err
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Printf("Config file changed: %s\n", e.Name)

		config, err := LoadWithOptions(LoadOptions{
			ConfigPath:       configPath,
			ValidateRequired: true,
		})
		if err != nil {
			fmt.Printf("Failed to reload config: %v\n", err)
			return
		}

		callback(config)
	})

	return nil
}
