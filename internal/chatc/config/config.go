package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultBaseURL  = "http://localhost:5000"
	DefaultChatPath = "/api/chat"
	DefaultTimeout  = "60s"
	DefaultAddr     = ":5000"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config holds the configuration for the chat client and the development backend
type Config struct {
	BaseURL         string `toml:"base_url" mapstructure:"base_url"`   // Backend base URL, e.g. "http://localhost:5000"
	ChatPath        string `toml:"chat_path" mapstructure:"chat_path"` // Path of the chat endpoint
	Timeout         string `toml:"timeout" mapstructure:"timeout"`     // Transport timeout as a Go duration ("0" = none)
	Theme           string `toml:"theme" mapstructure:"theme"`         // "light" or "dark"
	SaveTranscripts bool   `toml:"save_transcripts" mapstructure:"save_transcripts"`
	TranscriptDir   string `toml:"transcript_dir" mapstructure:"transcript_dir"`
	LogFile         string `toml:"log_file" mapstructure:"log_file"`   // Empty = stderr
	LogLevel        string `toml:"log_level" mapstructure:"log_level"` // debug, info, warn, error
	ServeAddr       string `toml:"serve_addr" mapstructure:"serve_addr"`
}

// NewDefaultConfig returns a new Config with default values
func NewDefaultConfig(transcriptDir string) *Config {
	return &Config{
		BaseURL:         DefaultBaseURL,
		ChatPath:        DefaultChatPath,
		Timeout:         DefaultTimeout,
		Theme:           ThemeLight,
		SaveTranscripts: false,
		TranscriptDir:   transcriptDir,
		LogFile:         "",
		LogLevel:        "warn",
		ServeAddr:       DefaultAddr,
	}
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Expand environment variables in base URL
	baseURL, err := expandEnvVar(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("error expanding base_url: %w", err)
	}
	config.BaseURL = baseURL

	// Resolve transcript directory to absolute path
	if config.TranscriptDir != "" {
		absPath, err := ResolvePath(config.TranscriptDir)
		if err != nil {
			return nil, fmt.Errorf("error resolving transcript directory path '%s': %w", config.TranscriptDir, err)
		}
		config.TranscriptDir = absPath
	}

	// Resolve log file to absolute path
	if config.LogFile != "" {
		absPath, err := ResolvePath(config.LogFile)
		if err != nil {
			return nil, fmt.Errorf("error resolving log file path '%s': %w", config.LogFile, err)
		}
		config.LogFile = absPath
	}

	return config, nil
}

// RequestTimeout parses the transport timeout. Zero means no timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.Timeout == "" || c.Timeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", c.Timeout)
	}
	return d, nil
}

// GetTheme returns the configured theme, defaulting to light
func (c *Config) GetTheme() (string, error) {
	switch c.Theme {
	case "":
		return ThemeLight, nil
	case ThemeLight, ThemeDark:
		return c.Theme, nil
	default:
		return "", fmt.Errorf("unsupported theme: %s (expected %s or %s)", c.Theme, ThemeLight, ThemeDark)
	}
}
