package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// expandEnvVar expands environment variable references in the given value
// Supports both $VAR and ${VAR} syntax
// Returns the expanded value. If the environment variable is not set, returns empty string.
func expandEnvVar(value string) (string, error) {
	// Check if it's an environment variable reference
	if !strings.HasPrefix(value, "$") {
		// Not an environment variable reference, return as-is
		return value, nil
	}

	// Support both $VAR and ${VAR} syntax
	var envVarName string
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		// Extract variable name from ${VAR} format
		envVarName = value[2 : len(value)-1]
	} else {
		// Extract variable name from $VAR format
		envVarName = strings.TrimPrefix(value, "$")
	}
	if envVarName == "" {
		return "", fmt.Errorf("empty environment variable reference: %q", value)
	}

	// Get environment variable value
	// If not set, return empty string (no error)
	return os.Getenv(envVarName), nil
}

// GetBaseURL returns the validated backend base URL
// Environment variables are already expanded during LoadConfig()
func (c *Config) GetBaseURL() (string, error) {
	// Validate that base URL is not empty
	if c.BaseURL == "" {
		return "", fmt.Errorf("base URL is not configured. Set it in config file (base_url) or environment variable (CHATC_BASE_URL)")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid base URL %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid base URL %q: missing host", c.BaseURL)
	}

	return strings.TrimRight(c.BaseURL, "/"), nil
}

// ChatURL returns the full URL of the chat endpoint (base URL + chat path)
func (c *Config) ChatURL() (string, error) {
	baseURL, err := c.GetBaseURL()
	if err != nil {
		return "", err
	}

	return baseURL + c.GetChatPath(), nil
}

// GetChatPath returns the chat endpoint path, always starting with "/"
func (c *Config) GetChatPath() string {
	return NormalizeChatPath(c.ChatPath)
}

// NormalizeChatPath applies the default and adds a missing leading "/"
func NormalizeChatPath(path string) string {
	// Fall back to the default endpoint
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultChatPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// ResolvePath converts a relative path to absolute path if needed
func ResolvePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("error getting home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}

	if filepath.IsAbs(path) {
		return path, nil
	}

	// Get config file directory as base directory
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		// If no config file is used, fall back to current working directory
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("error getting current working directory: %w", err)
		}
		return filepath.Join(cwd, path), nil
	}

	configDir := filepath.Dir(configFile)
	if !filepath.IsAbs(configDir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("error getting current working directory: %w", err)
		}
		configDir = filepath.Join(cwd, configDir)
	}

	// Use config file directory as base
	return filepath.Join(configDir, path), nil
}
