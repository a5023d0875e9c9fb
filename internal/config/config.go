package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"quill/internal/notes/codec"
)

const (
	// DefaultNotesDir is relative to the working directory
	DefaultNotesDir = "notes"

	envNotesDir = "QUILL_NOTES_DIR"
	envFormat   = "QUILL_FORMAT"
)

// Config holds the resolved application configuration
type Config struct {
	NotesDir    string
	FallbackDir string
	Format      codec.Format
	LogDir      string
}

// Settings represents the config file structure
type Settings struct {
	NotesDir    string `yaml:"notes_dir,omitempty"`
	FallbackDir string `yaml:"fallback_dir,omitempty"`
	Format      string `yaml:"format,omitempty"`
	LogDir      string `yaml:"log_dir,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	NotesDir string
	Format   string
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		NotesDir: DefaultNotesDir,
		Format:   codec.DefaultFormat,
	}

	defaultDir, err := GetDefaultDir()
	if err != nil {
		return nil, err
	}
	cfg.FallbackDir = filepath.Join(defaultDir, "notes")

	format := ""

	// Config file supplies the base values
	configPath, err := getConfigPath()
	if err == nil {
		cfg.LogDir = filepath.Dir(configPath)

		fileConfig, err := loadConfigFile(configPath)
		switch {
		case err == nil:
			if fileConfig.NotesDir != "" {
				cfg.NotesDir = expandPath(fileConfig.NotesDir)
			}
			if fileConfig.FallbackDir != "" {
				cfg.FallbackDir = expandPath(fileConfig.FallbackDir)
			}
			if fileConfig.LogDir != "" {
				cfg.LogDir = expandPath(fileConfig.LogDir)
			}
			format = fileConfig.Format
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
	}

	// Environment variables override the config file
	if v := os.Getenv(envNotesDir); v != "" {
		cfg.NotesDir = expandPath(v)
	}
	if v := os.Getenv(envFormat); v != "" {
		format = v
	}

	// CLI flags override everything
	if flags.NotesDir != "" {
		cfg.NotesDir = expandPath(flags.NotesDir)
	}
	if flags.Format != "" {
		format = flags.Format
	}

	if format != "" {
		f, err := codec.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		cfg.Format = f
	}

	return cfg, nil
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "quill"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "quill", "config.yaml"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	settings := Settings{
		NotesDir:    DefaultNotesDir,
		FallbackDir: "~/quill/notes",
		Format:      string(codec.DefaultFormat),
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
