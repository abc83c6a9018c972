package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"imgv/internal/logger"
)

// Window size constants
const (
	defaultWidth  = 800
	defaultHeight = 600
	minWidth      = 400
	minHeight     = 300
)

const (
	defaultFontSize = 18.0
	minFontSize     = 12.0
)

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	Path     string
	HasError bool
	Warnings []string
	Status   string // "Default", "OK", "Warning", "Error"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" toml:"level" json:"level"`
	File  string `yaml:"file" toml:"file" json:"file"`
}

type Config struct {
	WindowWidth   int                 `yaml:"window_width" toml:"window_width" json:"window_width"`
	WindowHeight  int                 `yaml:"window_height" toml:"window_height" json:"window_height"`
	Recursive     bool                `yaml:"recursive" toml:"recursive" json:"recursive"`
	CaseSensitive bool                `yaml:"case_sensitive" toml:"case_sensitive" json:"case_sensitive"`
	Archives      bool                `yaml:"archives" toml:"archives" json:"archives"`
	SortMethod    string              `yaml:"sort_method" toml:"sort_method" json:"sort_method"`
	Upscale       bool                `yaml:"upscale" toml:"upscale" json:"upscale"`
	ShowInfo      bool                `yaml:"show_info" toml:"show_info" json:"show_info"`
	FontSize      float64             `yaml:"font_size" toml:"font_size" json:"font_size"`
	Keybindings   map[string][]string `yaml:"keybindings" toml:"keybindings" json:"keybindings"`
	Logging       LoggingConfig       `yaml:"logging" toml:"logging" json:"logging"`
}

// DefaultConfig returns a Config with the built-in defaults
func DefaultConfig() Config {
	return Config{
		WindowWidth:   defaultWidth,
		WindowHeight:  defaultHeight,
		Recursive:     false,
		CaseSensitive: false,
		Archives:      false,
		SortMethod:    (&NaturalSortStrategy{}).Key(),
		Upscale:       true,
		ShowInfo:      true,
		FontSize:      defaultFontSize,
		Keybindings:   GetDefaultKeybindings(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SortStrategy returns the strategy named by SortMethod
func (c Config) SortStrategy() SortStrategy {
	strategy, err := ParseSortStrategy(c.SortMethod)
	if err != nil {
		return &NaturalSortStrategy{}
	}
	return strategy
}

// ScanOptions derives scanner options from the configuration
func (c Config) ScanOptions() ScanOptions {
	return ScanOptions{
		Recursive:     c.Recursive,
		CaseSensitive: c.CaseSensitive,
		Archives:      c.Archives,
		Sort:          c.SortStrategy(),
	}
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "imgv")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "imgv")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "imgv")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "imgv")
	}
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./imgv.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
		filepath.Join(ConfigDir(), "config.yml"),
		filepath.Join(ConfigDir(), "config.toml"),
		filepath.Join(ConfigDir(), "config.json"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadConfig loads the explicit path, or the first config file found
func loadConfig(explicitPath string) ConfigLoadResult {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			result := ConfigLoadResult{Config: DefaultConfig(), Path: explicitPath, HasError: true, Status: "Error"}
			result.Warnings = append(result.Warnings, fmt.Sprintf("Config file unavailable: %v", err))
			return result
		}
		return loadConfigFromPath(explicitPath)
	}
	return loadConfigFromPath(findConfigFile())
}

// decodeConfig picks the decoder from the file extension
func decodeConfig(configPath string, data []byte, config *Config) error {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".toml":
		return toml.Unmarshal(data, config)
	case ".json":
		return json.Unmarshal(data, config)
	default:
		return yaml.Unmarshal(data, config)
	}
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	result := ConfigLoadResult{
		Config:   DefaultConfig(),
		Path:     configPath,
		Warnings: []string{},
		Status:   "OK",
	}

	if configPath == "" {
		result.Status = "Default"
		return result
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	config := DefaultConfig()
	config.Keybindings = nil
	if err := decodeConfig(configPath, data, &config); err != nil {
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	result.Warnings = append(result.Warnings, config.validate()...)
	if len(result.Warnings) > 0 {
		result.Status = "Warning"
	}

	result.Config = config
	return result
}

// validate clamps out-of-range values and returns one warning per fix
func (c *Config) validate() []string {
	var warnings []string

	if c.WindowWidth < minWidth {
		warnings = append(warnings, fmt.Sprintf("window_width %d below %d, using %d", c.WindowWidth, minWidth, defaultWidth))
		c.WindowWidth = defaultWidth
	}
	if c.WindowHeight < minHeight {
		warnings = append(warnings, fmt.Sprintf("window_height %d below %d, using %d", c.WindowHeight, minHeight, defaultHeight))
		c.WindowHeight = defaultHeight
	}

	if strategy, err := ParseSortStrategy(c.SortMethod); err != nil {
		warnings = append(warnings, fmt.Sprintf("%v (expected one of %s), using natural", err, strings.Join(sortKeys(), ", ")))
		c.SortMethod = (&NaturalSortStrategy{}).Key()
	} else {
		c.SortMethod = strategy.Key()
	}

	// Minimum 12px for readability
	if c.FontSize < minFontSize {
		warnings = append(warnings, fmt.Sprintf("font_size %.1f below %.0f, using %.0f", c.FontSize, minFontSize, defaultFontSize))
		c.FontSize = defaultFontSize
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		warnings = append(warnings, fmt.Sprintf("unknown log level %q, using info", c.Logging.Level))
		c.Logging.Level = "info"
	}

	if c.Keybindings == nil {
		c.Keybindings = GetDefaultKeybindings()
	} else {
		if err := validateKeybindings(c.Keybindings); err != nil {
			warnings = append(warnings, fmt.Sprintf("Keybinding errors: %v", err))
			c.Keybindings = GetDefaultKeybindings()
		} else {
			warnings = append(warnings, fillDefaultKeybindings(c.Keybindings)...)
		}
	}

	return warnings
}

// fillDefaultKeybindings gives unconfigured actions their default keys,
// skipping any key the user already bound to another action
func fillDefaultKeybindings(keybindings map[string][]string) []string {
	taken := make(map[KeyCombination]bool)
	for _, keys := range keybindings {
		for _, key := range keys {
			if combination, err := parseKeyString(key); err == nil {
				taken[combination] = true
			}
		}
	}

	var warnings []string
	for _, action := range actionNames() {
		if _, exists := keybindings[action]; exists {
			continue
		}
		keys := []string{}
		for _, key := range GetDefaultKeybindings()[action] {
			combination, err := parseKeyString(key)
			if err != nil || taken[combination] {
				warnings = append(warnings, fmt.Sprintf("default key %s for %s is bound elsewhere, leaving it out", key, action))
				continue
			}
			keys = append(keys, key)
		}
		keybindings[action] = keys
	}
	return warnings
}

// logConfigResult reports how the configuration was obtained
func logConfigResult(result ConfigLoadResult) {
	switch result.Status {
	case "Default":
		logger.Debug("Using default configuration")
	case "OK":
		logger.Info("Loaded configuration", zap.String("path", result.Path))
	default:
		for _, warning := range result.Warnings {
			logger.Warn("Configuration problem", zap.String("path", result.Path), zap.String("detail", warning))
		}
	}
}
