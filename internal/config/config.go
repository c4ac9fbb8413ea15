package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"github.com/pyvet/pyvet/internal/constants"
)

// Default analysis settings
const (
	// DefaultTimeoutSeconds bounds a whole analysis run; findings
	// collected before the deadline are still returned
	DefaultTimeoutSeconds = 120

	// DefaultMaxFileSize caps individual files for content extraction
	DefaultMaxFileSize = 1024 * 1024

	// DefaultIgnoreFile is the gitignore-style exclusion file consulted
	// by the structure and files commands
	DefaultIgnoreFile = ".gitignore"
)

// DefaultExcludeDirs are directory names skipped at any depth during
// file discovery
var DefaultExcludeDirs = []string{
	"venv",
	"__pycache__",
	".git",
	"storage",
	".pytest_cache",
	"node_modules",
	"mcp-servers",
}

// DefaultOptionalDependencies are external packages whose absence is
// reported as a warning rather than an error by the import check
var DefaultOptionalDependencies = []string{
	"selenium",
	"streamlit",
	"loguru",
	"pandas",
	"playwright",
}

// Config represents the main configuration structure
type Config struct {
	// Analysis holds file discovery and general analysis configuration
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`

	// Imports holds import check configuration
	Imports ImportsConfig `json:"imports" mapstructure:"imports" yaml:"imports"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Performance holds concurrency and timeout configuration
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`

	// Structure holds project structure/contents command configuration
	Structure StructureConfig `json:"structure,omitempty" mapstructure:"structure" yaml:"structure"`
}

// AnalysisConfig holds general analysis configuration
type AnalysisConfig struct {
	// ExcludeDirs are directory names skipped during discovery
	ExcludeDirs []string `json:"exclude_dirs" mapstructure:"exclude_dirs" yaml:"exclude_dirs"`

	// Checks restricts comprehensive runs to a subset of passes;
	// empty means all
	Checks []string `json:"checks" mapstructure:"checks" yaml:"checks"`
}

// ImportsConfig holds import check configuration
type ImportsConfig struct {
	// OptionalDependencies are packages whose absence is a warning
	OptionalDependencies []string `json:"optional_dependencies" mapstructure:"optional_dependencies" yaml:"optional_dependencies"`

	// ExtraSearchPaths are additional module resolution roots, e.g. a
	// virtualenv's site-packages
	ExtraSearchPaths []string `json:"extra_search_paths" mapstructure:"extra_search_paths" yaml:"extra_search_paths"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, markdown
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// Directory specifies the output directory for saved reports
	// (empty = ".pyvet/reports" under the current working directory)
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`

	// ShowProgress controls the progress bar on TTY output
	ShowProgress bool `json:"show_progress" mapstructure:"show_progress" yaml:"show_progress"`
}

// PerformanceConfig holds concurrency and timeout configuration
type PerformanceConfig struct {
	// MaxGoroutines bounds concurrent pass execution; 0 means NumCPU
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds a whole analysis run; 0 means the default
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// StructureConfig holds configuration for the structure and files
// commands
type StructureConfig struct {
	// IgnoreFile is the gitignore-style exclusion file, relative to
	// the project root
	IgnoreFile string `json:"ignore_file" mapstructure:"ignore_file" yaml:"ignore_file"`

	// ExcludePatterns are path substrings excluded in addition to the
	// ignore file
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// MaxFileSize caps individual file size for content extraction
	MaxFileSize int64 `json:"max_file_size" mapstructure:"max_file_size" yaml:"max_file_size"`

	// SupportedExtensions restricts content extraction by extension
	SupportedExtensions []string `json:"supported_extensions" mapstructure:"supported_extensions" yaml:"supported_extensions"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			ExcludeDirs: append([]string{}, DefaultExcludeDirs...),
		},
		Imports: ImportsConfig{
			OptionalDependencies: append([]string{}, DefaultOptionalDependencies...),
			ExtraSearchPaths:     []string{},
		},
		Output: OutputConfig{
			Format:       "text",
			ShowProgress: true,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  runtime.NumCPU(),
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Structure: StructureConfig{
			IgnoreFile:  DefaultIgnoreFile,
			MaxFileSize: DefaultMaxFileSize,
			SupportedExtensions: []string{
				".py", ".md", ".txt", ".yaml", ".yml", ".json", ".toml",
				".cfg", ".ini", ".sh",
			},
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// If no config path is specified, one is discovered by searching from
// the target upward.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations.
// targetPath is the path being analyzed (e.g., the Python file or directory).
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		constants.ConfigFileName,
		"pyvet.yml",
		".pyvet.yaml",
		".pyvet.yml",
		"pyvet.json",
		".pyvet.json",
	}

	// If targetPath is provided, search from there upward
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			// Search from target directory up to root with robust termination
			// Handle Windows edge cases: volume roots (C:\), UNC paths (\\server\share)
			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	// Check XDG config directory (Linux/Mac standard)
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName), candidates); config != "" {
			return config
		}
	}

	// Check ~/.config/pyvet/ (XDG default)
	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", constants.ToolName)
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}

		// Check home directory (backward compatibility)
		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	// Check PYVET_CONFIG environment variable as fallback
	if envConfig := os.Getenv(constants.ConfigEnvVar); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validFormats := map[string]bool{
		"text":     true,
		"json":     true,
		"yaml":     true,
		"markdown": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, markdown", c.Output.Format)
	}

	validChecks := map[string]bool{
		"syntax":     true,
		"imports":    true,
		"parameters": true,
		"variables":  true,
		"methods":    true,
	}
	for _, check := range c.Analysis.Checks {
		if !validChecks[check] {
			return fmt.Errorf("invalid analysis.checks entry '%s', must be one of: syntax, imports, parameters, variables, methods", check)
		}
	}

	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}
	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	if c.Structure.MaxFileSize < 0 {
		return fmt.Errorf("structure.max_file_size must be >= 0, got %d", c.Structure.MaxFileSize)
	}

	for _, path := range c.Imports.ExtraSearchPaths {
		if path == "" {
			return fmt.Errorf("imports.extra_search_paths entries cannot be empty")
		}
	}

	return nil
}

// CheckEnabled reports whether a pass participates in comprehensive
// runs under this configuration
func (c *AnalysisConfig) CheckEnabled(name string) bool {
	if len(c.Checks) == 0 {
		return true
	}
	for _, check := range c.Checks {
		if check == name {
			return true
		}
	}
	return false
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("analysis", config.Analysis)
	v.Set("imports", config.Imports)
	v.Set("output", config.Output)
	v.Set("performance", config.Performance)
	v.Set("structure", config.Structure)

	return v.WriteConfig()
}
