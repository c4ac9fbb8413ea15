package service

import (
	"fmt"

	"github.com/pyvet/pyvet/domain"
	"github.com/pyvet/pyvet/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.CodeAnalysisRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}

	return c.convertToRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration, searching upward for a
// project config file before falling back to built-in defaults
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.CodeAnalysisRequest {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err == nil {
		return c.convertToRequest(cfg)
	}

	cfg = config.DefaultConfig()
	return c.convertToRequest(cfg)
}

// MergeConfig merges CLI flags with configuration file
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.CodeAnalysisRequest, override *domain.CodeAnalysisRequest) *domain.CodeAnalysisRequest {
	merged := *base

	// Root and paths always come from command arguments
	if override.Root != "" {
		merged.Root = override.Root
	}
	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}

	if override.AnalysisType != "" {
		merged.AnalysisType = override.AnalysisType
	}

	if len(override.OptionalDependencies) > 0 {
		merged.OptionalDependencies = override.OptionalDependencies
	}

	if len(override.ExtraSearchPaths) > 0 {
		merged.ExtraSearchPaths = override.ExtraSearchPaths
	}

	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}

	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}

	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}

	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	return &merged
}

// ValidateConfig validates the merged request before analysis runs
func (c *ConfigurationLoaderImpl) ValidateConfig(req *domain.CodeAnalysisRequest) error {
	if req.AnalysisType != "" && !req.AnalysisType.IsValid() {
		return fmt.Errorf("invalid analysis type: %s (must be one of: syntax, imports, parameters, variables, methods, comprehensive)",
			req.AnalysisType)
	}

	validFormats := map[domain.OutputFormat]bool{
		domain.OutputFormatText:     true,
		domain.OutputFormatJSON:     true,
		domain.OutputFormatYAML:     true,
		domain.OutputFormatMarkdown: true,
	}

	if req.OutputFormat != "" && !validFormats[req.OutputFormat] {
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, yaml, markdown)",
			req.OutputFormat)
	}

	return nil
}

// convertToRequest converts a Config to CodeAnalysisRequest
func (c *ConfigurationLoaderImpl) convertToRequest(cfg *config.Config) *domain.CodeAnalysisRequest {
	return &domain.CodeAnalysisRequest{
		// Root and paths are set by the caller, not from config
		Paths: []string{},

		AnalysisType:         domain.AnalysisTypeComprehensive,
		OptionalDependencies: cfg.Imports.OptionalDependencies,
		ExtraSearchPaths:     cfg.Imports.ExtraSearchPaths,
		OutputFormat:         domain.OutputFormat(cfg.Output.Format),
	}
}
