package app

import (
	"context"
	"io"
	"path/filepath"

	"github.com/pyvet/pyvet/domain"
	"github.com/pyvet/pyvet/internal/config"
)

// AnalyzeConfig holds configuration for the analyze use case
type AnalyzeConfig struct {
	AnalysisType domain.AnalysisType

	// File collection options
	ExcludeDirs     []string
	IncludePatterns []string

	// Import resolution options
	OptionalDependencies []string
	ExtraSearchPaths     []string

	// Output options
	OutputFormat domain.OutputFormat
	OutputWriter io.Writer
	OutputPath   string
}

// DefaultAnalyzeConfig returns default configuration
func DefaultAnalyzeConfig() AnalyzeConfig {
	return AnalyzeConfig{
		AnalysisType:         domain.AnalysisTypeComprehensive,
		ExcludeDirs:          append([]string{}, config.DefaultExcludeDirs...),
		OptionalDependencies: append([]string{}, config.DefaultOptionalDependencies...),
		OutputFormat:         domain.OutputFormatText,
	}
}

// AnalyzeUseCase orchestrates file collection, analysis and reporting
type AnalyzeUseCase struct {
	service      domain.CodeAnalysisService
	formatter    domain.OutputFormatter
	reportWriter domain.ReportWriter
	fileHelper   *FileHelper
}

// NewAnalyzeUseCase creates a new analyze use case
func NewAnalyzeUseCase(
	service domain.CodeAnalysisService,
	formatter domain.OutputFormatter,
	reportWriter domain.ReportWriter,
) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		service:      service,
		formatter:    formatter,
		reportWriter: reportWriter,
		fileHelper:   NewFileHelper(),
	}
}

// Execute collects Python files under the given paths, runs the
// requested analysis and writes the report. An empty file set is a
// clean result, not an error.
func (uc *AnalyzeUseCase) Execute(ctx context.Context, cfg AnalyzeConfig, paths []string) (*domain.CodeAnalysisResponse, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	root, err := filepath.Abs(paths[0])
	if err != nil {
		return nil, domain.NewInvalidInputError("invalid analysis root", err)
	}

	files, err := ResolveFilePaths(uc.fileHelper, paths, true, cfg.IncludePatterns, cfg.ExcludeDirs)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to collect files", err)
	}

	req := domain.CodeAnalysisRequest{
		Root:                 root,
		Paths:                files,
		AnalysisType:         cfg.AnalysisType,
		OptionalDependencies: cfg.OptionalDependencies,
		ExtraSearchPaths:     cfg.ExtraSearchPaths,
		OutputFormat:         cfg.OutputFormat,
		OutputWriter:         cfg.OutputWriter,
		OutputPath:           cfg.OutputPath,
	}

	response, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return nil, domain.NewAnalysisError("code analysis failed", err)
	}

	if cfg.OutputWriter != nil {
		if err := uc.formatter.Write(response, cfg.OutputFormat, cfg.OutputWriter); err != nil {
			return nil, domain.NewOutputError("failed to write output", err)
		}
	}

	if cfg.OutputPath != "" && uc.reportWriter != nil {
		if err := uc.reportWriter.SaveReport(response, cfg.OutputFormat, cfg.OutputPath); err != nil {
			return nil, err
		}
	}

	return response, nil
}

// AnalyzeUseCaseBuilder builds an AnalyzeUseCase
type AnalyzeUseCaseBuilder struct {
	service      domain.CodeAnalysisService
	formatter    domain.OutputFormatter
	reportWriter domain.ReportWriter
	fileHelper   *FileHelper
}

// NewAnalyzeUseCaseBuilder creates a new builder
func NewAnalyzeUseCaseBuilder() *AnalyzeUseCaseBuilder {
	return &AnalyzeUseCaseBuilder{}
}

// WithService sets the analysis service
func (b *AnalyzeUseCaseBuilder) WithService(service domain.CodeAnalysisService) *AnalyzeUseCaseBuilder {
	b.service = service
	return b
}

// WithOutputFormatter sets the output formatter
func (b *AnalyzeUseCaseBuilder) WithOutputFormatter(formatter domain.OutputFormatter) *AnalyzeUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithReportWriter sets the report writer
func (b *AnalyzeUseCaseBuilder) WithReportWriter(writer domain.ReportWriter) *AnalyzeUseCaseBuilder {
	b.reportWriter = writer
	return b
}

// WithFileHelper sets the file helper
func (b *AnalyzeUseCaseBuilder) WithFileHelper(fh *FileHelper) *AnalyzeUseCaseBuilder {
	b.fileHelper = fh
	return b
}

// Build creates the AnalyzeUseCase
func (b *AnalyzeUseCaseBuilder) Build() (*AnalyzeUseCase, error) {
	uc := &AnalyzeUseCase{
		service:      b.service,
		formatter:    b.formatter,
		reportWriter: b.reportWriter,
		fileHelper:   b.fileHelper,
	}

	if uc.service == nil {
		return nil, domain.NewInvalidInputError("analysis service is required", nil)
	}
	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelper()
	}

	return uc, nil
}
