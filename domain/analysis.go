package domain

import (
	"context"
	"io"
)

// Severity represents the severity of a finding
type Severity string

const (
	// SeverityError marks a defect the analyzer is confident about.
	// A non-empty error bucket is the authoritative "failed" signal.
	SeverityError Severity = "error"

	// SeverityWarning marks an advisory finding that never fails a gate by itself
	SeverityWarning Severity = "warning"
)

// AnalysisType selects which check pass (or all of them) to run
type AnalysisType string

const (
	AnalysisTypeSyntax        AnalysisType = "syntax"
	AnalysisTypeImports       AnalysisType = "imports"
	AnalysisTypeParameters    AnalysisType = "parameters"
	AnalysisTypeVariables     AnalysisType = "variables"
	AnalysisTypeMethods       AnalysisType = "methods"
	AnalysisTypeComprehensive AnalysisType = "comprehensive"
)

// AllAnalysisTypes lists the individual passes run by a comprehensive analysis
func AllAnalysisTypes() []AnalysisType {
	return []AnalysisType{
		AnalysisTypeSyntax,
		AnalysisTypeImports,
		AnalysisTypeParameters,
		AnalysisTypeVariables,
		AnalysisTypeMethods,
	}
}

// IsValid reports whether t names a known analysis type
func (t AnalysisType) IsValid() bool {
	switch t {
	case AnalysisTypeSyntax, AnalysisTypeImports, AnalysisTypeParameters,
		AnalysisTypeVariables, AnalysisTypeMethods, AnalysisTypeComprehensive:
		return true
	}
	return false
}

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText     OutputFormat = "text"
	OutputFormatJSON     OutputFormat = "json"
	OutputFormatYAML     OutputFormat = "yaml"
	OutputFormatMarkdown OutputFormat = "markdown"
)

// Finding represents a single reported issue with file/line context.
// Findings are immutable once created and belong to exactly one
// severity bucket.
type Finding struct {
	// Severity is either error or warning
	Severity Severity `json:"severity" yaml:"severity"`

	// Check names the pass that produced the finding
	Check AnalysisType `json:"check" yaml:"check"`

	// Message is the human-readable description including file path
	// and, where applicable, line number
	Message string `json:"message" yaml:"message"`

	// FilePath is the analyzed file, empty for run-level findings
	FilePath string `json:"file_path,omitempty" yaml:"file_path,omitempty"`

	// Line is the 1-based source line, 0 when not applicable
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
}

// CodeAnalysisRequest represents a request for code analysis
type CodeAnalysisRequest struct {
	// Root is the project root the analysis was requested for
	Root string

	// Paths are the Python files to analyze (pre-collected by the caller)
	Paths []string

	// AnalysisType selects a single pass or comprehensive
	AnalysisType AnalysisType

	// OptionalDependencies are module names whose absence is downgraded
	// from error to warning by the imports pass
	OptionalDependencies []string

	// ExtraSearchPaths are additional import resolution roots
	ExtraSearchPaths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string

	// Configuration
	ConfigPath string
}

// CodeAnalysisSummary provides aggregate statistics for one analysis run
type CodeAnalysisSummary struct {
	AnalysisType AnalysisType `json:"analysis_type" yaml:"analysis_type"`
	Root         string       `json:"root" yaml:"root"`
	TotalFiles   int          `json:"total_files" yaml:"total_files"`
	ErrorCount   int          `json:"error_count" yaml:"error_count"`
	WarningCount int          `json:"warning_count" yaml:"warning_count"`
	DurationMs   int64        `json:"duration_ms" yaml:"duration_ms"`

	// Partial is true when the run hit its wall-clock budget and the
	// finding buckets hold only what accumulated before the deadline
	Partial bool `json:"partial,omitempty" yaml:"partial,omitempty"`
}

// CodeAnalysisResponse represents the complete analysis result.
// No ordering is guaranteed within the finding buckets.
type CodeAnalysisResponse struct {
	Errors   []Finding           `json:"errors" yaml:"errors"`
	Warnings []Finding           `json:"warnings" yaml:"warnings"`
	Summary  CodeAnalysisSummary `json:"summary" yaml:"summary"`

	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// Failed reports whether the analysis found genuine defects
func (r *CodeAnalysisResponse) Failed() bool {
	return len(r.Errors) > 0
}

// CodeAnalysisService defines the core business logic for code analysis
type CodeAnalysisService interface {
	// Analyze runs the requested pass (or all passes) over the request's
	// file list. It always returns a response, even when every file fails
	// every check; an error indicates an invalid request, never findings.
	Analyze(ctx context.Context, req CodeAnalysisRequest) (*CodeAnalysisResponse, error)
}

// PythonFileReader defines file collection and reading for Python sources
type PythonFileReader interface {
	// CollectPythonFiles recursively finds all Python files in the given
	// paths, skipping excluded directory names at any depth. A path that
	// does not exist contributes nothing; the walk never fails.
	CollectPythonFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsValidPythonFile checks if a file is a Python source file
	IsValidPythonFile(path string) bool

	// FileExists checks if a file exists
	FileExists(path string) (bool, error)
}

// OutputFormatter defines the interface for formatting analysis results
type OutputFormatter interface {
	// Format formats the analysis response according to the specified format
	Format(response *CodeAnalysisResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *CodeAnalysisResponse, format OutputFormat, writer io.Writer) error
}

// ReportWriter persists a rendered report to a caller-chosen location
type ReportWriter interface {
	SaveReport(response *CodeAnalysisResponse, format OutputFormat, path string) error
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*CodeAnalysisRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *CodeAnalysisRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *CodeAnalysisRequest, override *CodeAnalysisRequest) *CodeAnalysisRequest
}

// ExecutableTask is a unit of work runnable by a ParallelExecutor
type ExecutableTask interface {
	Name() string
	IsEnabled() bool
	Execute(ctx context.Context) (interface{}, error)
}

// ParallelExecutor runs tasks concurrently with bounded parallelism
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
}

// ProgressManager creates progress tasks for long-running operations
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}
