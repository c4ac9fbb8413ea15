package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pyvet/pyvet/domain"
	"github.com/pyvet/pyvet/internal/analyzer"
	"github.com/pyvet/pyvet/internal/config"
	"github.com/pyvet/pyvet/internal/parser"
	"github.com/pyvet/pyvet/internal/version"
)

// CodeAnalysisServiceImpl implements the CodeAnalysisService interface
type CodeAnalysisServiceImpl struct {
	config   *config.Config
	executor domain.ParallelExecutor
	progress domain.ProgressManager
}

// NewCodeAnalysisService creates a new code analysis service
func NewCodeAnalysisService(cfg *config.Config) *CodeAnalysisServiceImpl {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	progress := NewProgressManager(cfg.Output.ShowProgress)
	return &CodeAnalysisServiceImpl{
		config:   cfg,
		executor: NewParallelExecutorWithProgress(&cfg.Performance, progress),
		progress: progress,
	}
}

// findingCollector gathers findings from concurrently running passes
type findingCollector struct {
	mu       sync.Mutex
	findings []domain.Finding
}

func (c *findingCollector) add(findings ...domain.Finding) {
	c.mu.Lock()
	c.findings = append(c.findings, findings...)
	c.mu.Unlock()
}

// passTask adapts an analyzer pass to the executor's task interface
type passTask struct {
	pass      analyzer.Pass
	files     []*analyzer.SourceFile
	collector *findingCollector
	enabled   bool
}

// Name returns the pass name for error reporting
func (t *passTask) Name() string {
	return string(t.pass.Type())
}

// IsEnabled reports whether the pass was selected by configuration
func (t *passTask) IsEnabled() bool {
	return t.enabled
}

// Execute runs the pass and collects its findings. A panicking pass is
// downgraded to a warning so one broken check never aborts the run.
func (t *passTask) Execute(ctx context.Context) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			t.collector.add(domain.Finding{
				Severity: domain.SeverityWarning,
				Check:    t.pass.Type(),
				Message:  fmt.Sprintf("check %s failed: %v", t.pass.Type(), r),
			})
		}
	}()

	t.collector.add(t.pass.Run(ctx, t.files)...)
	return nil, nil
}

// Analyze runs the requested analysis and always returns a response.
// An error is returned only for an invalid request, never for findings.
func (s *CodeAnalysisServiceImpl) Analyze(ctx context.Context, req domain.CodeAnalysisRequest) (*domain.CodeAnalysisResponse, error) {
	start := time.Now()

	analysisType := req.AnalysisType
	if analysisType == "" {
		analysisType = domain.AnalysisTypeComprehensive
	}

	collector := &findingCollector{}

	if !analysisType.IsValid() {
		collector.add(domain.Finding{
			Severity: domain.SeverityWarning,
			Check:    analysisType,
			Message:  fmt.Sprintf("Unknown analysis type: %s", analysisType),
		})
		return s.buildResponse(analysisType, req.Root, 0, collector.findings, false, start), nil
	}

	timeout := time.Duration(s.config.Performance.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	files := s.loadSourceFiles(runCtx, req.Paths)
	tasks := s.buildTasks(analysisType, req, files, collector)

	if err := s.executor.Execute(runCtx, tasks); err != nil {
		// Task errors are already reported as findings by the passes;
		// anything surfacing here is downgraded to a warning.
		collector.add(domain.Finding{
			Severity: domain.SeverityWarning,
			Check:    analysisType,
			Message:  fmt.Sprintf("analysis incomplete: %v", err),
		})
	}

	partial := runCtx.Err() == context.DeadlineExceeded
	if partial {
		collector.add(domain.Finding{
			Severity: domain.SeverityWarning,
			Check:    analysisType,
			Message:  fmt.Sprintf("analysis timed out after %s, results are partial", timeout),
		})
	}

	return s.buildResponse(analysisType, req.Root, len(files), collector.findings, partial, start), nil
}

// loadSourceFiles reads and parses every requested file exactly once.
// Read or parse failures are recorded on the SourceFile for the passes
// to report; loading itself never fails the run.
func (s *CodeAnalysisServiceImpl) loadSourceFiles(ctx context.Context, paths []string) []*analyzer.SourceFile {
	p := parser.NewParser()
	defer p.Close()

	files := make([]*analyzer.SourceFile, 0, len(paths))

	for _, path := range paths {
		file := &analyzer.SourceFile{
			Path: path,
			Dir:  filepath.Dir(path),
		}

		source, err := os.ReadFile(path)
		if err != nil {
			file.LoadErr = err
			files = append(files, file)
			continue
		}

		result, err := p.ParseFile(ctx, path, source)
		if err != nil {
			file.LoadErr = err
		} else {
			file.Result = result
		}
		files = append(files, file)
	}

	return files
}

// buildTasks assembles the executable pass tasks for the requested type
func (s *CodeAnalysisServiceImpl) buildTasks(analysisType domain.AnalysisType, req domain.CodeAnalysisRequest, files []*analyzer.SourceFile, collector *findingCollector) []domain.ExecutableTask {
	optional := req.OptionalDependencies
	if optional == nil {
		optional = s.config.Imports.OptionalDependencies
	}
	searchPaths := req.ExtraSearchPaths
	if searchPaths == nil {
		searchPaths = s.config.Imports.ExtraSearchPaths
	}
	resolver := analyzer.NewResolver(searchPaths...)

	passes := []analyzer.Pass{
		analyzer.NewSyntaxPass(),
		analyzer.NewImportsPass(req.Root, resolver, optional),
		analyzer.NewParametersPass(),
		analyzer.NewVariablesPass(),
		analyzer.NewMethodsPass(),
	}

	tasks := make([]domain.ExecutableTask, 0, len(passes))
	for _, pass := range passes {
		enabled := false
		if analysisType == domain.AnalysisTypeComprehensive {
			enabled = s.config.Analysis.CheckEnabled(string(pass.Type()))
		} else {
			enabled = pass.Type() == analysisType
		}
		tasks = append(tasks, &passTask{
			pass:      pass,
			files:     files,
			collector: collector,
			enabled:   enabled,
		})
	}
	return tasks
}

// buildResponse buckets findings by severity and fills in run metadata
func (s *CodeAnalysisServiceImpl) buildResponse(analysisType domain.AnalysisType, root string, totalFiles int, findings []domain.Finding, partial bool, start time.Time) *domain.CodeAnalysisResponse {
	errors := make([]domain.Finding, 0)
	warnings := make([]domain.Finding, 0)
	for _, finding := range findings {
		if finding.Severity == domain.SeverityError {
			errors = append(errors, finding)
		} else {
			warnings = append(warnings, finding)
		}
	}

	return &domain.CodeAnalysisResponse{
		Errors:   errors,
		Warnings: warnings,
		Summary: domain.CodeAnalysisSummary{
			AnalysisType: analysisType,
			Root:         root,
			TotalFiles:   totalFiles,
			ErrorCount:   len(errors),
			WarningCount: len(warnings),
			DurationMs:   time.Since(start).Milliseconds(),
			Partial:      partial,
		},
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}
}

// Close releases progress resources held by the service
func (s *CodeAnalysisServiceImpl) Close() {
	s.progress.Close()
}
