package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyvet/pyvet/app"
	"github.com/pyvet/pyvet/domain"
	"github.com/pyvet/pyvet/internal/config"
	"github.com/pyvet/pyvet/service"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkType       string
	checkJSON       bool
	checkQuiet      bool
	checkConfigPath string
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Fast quality gate for CI/CD pipelines",
		Long: `Run the analysis as a pass/fail gate.

Exit codes:
  0 - No errors found (warnings are allowed)
  1 - Errors found
  2 - Analysis could not run (bad config, invalid arguments, etc.)

Examples:
  # Gate on all checks
  pyvet check src/

  # Gate on syntax only
  pyvet check --type syntax src/

  # JSON output for machine parsing
  pyvet check --json src/`,
		RunE:          runCheck,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().StringVarP(&checkType, "type", "t", "comprehensive",
		"Analysis to run: syntax, imports, parameters, variables, methods, comprehensive")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false,
		"Suppress output, report only via exit code")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	cfg, err := config.LoadConfigWithTarget(checkConfigPath, args[0])
	if err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}
	if err := cfg.Validate(); err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("invalid configuration: %v", err)}
	}

	// Progress bars would corrupt machine-readable output
	cfg.Output.ShowProgress = !checkJSON && !checkQuiet

	svc := service.NewCodeAnalysisService(cfg)
	defer svc.Close()

	formatter := service.NewOutputFormatter()
	useCase := app.NewAnalyzeUseCase(svc, formatter, nil)

	checkConfig := app.AnalyzeConfig{
		AnalysisType:         domain.AnalysisType(checkType),
		ExcludeDirs:          cfg.Analysis.ExcludeDirs,
		OptionalDependencies: cfg.Imports.OptionalDependencies,
		ExtraSearchPaths:     cfg.Imports.ExtraSearchPaths,
		OutputFormat:         domain.OutputFormatText,
	}
	if !checkQuiet && !checkJSON {
		checkConfig.OutputWriter = os.Stdout
	}

	response, err := useCase.Execute(context.Background(), checkConfig, args)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	result := buildCheckResult(response)

	if checkJSON && !checkQuiet {
		if err := service.WriteJSON(os.Stdout, result); err != nil {
			return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to write results: %v", err)}
		}
	}

	if !result.Passed {
		return &CheckExitError{Code: result.ExitCode}
	}

	return nil
}

// buildCheckResult converts an analysis response into the gate's
// pass/fail shape
func buildCheckResult(response *domain.CodeAnalysisResponse) *domain.CheckResult {
	violations := make([]domain.CheckViolation, 0, len(response.Errors)+len(response.Warnings))
	for _, finding := range append(append([]domain.Finding{}, response.Errors...), response.Warnings...) {
		location := finding.FilePath
		if finding.Line > 0 {
			location = fmt.Sprintf("%s:%d", finding.FilePath, finding.Line)
		}
		violations = append(violations, domain.CheckViolation{
			Check:    finding.Check,
			Severity: finding.Severity,
			Message:  finding.Message,
			Location: location,
		})
	}

	result := &domain.CheckResult{
		Passed:     !response.Failed(),
		Violations: violations,
		Summary: domain.CheckSummary{
			FilesAnalyzed:   response.Summary.TotalFiles,
			TotalViolations: len(violations),
			ErrorCount:      response.Summary.ErrorCount,
			WarningCount:    response.Summary.WarningCount,
			Partial:         response.Summary.Partial,
		},
		Duration:    response.Summary.DurationMs,
		GeneratedAt: response.GeneratedAt,
		Version:     response.Version,
	}
	if !result.Passed {
		result.ExitCode = 1
	}
	return result
}
