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

var (
	analysisType  string
	outputFormat  string
	jsonOutput    bool
	outputPath    string
	configPath    string
	extraExcludes []string
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [path...]",
		Short: "Analyze Python files",
		Long: `Analyze Python files for syntax errors, broken imports, call-site
parameter mismatches, undefined variables and method signature issues.

Examples:
  pyvet analyze src/
  pyvet analyze --type syntax src/
  pyvet analyze --type imports --json src/
  pyvet analyze --format markdown -o report.md src/`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analysisType, "type", "t", "comprehensive",
		"Analysis to run: syntax, imports, parameters, variables, methods, comprehensive")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text",
		"Output format: text, json, yaml, markdown")
	cmd.Flags().BoolVar(&jsonOutput, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Also save the report to a file")
	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringSliceVar(&extraExcludes, "exclude", nil,
		"Additional directory names to skip")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	format := domain.OutputFormat(outputFormat)
	if jsonOutput {
		format = domain.OutputFormatJSON
	}

	cfg, err := config.LoadConfigWithTarget(configPath, args[0])
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	svc := service.NewCodeAnalysisService(cfg)
	defer svc.Close()

	formatter := service.NewOutputFormatter()
	useCase := app.NewAnalyzeUseCase(svc, formatter, service.NewReportWriter(formatter))

	analyzeConfig := app.AnalyzeConfig{
		AnalysisType:         domain.AnalysisType(analysisType),
		ExcludeDirs:          append(cfg.Analysis.ExcludeDirs, extraExcludes...),
		OptionalDependencies: cfg.Imports.OptionalDependencies,
		ExtraSearchPaths:     cfg.Imports.ExtraSearchPaths,
		OutputFormat:         format,
		OutputWriter:         os.Stdout,
		OutputPath:           outputPath,
	}

	_, err = useCase.Execute(context.Background(), analyzeConfig, args)
	return err
}
