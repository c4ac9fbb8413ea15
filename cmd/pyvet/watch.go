package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pyvet/pyvet/app"
	"github.com/pyvet/pyvet/domain"
	"github.com/pyvet/pyvet/internal/config"
	"github.com/pyvet/pyvet/internal/watcher"
	"github.com/pyvet/pyvet/service"
)

var (
	watchType       string
	watchDebounceMs int
	watchConfigPath string
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-run the analysis whenever Python files change",
		Long: `Watch the project for Python file changes and re-run the analysis
after each change. Press Ctrl-C to stop.

Examples:
  pyvet watch
  pyvet watch --type syntax src/`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVarP(&watchType, "type", "t", "comprehensive",
		"Analysis to run: syntax, imports, parameters, variables, methods, comprehensive")
	cmd.Flags().IntVar(&watchDebounceMs, "debounce", 500,
		"Milliseconds to wait for changes to settle before re-running")
	cmd.Flags().StringVarP(&watchConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := config.LoadConfigWithTarget(watchConfigPath, root)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	// Progress bars interleave badly with repeated runs
	cfg.Output.ShowProgress = false

	svc := service.NewCodeAnalysisService(cfg)
	defer svc.Close()

	formatter := service.NewOutputFormatter()
	useCase := app.NewAnalyzeUseCase(svc, formatter, nil)

	watchConfig := app.AnalyzeConfig{
		AnalysisType:         domain.AnalysisType(watchType),
		ExcludeDirs:          cfg.Analysis.ExcludeDirs,
		OptionalDependencies: cfg.Imports.OptionalDependencies,
		ExtraSearchPaths:     cfg.Imports.ExtraSearchPaths,
		OutputFormat:         domain.OutputFormatText,
		OutputWriter:         os.Stdout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOnce := func() {
		if _, err := useCase.Execute(ctx, watchConfig, []string{root}); err != nil {
			fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		}
	}

	w, err := watcher.New(time.Duration(watchDebounceMs)*time.Millisecond, cfg.Analysis.ExcludeDirs, func(changed []string) {
		fmt.Printf("\n%d file(s) changed, re-running analysis\n\n", len(changed))
		runOnce()
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Watch([]string{root}); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}

	fmt.Printf("Watching %s for changes (Ctrl-C to stop)\n\n", root)
	runOnce()

	<-ctx.Done()
	fmt.Println("\nStopping watch")
	return nil
}
