package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyvet/pyvet/app"
	"github.com/pyvet/pyvet/domain"
	"github.com/pyvet/pyvet/internal/config"
)

var (
	filesFormat     string
	filesRoot       string
	filesMaxSize    int64
	filesIgnoreFile string
	filesExcludes   []string
	filesConfigPath string
)

func filesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files [pattern...]",
		Short: "Dump file contents from the project",
		Long: `Collect and print the contents of project files matching the given
patterns, or the whole project when no patterns are given. Binary and
oversized files are listed without their contents.

Examples:
  pyvet files
  pyvet files 'src/**/*.py'
  pyvet files --root ./pkg --format json README.md`,
		RunE: runFiles,
	}

	cmd.Flags().StringVarP(&filesFormat, "format", "f", "markdown",
		"Output format: text, json, markdown")
	cmd.Flags().StringVarP(&filesRoot, "root", "r", ".",
		"Project root to collect from")
	cmd.Flags().Int64Var(&filesMaxSize, "max-file-size", 0,
		"Skip files larger than this many bytes (default from config)")
	cmd.Flags().StringVar(&filesIgnoreFile, "ignore-file", "",
		"Ignore file to honor (default from config, usually .gitignore)")
	cmd.Flags().StringSliceVar(&filesExcludes, "exclude", nil,
		"Additional path patterns to exclude")
	cmd.Flags().StringVarP(&filesConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runFiles(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithTarget(filesConfigPath, filesRoot)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	maxSize := filesMaxSize
	if maxSize <= 0 {
		maxSize = cfg.Structure.MaxFileSize
	}
	ignoreFile := filesIgnoreFile
	if ignoreFile == "" {
		ignoreFile = cfg.Structure.IgnoreFile
	}

	req := domain.FileContentsRequest{
		Root:                filesRoot,
		TargetPatterns:      args,
		IgnoreFile:          ignoreFile,
		ExcludePatterns:     append(cfg.Structure.ExcludePatterns, filesExcludes...),
		MaxFileSize:         maxSize,
		SupportedExtensions: cfg.Structure.SupportedExtensions,
		OutputFormat:        domain.OutputFormat(filesFormat),
	}

	return app.NewFilesUseCase().Execute(req, os.Stdout)
}
