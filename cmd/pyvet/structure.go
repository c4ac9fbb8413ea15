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
	structureFormat     string
	structureIgnoreFile string
	structureExcludes   []string
	structureConfigPath string
)

func structureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "structure [path]",
		Short: "Print the project directory tree",
		Long: `Print an indented directory tree of the project, honoring the
project's ignore file and the configured exclude patterns.

Examples:
  pyvet structure
  pyvet structure src/
  pyvet structure --format json .`,
		Args: cobra.MaximumNArgs(1),
		RunE: runStructure,
	}

	cmd.Flags().StringVarP(&structureFormat, "format", "f", "text",
		"Output format: text, json, markdown")
	cmd.Flags().StringVar(&structureIgnoreFile, "ignore-file", "",
		"Ignore file to honor (default from config, usually .gitignore)")
	cmd.Flags().StringSliceVar(&structureExcludes, "exclude", nil,
		"Additional path patterns to exclude")
	cmd.Flags().StringVarP(&structureConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runStructure(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := config.LoadConfigWithTarget(structureConfigPath, root)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ignoreFile := structureIgnoreFile
	if ignoreFile == "" {
		ignoreFile = cfg.Structure.IgnoreFile
	}

	req := domain.StructureRequest{
		Root:            root,
		IgnoreFile:      ignoreFile,
		ExcludePatterns: append(cfg.Structure.ExcludePatterns, structureExcludes...),
		OutputFormat:    domain.OutputFormat(structureFormat),
	}

	return app.NewStructureUseCase().Execute(req, os.Stdout)
}
