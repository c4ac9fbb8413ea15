package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pyvet/pyvet/domain"
	"github.com/pyvet/pyvet/internal/project"
)

// FilesUseCase extracts and renders file contents from a project
type FilesUseCase struct{}

// NewFilesUseCase creates a new files use case
func NewFilesUseCase() *FilesUseCase {
	return &FilesUseCase{}
}

// Execute collects the requested files and writes them in the
// requested format
func (uc *FilesUseCase) Execute(req domain.FileContentsRequest, writer io.Writer) error {
	extractor := project.NewContentExtractor(
		req.Root,
		req.IgnoreFile,
		req.ExcludePatterns,
		req.MaxFileSize,
		req.SupportedExtensions,
	)

	entries, err := extractor.Collect(req.TargetPatterns)
	if err != nil {
		return domain.NewAnalysisError("failed to collect file contents", err)
	}

	switch req.OutputFormat {
	case domain.OutputFormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	case domain.OutputFormatMarkdown:
		return writeEntriesMarkdown(writer, entries)
	default:
		return writeEntriesText(writer, entries)
	}
}

func writeEntriesMarkdown(writer io.Writer, entries []domain.FileEntry) error {
	fmt.Fprintf(writer, "# File Contents\n\n")
	for _, entry := range entries {
		fmt.Fprintf(writer, "## %s\n\n", entry.Path)
		switch entry.Kind {
		case "binary":
			fmt.Fprintf(writer, "*Binary file (%d bytes)*\n", entry.Size)
		case "error":
			fmt.Fprintf(writer, "*Error: %s*\n", entry.Error)
		default:
			fmt.Fprintf(writer, "```%s\n%s\n```\n", project.FenceLanguage(entry.Path), entry.Content)
		}
		fmt.Fprintf(writer, "\n---\n\n")
	}
	return nil
}

func writeEntriesText(writer io.Writer, entries []domain.FileEntry) error {
	separator := strings.Repeat("=", 50)
	for _, entry := range entries {
		fmt.Fprintf(writer, "%s\n%s\n%s\n", separator, entry.Path, separator)
		switch entry.Kind {
		case "binary":
			fmt.Fprintf(writer, "[binary file, %d bytes]\n", entry.Size)
		case "error":
			fmt.Fprintf(writer, "[error: %s]\n", entry.Error)
		default:
			fmt.Fprintf(writer, "%s\n", entry.Content)
		}
		fmt.Fprintf(writer, "\n")
	}
	return nil
}
