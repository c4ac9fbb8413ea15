package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pyvet/pyvet/domain"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Format formats the analysis response according to the specified format
func (f *OutputFormatterImpl) Format(response *domain.CodeAnalysisResponse, format domain.OutputFormat) (string, error) {
	var sb strings.Builder
	if err := f.Write(response, format, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write writes the formatted output to the writer
func (f *OutputFormatterImpl) Write(response *domain.CodeAnalysisResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return f.writeYAML(response, writer)
	case domain.OutputFormatMarkdown:
		return f.writeMarkdown(response, writer)
	case domain.OutputFormatText:
		return f.writeText(response, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// writeYAML writes the response as YAML
func (f *OutputFormatterImpl) writeYAML(response *domain.CodeAnalysisResponse, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(response); err != nil {
		return err
	}
	return encoder.Close()
}

// writeText writes the response as plain text
func (f *OutputFormatterImpl) writeText(response *domain.CodeAnalysisResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "Code Analysis Report\n")
	fmt.Fprintf(writer, "%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(writer, "Root: %s\n", response.Summary.Root)
	fmt.Fprintf(writer, "Analysis: %s\n", response.Summary.AnalysisType)
	fmt.Fprintf(writer, "Files analyzed: %d\n", response.Summary.TotalFiles)
	fmt.Fprintf(writer, "Duration: %dms\n", response.Summary.DurationMs)
	if response.Summary.Partial {
		fmt.Fprintf(writer, "NOTE: analysis timed out, results are partial\n")
	}
	fmt.Fprintf(writer, "\n")

	if len(response.Errors) > 0 {
		fmt.Fprintf(writer, "ERRORS (%d):\n", len(response.Errors))
		for _, finding := range response.Errors {
			fmt.Fprintf(writer, "  • %s\n", finding.Message)
		}
		fmt.Fprintf(writer, "\n")
	}

	if len(response.Warnings) > 0 {
		fmt.Fprintf(writer, "WARNINGS (%d):\n", len(response.Warnings))
		for _, finding := range response.Warnings {
			fmt.Fprintf(writer, "  • %s\n", finding.Message)
		}
		fmt.Fprintf(writer, "\n")
	}

	if len(response.Errors) == 0 && len(response.Warnings) == 0 {
		fmt.Fprintf(writer, "NO ISSUES FOUND\n")
	}

	return nil
}

// writeMarkdown writes the response as a markdown report
func (f *OutputFormatterImpl) writeMarkdown(response *domain.CodeAnalysisResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "# Code Analysis Report\n\n")
	fmt.Fprintf(writer, "- **Root**: `%s`\n", response.Summary.Root)
	fmt.Fprintf(writer, "- **Analysis**: %s\n", response.Summary.AnalysisType)
	fmt.Fprintf(writer, "- **Files analyzed**: %d\n", response.Summary.TotalFiles)
	fmt.Fprintf(writer, "- **Generated**: %s\n", response.GeneratedAt)
	if response.Summary.Partial {
		fmt.Fprintf(writer, "- **Partial**: analysis timed out before completing\n")
	}
	fmt.Fprintf(writer, "\n")

	if len(response.Errors) > 0 {
		fmt.Fprintf(writer, "## ❌ Errors (%d)\n\n", len(response.Errors))
		for _, finding := range response.Errors {
			fmt.Fprintf(writer, "- %s\n", finding.Message)
		}
		fmt.Fprintf(writer, "\n")
	}

	if len(response.Warnings) > 0 {
		fmt.Fprintf(writer, "## ⚠️ Warnings (%d)\n\n", len(response.Warnings))
		for _, finding := range response.Warnings {
			fmt.Fprintf(writer, "- %s\n", finding.Message)
		}
		fmt.Fprintf(writer, "\n")
	}

	if len(response.Errors) == 0 && len(response.Warnings) == 0 {
		fmt.Fprintf(writer, "## ✅ No Issues Found\n")
	}

	return nil
}
