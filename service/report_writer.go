package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pyvet/pyvet/domain"
)

// DefaultReportDir is where reports land when no explicit path is given
const DefaultReportDir = ".pyvet/reports"

// ReportWriterImpl implements the ReportWriter interface
type ReportWriterImpl struct {
	formatter domain.OutputFormatter
}

// NewReportWriter creates a new report writer
func NewReportWriter(formatter domain.OutputFormatter) *ReportWriterImpl {
	return &ReportWriterImpl{formatter: formatter}
}

// SaveReport writes the formatted response to path, creating parent
// directories as needed. An empty path places a timestamped report
// under the default report directory.
func (w *ReportWriterImpl) SaveReport(response *domain.CodeAnalysisResponse, format domain.OutputFormat, path string) error {
	if path == "" {
		path = filepath.Join(DefaultReportDir, defaultReportName(format))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.NewOutputError("failed to create report directory", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return domain.NewOutputError("failed to create report file", err)
	}
	defer file.Close()

	if err := w.formatter.Write(response, format, file); err != nil {
		return domain.NewOutputError("failed to write report", err)
	}
	return nil
}

func defaultReportName(format domain.OutputFormat) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("analysis_%s.%s", timestamp, reportExtension(format))
}

func reportExtension(format domain.OutputFormat) string {
	switch format {
	case domain.OutputFormatJSON:
		return "json"
	case domain.OutputFormatYAML:
		return "yaml"
	case domain.OutputFormatMarkdown:
		return "md"
	default:
		return "txt"
	}
}
