package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pyvet/pyvet/domain"
	"github.com/pyvet/pyvet/internal/project"
)

// StructureUseCase renders a directory tree for a project root
type StructureUseCase struct{}

// NewStructureUseCase creates a new structure use case
func NewStructureUseCase() *StructureUseCase {
	return &StructureUseCase{}
}

// Execute builds the tree and writes it in the requested format
func (uc *StructureUseCase) Execute(req domain.StructureRequest, writer io.Writer) error {
	builder := project.NewStructureBuilder(req.Root, req.IgnoreFile, req.ExcludePatterns)

	tree, err := builder.Build()
	if err != nil {
		return domain.NewAnalysisError("failed to build project structure", err)
	}

	switch req.OutputFormat {
	case domain.OutputFormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]string{
			"root":      req.Root,
			"structure": tree,
		})
	case domain.OutputFormatMarkdown:
		fmt.Fprintf(writer, "# Project Structure\n\n```\n%s```\n", tree)
		return nil
	default:
		_, err := io.WriteString(writer, tree)
		return err
	}
}
