package analyzer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pyvet/pyvet/domain"
	"github.com/pyvet/pyvet/internal/parser"
)

// loadSource parses Python source into a SourceFile for pass tests
func loadSource(t *testing.T, path, source string) *SourceFile {
	t.Helper()
	p := parser.NewParser()
	defer p.Close()

	result, err := p.ParseFile(context.Background(), path, []byte(source))
	if err != nil {
		return &SourceFile{Path: path, Dir: filepath.Dir(path), LoadErr: err}
	}
	return &SourceFile{Path: path, Dir: filepath.Dir(path), Result: result}
}

func countBySeverity(findings []domain.Finding) (errors, warnings int) {
	for _, f := range findings {
		switch f.Severity {
		case domain.SeverityError:
			errors++
		case domain.SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}

func TestPassTypes(t *testing.T) {
	tests := []struct {
		pass Pass
		want domain.AnalysisType
	}{
		{NewSyntaxPass(), domain.AnalysisTypeSyntax},
		{NewImportsPass(".", NewResolver(), nil), domain.AnalysisTypeImports},
		{NewParametersPass(), domain.AnalysisTypeParameters},
		{NewVariablesPass(), domain.AnalysisTypeVariables},
		{NewMethodsPass(), domain.AnalysisTypeMethods},
	}
	for _, tt := range tests {
		if got := tt.pass.Type(); got != tt.want {
			t.Errorf("Expected pass type %s, got %s", tt.want, got)
		}
	}
}

func TestPassesHonorCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := []*SourceFile{
		loadSource(t, "a.py", "x = 1\n"),
		loadSource(t, "b.py", "def broken(\n"),
	}

	passes := []Pass{
		NewSyntaxPass(),
		NewParametersPass(),
		NewVariablesPass(),
		NewMethodsPass(),
	}
	for _, p := range passes {
		if findings := p.Run(ctx, files); len(findings) != 0 {
			t.Errorf("Pass %s: expected no findings after cancellation, got %d",
				p.Type(), len(findings))
		}
	}
}
