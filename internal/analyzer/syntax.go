package analyzer

import (
	"context"
	"fmt"

	"github.com/pyvet/pyvet/domain"
)

// SyntaxPass reports files the grammar rejects. A file with syntax
// problems yields exactly one Error carrying the first problem's line;
// a file that could not be decoded yields a Warning instead, since an
// encoding issue is not a code defect.
type SyntaxPass struct{}

// NewSyntaxPass creates a syntax check pass
func NewSyntaxPass() *SyntaxPass {
	return &SyntaxPass{}
}

// Type identifies the pass
func (p *SyntaxPass) Type() domain.AnalysisType {
	return domain.AnalysisTypeSyntax
}

// Run checks each file for syntax errors
func (p *SyntaxPass) Run(ctx context.Context, files []*SourceFile) []domain.Finding {
	var findings []domain.Finding

	for _, f := range files {
		if cancelled(ctx) {
			break
		}
		if f.LoadErr != nil {
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityWarning,
				Check:    domain.AnalysisTypeSyntax,
				Message:  fmt.Sprintf("Could not parse %s: %v", f.Path, f.LoadErr),
				FilePath: f.Path,
			})
			continue
		}
		if len(f.Result.SyntaxErrors) == 0 {
			continue
		}
		first := f.Result.SyntaxErrors[0]
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityError,
			Check:    domain.AnalysisTypeSyntax,
			Message:  fmt.Sprintf("SYNTAX ERROR in %s: Line %d: %s", f.Path, first.Line, first.Message),
			FilePath: f.Path,
			Line:     first.Line,
		})
	}

	return findings
}
