package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/pyvet/pyvet/domain"
	"github.com/pyvet/pyvet/internal/parser"
)

// MethodsPass checks that instance methods declare self as their first
// parameter. Underscore-prefixed methods and methods marked
// staticmethod or classmethod are exempt.
type MethodsPass struct{}

// NewMethodsPass creates a method signature check pass
func NewMethodsPass() *MethodsPass {
	return &MethodsPass{}
}

// Type identifies the pass
func (p *MethodsPass) Type() domain.AnalysisType {
	return domain.AnalysisTypeMethods
}

// Run checks method signatures in each file
func (p *MethodsPass) Run(ctx context.Context, files []*SourceFile) []domain.Finding {
	var findings []domain.Finding

	for _, f := range files {
		if cancelled(ctx) {
			break
		}
		if f.LoadErr != nil {
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityWarning,
				Check:    domain.AnalysisTypeMethods,
				Message:  fmt.Sprintf("Could not check class methods in %s: %v", f.Path, f.LoadErr),
				FilePath: f.Path,
			})
			continue
		}
		findings = append(findings, p.checkFile(f)...)
	}

	return findings
}

func (p *MethodsPass) checkFile(f *SourceFile) []domain.Finding {
	var findings []domain.Finding

	f.AST().Walk(func(n *parser.Node) bool {
		if n.Type != parser.NodeClassDef {
			return true
		}
		for _, item := range n.Body {
			if item.Type != parser.NodeFunctionDef {
				continue
			}
			if strings.HasPrefix(item.Name, "_") {
				continue
			}
			if item.HasDecorator("staticmethod") || item.HasDecorator("classmethod") {
				continue
			}
			if len(item.Params) > 0 && item.Params[0].Name == "self" {
				continue
			}
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityError,
				Check:    domain.AnalysisTypeMethods,
				Message: fmt.Sprintf("METHOD ERROR in %s:%d: Method '%s' should have 'self' as first parameter",
					f.Path, item.Location.StartLine, item.Name),
				FilePath: f.Path,
				Line:     item.Location.StartLine,
			})
		}
		return true
	})

	return findings
}
