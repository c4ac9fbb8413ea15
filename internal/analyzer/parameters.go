package analyzer

import (
	"context"
	"fmt"

	"github.com/pyvet/pyvet/domain"
	"github.com/pyvet/pyvet/internal/parser"
)

// ParametersPass compares call sites against function definitions in
// the same file. Definitions are keyed by bare name, so a name shared
// by several functions is a known false-positive source; keyword
// arguments count toward the provided total without checking that a
// matching named parameter exists.
type ParametersPass struct{}

// NewParametersPass creates an arity check pass
func NewParametersPass() *ParametersPass {
	return &ParametersPass{}
}

// Type identifies the pass
func (p *ParametersPass) Type() domain.AnalysisType {
	return domain.AnalysisTypeParameters
}

type callSite struct {
	name     string
	provided int
	line     int
}

type signature struct {
	required int
	total    int
}

// Run checks call arity in each file
func (p *ParametersPass) Run(ctx context.Context, files []*SourceFile) []domain.Finding {
	var findings []domain.Finding

	for _, f := range files {
		if cancelled(ctx) {
			break
		}
		if f.LoadErr != nil {
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityWarning,
				Check:    domain.AnalysisTypeParameters,
				Message:  fmt.Sprintf("Could not check parameters in %s: %v", f.Path, f.LoadErr),
				FilePath: f.Path,
			})
			continue
		}
		findings = append(findings, p.checkFile(f)...)
	}

	return findings
}

func (p *ParametersPass) checkFile(f *SourceFile) []domain.Finding {
	var calls []callSite
	defs := make(map[string]signature)

	f.AST().Walk(func(n *parser.Node) bool {
		switch n.Type {
		case parser.NodeCall:
			// Only bare-name callees; method calls are out of scope
			if n.Callee != nil && n.Callee.Type == parser.NodeIdentifier {
				calls = append(calls, callSite{
					name:     n.Callee.Name,
					provided: len(n.Arguments) + len(n.Keywords),
					line:     n.Location.StartLine,
				})
			}
		case parser.NodeFunctionDef:
			defs[n.Name] = signature{
				required: n.RequiredParams(),
				total:    n.TotalParams(),
			}
		}
		return true
	})

	var findings []domain.Finding
	for _, call := range calls {
		def, ok := defs[call.name]
		if !ok {
			continue
		}
		switch {
		case call.provided < def.required:
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityError,
				Check:    domain.AnalysisTypeParameters,
				Message: fmt.Sprintf("PARAMETER ERROR in %s:%d: Function '%s' requires %d args but %d provided",
					f.Path, call.line, call.name, def.required, call.provided),
				FilePath: f.Path,
				Line:     call.line,
			})
		case call.provided > def.total:
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityError,
				Check:    domain.AnalysisTypeParameters,
				Message: fmt.Sprintf("PARAMETER ERROR in %s:%d: Function '%s' takes %d args but %d provided",
					f.Path, call.line, call.name, def.total, call.provided),
				FilePath: f.Path,
				Line:     call.line,
			})
		}
	}

	return findings
}
