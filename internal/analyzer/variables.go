package analyzer

import (
	"context"
	"fmt"
	"unicode"

	"github.com/pyvet/pyvet/domain"
	"github.com/pyvet/pyvet/internal/parser"
)

// VariablesPass flags names read without a visible definition. The
// known-name set is built by a full-tree walk before any usage check,
// so definition order within the file does not matter; the pass has no
// concept of scope and always reports at Warning severity.
type VariablesPass struct{}

// NewVariablesPass creates an undefined-name check pass
func NewVariablesPass() *VariablesPass {
	return &VariablesPass{}
}

// Type identifies the pass
func (p *VariablesPass) Type() domain.AnalysisType {
	return domain.AnalysisTypeVariables
}

// Run checks each file for possibly undefined names
func (p *VariablesPass) Run(ctx context.Context, files []*SourceFile) []domain.Finding {
	var findings []domain.Finding

	for _, f := range files {
		if cancelled(ctx) {
			break
		}
		if f.LoadErr != nil {
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityWarning,
				Check:    domain.AnalysisTypeVariables,
				Message:  fmt.Sprintf("Could not check undefined variables in %s: %v", f.Path, f.LoadErr),
				FilePath: f.Path,
			})
			continue
		}
		findings = append(findings, p.checkFile(f)...)
	}

	return findings
}

func (p *VariablesPass) checkFile(f *SourceFile) []domain.Finding {
	known := builtinNames()

	// Phase 1: collect every name the file defines
	f.AST().Walk(func(n *parser.Node) bool {
		switch n.Type {
		case parser.NodeImport:
			for _, name := range n.Names {
				known[name.Binding(true)] = struct{}{}
			}
		case parser.NodeImportFrom:
			for _, name := range n.Names {
				known[name.Binding(false)] = struct{}{}
			}
		case parser.NodeAssign:
			for _, target := range n.Targets {
				if target.Type == parser.NodeIdentifier {
					known[target.Name] = struct{}{}
				}
			}
		case parser.NodeFunctionDef, parser.NodeClassDef:
			known[n.Name] = struct{}{}
		}
		return true
	})

	// Phase 2: flag reads of unknown names
	var findings []domain.Finding
	f.AST().Walk(func(n *parser.Node) bool {
		if n.Type != parser.NodeIdentifier || n.Store {
			return true
		}
		if _, ok := known[n.Name]; ok {
			return true
		}
		if isConventionExempt(n.Name) {
			return true
		}
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityWarning,
			Check:    domain.AnalysisTypeVariables,
			Message:  fmt.Sprintf("UNDEFINED VARIABLE in %s:%d: '%s' may be undefined", f.Path, n.Location.StartLine, n.Name),
			FilePath: f.Path,
			Line:     n.Location.StartLine,
		})
		return true
	})

	return findings
}

// isConventionExempt skips underscore-prefixed names and fully
// upper-case names (module constants defined elsewhere).
func isConventionExempt(name string) bool {
	if name == "" || name[0] == '_' {
		return true
	}
	hasCased := false
	for _, r := range name {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}
