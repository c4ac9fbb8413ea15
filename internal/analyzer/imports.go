package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/pyvet/pyvet/domain"
	"github.com/pyvet/pyvet/internal/parser"
)

// ImportsPass verifies that every imported module resolves against the
// standard library, the project root, or the configured search paths.
// An unresolvable module on the optional-dependency allow-list is a
// Warning; anything else unresolvable is an Error.
type ImportsPass struct {
	root     string
	resolver *Resolver
	optional map[string]struct{}
}

// NewImportsPass creates an import check pass for the given project
// root. Optional lists external packages whose absence is tolerated.
func NewImportsPass(root string, resolver *Resolver, optional []string) *ImportsPass {
	opt := make(map[string]struct{}, len(optional))
	for _, name := range optional {
		opt[name] = struct{}{}
	}
	return &ImportsPass{
		root:     root,
		resolver: resolver,
		optional: opt,
	}
}

// Type identifies the pass
func (p *ImportsPass) Type() domain.AnalysisType {
	return domain.AnalysisTypeImports
}

// moduleRef is one import statement's target
type moduleRef struct {
	module string
	level  int
	line   int
}

// Run checks each file's imports
func (p *ImportsPass) Run(ctx context.Context, files []*SourceFile) []domain.Finding {
	var findings []domain.Finding

	for _, f := range files {
		if cancelled(ctx) {
			break
		}
		if f.LoadErr != nil {
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityWarning,
				Check:    domain.AnalysisTypeImports,
				Message:  fmt.Sprintf("Could not check imports for %s: %v", f.Path, f.LoadErr),
				FilePath: f.Path,
			})
			continue
		}
		findings = append(findings, p.checkFile(f)...)
	}

	return findings
}

func (p *ImportsPass) checkFile(f *SourceFile) []domain.Finding {
	var findings []domain.Finding

	seen := make(map[string]bool)
	for _, ref := range collectImports(f.AST()) {
		key := fmt.Sprintf("%d:%s", ref.level, ref.module)
		if seen[key] {
			continue
		}
		seen[key] = true

		var resolved bool
		if ref.level > 0 {
			resolved = p.resolver.ResolveRelative(f.Dir, ref.level, ref.module)
		} else {
			resolved = p.resolver.Resolve(p.root, ref.module)
		}
		if resolved {
			continue
		}

		display := strings.Repeat(".", ref.level) + ref.module
		severity := domain.SeverityError
		label := "IMPORT ERROR"
		if p.isOptional(ref.module) {
			severity = domain.SeverityWarning
			label = "MISSING DEPENDENCY"
		}
		findings = append(findings, domain.Finding{
			Severity: severity,
			Check:    domain.AnalysisTypeImports,
			Message:  fmt.Sprintf("%s in %s: No module named '%s'", label, f.Path, display),
			FilePath: f.Path,
			Line:     ref.line,
		})
	}

	return findings
}

// isOptional matches the module's top-level package against the
// allow-list
func (p *ImportsPass) isOptional(module string) bool {
	top := module
	if i := strings.IndexByte(module, '.'); i > 0 {
		top = module[:i]
	}
	_, ok := p.optional[top]
	return ok
}

// collectImports gathers every module referenced by an import
// statement. "from X import Y" contributes X, not Y.
func collectImports(root *parser.Node) []moduleRef {
	var refs []moduleRef
	if root == nil {
		return refs
	}

	root.Walk(func(n *parser.Node) bool {
		switch n.Type {
		case parser.NodeImport:
			for _, name := range n.Names {
				refs = append(refs, moduleRef{
					module: name.Name,
					line:   n.Location.StartLine,
				})
			}
		case parser.NodeImportFrom:
			refs = append(refs, moduleRef{
				module: n.Module,
				level:  n.Level,
				line:   n.Location.StartLine,
			})
		}
		return true
	})

	return refs
}
