package analyzer

import (
	"context"

	"github.com/pyvet/pyvet/domain"
	"github.com/pyvet/pyvet/internal/parser"
)

// SourceFile couples a Python file with its parse outcome. Files are
// read and parsed once and shared by all passes.
type SourceFile struct {
	// Path is the file path as discovered
	Path string

	// Dir is the directory containing the file, used to resolve
	// relative imports
	Dir string

	// Result is the parse outcome; nil when LoadErr is set
	Result *parser.ParseResult

	// LoadErr records a read or decode failure
	LoadErr error
}

// AST returns the file's syntax tree, or nil if the file could not be
// loaded.
func (f *SourceFile) AST() *parser.Node {
	if f.Result == nil {
		return nil
	}
	return f.Result.AST
}

// Pass is a single analysis check over a set of files. Passes are
// independent and may run concurrently; each returns its own findings
// and never fails the run.
type Pass interface {
	// Type identifies the pass
	Type() domain.AnalysisType

	// Run analyzes the files, returning early with partial findings
	// when ctx is cancelled
	Run(ctx context.Context, files []*SourceFile) []domain.Finding
}

// cancelled is a non-blocking ctx.Done check used between files
func cancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
