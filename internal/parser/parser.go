package parser

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrInvalidEncoding is returned when a source file is not valid UTF-8
var ErrInvalidEncoding = errors.New("source is not valid UTF-8")

// SyntaxError is a single syntax problem found while parsing
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

// ParseResult holds the AST and any syntax errors found in the source.
// Tree-sitter recovers from errors, so an AST is produced even for
// files with syntax problems.
type ParseResult struct {
	AST          *Node
	SyntaxErrors []SyntaxError
}

// Parser wraps tree-sitter parser for Python
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new Python parser
func NewParser() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	return &Parser{parser: parser}
}

// ParseFile parses a Python file
func (p *Parser) ParseFile(ctx context.Context, filename string, source []byte) (*ParseResult, error) {
	if !utf8.Valid(source) {
		return nil, fmt.Errorf("%s: %w", filename, ErrInvalidEncoding)
	}

	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse file %s: %v", filename, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("no root node in parse tree for %s", filename)
	}

	builder := NewASTBuilder(filename, source)
	ast := builder.Build(rootNode)

	result := &ParseResult{AST: ast}
	if rootNode.HasError() {
		result.SyntaxErrors = collectSyntaxErrors(rootNode, source)
	}

	return result, nil
}

// Parse parses Python source code
func (p *Parser) Parse(ctx context.Context, source []byte) (*ParseResult, error) {
	return p.ParseFile(ctx, "<input>", source)
}

// ParseString parses Python source code from a string
func (p *Parser) ParseString(ctx context.Context, source string) (*ParseResult, error) {
	return p.Parse(ctx, []byte(source))
}

// Close closes the parser and frees resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// collectSyntaxErrors walks the CST for ERROR and MISSING nodes
func collectSyntaxErrors(root *sitter.Node, source []byte) []SyntaxError {
	var errs []SyntaxError

	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n == nil {
			return
		}
		switch {
		case n.IsMissing():
			errs = append(errs, SyntaxError{
				Line:    int(n.StartPoint().Row) + 1,
				Column:  int(n.StartPoint().Column),
				Message: fmt.Sprintf("missing %s", n.Type()),
			})
			return
		case n.Type() == "ERROR":
			errs = append(errs, SyntaxError{
				Line:    int(n.StartPoint().Row) + 1,
				Column:  int(n.StartPoint().Column),
				Message: fmt.Sprintf("invalid syntax near %q", errorContext(n, source)),
			})
			return
		case !n.HasError():
			// Subtree is clean, skip it
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}
	visit(root)

	return errs
}

// errorContext extracts a short source excerpt for an error node
func errorContext(n *sitter.Node, source []byte) string {
	const maxLen = 40
	start := int(n.StartByte())
	end := int(n.EndByte())
	if end > len(source) {
		end = len(source)
	}
	if end-start > maxLen {
		end = start + maxLen
	}
	excerpt := source[start:end]
	for i, b := range excerpt {
		if b == '\n' {
			excerpt = excerpt[:i]
			break
		}
	}
	return string(excerpt)
}
