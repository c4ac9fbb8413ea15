package parser

import "fmt"

// NodeType represents the type of AST node
type NodeType string

// Python AST node types
const (
	// Module structure
	NodeModule NodeType = "Module"

	// Definitions
	NodeFunctionDef NodeType = "FunctionDef"
	NodeClassDef    NodeType = "ClassDef"
	NodeParameter   NodeType = "Parameter"

	// Imports
	NodeImport     NodeType = "Import"
	NodeImportFrom NodeType = "ImportFrom"

	// Statements
	NodeAssign    NodeType = "Assign"
	NodeAugAssign NodeType = "AugAssign"

	// Expressions
	NodeCall       NodeType = "Call"
	NodeIdentifier NodeType = "Identifier"
	NodeAttribute  NodeType = "Attribute"

	// Anything we do not model explicitly
	NodeGeneric NodeType = "Generic"
)

// Location represents the position of a node in the source code
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String returns a string representation of the location
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// ImportedName is a single name bound by an import statement,
// with its optional "as" alias
type ImportedName struct {
	Name  string
	Alias string
}

// Binding returns the local name the import introduces. For plain
// imports of dotted modules without an alias, that is the first
// path segment; "import os.path" binds "os".
func (in ImportedName) Binding(dotted bool) string {
	if in.Alias != "" {
		return in.Alias
	}
	if dotted {
		for i := 0; i < len(in.Name); i++ {
			if in.Name[i] == '.' {
				return in.Name[:i]
			}
		}
	}
	return in.Name
}

// Node represents a Python AST node
type Node struct {
	Type     NodeType
	Children []*Node
	Location Location
	Parent   *Node

	// Name holds the identifier text for identifiers, the defined
	// name for functions and classes, and the parameter name
	Name string

	// Function/class definition fields
	Params     []*Node // Function parameters, in declaration order
	Body       []*Node // Definition body statements
	Decorators []string

	// Parameter fields
	HasDefault bool // Parameter has a default value
	IsSplat    bool // *args or **kwargs
	KwOnly     bool // Declared after a bare * or *args

	// Call fields
	Callee    *Node    // Expression being called
	Arguments []*Node  // Positional argument expressions
	Keywords  []string // Keyword argument names

	// Assignment fields
	Targets []*Node // Assignment targets
	Value   *Node   // Assigned value, parameter default, decorator expr

	// Identifier fields
	Store bool // Identifier appears in a binding position

	// Import fields
	Module   string // "from X import ..." module path, dots stripped
	Level    int    // Leading-dot count for relative imports
	Wildcard bool   // from X import *
	Names    []ImportedName
}

// NewNode creates a new AST node
func NewNode(nodeType NodeType) *Node {
	return &Node{Type: nodeType}
}

// AddChild adds a child node
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Walk traverses the AST depth-first and calls the visitor function for
// each node. If the visitor returns false, traversal of that branch is
// stopped.
func (n *Node) Walk(visitor func(*Node) bool) {
	if n == nil {
		return
	}

	if !visitor(n) {
		return
	}

	for _, child := range n.Children {
		child.Walk(visitor)
	}
	for _, param := range n.Params {
		param.Walk(visitor)
	}
	for _, stmt := range n.Body {
		stmt.Walk(visitor)
	}
	for _, target := range n.Targets {
		target.Walk(visitor)
	}
	for _, arg := range n.Arguments {
		arg.Walk(visitor)
	}
	if n.Callee != nil {
		n.Callee.Walk(visitor)
	}
	if n.Value != nil {
		n.Value.Walk(visitor)
	}
}

// String returns a string representation of the node
func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s) at %s", n.Type, n.Name, n.Location)
	}
	return fmt.Sprintf("%s at %s", n.Type, n.Location)
}

// IsDefinition returns true if the node defines a function or class
func (n *Node) IsDefinition() bool {
	return n.Type == NodeFunctionDef || n.Type == NodeClassDef
}

// HasDecorator reports whether the definition carries the named decorator
func (n *Node) HasDecorator(name string) bool {
	for _, d := range n.Decorators {
		if d == name {
			return true
		}
	}
	return false
}

// RequiredParams returns the number of positional arguments a caller
// must supply: named parameters without defaults, excluding splats,
// keyword-only parameters and a leading self receiver.
func (n *Node) RequiredParams() int {
	count := 0
	for i, p := range n.Params {
		if p.IsSplat || p.HasDefault || p.KwOnly {
			continue
		}
		if i == 0 && p.Name == "self" {
			continue
		}
		count++
	}
	return count
}

// TotalParams returns the number of positional parameters, excluding
// splats, keyword-only parameters and a leading self receiver.
func (n *Node) TotalParams() int {
	count := 0
	for i, p := range n.Params {
		if p.IsSplat || p.KwOnly {
			continue
		}
		if i == 0 && p.Name == "self" {
			continue
		}
		count++
	}
	return count
}

// HasSplat reports whether the function accepts *args or **kwargs
func (n *Node) HasSplat() bool {
	for _, p := range n.Params {
		if p.IsSplat {
			return true
		}
	}
	return false
}
