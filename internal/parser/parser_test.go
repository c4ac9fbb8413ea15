package parser

import (
	"context"
	"errors"
	"testing"
)

func parseSource(t *testing.T, source string) *ParseResult {
	t.Helper()
	p := NewParser()
	defer p.Close()

	result, err := p.ParseString(context.Background(), source)
	if err != nil {
		t.Fatalf("Failed to parse source: %v", err)
	}
	if result.AST == nil {
		t.Fatal("Expected an AST, got nil")
	}
	return result
}

func findFirst(root *Node, nodeType NodeType) *Node {
	var found *Node
	root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Type == nodeType {
			found = n
			return false
		}
		return true
	})
	return found
}

func TestParseFunctionDef(t *testing.T) {
	source := `def greet(name, greeting="hello", *args, **kwargs):
    return greeting + name
`
	result := parseSource(t, source)
	if len(result.SyntaxErrors) != 0 {
		t.Fatalf("Expected no syntax errors, got %v", result.SyntaxErrors)
	}

	fn := findFirst(result.AST, NodeFunctionDef)
	if fn == nil {
		t.Fatal("Expected a function definition")
	}
	if fn.Name != "greet" {
		t.Errorf("Expected function name 'greet', got %q", fn.Name)
	}
	if len(fn.Params) != 4 {
		t.Fatalf("Expected 4 parameters, got %d", len(fn.Params))
	}

	tests := []struct {
		name       string
		hasDefault bool
		isSplat    bool
	}{
		{"name", false, false},
		{"greeting", true, false},
		{"args", false, true},
		{"kwargs", false, true},
	}
	for i, tt := range tests {
		p := fn.Params[i]
		if p.Name != tt.name {
			t.Errorf("Param %d: expected name %q, got %q", i, tt.name, p.Name)
		}
		if p.HasDefault != tt.hasDefault {
			t.Errorf("Param %d: expected HasDefault=%v, got %v", i, tt.hasDefault, p.HasDefault)
		}
		if p.IsSplat != tt.isSplat {
			t.Errorf("Param %d: expected IsSplat=%v, got %v", i, tt.isSplat, p.IsSplat)
		}
	}

	if fn.RequiredParams() != 1 {
		t.Errorf("Expected 1 required param, got %d", fn.RequiredParams())
	}
	if fn.TotalParams() != 2 {
		t.Errorf("Expected 2 total params, got %d", fn.TotalParams())
	}
	if !fn.HasSplat() {
		t.Error("Expected HasSplat to be true")
	}
}

func TestParseKeywordOnlyParams(t *testing.T) {
	source := `def f(a, b=1, *, c, d=2):
    pass

def g(a, *args, b):
    pass
`
	result := parseSource(t, source)

	var fns []*Node
	result.AST.Walk(func(n *Node) bool {
		if n.Type == NodeFunctionDef {
			fns = append(fns, n)
		}
		return true
	})
	if len(fns) != 2 {
		t.Fatalf("Expected 2 function definitions, got %d", len(fns))
	}

	f := fns[0]
	if len(f.Params) != 4 {
		t.Fatalf("Expected 4 parameters, got %d", len(f.Params))
	}
	for i, want := range []bool{false, false, true, true} {
		if f.Params[i].KwOnly != want {
			t.Errorf("Param %q: expected KwOnly=%v, got %v", f.Params[i].Name, want, f.Params[i].KwOnly)
		}
	}
	if f.RequiredParams() != 1 {
		t.Errorf("Expected 1 required param, got %d", f.RequiredParams())
	}
	if f.TotalParams() != 2 {
		t.Errorf("Expected 2 positional params, got %d", f.TotalParams())
	}

	g := fns[1]
	if g.RequiredParams() != 1 {
		t.Errorf("Expected 1 required param after *args, got %d", g.RequiredParams())
	}
	if g.TotalParams() != 1 {
		t.Errorf("Expected 1 positional param after *args, got %d", g.TotalParams())
	}
	if !g.HasSplat() {
		t.Error("Expected HasSplat to be true")
	}
}

func TestParseSelfReceiver(t *testing.T) {
	source := `class Greeter:
    def greet(self, name):
        pass
`
	result := parseSource(t, source)

	cls := findFirst(result.AST, NodeClassDef)
	if cls == nil {
		t.Fatal("Expected a class definition")
	}
	if cls.Name != "Greeter" {
		t.Errorf("Expected class name 'Greeter', got %q", cls.Name)
	}

	fn := findFirst(result.AST, NodeFunctionDef)
	if fn == nil {
		t.Fatal("Expected a method definition")
	}
	if len(fn.Params) != 2 {
		t.Fatalf("Expected 2 parameters, got %d", len(fn.Params))
	}
	if fn.RequiredParams() != 1 {
		t.Errorf("Expected 1 required param after excluding self, got %d", fn.RequiredParams())
	}
}

func TestParseDecorators(t *testing.T) {
	source := `class C:
    @staticmethod
    def util():
        pass

    @app.route("/x")
    def handler(self):
        pass
`
	result := parseSource(t, source)

	var fns []*Node
	result.AST.Walk(func(n *Node) bool {
		if n.Type == NodeFunctionDef {
			fns = append(fns, n)
		}
		return true
	})
	if len(fns) != 2 {
		t.Fatalf("Expected 2 function definitions, got %d", len(fns))
	}

	if !fns[0].HasDecorator("staticmethod") {
		t.Errorf("Expected staticmethod decorator, got %v", fns[0].Decorators)
	}
	if !fns[1].HasDecorator("app.route") {
		t.Errorf("Expected app.route decorator, got %v", fns[1].Decorators)
	}
}

func TestParseImports(t *testing.T) {
	source := `import os
import os.path as osp
from collections import OrderedDict, defaultdict as dd
from . import sibling
from ..pkg import helper
from typing import *
`
	result := parseSource(t, source)

	var imports, fromImports []*Node
	result.AST.Walk(func(n *Node) bool {
		switch n.Type {
		case NodeImport:
			imports = append(imports, n)
		case NodeImportFrom:
			fromImports = append(fromImports, n)
		}
		return true
	})

	if len(imports) != 2 {
		t.Fatalf("Expected 2 import statements, got %d", len(imports))
	}
	if len(fromImports) != 4 {
		t.Fatalf("Expected 4 from-import statements, got %d", len(fromImports))
	}

	if imports[0].Names[0].Binding(true) != "os" {
		t.Errorf("Expected binding 'os', got %q", imports[0].Names[0].Binding(true))
	}
	if imports[1].Names[0].Name != "os.path" {
		t.Errorf("Expected name 'os.path', got %q", imports[1].Names[0].Name)
	}
	if imports[1].Names[0].Binding(true) != "osp" {
		t.Errorf("Expected alias binding 'osp', got %q", imports[1].Names[0].Binding(true))
	}

	ordered := fromImports[0]
	if ordered.Module != "collections" {
		t.Errorf("Expected module 'collections', got %q", ordered.Module)
	}
	if len(ordered.Names) != 2 {
		t.Fatalf("Expected 2 imported names, got %d", len(ordered.Names))
	}
	if ordered.Names[1].Binding(false) != "dd" {
		t.Errorf("Expected alias binding 'dd', got %q", ordered.Names[1].Binding(false))
	}

	relative := fromImports[1]
	if relative.Level != 1 || relative.Module != "" {
		t.Errorf("Expected level 1 relative import, got level=%d module=%q", relative.Level, relative.Module)
	}

	parent := fromImports[2]
	if parent.Level != 2 || parent.Module != "pkg" {
		t.Errorf("Expected level 2 import of 'pkg', got level=%d module=%q", parent.Level, parent.Module)
	}

	if !fromImports[3].Wildcard {
		t.Error("Expected wildcard import")
	}
}

func TestParseAssignmentsAndCalls(t *testing.T) {
	source := `x = 1
a, b = 1, 2
total = compute(x, scale=2)
x += 1
`
	result := parseSource(t, source)

	var assigns []*Node
	result.AST.Walk(func(n *Node) bool {
		if n.Type == NodeAssign {
			assigns = append(assigns, n)
		}
		return true
	})
	if len(assigns) != 3 {
		t.Fatalf("Expected 3 assignments, got %d", len(assigns))
	}

	if len(assigns[0].Targets) != 1 || assigns[0].Targets[0].Name != "x" {
		t.Errorf("Expected single target 'x', got %v", assigns[0].Targets)
	}
	if !assigns[0].Targets[0].Store {
		t.Error("Expected assignment target to be a Store identifier")
	}
	if len(assigns[1].Targets) != 2 {
		t.Errorf("Expected 2 tuple targets, got %d", len(assigns[1].Targets))
	}

	call := findFirst(result.AST, NodeCall)
	if call == nil {
		t.Fatal("Expected a call expression")
	}
	if call.Callee == nil || call.Callee.Name != "compute" {
		t.Errorf("Expected callee 'compute', got %v", call.Callee)
	}
	if len(call.Arguments) != 1 {
		t.Errorf("Expected 1 positional argument, got %d", len(call.Arguments))
	}
	if len(call.Keywords) != 1 || call.Keywords[0] != "scale" {
		t.Errorf("Expected keyword 'scale', got %v", call.Keywords)
	}

	aug := findFirst(result.AST, NodeAugAssign)
	if aug == nil {
		t.Fatal("Expected an augmented assignment")
	}
}

func TestWalkVisitsEachNodeOnce(t *testing.T) {
	source := `import os

def compute(a, b, c=1):
    return a + b + c

class C:
    def run(self):
        pass

x = compute(1, 2)
`
	result := parseSource(t, source)

	visits := make(map[*Node]int)
	result.AST.Walk(func(n *Node) bool {
		visits[n]++
		return true
	})
	for n, count := range visits {
		if count != 1 {
			t.Errorf("Expected %s to be visited once, got %d visits", n, count)
		}
	}

	var calls int
	result.AST.Walk(func(n *Node) bool {
		if n.Type == NodeCall {
			calls++
		}
		return true
	})
	if calls != 1 {
		t.Errorf("Expected 1 call expression, got %d", calls)
	}
}

func TestParseAttributeObjectSide(t *testing.T) {
	source := `value = config.settings.timeout
`
	result := parseSource(t, source)

	attr := findFirst(result.AST, NodeAttribute)
	if attr == nil {
		t.Fatal("Expected an attribute expression")
	}

	var identifiers []string
	attr.Walk(func(n *Node) bool {
		if n.Type == NodeIdentifier {
			identifiers = append(identifiers, n.Name)
		}
		return true
	})
	if len(identifiers) != 1 || identifiers[0] != "config" {
		t.Errorf("Expected only the base identifier 'config', got %v", identifiers)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	source := `def broken(
    print("hello")
`
	result := parseSource(t, source)
	if len(result.SyntaxErrors) == 0 {
		t.Fatal("Expected syntax errors for malformed source")
	}
	if result.SyntaxErrors[0].Line < 1 {
		t.Errorf("Expected 1-based line number, got %d", result.SyntaxErrors[0].Line)
	}
}

func TestParseInvalidEncoding(t *testing.T) {
	p := NewParser()
	defer p.Close()

	_, err := p.ParseFile(context.Background(), "bad.py", []byte{0x64, 0x65, 0x66, 0xff, 0xfe})
	if err == nil {
		t.Fatal("Expected an error for invalid UTF-8")
	}
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("Expected ErrInvalidEncoding, got %v", err)
	}
}

func TestLocationInfo(t *testing.T) {
	source := `x = 1

def f():
    pass
`
	result := parseSource(t, source)

	fn := findFirst(result.AST, NodeFunctionDef)
	if fn == nil {
		t.Fatal("Expected a function definition")
	}
	if fn.Location.StartLine != 3 {
		t.Errorf("Expected function on line 3, got %d", fn.Location.StartLine)
	}
}
