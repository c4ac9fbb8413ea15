package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ASTBuilder builds our internal AST from the tree-sitter CST
type ASTBuilder struct {
	filename string
	source   []byte
}

// NewASTBuilder creates a new AST builder
func NewASTBuilder(filename string, source []byte) *ASTBuilder {
	return &ASTBuilder{
		filename: filename,
		source:   source,
	}
}

// Build builds the AST from a tree-sitter node
func (b *ASTBuilder) Build(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}
	return b.buildNode(tsNode)
}

// buildNode converts a tree-sitter node to our internal AST node
func (b *ASTBuilder) buildNode(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}

	switch tsNode.Type() {
	case "module":
		return b.buildModule(tsNode)
	case "function_definition":
		return b.buildFunctionDef(tsNode, nil)
	case "class_definition":
		return b.buildClassDef(tsNode, nil)
	case "decorated_definition":
		return b.buildDecoratedDefinition(tsNode)
	case "import_statement":
		return b.buildImport(tsNode)
	case "import_from_statement":
		return b.buildImportFrom(tsNode)
	case "future_import_statement":
		return b.buildFutureImport(tsNode)
	case "assignment":
		return b.buildAssignment(tsNode)
	case "augmented_assignment":
		return b.buildAugmentedAssignment(tsNode)
	case "call":
		return b.buildCall(tsNode)
	case "identifier":
		return b.buildIdentifier(tsNode, false)
	case "attribute":
		return b.buildAttribute(tsNode)
	case "for_statement":
		return b.buildForStatement(tsNode)
	case "for_in_clause":
		return b.buildForInClause(tsNode)
	case "as_pattern":
		return b.buildAsPattern(tsNode)
	case "named_expression":
		return b.buildNamedExpression(tsNode)
	case "lambda":
		return b.buildLambda(tsNode)
	case "global_statement", "nonlocal_statement":
		return b.buildScopeStatement(tsNode)
	default:
		return b.buildGenericNode(tsNode)
	}
}

func (b *ASTBuilder) buildModule(tsNode *sitter.Node) *Node {
	node := NewNode(NodeModule)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := b.buildNode(tsNode.NamedChild(i))
		if child != nil {
			child.Parent = node
			node.Body = append(node.Body, child)
		}
	}

	return node
}

// buildDecoratedDefinition unwraps decorators onto the definition node
func (b *ASTBuilder) buildDecoratedDefinition(tsNode *sitter.Node) *Node {
	var decorators []string
	var defNode *sitter.Node

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		switch child.Type() {
		case "decorator":
			decorators = append(decorators, b.decoratorName(child))
		case "function_definition":
			defNode = child
		case "class_definition":
			defNode = child
		}
	}

	if defNode == nil {
		return b.buildGenericNode(tsNode)
	}
	if defNode.Type() == "class_definition" {
		return b.buildClassDef(defNode, decorators)
	}
	return b.buildFunctionDef(defNode, decorators)
}

// decoratorName extracts the decorator expression text, stripping the
// leading @ and any call arguments
func (b *ASTBuilder) decoratorName(tsNode *sitter.Node) string {
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child.Type() == "call" {
			if fn := child.ChildByFieldName("function"); fn != nil {
				return fn.Content(b.source)
			}
		}
		return child.Content(b.source)
	}
	return strings.TrimPrefix(tsNode.Content(b.source), "@")
}

func (b *ASTBuilder) buildFunctionDef(tsNode *sitter.Node, decorators []string) *Node {
	node := NewNode(NodeFunctionDef)
	node.Location = b.getLocation(tsNode)
	node.Decorators = decorators

	if nameNode := tsNode.ChildByFieldName("name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}
	if paramsNode := tsNode.ChildByFieldName("parameters"); paramsNode != nil {
		node.Params = b.buildParameters(paramsNode)
	}
	if bodyNode := tsNode.ChildByFieldName("body"); bodyNode != nil {
		node.Body = b.buildBlock(bodyNode)
	}
	for _, child := range node.Params {
		child.Parent = node
	}
	for _, child := range node.Body {
		child.Parent = node
	}

	return node
}

func (b *ASTBuilder) buildClassDef(tsNode *sitter.Node, decorators []string) *Node {
	node := NewNode(NodeClassDef)
	node.Location = b.getLocation(tsNode)
	node.Decorators = decorators

	if nameNode := tsNode.ChildByFieldName("name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}
	if supers := tsNode.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			node.AddChild(b.buildNode(supers.NamedChild(i)))
		}
	}
	if bodyNode := tsNode.ChildByFieldName("body"); bodyNode != nil {
		node.Body = b.buildBlock(bodyNode)
		for _, child := range node.Body {
			child.Parent = node
		}
	}

	return node
}

// buildParameters flattens a parameter list into Parameter nodes.
// Parameters declared after a bare * or after *args are keyword-only
// and never count toward positional arity.
func (b *ASTBuilder) buildParameters(tsNode *sitter.Node) []*Node {
	var params []*Node
	kwOnly := false

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		param := NewNode(NodeParameter)
		param.Location = b.getLocation(child)

		switch child.Type() {
		case "identifier":
			param.Name = child.Content(b.source)
		case "typed_parameter":
			// First named child is the pattern, the type is a field
			if inner := child.NamedChild(0); inner != nil {
				if inner.Type() == "list_splat_pattern" || inner.Type() == "dictionary_splat_pattern" {
					param.IsSplat = true
					if inner.Type() == "list_splat_pattern" {
						kwOnly = true
					}
					if id := inner.NamedChild(0); id != nil {
						param.Name = id.Content(b.source)
					}
				} else {
					param.Name = inner.Content(b.source)
				}
			}
		case "default_parameter", "typed_default_parameter":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				param.Name = nameNode.Content(b.source)
			}
			if valueNode := child.ChildByFieldName("value"); valueNode != nil {
				param.Value = b.buildNode(valueNode)
			}
			param.HasDefault = true
		case "list_splat_pattern":
			param.IsSplat = true
			kwOnly = true
			if id := child.NamedChild(0); id != nil {
				param.Name = id.Content(b.source)
			}
		case "dictionary_splat_pattern":
			param.IsSplat = true
			if id := child.NamedChild(0); id != nil {
				param.Name = id.Content(b.source)
			}
		case "positional_separator":
			continue
		case "keyword_separator":
			kwOnly = true
			continue
		default:
			param.Name = child.Content(b.source)
		}

		param.KwOnly = kwOnly && !param.IsSplat
		params = append(params, param)
	}

	return params
}

// buildBlock builds the statements of a block node
func (b *ASTBuilder) buildBlock(tsNode *sitter.Node) []*Node {
	var stmts []*Node
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		if child := b.buildNode(tsNode.NamedChild(i)); child != nil {
			stmts = append(stmts, child)
		}
	}
	return stmts
}

func (b *ASTBuilder) buildImport(tsNode *sitter.Node) *Node {
	node := NewNode(NodeImport)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			node.Names = append(node.Names, ImportedName{Name: child.Content(b.source)})
		case "aliased_import":
			node.Names = append(node.Names, b.buildAliasedImport(child))
		}
	}

	return node
}

func (b *ASTBuilder) buildImportFrom(tsNode *sitter.Node) *Node {
	node := NewNode(NodeImportFrom)
	node.Location = b.getLocation(tsNode)

	moduleNode := tsNode.ChildByFieldName("module_name")
	if moduleNode != nil {
		raw := moduleNode.Content(b.source)
		for len(raw) > 0 && raw[0] == '.' {
			node.Level++
			raw = raw[1:]
		}
		node.Module = raw
	}

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() {
			continue
		}
		switch child.Type() {
		case "wildcard_import":
			node.Wildcard = true
		case "dotted_name":
			node.Names = append(node.Names, ImportedName{Name: child.Content(b.source)})
		case "aliased_import":
			node.Names = append(node.Names, b.buildAliasedImport(child))
		}
	}

	return node
}

// buildFutureImport handles "from __future__ import ..." which
// tree-sitter gives its own node kind
func (b *ASTBuilder) buildFutureImport(tsNode *sitter.Node) *Node {
	node := NewNode(NodeImportFrom)
	node.Location = b.getLocation(tsNode)
	node.Module = "__future__"

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			node.Names = append(node.Names, ImportedName{Name: child.Content(b.source)})
		case "aliased_import":
			node.Names = append(node.Names, b.buildAliasedImport(child))
		}
	}

	return node
}

func (b *ASTBuilder) buildAliasedImport(tsNode *sitter.Node) ImportedName {
	in := ImportedName{}
	if nameNode := tsNode.ChildByFieldName("name"); nameNode != nil {
		in.Name = nameNode.Content(b.source)
	}
	if aliasNode := tsNode.ChildByFieldName("alias"); aliasNode != nil {
		in.Alias = aliasNode.Content(b.source)
	}
	return in
}

func (b *ASTBuilder) buildAssignment(tsNode *sitter.Node) *Node {
	node := NewNode(NodeAssign)
	node.Location = b.getLocation(tsNode)

	if left := tsNode.ChildByFieldName("left"); left != nil {
		node.Targets = b.buildTargets(left)
		for _, t := range node.Targets {
			t.Parent = node
		}
	}
	if right := tsNode.ChildByFieldName("right"); right != nil {
		node.Value = b.buildNode(right)
		if node.Value != nil {
			node.Value.Parent = node
		}
	}

	return node
}

func (b *ASTBuilder) buildAugmentedAssignment(tsNode *sitter.Node) *Node {
	node := NewNode(NodeAugAssign)
	node.Location = b.getLocation(tsNode)

	if left := tsNode.ChildByFieldName("left"); left != nil {
		node.Targets = b.buildTargets(left)
		for _, t := range node.Targets {
			t.Parent = node
		}
	}
	if right := tsNode.ChildByFieldName("right"); right != nil {
		node.Value = b.buildNode(right)
		if node.Value != nil {
			node.Value.Parent = node
		}
	}

	return node
}

// buildTargets builds the left-hand side of an assignment. Identifiers
// in binding positions are marked Store; tuple and list patterns keep
// their elements as separate targets.
func (b *ASTBuilder) buildTargets(tsNode *sitter.Node) []*Node {
	switch tsNode.Type() {
	case "identifier":
		return []*Node{b.buildIdentifier(tsNode, true)}
	case "pattern_list", "tuple_pattern", "list_pattern":
		var targets []*Node
		for i := 0; i < int(tsNode.NamedChildCount()); i++ {
			targets = append(targets, b.buildTargets(tsNode.NamedChild(i))...)
		}
		return targets
	case "list_splat_pattern":
		if inner := tsNode.NamedChild(0); inner != nil {
			return b.buildTargets(inner)
		}
		return nil
	default:
		// Attribute and subscript targets read their base expression
		if n := b.buildNode(tsNode); n != nil {
			return []*Node{n}
		}
		return nil
	}
}

func (b *ASTBuilder) buildCall(tsNode *sitter.Node) *Node {
	node := NewNode(NodeCall)
	node.Location = b.getLocation(tsNode)

	if fn := tsNode.ChildByFieldName("function"); fn != nil {
		node.Callee = b.buildNode(fn)
		if node.Callee != nil {
			node.Callee.Parent = node
		}
	}
	if args := tsNode.ChildByFieldName("arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			child := args.NamedChild(i)
			if child.Type() == "keyword_argument" {
				if nameNode := child.ChildByFieldName("name"); nameNode != nil {
					node.Keywords = append(node.Keywords, nameNode.Content(b.source))
				}
				if valueNode := child.ChildByFieldName("value"); valueNode != nil {
					node.AddChild(b.buildNode(valueNode))
				}
				continue
			}
			if arg := b.buildNode(child); arg != nil {
				arg.Parent = node
				node.Arguments = append(node.Arguments, arg)
			}
		}
	}

	return node
}

func (b *ASTBuilder) buildIdentifier(tsNode *sitter.Node, store bool) *Node {
	node := NewNode(NodeIdentifier)
	node.Location = b.getLocation(tsNode)
	node.Name = tsNode.Content(b.source)
	node.Store = store
	return node
}

// buildAttribute keeps only the object side; the attribute name is not
// a standalone identifier reference
func (b *ASTBuilder) buildAttribute(tsNode *sitter.Node) *Node {
	node := NewNode(NodeAttribute)
	node.Location = b.getLocation(tsNode)

	if attr := tsNode.ChildByFieldName("attribute"); attr != nil {
		node.Name = attr.Content(b.source)
	}
	if obj := tsNode.ChildByFieldName("object"); obj != nil {
		node.Value = b.buildNode(obj)
		if node.Value != nil {
			node.Value.Parent = node
		}
	}

	return node
}

func (b *ASTBuilder) buildForStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeGeneric)
	node.Location = b.getLocation(tsNode)

	if left := tsNode.ChildByFieldName("left"); left != nil {
		for _, t := range b.buildTargets(left) {
			node.AddChild(t)
		}
	}
	if right := tsNode.ChildByFieldName("right"); right != nil {
		node.AddChild(b.buildNode(right))
	}
	if body := tsNode.ChildByFieldName("body"); body != nil {
		for _, stmt := range b.buildBlock(body) {
			node.AddChild(stmt)
		}
	}
	if alt := tsNode.ChildByFieldName("alternative"); alt != nil {
		node.AddChild(b.buildNode(alt))
	}

	return node
}

func (b *ASTBuilder) buildForInClause(tsNode *sitter.Node) *Node {
	node := NewNode(NodeGeneric)
	node.Location = b.getLocation(tsNode)

	if left := tsNode.ChildByFieldName("left"); left != nil {
		for _, t := range b.buildTargets(left) {
			node.AddChild(t)
		}
	}
	if right := tsNode.ChildByFieldName("right"); right != nil {
		node.AddChild(b.buildNode(right))
	}

	return node
}

// buildAsPattern handles "with x as y" and "except E as e" aliases
func (b *ASTBuilder) buildAsPattern(tsNode *sitter.Node) *Node {
	node := NewNode(NodeGeneric)
	node.Location = b.getLocation(tsNode)

	if inner := tsNode.NamedChild(0); inner != nil {
		node.AddChild(b.buildNode(inner))
	}
	if alias := tsNode.ChildByFieldName("alias"); alias != nil {
		for _, t := range b.buildTargets(targetOf(alias)) {
			node.AddChild(t)
		}
	}

	return node
}

// targetOf unwraps as_pattern_target wrappers
func targetOf(tsNode *sitter.Node) *sitter.Node {
	if tsNode.Type() == "as_pattern_target" && tsNode.NamedChildCount() > 0 {
		return tsNode.NamedChild(0)
	}
	return tsNode
}

func (b *ASTBuilder) buildNamedExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeGeneric)
	node.Location = b.getLocation(tsNode)

	if name := tsNode.ChildByFieldName("name"); name != nil {
		for _, t := range b.buildTargets(name) {
			node.AddChild(t)
		}
	}
	if value := tsNode.ChildByFieldName("value"); value != nil {
		node.AddChild(b.buildNode(value))
	}

	return node
}

func (b *ASTBuilder) buildLambda(tsNode *sitter.Node) *Node {
	node := NewNode(NodeGeneric)
	node.Location = b.getLocation(tsNode)

	if params := tsNode.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			for _, t := range b.buildTargets(params.NamedChild(i)) {
				node.AddChild(t)
			}
		}
	}
	if body := tsNode.ChildByFieldName("body"); body != nil {
		node.AddChild(b.buildNode(body))
	}

	return node
}

// buildScopeStatement absorbs global/nonlocal name lists; the names are
// declarations, not references
func (b *ASTBuilder) buildScopeStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeGeneric)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child.Type() == "identifier" {
			node.AddChild(b.buildIdentifier(child, true))
		}
	}

	return node
}

// buildGenericNode handles node kinds without dedicated builders by
// recursing into named children
func (b *ASTBuilder) buildGenericNode(tsNode *sitter.Node) *Node {
	node := NewNode(NodeGeneric)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		node.AddChild(b.buildNode(tsNode.NamedChild(i)))
	}

	return node
}

// getLocation extracts location information from a tree-sitter node
func (b *ASTBuilder) getLocation(tsNode *sitter.Node) Location {
	return Location{
		File:      b.filename,
		StartLine: int(tsNode.StartPoint().Row) + 1,
		StartCol:  int(tsNode.StartPoint().Column),
		EndLine:   int(tsNode.EndPoint().Row) + 1,
		EndCol:    int(tsNode.EndPoint().Column),
	}
}
