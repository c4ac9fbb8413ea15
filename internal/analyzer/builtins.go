package analyzer

// pythonBuiltins are the built-in names seeded into the known-name set
// of the undefined-name check: global functions, constructors, and the
// common exception types.
var pythonBuiltins = []string{
	"print", "str", "int", "float", "list", "dict", "len", "range",
	"enumerate", "Exception", "ValueError", "TypeError", "ImportError",
	"KeyError", "AttributeError", "FileNotFoundError", "SyntaxError",
	"KeyboardInterrupt", "StopIteration", "isinstance", "hasattr",
	"getattr", "setattr", "delattr", "bool", "tuple", "set", "max",
	"min", "sum", "abs", "all", "any", "open", "iter", "next", "zip",
	"map", "filter", "sorted", "reversed", "format", "repr", "hash",
	"id", "type", "super", "property", "staticmethod", "classmethod",
	"callable", "vars", "dir", "globals", "locals", "exec", "eval",
	"compile", "input", "round", "pow", "divmod", "chr", "ord",
}

// builtinNames returns a fresh set seeded with the built-in names
func builtinNames() map[string]struct{} {
	names := make(map[string]struct{}, len(pythonBuiltins))
	for _, n := range pythonBuiltins {
		names[n] = struct{}{}
	}
	return names
}
