package analyzer

import (
	_ "embed"
	"strings"
)

//go:embed stdlib/python.txt
var pythonStdlibData string

var pythonStdlib = map[string]bool{}

func init() {
	for _, line := range strings.Split(pythonStdlibData, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pythonStdlib[line] = true
		// Add base name: e.g. urllib.request -> urllib
		if i := strings.IndexByte(line, '.'); i > 0 {
			pythonStdlib[line[:i]] = true
		}
	}
}

// IsStandardModule reports whether the dotted module path names a
// Python standard library module.
func IsStandardModule(module string) bool {
	if pythonStdlib[module] {
		return true
	}
	if i := strings.IndexByte(module, '.'); i > 0 {
		return pythonStdlib[module[:i]]
	}
	return false
}
