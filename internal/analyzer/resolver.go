package analyzer

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Resolver checks whether imported module paths can be found. Lookup
// order is the standard library table, then the search paths. The
// project root is prepended to the search path only for the duration
// of a single resolution, and the mutation is serialized so concurrent
// passes never observe each other's root.
type Resolver struct {
	mu          sync.Mutex
	searchPaths []string
}

// NewResolver creates a resolver with optional extra search paths
// (virtualenv site-packages, vendored source trees).
func NewResolver(extraPaths ...string) *Resolver {
	return &Resolver{searchPaths: extraPaths}
}

// Resolve reports whether the dotted module path resolves against the
// project root or the configured search paths.
func (r *Resolver) Resolve(projectRoot, module string) bool {
	if module == "" {
		return false
	}
	if IsStandardModule(module) {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.searchPaths = append([]string{projectRoot}, r.searchPaths...)
	defer func() { r.searchPaths = r.searchPaths[1:] }()

	for _, base := range r.searchPaths {
		if resolveIn(base, module) {
			return true
		}
	}
	return false
}

// ResolveRelative resolves a relative import from the directory of the
// importing file. Level is the leading-dot count: one dot is the
// file's own package, each further dot walks one package up.
func (r *Resolver) ResolveRelative(fileDir string, level int, module string) bool {
	base := fileDir
	for i := 1; i < level; i++ {
		base = filepath.Dir(base)
	}
	if module == "" {
		return dirExists(base)
	}
	return resolveIn(base, module)
}

// resolveIn walks the dotted path under base: intermediate segments
// must be package directories, the final segment may be a module file
// or a package directory.
func resolveIn(base, module string) bool {
	dir := base
	segments := strings.Split(module, ".")
	for i, seg := range segments {
		pkgDir := filepath.Join(dir, seg)
		if i == len(segments)-1 {
			if fileExists(filepath.Join(dir, seg+".py")) {
				return true
			}
			return dirExists(pkgDir)
		}
		if !dirExists(pkgDir) {
			return false
		}
		dir = pkgDir
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
