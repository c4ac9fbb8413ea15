package analyzer

import (
	"path/filepath"
	"sync"
	"testing"
)

func TestResolverStandardModules(t *testing.T) {
	tests := []struct {
		module string
		want   bool
	}{
		{"os", true},
		{"os.path", true},
		{"json", true},
		{"collections.abc", true},
		{"urllib.request", true},
		{"definitely_not_stdlib", false},
	}
	for _, tt := range tests {
		if got := IsStandardModule(tt.module); got != tt.want {
			t.Errorf("IsStandardModule(%q): expected %v, got %v", tt.module, tt.want, got)
		}
	}
}

func TestResolverProjectRootScoping(t *testing.T) {
	rootA := writeProject(t, map[string]string{"only_in_a.py": ""})
	rootB := writeProject(t, map[string]string{"only_in_b.py": ""})

	r := NewResolver()
	if !r.Resolve(rootA, "only_in_a") {
		t.Error("Expected only_in_a to resolve against root A")
	}
	if r.Resolve(rootB, "only_in_a") {
		t.Error("Expected only_in_a to be invisible from root B")
	}
	if !r.Resolve(rootB, "only_in_b") {
		t.Error("Expected only_in_b to resolve against root B")
	}
}

func TestResolverExtraSearchPaths(t *testing.T) {
	sitePackages := writeProject(t, map[string]string{"vendored/__init__.py": ""})
	root := writeProject(t, nil)

	r := NewResolver(sitePackages)
	if !r.Resolve(root, "vendored") {
		t.Error("Expected vendored package to resolve via extra search path")
	}

	bare := NewResolver()
	if bare.Resolve(root, "vendored") {
		t.Error("Expected vendored package to be unresolvable without the extra path")
	}
}

func TestResolverDottedPaths(t *testing.T) {
	root := writeProject(t, map[string]string{
		"pkg/__init__.py":     "",
		"pkg/mod.py":          "",
		"pkg/sub/__init__.py": "",
	})

	r := NewResolver()
	tests := []struct {
		module string
		want   bool
	}{
		{"pkg", true},
		{"pkg.mod", true},
		{"pkg.sub", true},
		{"pkg.missing", false},
		{"pkg.mod.deeper", false},
		{"missing.mod", false},
	}
	for _, tt := range tests {
		if got := r.Resolve(root, tt.module); got != tt.want {
			t.Errorf("Resolve(%q): expected %v, got %v", tt.module, tt.want, got)
		}
	}
}

func TestResolverConcurrentUse(t *testing.T) {
	rootA := writeProject(t, map[string]string{"mod_a.py": ""})
	rootB := writeProject(t, map[string]string{"mod_b.py": ""})

	r := NewResolver()
	var wg sync.WaitGroup
	errs := make(chan string, 200)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !r.Resolve(rootA, "mod_a") {
				errs <- "mod_a failed to resolve against root A"
			}
			if r.Resolve(rootA, "mod_b") {
				errs <- "mod_b leaked into root A"
			}
			if !r.Resolve(rootB, "mod_b") {
				errs <- "mod_b failed to resolve against root B"
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}

func TestResolveRelative(t *testing.T) {
	root := writeProject(t, map[string]string{
		"pkg/__init__.py": "",
		"pkg/mod.py":      "",
	})

	r := NewResolver()
	pkgDir := filepath.Join(root, "pkg")

	if !r.ResolveRelative(pkgDir, 1, "") {
		t.Error("Expected 'from . import x' to resolve within the package")
	}
	if !r.ResolveRelative(pkgDir, 1, "mod") {
		t.Error("Expected sibling module to resolve")
	}
	if !r.ResolveRelative(pkgDir, 2, "pkg") {
		t.Error("Expected parent-level package to resolve")
	}
	if r.ResolveRelative(pkgDir, 1, "missing") {
		t.Error("Expected missing sibling to fail resolution")
	}
}
