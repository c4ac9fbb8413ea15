package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		full := filepath.Join(root, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}
	return root
}

func TestStructureBuilderTree(t *testing.T) {
	root := writeTree(t, map[string]string{
		"README.md":   "readme",
		"src/main.py": "x = 1",
		"src/util.py": "",
		"zeta.txt":    "",
	})

	tree, err := NewStructureBuilder(root, "", nil).Build()
	if err != nil {
		t.Fatalf("Failed to build structure: %v", err)
	}

	expected := "src/\n    main.py\n    util.py\nREADME.md\nzeta.txt\n"
	if tree != expected {
		t.Errorf("Expected tree:\n%s\nGot:\n%s", expected, tree)
	}
}

func TestStructureBuilderIgnoreFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		".gitignore":       "*.log\nbuild/\n",
		"app.py":           "",
		"debug.log":        "",
		"build/output.txt": "",
	})

	tree, err := NewStructureBuilder(root, ".gitignore", nil).Build()
	if err != nil {
		t.Fatalf("Failed to build structure: %v", err)
	}

	if strings.Contains(tree, "debug.log") {
		t.Error("Expected ignored file to be excluded from tree")
	}
	if strings.Contains(tree, "output.txt") {
		t.Error("Expected ignored directory contents to be excluded")
	}
	if !strings.Contains(tree, "app.py") {
		t.Error("Expected app.py in tree")
	}
}

func TestStructureBuilderExcludePatterns(t *testing.T) {
	root := writeTree(t, map[string]string{
		"app.py":                  "",
		"__pycache__/app.cpython": "",
	})

	tree, err := NewStructureBuilder(root, "", []string{"__pycache__"}).Build()
	if err != nil {
		t.Fatalf("Failed to build structure: %v", err)
	}
	if strings.Contains(tree, "__pycache__") {
		t.Errorf("Expected excluded directory to be skipped, got:\n%s", tree)
	}
}

func TestStructureBuilderMissingRoot(t *testing.T) {
	_, err := NewStructureBuilder(filepath.Join(t.TempDir(), "missing"), "", nil).Build()
	if err == nil {
		t.Error("Expected an error for a missing root")
	}
}

func TestContentExtractorWholeProject(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.py":   "print('hi')",
		"notes.md":  "# notes",
		"image.png": "not checked",
	})

	extractor := NewContentExtractor(root, "", nil, 0, []string{".py", ".md"})
	entries, err := extractor.Collect(nil)
	if err != nil {
		t.Fatalf("Failed to collect: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Path != "main.py" || entries[1].Path != "notes.md" {
		t.Errorf("Unexpected paths: %v, %v", entries[0].Path, entries[1].Path)
	}
	if entries[0].Content != "print('hi')" {
		t.Errorf("Unexpected content %q", entries[0].Content)
	}
	if entries[0].Kind != "text" {
		t.Errorf("Expected text kind, got %q", entries[0].Kind)
	}
}

func TestContentExtractorPatterns(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/a.py":   "",
		"src/b.py":   "",
		"tests/t.py": "",
		"README.md":  "",
	})

	extractor := NewContentExtractor(root, "", nil, 0, nil)

	t.Run("directory pattern", func(t *testing.T) {
		entries, err := extractor.Collect([]string{"src"})
		if err != nil {
			t.Fatalf("Failed to collect: %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("Expected 2 entries under src, got %d", len(entries))
		}
	})

	t.Run("glob pattern", func(t *testing.T) {
		entries, err := extractor.Collect([]string{"*.md"})
		if err != nil {
			t.Fatalf("Failed to collect: %v", err)
		}
		if len(entries) != 1 || entries[0].Path != "README.md" {
			t.Errorf("Expected README.md only, got %v", entries)
		}
	})

	t.Run("literal file", func(t *testing.T) {
		entries, err := extractor.Collect([]string{"src/a.py"})
		if err != nil {
			t.Fatalf("Failed to collect: %v", err)
		}
		if len(entries) != 1 || entries[0].Path != "src/a.py" {
			t.Errorf("Expected src/a.py only, got %v", entries)
		}
	})
}

func TestContentExtractorBinaryAndOversize(t *testing.T) {
	root := writeTree(t, map[string]string{
		"big.py": strings.Repeat("x = 1\n", 100),
	})
	if err := os.WriteFile(filepath.Join(root, "blob.py"), []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatalf("Failed to write binary file: %v", err)
	}

	extractor := NewContentExtractor(root, "", nil, 100, nil)
	entries, err := extractor.Collect(nil)
	if err != nil {
		t.Fatalf("Failed to collect: %v", err)
	}

	byPath := make(map[string]string)
	for _, e := range entries {
		byPath[e.Path] = e.Kind
	}
	if byPath["big.py"] != "error" {
		t.Errorf("Expected oversize file marked as error, got %q", byPath["big.py"])
	}
	if byPath["blob.py"] != "binary" {
		t.Errorf("Expected binary file detected, got %q", byPath["blob.py"])
	}
}

func TestFenceLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.py", "python"},
		{"config.yml", "yaml"},
		{"run.sh", "bash"},
		{"data.csv", "csv"},
		{"Makefile", ""},
	}
	for _, tt := range tests {
		if got := FenceLanguage(tt.path); got != tt.want {
			t.Errorf("FenceLanguage(%q): expected %q, got %q", tt.path, tt.want, got)
		}
	}
}
