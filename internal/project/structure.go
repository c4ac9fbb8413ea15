package project

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// StructureBuilder renders a project tree, honoring a gitignore-style
// exclusion file and extra exclude patterns.
type StructureBuilder struct {
	root    string
	ignorer *ignore.GitIgnore
	exclude []string
}

// NewStructureBuilder creates a builder for the project root. The
// ignore file is resolved relative to root; a missing or unreadable
// ignore file excludes nothing.
func NewStructureBuilder(root, ignoreFile string, exclude []string) *StructureBuilder {
	b := &StructureBuilder{root: root, exclude: exclude}
	if ignoreFile != "" {
		if ign, err := ignore.CompileIgnoreFile(filepath.Join(root, ignoreFile)); err == nil {
			b.ignorer = ign
		}
	}
	return b
}

// Build renders the tree as indented text: directories first, names
// sorted case-insensitively, directories marked with a trailing slash.
func (b *StructureBuilder) Build() (string, error) {
	if _, err := os.Stat(b.root); err != nil {
		return "", err
	}

	var sb strings.Builder
	b.walk(b.root, 0, &sb)
	return sb.String(), nil
}

func (b *StructureBuilder) walk(dir string, level int, sb *strings.Builder) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directories are treated as empty
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	indent := strings.Repeat("    ", level)
	for _, entry := range entries {
		rel, err := filepath.Rel(b.root, filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		if b.excluded(rel) {
			continue
		}

		if entry.IsDir() {
			sb.WriteString(indent + entry.Name() + "/\n")
			b.walk(filepath.Join(dir, entry.Name()), level+1, sb)
		} else {
			sb.WriteString(indent + entry.Name() + "\n")
		}
	}
}

// excluded checks the relative path against the ignore file and the
// extra exclude patterns (substring match, as the exclude list holds
// directory names and path fragments)
func (b *StructureBuilder) excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	if b.ignorer != nil && b.ignorer.MatchesPath(rel) {
		return true
	}
	for _, pattern := range b.exclude {
		if pattern != "" && strings.Contains(rel, pattern) {
			return true
		}
	}
	return false
}
