package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/pyvet/pyvet/domain"
)

// languageByExt maps file extensions to markdown fence languages
var languageByExt = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".go":   "go",
	".rs":   "rust",
	".java": "java",
	".rb":   "ruby",
	".sh":   "bash",
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
	".toml": "toml",
	".xml":  "xml",
	".html": "html",
	".css":  "css",
	".md":   "markdown",
	".sql":  "sql",
}

// FenceLanguage returns the markdown fence language for a file path
func FenceLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := languageByExt[ext]; ok {
		return lang
	}
	return strings.TrimPrefix(ext, ".")
}

// ContentExtractor collects file contents from a project tree,
// honoring gitignore-style exclusions, a size cap, and an extension
// filter.
type ContentExtractor struct {
	root       string
	ignorer    *ignore.GitIgnore
	exclude    []string
	maxSize    int64
	extensions map[string]bool
}

// NewContentExtractor creates an extractor for the project root.
// Extensions restricts collected files; empty means no restriction.
func NewContentExtractor(root, ignoreFile string, exclude []string, maxSize int64, extensions []string) *ContentExtractor {
	e := &ContentExtractor{
		root:    root,
		exclude: exclude,
		maxSize: maxSize,
	}
	if ignoreFile != "" {
		if ign, err := ignore.CompileIgnoreFile(filepath.Join(root, ignoreFile)); err == nil {
			e.ignorer = ign
		}
	}
	if len(extensions) > 0 {
		e.extensions = make(map[string]bool, len(extensions))
		for _, ext := range extensions {
			e.extensions[strings.ToLower(ext)] = true
		}
	}
	return e
}

// Collect gathers entries for files matching the target patterns, or
// the whole project when patterns is empty. Patterns may be literal
// file or directory paths relative to the root, or glob patterns.
func (e *ContentExtractor) Collect(patterns []string) ([]domain.FileEntry, error) {
	if _, err := os.Stat(e.root); err != nil {
		return nil, err
	}

	matchers, err := compilePatterns(patterns)
	if err != nil {
		return nil, err
	}

	var entries []domain.FileEntry
	walkErr := filepath.WalkDir(e.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories are treated as empty
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(e.root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if e.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if e.excluded(rel) {
			return nil
		}
		if !e.wanted(rel) {
			return nil
		}
		if len(matchers) > 0 && !matchAny(matchers, patterns, rel) {
			return nil
		}

		entries = append(entries, e.readEntry(path, rel))
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func (e *ContentExtractor) readEntry(path, rel string) domain.FileEntry {
	entry := domain.FileEntry{Path: rel}

	info, err := os.Stat(path)
	if err != nil {
		entry.Kind = "error"
		entry.Error = err.Error()
		return entry
	}
	entry.Size = info.Size()

	if e.maxSize > 0 && info.Size() > e.maxSize {
		entry.Kind = "error"
		entry.Error = fmt.Sprintf("file exceeds size limit (%d bytes)", e.maxSize)
		return entry
	}

	data, err := os.ReadFile(path)
	if err != nil {
		entry.Kind = "error"
		entry.Error = err.Error()
		return entry
	}
	if !utf8.Valid(data) {
		entry.Kind = "binary"
		return entry
	}

	entry.Kind = "text"
	entry.Content = string(data)
	return entry
}

func (e *ContentExtractor) excluded(rel string) bool {
	if e.ignorer != nil && e.ignorer.MatchesPath(rel) {
		return true
	}
	for _, pattern := range e.exclude {
		if pattern != "" && strings.Contains(rel, pattern) {
			return true
		}
	}
	return false
}

func (e *ContentExtractor) wanted(rel string) bool {
	if e.extensions == nil {
		return true
	}
	return e.extensions[strings.ToLower(filepath.Ext(rel))]
}

// compilePatterns compiles the target patterns as path globs
func compilePatterns(patterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		matchers = append(matchers, g)
	}
	return matchers, nil
}

// matchAny accepts a path that matches a glob, equals a literal
// pattern, or sits under a directory pattern
func matchAny(matchers []glob.Glob, patterns []string, rel string) bool {
	for i, g := range matchers {
		if g.Match(rel) {
			return true
		}
		p := strings.TrimSuffix(filepath.ToSlash(patterns[i]), "/")
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	return false
}
