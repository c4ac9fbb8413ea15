package domain

// StructureRequest represents a request for a project structure listing
type StructureRequest struct {
	// Root is the project directory to walk
	Root string

	// IgnoreFile is the gitignore-style file consulted for exclusions,
	// relative to Root (default .gitignore)
	IgnoreFile string

	// ExcludePatterns are path substrings/directory names excluded in
	// addition to the ignore file
	ExcludePatterns []string

	// OutputFormat selects markdown (fenced) or plain rendering
	OutputFormat OutputFormat
}

// FileEntry describes one extracted file for the files operation
type FileEntry struct {
	// Path is relative to the request root
	Path string `json:"path"`

	// Content is the decoded text, empty for binary or unreadable files
	Content string `json:"content,omitempty"`

	// Size is the on-disk size in bytes
	Size int64 `json:"size"`

	// Kind is text, binary, or error
	Kind string `json:"type"`

	// Error holds the read failure, if any
	Error string `json:"error,omitempty"`
}

// FileContentsRequest represents a request to extract file contents
type FileContentsRequest struct {
	// Root is the project directory
	Root string

	// TargetPatterns restricts extraction to matching files or
	// directories; empty means the whole project
	TargetPatterns []string

	// IgnoreFile is the gitignore-style exclusion file
	IgnoreFile string

	// ExcludePatterns are additional exclusions
	ExcludePatterns []string

	// MaxFileSize caps individual file size in bytes (0 = default)
	MaxFileSize int64

	// SupportedExtensions restricts extraction by extension; empty
	// means the configured default set
	SupportedExtensions []string

	// OutputFormat selects markdown, plain, or json rendering
	OutputFormat OutputFormat
}
