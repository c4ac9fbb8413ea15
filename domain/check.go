package domain

// CheckResult represents the result of a CI gate check
type CheckResult struct {
	Passed      bool             `json:"passed"`
	ExitCode    int              `json:"exit_code"`
	Violations  []CheckViolation `json:"violations"`
	Summary     CheckSummary     `json:"summary"`
	Duration    int64            `json:"duration_ms"`
	GeneratedAt string           `json:"generated_at"`
	Version     string           `json:"version"`
}

// CheckViolation represents a single finding surfaced by the gate
type CheckViolation struct {
	Check    AnalysisType `json:"check"`              // syntax, imports, parameters, variables, methods
	Severity Severity     `json:"severity"`           // error, warning
	Message  string       `json:"message"`            // Human-readable description
	Location string       `json:"location,omitempty"` // File:line if applicable
}

// CheckSummary provides aggregate statistics
type CheckSummary struct {
	FilesAnalyzed   int  `json:"files_analyzed"`
	TotalViolations int  `json:"total_violations"`
	ErrorCount      int  `json:"error_count"`
	WarningCount    int  `json:"warning_count"`
	Partial         bool `json:"partial,omitempty"`
}
