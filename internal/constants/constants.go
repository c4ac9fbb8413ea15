package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "pyvet"

	// ConfigFileName is the default config file name
	ConfigFileName = "pyvet.yaml"

	// ConfigEnvVar points at a config file outside the search path
	ConfigEnvVar = "PYVET_CONFIG"
)

// Analysis type constants
const (
	AnalysisSyntax        = "syntax"
	AnalysisImports       = "imports"
	AnalysisParameters    = "parameters"
	AnalysisVariables     = "variables"
	AnalysisMethods       = "methods"
	AnalysisComprehensive = "comprehensive"
)

// Output format constants
const (
	OutputFormatText     = "text"
	OutputFormatJSON     = "json"
	OutputFormatYAML     = "yaml"
	OutputFormatMarkdown = "markdown"
)
