package config

import "strconv"

// ProjectType represents the kind of Python project being analyzed
type ProjectType string

const (
	ProjectTypeGeneric ProjectType = "generic"
	ProjectTypePackage ProjectType = "package"
	ProjectTypeService ProjectType = "service"
	ProjectTypeData    ProjectType = "data"
)

// Strictness represents the analysis strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds configuration presets for different project types
type ProjectPreset struct {
	ExcludeDirs          []string
	OptionalDependencies []string
}

// StrictnessPreset holds check selections for different strictness levels
type StrictnessPreset struct {
	Checks         []string
	TimeoutSeconds int
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			ExcludeDirs:          append([]string{}, DefaultExcludeDirs...),
			OptionalDependencies: append([]string{}, DefaultOptionalDependencies...),
		},
		ProjectTypePackage: {
			ExcludeDirs: append(append([]string{}, DefaultExcludeDirs...),
				"dist", "build", ".tox", ".eggs"),
			OptionalDependencies: append([]string{}, DefaultOptionalDependencies...),
		},
		ProjectTypeService: {
			ExcludeDirs: append(append([]string{}, DefaultExcludeDirs...),
				"migrations", "static", "media"),
			OptionalDependencies: append(append([]string{}, DefaultOptionalDependencies...),
				"uvicorn", "gunicorn"),
		},
		ProjectTypeData: {
			ExcludeDirs: append(append([]string{}, DefaultExcludeDirs...),
				"notebooks", "data", ".ipynb_checkpoints"),
			OptionalDependencies: append(append([]string{}, DefaultOptionalDependencies...),
				"numpy", "scipy", "matplotlib"),
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			// The undefined-name check is noisy without scope
			// modeling, so relaxed runs leave it out
			Checks:         []string{"syntax", "imports", "methods"},
			TimeoutSeconds: 300,
		},
		StrictnessStandard: {
			Checks:         []string{"syntax", "imports", "parameters", "methods"},
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		StrictnessStrict: {
			Checks:         []string{"syntax", "imports", "parameters", "variables", "methods"},
			TimeoutSeconds: 60,
		},
	}
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	preset := GetProjectPresets()[projectType]
	strict := GetStrictnessPresets()[strictness]

	return `# pyvet configuration

# ==============================================================================
# ANALYSIS SCOPE
# ==============================================================================
analysis:
  # Directory names skipped at any depth during file discovery
  exclude_dirs:
` + formatYAMLList(preset.ExcludeDirs, "    ") + `

  # Checks run by "pyvet analyze" and "pyvet check" (comprehensive runs)
  checks:
` + formatYAMLList(strict.Checks, "    ") + `

# ==============================================================================
# IMPORT CHECK
# ==============================================================================
imports:
  # External packages whose absence is reported as a warning instead
  # of an error
  optional_dependencies:
` + formatYAMLList(preset.OptionalDependencies, "    ") + `

  # Additional module resolution roots, e.g. a virtualenv's
  # site-packages directory
  extra_search_paths: []

# ==============================================================================
# OUTPUT SETTINGS
# ==============================================================================
output:
  # Output format: text, json, yaml, markdown
  format: text

  # Directory for saved reports (empty = .pyvet/reports)
  directory: ""

  # Progress bar on TTY output (disable for CI logs)
  show_progress: true

# ==============================================================================
# PERFORMANCE
# ==============================================================================
performance:
  # Concurrent check execution limit (0 = number of CPUs)
  max_goroutines: 0

  # Wall-clock budget for a whole run in seconds
  timeout_seconds: ` + strconv.Itoa(strict.TimeoutSeconds) + `
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# pyvet configuration (minimal)

imports:
  optional_dependencies:
` + formatYAMLList(DefaultOptionalDependencies, "    ") + `

output:
  format: text
`
}

// formatYAMLList formats a string slice as an indented YAML sequence
func formatYAMLList(items []string, indent string) string {
	if len(items) == 0 {
		return indent + "[]"
	}
	result := ""
	for i, item := range items {
		result += indent + "- " + item
		if i < len(items)-1 {
			result += "\n"
		}
	}
	return result
}
