package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/pyvet/pyvet/domain"
)

func variableFindings(t *testing.T, source string) []domain.Finding {
	t.Helper()
	files := []*SourceFile{loadSource(t, "test.py", source)}
	return NewVariablesPass().Run(context.Background(), files)
}

func TestVariablesPassUndefinedName(t *testing.T) {
	findings := variableFindings(t, "result = undefined_thing + 1\n")
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Severity != domain.SeverityWarning {
		t.Errorf("Expected Warning severity, got %s", f.Severity)
	}
	if !strings.Contains(f.Message, "'undefined_thing' may be undefined") {
		t.Errorf("Unexpected message %q", f.Message)
	}
}

func TestVariablesPassKnownNames(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"builtin", "print(len([1, 2]))\n"},
		{"assignment", "x = 1\ny = x\n"},
		{"import", "import os\np = os\n"},
		{"import alias", "import os.path as osp\np = osp\n"},
		{"from import", "from collections import OrderedDict\nd = OrderedDict()\n"},
		{"function", "def helper():\n    pass\nhelper()\n"},
		{"class", "class Thing:\n    pass\nt = Thing()\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if findings := variableFindings(t, tt.source); len(findings) != 0 {
				t.Errorf("Expected no findings, got %v", findings)
			}
		})
	}
}

func TestVariablesPassConventionExempt(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"underscore prefix", "x = _private\n"},
		{"upper case constant", "x = MAX_RETRIES\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if findings := variableFindings(t, tt.source); len(findings) != 0 {
				t.Errorf("Expected convention-exempt name to be skipped, got %v", findings)
			}
		})
	}
}

func TestVariablesPassOrderInsensitive(t *testing.T) {
	// later definitions are known when checking earlier uses
	source := `result = helper()

def helper():
    return 1
`
	if findings := variableFindings(t, source); len(findings) != 0 {
		t.Errorf("Expected later definition to suppress the finding, got %v", findings)
	}
}

func TestVariablesPassAttributeBaseOnly(t *testing.T) {
	source := `import config
timeout = config.settings.timeout
`
	if findings := variableFindings(t, source); len(findings) != 0 {
		t.Errorf("Expected attribute names to be skipped, got %v", findings)
	}
}

func TestIsConventionExempt(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"_private", true},
		{"__dunder__", true},
		{"CONSTANT", true},
		{"MAX_RETRIES", true},
		{"variable", false},
		{"CamelCase", false},
		{"x", false},
		{"X", true},
	}
	for _, tt := range tests {
		if got := isConventionExempt(tt.name); got != tt.want {
			t.Errorf("isConventionExempt(%q): expected %v, got %v", tt.name, tt.want, got)
		}
	}
}
