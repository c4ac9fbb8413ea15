package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/pyvet/pyvet/domain"
)

func TestParametersPassArity(t *testing.T) {
	source := `def f(a, b, c=1):
    pass
`
	tests := []struct {
		name    string
		call    string
		message string
	}{
		{"too few", "f(1)", "requires 2 args but 1 provided"},
		{"minimum", "f(1, 2)", ""},
		{"all params", "f(1, 2, 3)", ""},
		{"too many", "f(1, 2, 3, 4)", "takes 3 args but 4 provided"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := []*SourceFile{loadSource(t, "test.py", source+tt.call+"\n")}
			findings := NewParametersPass().Run(context.Background(), files)

			if tt.message == "" {
				if len(findings) != 0 {
					t.Errorf("Expected no findings, got %v", findings)
				}
				return
			}
			if len(findings) != 1 {
				t.Fatalf("Expected 1 finding, got %d", len(findings))
			}
			if findings[0].Severity != domain.SeverityError {
				t.Errorf("Expected Error severity, got %s", findings[0].Severity)
			}
			if !strings.Contains(findings[0].Message, tt.message) {
				t.Errorf("Expected message containing %q, got %q", tt.message, findings[0].Message)
			}
		})
	}
}

func TestParametersPassKeywordArguments(t *testing.T) {
	source := `def connect(host, port, timeout=30):
    pass

connect("localhost", port=8080)
`
	files := []*SourceFile{loadSource(t, "test.py", source)}
	findings := NewParametersPass().Run(context.Background(), files)
	if len(findings) != 0 {
		t.Errorf("Expected keyword args to count as provided, got %v", findings)
	}
}

func TestParametersPassSelfExcluded(t *testing.T) {
	source := `class C:
    def method(self, value):
        pass

def caller(c):
    method(1)
`
	files := []*SourceFile{loadSource(t, "test.py", source)}
	findings := NewParametersPass().Run(context.Background(), files)
	if len(findings) != 0 {
		t.Errorf("Expected self to be excluded from required count, got %v", findings)
	}
}

func TestParametersPassUnknownCallee(t *testing.T) {
	source := `imported_helper(1, 2, 3)
obj.method(1, 2, 3)
`
	files := []*SourceFile{loadSource(t, "test.py", source)}
	findings := NewParametersPass().Run(context.Background(), files)
	if len(findings) != 0 {
		t.Errorf("Expected no findings for unknown or qualified callees, got %v", findings)
	}
}

func TestParametersPassLineNumbers(t *testing.T) {
	source := `def f(a, b):
    pass

f(1)
`
	files := []*SourceFile{loadSource(t, "test.py", source)}
	findings := NewParametersPass().Run(context.Background(), files)
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	if findings[0].Line != 4 {
		t.Errorf("Expected finding on line 4, got %d", findings[0].Line)
	}
}
