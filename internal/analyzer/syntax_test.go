package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/pyvet/pyvet/domain"
)

func TestSyntaxPassValidFile(t *testing.T) {
	files := []*SourceFile{
		loadSource(t, "ok.py", "def f(a, b):\n    return a + b\n"),
	}

	findings := NewSyntaxPass().Run(context.Background(), files)
	if len(findings) != 0 {
		t.Errorf("Expected no findings for valid file, got %v", findings)
	}
}

func TestSyntaxPassMalformedFile(t *testing.T) {
	files := []*SourceFile{
		loadSource(t, "broken.py", "def f(:\n    pass\n"),
	}

	findings := NewSyntaxPass().Run(context.Background(), files)
	if len(findings) != 1 {
		t.Fatalf("Expected exactly 1 finding, got %d", len(findings))
	}

	f := findings[0]
	if f.Severity != domain.SeverityError {
		t.Errorf("Expected Error severity, got %s", f.Severity)
	}
	if f.FilePath != "broken.py" {
		t.Errorf("Expected file path 'broken.py', got %q", f.FilePath)
	}
	if f.Line < 1 {
		t.Errorf("Expected a line number, got %d", f.Line)
	}
}

func TestSyntaxPassUndecodableFile(t *testing.T) {
	files := []*SourceFile{
		{Path: "bad.py", LoadErr: errors.New("source is not valid UTF-8")},
	}

	findings := NewSyntaxPass().Run(context.Background(), files)
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	if findings[0].Severity != domain.SeverityWarning {
		t.Errorf("Expected Warning for decode failure, got %s", findings[0].Severity)
	}
}

func TestSyntaxPassIsolatesFiles(t *testing.T) {
	files := []*SourceFile{
		loadSource(t, "broken.py", "def f(:\n"),
		loadSource(t, "ok.py", "x = 1\n"),
	}

	findings := NewSyntaxPass().Run(context.Background(), files)
	errCount, _ := countBySeverity(findings)
	if errCount != 1 {
		t.Errorf("Expected 1 error, got %d", errCount)
	}
	for _, f := range findings {
		if f.FilePath == "ok.py" {
			t.Errorf("Unexpected finding for valid file: %v", f)
		}
	}
}
