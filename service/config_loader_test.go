package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pyvet/pyvet/domain"
)

func TestLoadDefaultConfig(t *testing.T) {
	loader := NewConfigurationLoader()

	req := loader.LoadDefaultConfig()
	if req == nil {
		t.Fatal("LoadDefaultConfig returned nil")
	}

	if req.AnalysisType != domain.AnalysisTypeComprehensive {
		t.Errorf("Expected %v, got %v", domain.AnalysisTypeComprehensive, req.AnalysisType)
	}

	if req.OutputFormat == "" {
		t.Error("expected default output format to be set")
	}

	if len(req.OptionalDependencies) == 0 {
		t.Error("expected default optional dependencies to be set")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyvet.yaml")
	content := `
imports:
  optional_dependencies:
    - requests
output:
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewConfigurationLoader()
	req, err := loader.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if req.OutputFormat != domain.OutputFormatJSON {
		t.Errorf("Expected %v, got %v", domain.OutputFormatJSON, req.OutputFormat)
	}

	found := false
	for _, dep := range req.OptionalDependencies {
		if dep == "requests" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected optional dependencies to include requests, got %v", req.OptionalDependencies)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	loader := NewConfigurationLoader()

	_, err := loader.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestMergeConfig(t *testing.T) {
	loader := NewConfigurationLoader()

	base := &domain.CodeAnalysisRequest{
		Root:         "/base",
		AnalysisType: domain.AnalysisTypeComprehensive,
		OutputFormat: domain.OutputFormatText,
	}

	override := &domain.CodeAnalysisRequest{
		Root:         "/project",
		Paths:        []string{"/project/main.py"},
		AnalysisType: domain.AnalysisTypeSyntax,
	}

	merged := loader.MergeConfig(base, override)

	if merged.Root != "/project" {
		t.Errorf("Expected %v, got %v", "/project", merged.Root)
	}
	if merged.AnalysisType != domain.AnalysisTypeSyntax {
		t.Errorf("Expected %v, got %v", domain.AnalysisTypeSyntax, merged.AnalysisType)
	}
	if len(merged.Paths) != 1 {
		t.Errorf("Expected %v paths, got %v", 1, len(merged.Paths))
	}

	// Base values survive when override leaves them empty
	if merged.OutputFormat != domain.OutputFormatText {
		t.Errorf("Expected %v, got %v", domain.OutputFormatText, merged.OutputFormat)
	}
}

func TestMergeConfigEmptyOverride(t *testing.T) {
	loader := NewConfigurationLoader()

	base := &domain.CodeAnalysisRequest{
		Root:                 "/base",
		AnalysisType:         domain.AnalysisTypeComprehensive,
		OutputFormat:         domain.OutputFormatJSON,
		OptionalDependencies: []string{"pandas"},
	}

	merged := loader.MergeConfig(base, &domain.CodeAnalysisRequest{})

	if merged.Root != base.Root {
		t.Errorf("Expected %v, got %v", base.Root, merged.Root)
	}
	if merged.OutputFormat != base.OutputFormat {
		t.Errorf("Expected %v, got %v", base.OutputFormat, merged.OutputFormat)
	}
	if len(merged.OptionalDependencies) != 1 {
		t.Errorf("Expected %v, got %v", 1, len(merged.OptionalDependencies))
	}
}

func TestValidateConfig(t *testing.T) {
	loader := NewConfigurationLoader()

	tests := []struct {
		name    string
		req     domain.CodeAnalysisRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req: domain.CodeAnalysisRequest{
				AnalysisType: domain.AnalysisTypeComprehensive,
				OutputFormat: domain.OutputFormatText,
			},
			wantErr: false,
		},
		{
			name:    "empty request",
			req:     domain.CodeAnalysisRequest{},
			wantErr: false,
		},
		{
			name: "invalid analysis type",
			req: domain.CodeAnalysisRequest{
				AnalysisType: "security",
			},
			wantErr: true,
		},
		{
			name: "invalid output format",
			req: domain.CodeAnalysisRequest{
				OutputFormat: "xml",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := loader.ValidateConfig(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
