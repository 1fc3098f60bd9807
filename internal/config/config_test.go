package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Default()

	if cfg.Scan.MarkerFile != "initial.traj" {
		t.Errorf("MarkerFile = %q, want initial.traj", cfg.Scan.MarkerFile)
	}
	if cfg.Scan.LogFile != "log.txt" {
		t.Errorf("LogFile = %q, want log.txt", cfg.Scan.LogFile)
	}
	if cfg.Scan.ResultsFile != "results.traj" {
		t.Errorf("ResultsFile = %q, want results.traj", cfg.Scan.ResultsFile)
	}
	if cfg.Scan.LinesChecked != 20 {
		t.Errorf("LinesChecked = %d, want 20", cfg.Scan.LinesChecked)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Output.Format)
	}
	if !cfg.Output.WithStatus {
		t.Error("WithStatus should default to true")
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
[scan]
marker_file = "start.traj"
lines_checked = 50

[output]
format = "csv"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Scan.MarkerFile != "start.traj" {
		t.Errorf("MarkerFile = %q, want start.traj", cfg.Scan.MarkerFile)
	}
	if cfg.Scan.LinesChecked != 50 {
		t.Errorf("LinesChecked = %d, want 50", cfg.Scan.LinesChecked)
	}
	// Untouched sections keep their defaults
	if cfg.Scan.LogFile != "log.txt" {
		t.Errorf("LogFile = %q, want log.txt", cfg.Scan.LogFile)
	}
	if cfg.Output.Format != "csv" {
		t.Errorf("Format = %q, want csv", cfg.Output.Format)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() on missing file should fall back to defaults, got %v", err)
	}
	if cfg.Scan.MarkerFile != "initial.traj" {
		t.Errorf("MarkerFile = %q, want initial.traj", cfg.Scan.MarkerFile)
	}
}

func TestValidate_LinesChecked(t *testing.T) {
	tests := []struct {
		lines   int
		wantErr bool
	}{
		{20, false},
		{1, false},
		{0, true},
		{-3, true},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.Scan.LinesChecked = tt.lines
		err := cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate() with lines_checked=%d error = %v, wantErr %v", tt.lines, err, tt.wantErr)
		}
	}
}

func TestLoad_RejectsBadLinesChecked(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := `
[scan]
lines_checked = 0
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(configPath); err == nil {
		t.Error("Load() should reject lines_checked = 0")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/jobs", filepath.Join(home, "jobs")},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
	}

	for _, tt := range tests {
		got := ExpandPath(tt.input)
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
