package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/minipl/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{5 * time.Minute}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "5m0s" {
		t.Errorf("MarshalText() = %v, want 5m0s", string(result))
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.Name != "minipl" {
		t.Errorf("General.Name = %v, want minipl", cfg.General.Name)
	}
	if cfg.General.LogOutput != "stderr" {
		t.Errorf("General.LogOutput = %v, want stderr", cfg.General.LogOutput)
	}
	if cfg.Interpreter.MaxIterations != 0 {
		t.Errorf("Interpreter.MaxIterations = %v, want 0", cfg.Interpreter.MaxIterations)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled should default to false")
	}
	if cfg.Playground.Port != 8470 {
		t.Errorf("Playground.Port = %v, want 8470", cfg.Playground.Port)
	}
	if cfg.Playground.MaxSourceBytes != 64*1024 {
		t.Errorf("Playground.MaxSourceBytes = %v, want %v", cfg.Playground.MaxSourceBytes, 64*1024)
	}
	if got := cfg.PlaygroundAddress(); got != "127.0.0.1:8470" {
		t.Errorf("PlaygroundAddress() = %v", got)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minipl.toml")
	content := `
[general]
log_level = "debug"

[interpreter]
max_iterations = 500

[history]
enabled = true
path = "/tmp/runs.db"

[playground]
port = 9000
read_timeout = "45s"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Interpreter.MaxIterations != 500 {
		t.Errorf("MaxIterations = %v, want 500", cfg.Interpreter.MaxIterations)
	}
	if !cfg.History.Enabled || cfg.History.Path != "/tmp/runs.db" {
		t.Errorf("History = %+v", cfg.History)
	}
	if cfg.Playground.Port != 9000 {
		t.Errorf("Port = %v, want 9000", cfg.Playground.Port)
	}
	if cfg.Playground.ReadTimeout.Duration != 45*time.Second {
		t.Errorf("ReadTimeout = %v, want 45s", cfg.Playground.ReadTimeout.Duration)
	}
	// untouched values fall back to defaults
	if cfg.Playground.Host != "127.0.0.1" {
		t.Errorf("Host = %v, want 127.0.0.1", cfg.Playground.Host)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %v, want %v", cfg.Path(), path)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minipl.yaml")
	content := `general:
  log_format: json
playground:
  write_timeout: 3s
  max_source_bytes: 100
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.General.LogFormat != "json" {
		t.Errorf("LogFormat = %v, want json", cfg.General.LogFormat)
	}
	if cfg.Playground.WriteTimeout.Duration != 3*time.Second {
		t.Errorf("WriteTimeout = %v, want 3s", cfg.Playground.WriteTimeout.Duration)
	}
	if cfg.Playground.MaxSourceBytes != 100 {
		t.Errorf("MaxSourceBytes = %v, want 100", cfg.Playground.MaxSourceBytes)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !mdwerror.HasCode(err, mdwerror.CodeConfigError) {
		t.Errorf("missing file error = %v, want CONFIG_ERROR", err)
	}

	_, err = Parse([]byte("[general\nname ="), FormatTOML)
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
		t.Errorf("parse error = %v, want INVALID_CONFIG", err)
	}

	_, err = Parse([]byte("[interpreter]\nmax_iterations = -1\n"), FormatTOML)
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
		t.Errorf("validation error = %v, want INVALID_CONFIG", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MINIPL_GENERAL_LOG_LEVEL", "trace")
	t.Setenv("MINIPL_HISTORY_ENABLED", "true")
	t.Setenv("MINIPL_PLAYGROUND_PORT", "9999")

	cfg, err := Parse([]byte(""), FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.General.LogLevel != "trace" {
		t.Errorf("LogLevel = %v, want trace", cfg.General.LogLevel)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}
	if cfg.Playground.Port != 9999 {
		t.Errorf("Port = %v, want 9999", cfg.Playground.Port)
	}

	t.Setenv("MINIPL_PLAYGROUND_PORT", "not-a-port")
	if _, err := Parse([]byte(""), FormatTOML); err == nil {
		t.Error("Parse() accepted an invalid port override")
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[general]\nname = \"custom\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "custom" {
		t.Errorf("Name = %v, want custom", cfg.General.Name)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"a.toml": FormatTOML,
		"a.yaml": FormatYAML,
		"a.YML":  FormatYAML,
		"a.conf": FormatTOML,
	}
	for path, want := range tests {
		if got := DetectFormat(path); got != want {
			t.Errorf("DetectFormat(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestEnvKey(t *testing.T) {
	if got := EnvKey("history.path"); got != "MINIPL_HISTORY_PATH" {
		t.Errorf("EnvKey() = %v", got)
	}
}
