package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadEnvOverrides(t *testing.T) {
	t.Setenv(EnvSeed, "1234")
	t.Setenv(EnvWindowScale, "4")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvVerbose, "")

	o, err := ReadEnvOverrides()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Seed != 1234 || o.WindowScale != 4 || !o.Debug || o.Verbose {
		t.Errorf("unexpected overrides: %+v", o)
	}

	cfg := DefaultSimulatorConfig()
	o.Apply(cfg)
	if cfg.Display.WindowScale != 4 {
		t.Errorf("expected windowScale = 4, got %d", cfg.Display.WindowScale)
	}
}

func TestReadEnvOverridesInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "seed not a number", key: EnvSeed, value: "abc"},
		{name: "zero scale", key: EnvWindowScale, value: "0"},
		{name: "bad bool", key: EnvDebug, value: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := ReadEnvOverrides(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("MONMON_SEED=77\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvSeed, "")
	os.Unsetenv(EnvSeed)

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv(EnvSeed); got != "77" {
		t.Errorf("expected MONMON_SEED=77, got %q", got)
	}

	// 缺失的文件静默跳过
	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}
