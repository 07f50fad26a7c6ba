package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Processing.Workers != runtime.NumCPU() {
		t.Errorf("default workers = %d, want %d", cfg.Processing.Workers, runtime.NumCPU())
	}
	if cfg.Aggregation.Mode != "mean" {
		t.Errorf("default mode = %q, want mean", cfg.Aggregation.Mode)
	}
	if cfg.Aggregation.Preset != 0 || cfg.Aggregation.Discard != 0 {
		t.Errorf("default preset/discard = %d/%d, want 0/0",
			cfg.Aggregation.Preset, cfg.Aggregation.Discard)
	}
	if cfg.Output.Kind != "" {
		t.Errorf("default output kind = %q, want empty", cfg.Output.Kind)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig on missing file: %v", err)
	}
	if cfg.Aggregation.Mode != "mean" {
		t.Errorf("missing file should yield defaults, got mode %q", cfg.Aggregation.Mode)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "framestack.yaml")

	cfg := DefaultConfig()
	cfg.Processing.Workers = 3
	cfg.Aggregation.Mode = "median"
	cfg.Aggregation.Discard = 0
	cfg.Output.Kind = "u16"
	cfg.Output.Verbose = false

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Processing.Workers != 3 ||
		loaded.Aggregation.Mode != "median" ||
		loaded.Output.Kind != "u16" ||
		loaded.Output.Verbose {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadExplicitWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framestack.yaml")
	data := "aggregation:\n  mode: mean\n  weights: [2.0, 1.5, 1.0]\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := []float64{2.0, 1.5, 1.0}
	if len(cfg.Aggregation.Weights) != 3 {
		t.Fatalf("weights = %v, want %v", cfg.Aggregation.Weights, want)
	}
	for i, w := range want {
		if cfg.Aggregation.Weights[i] != w {
			t.Errorf("weights[%d] = %v, want %v", i, cfg.Aggregation.Weights[i], w)
		}
	}
}

func TestSaveLoadWeightsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framestack.yaml")
	cfg := DefaultConfig()
	cfg.Aggregation.Weights = []float64{1.82, 1.30, 1.00}

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(loaded.Aggregation.Weights) != 3 ||
		loaded.Aggregation.Weights[0] != 1.82 ||
		loaded.Aggregation.Weights[1] != 1.30 ||
		loaded.Aggregation.Weights[2] != 1.00 {
		t.Errorf("weights round trip = %v", loaded.Aggregation.Weights)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("processing: ["), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed YAML accepted")
	}
}
