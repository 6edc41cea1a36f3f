package config

import (
	"math"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Gamma <= 1 {
		t.Error("gamma should exceed 1")
	}
	if cfg.Resolutions.High != 2*cfg.Resolutions.Low {
		t.Errorf("expected 2x refinement, got %d/%d", cfg.Resolutions.Low, cfg.Resolutions.High)
	}
	if len(cfg.Waves) != 5 {
		t.Errorf("expected all 5 wave families, got %v", cfg.Waves)
	}
	// Fixed background rho=1, pgas=1/gamma puts the sound speed at 1.
	cs, err := cfg.Equilibrium().SoundSpeed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(cs-1.0) > 1e-12 {
		t.Errorf("expected unit sound speed, got %f", cs)
	}
}

func TestValidateRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative density", func(c *Config) { c.Rho = -1 }},
		{"zero pressure", func(c *Config) { c.Pgas = 0 }},
		{"gamma at 1", func(c *Config) { c.Gamma = 1 }},
		{"zero amplitude", func(c *Config) { c.Amplitude = 0 }},
		{"negative cutoff", func(c *Config) { c.Cutoff = -0.5 }},
		{"inverted resolutions", func(c *Config) { c.Resolutions = ResolutionConfig{Low: 128, High: 64} }},
		{"non-block resolution", func(c *Config) { c.Resolutions.Low = 63 }},
		{"no waves", func(c *Config) { c.Waves = nil }},
		{"wave flag out of range", func(c *Config) { c.Waves = []int{0, 5} }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavecheck.yaml")

	cfg := DefaultConfig()
	cfg.Cutoff = 1.9
	cfg.Waves = []int{0, 4}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Cutoff != 1.9 {
		t.Errorf("expected cutoff 1.9, got %f", loaded.Cutoff)
	}
	if len(loaded.Waves) != 2 {
		t.Errorf("expected 2 waves, got %v", loaded.Waves)
	}
	if loaded.Gamma != cfg.Gamma {
		t.Errorf("expected gamma %f, got %f", cfg.Gamma, loaded.Gamma)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("quick")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Resolutions.Low != 16 {
		t.Errorf("expected low resolution 16, got %d", cfg.Resolutions.Low)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("quick preset should validate: %v", err)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 3 {
		t.Errorf("expected 3 presets, got %v", presets)
	}
}

func TestWaveFamilies(t *testing.T) {
	cfg := DefaultConfig()
	waves := cfg.WaveFamilies()
	if len(waves) != 5 {
		t.Fatalf("expected 5 families, got %d", len(waves))
	}
	for i, w := range waves {
		if int(w) != i {
			t.Errorf("expected family %d at index %d, got %d", i, i, int(w))
		}
	}
}
