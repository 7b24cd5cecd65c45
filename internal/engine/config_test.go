package engine

import (
	"os"
	"testing"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.DisplayWidth != 35 || cfg.DisplayHeight != 22 {
		t.Errorf("display = %dx%d, want 35x22", cfg.DisplayWidth, cfg.DisplayHeight)
	}
	if cfg.VisionRadius != 8 || cfg.StartLevel != "overworld" || !cfg.StartRevealed {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Seed == 0 {
		t.Error("seed was not generated")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("RS_SEED", "1234")
	t.Setenv("RS_DISPLAY_WIDTH", "50")
	t.Setenv("RS_START_LEVEL", "cave-1")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Seed != 1234 || cfg.DisplayWidth != 50 || cfg.StartLevel != "cave-1" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfig_Seed(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		set      bool
		want     int64
		wantRand bool
	}{
		{"explicit zero", "0", true, 0, false},
		{"explicit negative", "-7", true, -7, false},
		{"empty is random", "", true, 0, true},
		{"unset is random", "", false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// t.Setenv восстановит исходное значение после теста
			t.Setenv(seedEnv, tt.value)
			if !tt.set {
				os.Unsetenv(seedEnv)
			}

			cfg, err := LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if tt.wantRand {
				if cfg.Seed == 0 {
					t.Error("random seed was not generated")
				}
				return
			}
			if cfg.Seed != tt.want {
				t.Errorf("Seed = %d, want %d", cfg.Seed, tt.want)
			}
		})
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("RS_DISPLAY_HEIGHT", "not-a-number")
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() error = nil for bad RS_DISPLAY_HEIGHT")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.DisplayWidth = 0 }},
		{"negative height", func(c *Config) { c.DisplayHeight = -1 }},
		{"negative radius", func(c *Config) { c.VisionRadius = -2 }},
		{"no start level", func(c *Config) { c.StartLevel = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() error = nil")
			}
		})
	}
}
