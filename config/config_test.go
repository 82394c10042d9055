package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Screen.Width != 1280 || cfg.Screen.Height != 720 {
		t.Errorf("screen = %dx%d, want 1280x720", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Carriers.Count != 1000 {
		t.Errorf("carriers.count = %d, want 1000", cfg.Carriers.Count)
	}
	if cfg.Battery.DrainRate != 5 {
		t.Errorf("battery.drain_rate = %v, want 5", cfg.Battery.DrainRate)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// 720x420 board, margin 30: midline 660x360, perimeter 2040.
	if cfg.Derived.Perimeter != 2040 {
		t.Errorf("perimeter = %v, want 2040", cfg.Derived.Perimeter)
	}
	if cfg.Derived.BoardX != 280 || cfg.Derived.BoardY != 150 {
		t.Errorf("board origin = (%v, %v), want (280, 150)", cfg.Derived.BoardX, cfg.Derived.BoardY)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
carriers:
  count: 50
battery:
  drain_rate: 2.5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Carriers.Count != 50 {
		t.Errorf("carriers.count = %d, want 50", cfg.Carriers.Count)
	}
	if cfg.Battery.DrainRate != 2.5 {
		t.Errorf("battery.drain_rate = %v, want 2.5", cfg.Battery.DrainRate)
	}
	// Untouched fields keep their defaults.
	if cfg.Carriers.Speed != 20 {
		t.Errorf("carriers.speed = %v, want default 20", cfg.Carriers.Speed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative drain rate", "battery:\n  drain_rate: -1\n"},
		{"zero drain rate", "battery:\n  drain_rate: 0\n"},
		{"zero carrier count", "carriers:\n  count: 0\n"},
		{"negative speed", "carriers:\n  speed: -20\n"},
		{"spawn chance above one", "chemistry:\n  spawn_chance: 1.5\n"},
		{"zero spawn chance", "chemistry:\n  spawn_chance: 0\n"},
		{"inverted vibration periods", "carriers:\n  vibration_period_min: 2.0\n  vibration_period_max: 1.0\n"},
		{"margin swallows board", "board:\n  margin: 400\n"},
		{"board larger than screen", "board:\n  width: 5000\n"},
		{"zero fps", "screen:\n  target_fps: 0\n"},
		{"nan epsilon", "chemistry:\n  arrival_epsilon: .nan\n"},
		{"inf marker spacing", "field:\n  marker_spacing: .inf\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.yaml)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Carriers.Count = 123

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if loaded.Carriers.Count != 123 {
		t.Errorf("carriers.count = %d, want 123", loaded.Carriers.Count)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}
