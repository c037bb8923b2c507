package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[timing]
tick = "50ms"
message_pause = "1s"

[economy]
new_swimmer_cost = 40

[ui]
backend = "tcell"

[logging]
level = "debug"
file = "swim.log"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Timing.Tick != 50*time.Millisecond {
		t.Errorf("Expected tick 50ms, got %v", cfg.Timing.Tick)
	}
	if cfg.Timing.MessagePause != time.Second {
		t.Errorf("Expected pause 1s, got %v", cfg.Timing.MessagePause)
	}
	if cfg.Timing.Render != 100*time.Millisecond {
		t.Errorf("Expected default render 100ms, got %v", cfg.Timing.Render)
	}
	if cfg.Economy.NewSwimmerCost != 40 || cfg.Economy.NewSwimmerGrowth != 1.5 {
		t.Errorf("Expected cost 40 and growth 1.5, got %d and %v", cfg.Economy.NewSwimmerCost, cfg.Economy.NewSwimmerGrowth)
	}
	if cfg.UI.Backend != "tcell" {
		t.Errorf("Expected tcell backend, got %s", cfg.UI.Backend)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.File != "swim.log" {
		t.Errorf("Expected debug logging to swim.log, got %+v", cfg.Logging)
	}
	if cfg.Names.File != "data/swimmer_names.yaml" {
		t.Errorf("Expected default names file, got %s", cfg.Names.File)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"backend": "[ui]\nbackend = \"gtk\"\n",
		"timing":  "[timing]\ntick = \"0s\"\n",
		"economy": "[economy]\nnew_swimmer_cost = 0\n",
		"syntax":  "[timing\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: Expected error", name)
		}
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	path := writeConfig(t, "[audio]\nenabled = true\n")
	t.Setenv("SWIM_CONFIG", path)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.Audio.Enabled {
		t.Error("Expected audio enabled")
	}
}

func TestLoadConfigMissingEnvFile(t *testing.T) {
	t.Setenv("SWIM_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))

	_, err := LoadConfig()
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Errorf("Expected read error, got %v", err)
	}
}

func TestLoadConfigWithoutDefaultFile(t *testing.T) {
	t.Setenv("SWIM_CONFIG", "")
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected defaults, got %v", err)
	}
	if cfg.EngineEconomy().NewSwimmerCost != 25 {
		t.Errorf("Expected cost 25, got %d", cfg.EngineEconomy().NewSwimmerCost)
	}
	if cfg.EngineTiming().Tick != 33*time.Millisecond {
		t.Errorf("Expected tick 33ms, got %v", cfg.EngineTiming().Tick)
	}
}
