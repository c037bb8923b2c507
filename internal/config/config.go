package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tatianab/swim-idle/internal/engine"
)

// DefaultPath is used when SWIM_CONFIG is not set. A missing file at the
// default path is not an error.
const DefaultPath = "config/game.toml"

// Config holds the application configuration.
type Config struct {
	Names   NamesConfig   `toml:"names"`
	Timing  TimingConfig  `toml:"timing"`
	Economy EconomyConfig `toml:"economy"`
	UI      UIConfig      `toml:"ui"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
}

type NamesConfig struct {
	File string `toml:"file"`
}

type TimingConfig struct {
	Tick         time.Duration `toml:"tick"`
	Render       time.Duration `toml:"render"`
	Poll         time.Duration `toml:"poll"`
	Idle         time.Duration `toml:"idle"`
	MessagePause time.Duration `toml:"message_pause"`
}

type EconomyConfig struct {
	StartingSpeed      float64 `toml:"starting_speed"`
	RecruitSpeed       float64 `toml:"recruit_speed"`
	RecruitUpgradeCost int     `toml:"recruit_upgrade_cost"`
	NewSwimmerCost     int     `toml:"new_swimmer_cost"`
	NewSwimmerGrowth   float64 `toml:"new_swimmer_growth"`
}

type UIConfig struct {
	Backend   string `toml:"backend"` // "tui" or "tcell"
	AltScreen bool   `toml:"alt_screen"`
}

type AudioConfig struct {
	Enabled bool `toml:"enabled"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty disables logging
}

// LoadConfig loads the file named by SWIM_CONFIG, or DefaultPath.
func LoadConfig() (*Config, error) {
	if path := os.Getenv("SWIM_CONFIG"); path != "" {
		return Load(path)
	}
	cfg, err := Load(DefaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return defaults(), nil
	}
	return cfg, err
}

// Load reads the TOML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Names.File == "" {
		return errors.New("names.file is required")
	}
	if err := c.EngineTiming().Validate(); err != nil {
		return fmt.Errorf("timing: %w", err)
	}
	if err := c.EngineEconomy().Validate(); err != nil {
		return fmt.Errorf("economy: %w", err)
	}
	switch c.UI.Backend {
	case "tui", "tcell":
	default:
		return fmt.Errorf("ui.backend must be \"tui\" or \"tcell\", got %q", c.UI.Backend)
	}
	return nil
}

func (c *Config) EngineTiming() engine.Timing {
	return engine.Timing{
		Tick:         c.Timing.Tick,
		Render:       c.Timing.Render,
		Poll:         c.Timing.Poll,
		Idle:         c.Timing.Idle,
		MessagePause: c.Timing.MessagePause,
	}
}

func (c *Config) EngineEconomy() engine.Economy {
	return engine.Economy{
		StartingSpeed:      c.Economy.StartingSpeed,
		RecruitSpeed:       c.Economy.RecruitSpeed,
		RecruitUpgradeCost: c.Economy.RecruitUpgradeCost,
		NewSwimmerCost:     c.Economy.NewSwimmerCost,
		NewSwimmerGrowth:   c.Economy.NewSwimmerGrowth,
	}
}

func defaults() *Config {
	timing := engine.DefaultTiming()
	economy := engine.DefaultEconomy()
	return &Config{
		Names: NamesConfig{
			File: "data/swimmer_names.yaml",
		},
		Timing: TimingConfig{
			Tick:         timing.Tick,
			Render:       timing.Render,
			Poll:         timing.Poll,
			Idle:         timing.Idle,
			MessagePause: timing.MessagePause,
		},
		Economy: EconomyConfig{
			StartingSpeed:      economy.StartingSpeed,
			RecruitSpeed:       economy.RecruitSpeed,
			RecruitUpgradeCost: economy.RecruitUpgradeCost,
			NewSwimmerCost:     economy.NewSwimmerCost,
			NewSwimmerGrowth:   economy.NewSwimmerGrowth,
		},
		UI: UIConfig{
			Backend:   "tui",
			AltScreen: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
