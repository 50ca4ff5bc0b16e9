package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gisim/gisim-go/internal/game/rules"
	"github.com/spf13/viper"
)

// Config is the full runtime configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Dispatch  DispatchConfig  `mapstructure:"dispatch"`
	Board     BoardConfig     `mapstructure:"board"`
	Catalogue CatalogueConfig `mapstructure:"catalogue"`
	Journal   JournalConfig   `mapstructure:"journal"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DispatchConfig bounds dispatch runs.
type DispatchConfig struct {
	MaxSteps    int    `mapstructure:"max_steps"`
	FirstPlayer string `mapstructure:"first_player"`
}

// BoardConfig sizes the summon zones.
type BoardConfig struct {
	ZoneCapacity int `mapstructure:"zone_capacity"`
}

// CatalogueConfig points at a summon catalogue. An empty path selects the embedded one.
type CatalogueConfig struct {
	Path string `mapstructure:"path"`
}

// JournalConfig controls journal recording.
type JournalConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
}

// FirstPlayerID parses the configured first player.
func (c DispatchConfig) FirstPlayerID() (rules.PlayerID, error) {
	return rules.ParsePlayerID(c.FirstPlayer)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("dispatch.max_steps", 10000)
	v.SetDefault("dispatch.first_player", "PLAYER1")
	v.SetDefault("board.zone_capacity", 4)
	v.SetDefault("catalogue.path", "")
	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.directory", "journals")
}

// Load reads configuration from path. A missing file is not an error when
// path is empty; defaults and GISIM_* environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GISIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	var errs []error
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}
	if c.Dispatch.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("dispatch.max_steps: must not be negative, got %d", c.Dispatch.MaxSteps))
	}
	if _, err := c.Dispatch.FirstPlayerID(); err != nil {
		errs = append(errs, fmt.Errorf("dispatch.first_player: %w", err))
	}
	if c.Board.ZoneCapacity < 1 {
		errs = append(errs, fmt.Errorf("board.zone_capacity: must be positive, got %d", c.Board.ZoneCapacity))
	}
	return errors.Join(errs...)
}
