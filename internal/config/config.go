package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	League   LeagueConfig   `mapstructure:"league"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat string `mapstructure:"date_format"`
	Timezone   string `mapstructure:"timezone"`
}

// LeagueConfig holds the competition rules the table is computed under.
type LeagueConfig struct {
	PointsWin       int `mapstructure:"points_win"`
	PointsDraw      int `mapstructure:"points_draw"`
	PromotionSpots  int `mapstructure:"promotion_spots"`
	RelegationSpots int `mapstructure:"relegation_spots"`
}

// Load reads configuration from file and env. Env var overrides use prefix LADDER_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "ladder", "ladder.db"))
	v.SetDefault("ui.date_format", "02/01")
	v.SetDefault("ui.timezone", "Europe/London")
	v.SetDefault("league.points_win", 3)
	v.SetDefault("league.points_draw", 1)
	v.SetDefault("league.promotion_spots", 4)
	v.SetDefault("league.relegation_spots", 3)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("LADDER_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "ladder"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LADDER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed.
func Save(cfg Config) error {
	path := os.Getenv("LADDER_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "ladder", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("league.points_win", cfg.League.PointsWin)
	v.Set("league.points_draw", cfg.League.PointsDraw)
	v.Set("league.promotion_spots", cfg.League.PromotionSpots)
	v.Set("league.relegation_spots", cfg.League.RelegationSpots)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
