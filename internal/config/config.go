// Package config loads runner settings from a JSON file via viper,
// with defaults for every key so a missing file still yields a working
// configuration.
package config

import (
	"errors"

	"github.com/spf13/viper"
)

// RunnerConfig is the simulate binary's settings surface.
type RunnerConfig struct {
	LogLevel     string `json:"logLevel" mapstructure:"logLevel"`
	Seed         int64  `json:"seed" mapstructure:"seed"`
	MaxTurns     int    `json:"maxTurns" mapstructure:"maxTurns"`
	ScenarioPath string `json:"scenarioPath" mapstructure:"scenarioPath"`

	Replay ReplayConfig `json:"replay" mapstructure:"replay"`
}

// ReplayConfig controls episode recording.
type ReplayConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// Load reads gridcombat.cfg.json from configDir and returns the merged
// configuration. A missing config file is not an error; defaults apply.
func Load(configDir string) (*RunnerConfig, error) {
	v := viper.New()

	v.SetDefault("logLevel", "info")
	v.SetDefault("seed", int64(42))
	v.SetDefault("maxTurns", 0)
	v.SetDefault("scenarioPath", "")

	v.SetDefault("replay.enabled", false)
	v.SetDefault("replay.path", "./replays.db")

	v.SetConfigName("gridcombat.cfg.json")
	v.AddConfigPath(configDir)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg RunnerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
