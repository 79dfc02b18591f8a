// Package config loads the server's TOML configuration file into a
// single value struct passed explicitly to its collaborators: no
// package-level config variable.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the full configuration surface of a running server: the
// enumerated match-timing values plus the listen address and database
// path a runnable binary needs.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Match    MatchConfig    `toml:"match"`
	Database DatabaseConfig `toml:"database"`
}

type ServerConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

// MatchConfig carries the timing values a match runs on, plus the
// per-user session lease extension.
type MatchConfig struct {
	MatchTimeSeconds    int `toml:"match_time_seconds"`
	TimerSpeedMS        int `toml:"timer_speed_ms"`
	EnemiesSpeedMS      int `toml:"enemies_speed_ms"`
	MatchTimeOutSeconds int `toml:"match_timeout_seconds"`
	SessionLeaseMinutes int `toml:"session_lease_minutes"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// Default returns the configuration this server ships with when no file
// is supplied: a 1000ms clock, a 300s match, and a 900ms default enemy
// tick.
func Default() Config {
	return Config{
		Server: ServerConfig{ListenAddr: ":8080"},
		Match: MatchConfig{
			MatchTimeSeconds:    300,
			TimerSpeedMS:        1000,
			EnemiesSpeedMS:      900,
			MatchTimeOutSeconds: 300,
			SessionLeaseMinutes: 30,
		},
		Database: DatabaseConfig{Path: "badicecream.db"},
	}
}

// Load parses path into a Config, seeded with Default() so a partial
// file only overrides what it names.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %q: %w", path, err)
	}
	return cfg, nil
}
