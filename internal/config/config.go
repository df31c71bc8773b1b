package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// GameConfig holds server tunables. File keys come first, runtime env overrides them.
type GameConfig struct {
	// MaxGames caps live games; creating one more evicts the stalest.
	MaxGames int `toml:"max_games" env:"VIRUS_MAX_GAMES"`
	// IdleTTL drops games nobody touched for that long.
	IdleTTL       time.Duration `toml:"idle_ttl" env:"VIRUS_IDLE_TTL"`
	SweepInterval time.Duration `toml:"sweep_interval" env:"VIRUS_SWEEP_INTERVAL"`
	MaxPlayers    int           `toml:"max_players" env:"VIRUS_MAX_PLAYERS"`
	NotifyTurns   bool          `toml:"notify_turns" env:"VIRUS_NOTIFY_TURNS"`
	Analytics     bool          `toml:"analytics" env:"VIRUS_ANALYTICS"`
	// OTelEndpoint is the OTLP/HTTP collector URL for RPC spans. Empty disables tracing.
	OTelEndpoint string `toml:"otel_endpoint" env:"VIRUS_OTEL_ENDPOINT"`
}

// Default returns the configuration used when nothing is configured.
func Default() GameConfig {
	return GameConfig{
		MaxGames:      100,
		IdleTTL:       time.Hour,
		SweepInterval: time.Minute,
		MaxPlayers:    6,
		NotifyTurns:   true,
		Analytics:     true,
	}
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration once. An empty path keeps the
// defaults; environ, usually the runtime env map, overrides file values.
func LoadGameConfig(path string, environ map[string]string) error {
	loadOnce.Do(func() {
		c := Default()
		if path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				loadErr = fmt.Errorf("failed to read game config: %w", err)
				return
			}
			if c, err = Parse(data); err != nil {
				loadErr = err
				return
			}
		}
		if err := ApplyEnv(&c, environ); err != nil {
			loadErr = err
			return
		}
		if err := c.Validate(); err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or the defaults before loading.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		d := Default()
		return &d
	}
	return cfg
}

// Parse decodes a TOML document on top of the defaults. Unknown keys are an error.
func Parse(data []byte) (GameConfig, error) {
	c := Default()
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return GameConfig{}, fmt.Errorf("failed to decode game config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return GameConfig{}, fmt.Errorf("unknown game config keys: %s", strings.Join(keys, ", "))
	}
	return c, nil
}

// ApplyEnv overrides c with the VIRUS_* variables found in environ.
func ApplyEnv(c *GameConfig, environ map[string]string) error {
	if len(environ) == 0 {
		return nil
	}
	if err := env.ParseWithOptions(c, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("failed to apply game config env: %w", err)
	}
	return nil
}

// Validate rejects values that would make the registry or tables unusable.
func (c GameConfig) Validate() error {
	switch {
	case c.MaxGames < 0:
		return fmt.Errorf("max_games must not be negative, got %d", c.MaxGames)
	case c.IdleTTL < 0:
		return fmt.Errorf("idle_ttl must not be negative, got %s", c.IdleTTL)
	case c.SweepInterval < 0:
		return fmt.Errorf("sweep_interval must not be negative, got %s", c.SweepInterval)
	case c.MaxPlayers < 0:
		return fmt.Errorf("max_players must not be negative, got %d", c.MaxPlayers)
	}
	return nil
}
