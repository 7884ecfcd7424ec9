// Package config loads and validates the service configuration. Values are
// layered: optional yaml file, then WORTSCHATZ_* environment variables
// (double underscore separates nesting levels, e.g. WORTSCHATZ_JWT__SECRET),
// then command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	flag "github.com/spf13/pflag"
)

const envPrefix = "WORTSCHATZ_"

// Config holds every tunable of the service.
type Config struct {
	Addr   string `koanf:"addr" validate:"required"`
	DBPath string `koanf:"db" validate:"required"`

	Deck  DeckConfig  `koanf:"deck"`
	Forvo ForvoConfig `koanf:"forvo"`
	JWT   JWTConfig   `koanf:"jwt"`
}

// DeckConfig points at the deck container: either a local .apkg path or a
// git repository that holds one.
type DeckConfig struct {
	Path     string `koanf:"path"`
	GitURL   string `koanf:"git_url"`
	CloneDir string `koanf:"clone_dir" validate:"required"`
}

// ForvoConfig configures the pronunciation lookup. An empty APIKey disables
// enrichment entirely.
type ForvoConfig struct {
	BaseURL     string        `koanf:"base_url" validate:"required,url"`
	APIKey      string        `koanf:"api_key"`
	Timeout     time.Duration `koanf:"timeout" validate:"required"`
	Concurrency int           `koanf:"concurrency" validate:"min=1"`
}

// JWTConfig configures auth-token signing.
type JWTConfig struct {
	Secret string        `koanf:"secret" validate:"required"`
	TTL    time.Duration `koanf:"ttl" validate:"required"`
}

// Load builds the configuration from the optional yaml file, the environment
// and the given command-line arguments.
func Load(args []string) (Config, error) {
	f := flag.NewFlagSet("wortschatz", flag.ContinueOnError)
	f.String("config", "", "Path to a yaml config file")
	f.String("addr", ":8080", "HTTP listen address")
	f.String("db", "wortschatz.db", "Path to the application sqlite database")
	f.String("deck.path", "", "Path to an .apkg deck container")
	f.String("deck.git_url", "", "Git repository holding an .apkg deck container")
	f.String("deck.clone_dir", "decks", "Directory deck repositories are cloned into")
	f.String("forvo.base_url", "https://apifree.forvo.com", "Forvo API base URL")
	f.String("forvo.api_key", "", "Forvo API key (empty disables audio enrichment)")
	f.Duration("forvo.timeout", 5*time.Second, "Per-word pronunciation lookup timeout")
	f.Int("forvo.concurrency", 4, "Concurrent pronunciation lookups per batch")
	f.String("jwt.secret", "", "Secret used to sign auth tokens")
	f.Duration("jwt.ttl", time.Hour, "Auth token lifetime")
	if err := f.Parse(args); err != nil {
		return Config{}, err
	}

	k := koanf.New(".")

	if path, _ := f.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load environment config: %w", err)
	}

	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load flag config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Deck.Path == "" && c.Deck.GitURL == "" {
		return errors.New("config: one of deck.path or deck.git_url is required")
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
