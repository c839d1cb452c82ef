package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ValidScorerNames lists the sentiment providers shipped with Haven. Used by
// [Validate] to warn about unrecognised provider names; third-party providers
// registered at runtime are still allowed.
var ValidScorerNames = []string{"vader", "lexicon"}

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader] and [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Server
	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if tls := cfg.Server.TLS; tls != nil {
		if tls.CertFile == "" {
			errs = append(errs, errors.New("server.tls.cert_file is required when tls is set"))
		}
		if tls.KeyFile == "" {
			errs = append(errs, errors.New("server.tls.key_file is required when tls is set"))
		}
	}

	// History
	if cfg.History.Window < 0 {
		errs = append(errs, fmt.Errorf("history.window %d must not be negative", cfg.History.Window))
	}
	if cfg.History.PostgresDSN == "" {
		slog.Warn("history.postgres_dsn is empty; conversation history will not survive restarts")
	}

	// Sentiment — warn for unknown names, error is deferred to registry lookup
	// so runtime-registered providers keep working.
	if name := cfg.Sentiment.Provider; name != "" && !slices.Contains(ValidScorerNames, name) {
		slog.Warn("unknown sentiment provider name — may be a typo or third-party provider",
			"name", name,
			"known", ValidScorerNames,
		)
	}

	// Engine
	if mm := cfg.Engine.KeywordMatch; mm != "" && !mm.IsValid() {
		errs = append(errs, fmt.Errorf("engine.keyword_match %q is invalid; valid values: substring, token, phonetic", mm))
	}

	// Discord
	if cfg.Discord.Token == "" && cfg.Discord.GuildID != "" {
		slog.Warn("discord.guild_id is set but discord.token is empty; the Discord bot will not start")
	}

	return errors.Join(errs...)
}
