package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: ADVISOR_SERVER__PORT -> server.port.
const EnvPrefix = "ADVISOR_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ADVISOR_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps ADVISOR_FEATURES__PERSIST_SELECTION to features.persist_selection.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized provider values.
var validProviders = map[ProviderType]bool{
	ProviderProxy:      true,
	ProviderOpenAI:     true,
	ProviderOpenRouter: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !validProviders[c.Provider] {
		return fmt.Errorf("invalid provider %q: must be one of proxy, openai, openrouter", c.Provider)
	}
	if c.Provider == ProviderProxy && c.ProxyURL == "" {
		return fmt.Errorf("proxy_url is required when provider is proxy")
	}

	if c.CatalogPath == "" {
		return fmt.Errorf("catalog_path is required")
	}

	switch c.Features.RoutineVerbosity {
	case "", VerbosityDetailed, VerbosityBrief:
	default:
		return fmt.Errorf("invalid features.routine_verbosity %q: must be detailed or brief", c.Features.RoutineVerbosity)
	}

	g := c.Generation
	if g.ChatMaxTokens < 0 || g.RoutineMaxTokens < 0 {
		return fmt.Errorf("generation max tokens must be non-negative")
	}
	for _, t := range []*float64{g.ChatTemperature, g.RoutineTemperature} {
		if t != nil && (*t < 0 || *t > 2) {
			return fmt.Errorf("generation temperature must be between 0 and 2")
		}
	}

	if c.RateLimitRPM < 0 {
		return fmt.Errorf("rate_limit_rpm must be non-negative")
	}

	if _, err := c.SessionTTLDuration(); err != nil {
		return err
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}

	return nil
}

// SessionTTLDuration parses SessionTTL. An empty value yields zero.
func (c *Config) SessionTTLDuration() (time.Duration, error) {
	if c.SessionTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid session_ttl %q: %w", c.SessionTTL, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("session_ttl must be non-negative")
	}
	return d, nil
}

// DatabasePath is the sqlite file inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "advisor.db")
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	default:
		return ""
	}
}
