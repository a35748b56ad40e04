package config

// ProviderType identifies how completions are obtained.
type ProviderType string

const (
	// ProviderProxy posts the transcript to a completion proxy that holds
	// the API key.
	ProviderProxy      ProviderType = "proxy"
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
)

// Verbosity controls how much product detail a routine request carries.
type Verbosity string

const (
	VerbosityDetailed Verbosity = "detailed"
	VerbosityBrief    Verbosity = "brief"
)

// Config is the top-level advisor configuration, corresponding to .advisor.yml.
type Config struct {
	Provider     ProviderType     `yaml:"provider" koanf:"provider"`
	Model        string           `yaml:"model" koanf:"model"`
	ProxyURL     string           `yaml:"proxy_url" koanf:"proxy_url"`
	CatalogPath  string           `yaml:"catalog_path" koanf:"catalog_path"`
	DataDir      string           `yaml:"data_dir" koanf:"data_dir"`
	SystemPrompt string           `yaml:"system_prompt,omitempty" koanf:"system_prompt"`
	Features     FeaturesConfig   `yaml:"features" koanf:"features"`
	Generation   GenerationConfig `yaml:"generation" koanf:"generation"`
	RateLimitRPM int              `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`
	// SessionTTL is a Go duration string such as "1h".
	SessionTTL string       `yaml:"session_ttl" koanf:"session_ttl"`
	Log        LogConfig    `yaml:"log" koanf:"log"`
	Server     ServerConfig `yaml:"server" koanf:"server"`
}

// FeaturesConfig toggles behaviours that differ between deployments.
type FeaturesConfig struct {
	SearchOverridesCategory bool      `yaml:"search_overrides_category" koanf:"search_overrides_category"`
	PersistSelection        bool      `yaml:"persist_selection" koanf:"persist_selection"`
	RoutineVerbosity        Verbosity `yaml:"routine_verbosity" koanf:"routine_verbosity"`
}

// GenerationConfig holds the sampling options per request type. A zero
// max tokens or an unset temperature leaves the remote default in place;
// a temperature of 0 is sent as 0.
type GenerationConfig struct {
	ChatMaxTokens      int      `yaml:"chat_max_tokens" koanf:"chat_max_tokens"`
	ChatTemperature    *float64 `yaml:"chat_temperature,omitempty" koanf:"chat_temperature"`
	RoutineMaxTokens   int      `yaml:"routine_max_tokens" koanf:"routine_max_tokens"`
	RoutineTemperature *float64 `yaml:"routine_temperature,omitempty" koanf:"routine_temperature"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
	File  string `yaml:"file,omitempty" koanf:"file"`
	JSON  bool   `yaml:"json" koanf:"json"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	// SecureCookie marks the session cookie Secure. Enable behind HTTPS.
	SecureCookie bool `yaml:"secure_cookie" koanf:"secure_cookie"`
}
