package config

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = ".advisor.yml"

// defaultModels is the model used per provider when none is configured.
// The proxy picks its own model unless one is set explicitly.
var defaultModels = map[ProviderType]string{
	ProviderProxy:      "",
	ProviderOpenAI:     "gpt-4o",
	ProviderOpenRouter: "openai/gpt-4o",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderProxy,
		Model:       defaultModels[ProviderProxy],
		CatalogPath: "products.json",
		DataDir:     ".advisor",
		Features: FeaturesConfig{
			SearchOverridesCategory: true,
			PersistSelection:        true,
			RoutineVerbosity:        VerbosityDetailed,
		},
		Generation: GenerationConfig{
			RoutineMaxTokens:   1000,
			RoutineTemperature: float64Ptr(0.7),
		},
		RateLimitRPM: 60,
		SessionTTL:   "1h",
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

func float64Ptr(v float64) *float64 { return &v }

// DefaultModel returns the default model for a provider.
func DefaultModel(p ProviderType) string {
	return defaultModels[p]
}
