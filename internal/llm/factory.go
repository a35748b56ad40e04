package llm

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

// Settings selects and configures a provider.
type Settings struct {
	// Provider is one of "proxy", "openai", "openrouter".
	Provider string
	Model    string
	// ProxyURL is the completion proxy endpoint for the proxy provider.
	ProxyURL string
	// Timeout bounds each HTTP exchange with the proxy. Zero means none.
	Timeout time.Duration
	// RateLimitRPM caps outbound calls per minute. Zero disables limiting.
	RateLimitRPM int
}

// NewProvider creates a new LLM provider from settings. Direct providers
// read their key from the environment so it never reaches the browser.
func NewProvider(s Settings) (Provider, error) {
	var p Provider
	switch s.Provider {
	case "", "proxy":
		if s.ProxyURL == "" {
			return nil, fmt.Errorf("proxy_url is required for the proxy provider")
		}
		p = NewProxyProvider(s.ProxyURL, s.Model, &http.Client{Timeout: s.Timeout})

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		p = NewOpenAIProvider(apiKey, s.Model)

	case "openrouter":
		apiKey := os.Getenv("OPENROUTER_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is not set")
		}
		p = NewOpenRouterProvider(apiKey, s.Model)

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", s.Provider)
	}

	if s.RateLimitRPM > 0 {
		p = NewRateLimitedProvider(p, s.RateLimitRPM)
	}
	return p, nil
}
