package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to advisor! Let's configure your beauty advisor.")
	fmt.Println()

	cfg := DefaultConfig()

	// Catalog file.
	if _, err := os.Stat(cfg.CatalogPath); err == nil {
		fmt.Printf("Found product catalog: %s\n\n", cfg.CatalogPath)
	}
	catalogPrompt := promptui.Prompt{
		Label:    "Product catalog (JSON file)",
		Default:  cfg.CatalogPath,
		Validate: nonEmpty,
	}
	catalogPath, err := catalogPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog path: %w", err)
	}
	cfg.CatalogPath = catalogPath

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "How should completions be fetched",
		Items: []string{
			"proxy      - a completion proxy that holds the API key",
			"openai     - OpenAI directly (OPENAI_API_KEY)",
			"openrouter - OpenRouter (OPENROUTER_API_KEY)",
		},
	}
	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	providers := []ProviderType{ProviderProxy, ProviderOpenAI, ProviderOpenRouter}
	cfg.Provider = providers[providerIdx]
	cfg.Model = DefaultModel(cfg.Provider)

	// 2. Proxy endpoint.
	if cfg.Provider == ProviderProxy {
		proxyPrompt := promptui.Prompt{
			Label:    "Completion proxy URL",
			Validate: validURL,
		}
		cfg.ProxyURL, err = proxyPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("proxy url: %w", err)
		}
	}

	// 3. Model.
	modelLabel := "Model"
	if cfg.Provider == ProviderProxy {
		modelLabel = "Model (leave blank to let the proxy choose)"
	}
	modelPrompt := promptui.Prompt{
		Label:   modelLabel,
		Default: cfg.Model,
	}
	cfg.Model, err = modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	// 4. Search behaviour.
	searchPrompt := promptui.Select{
		Label: "Search with no category selected",
		Items: []string{
			"searches every category",
			"asks for a category first",
		},
	}
	searchIdx, _, err := searchPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("search behaviour: %w", err)
	}
	cfg.Features.SearchOverridesCategory = searchIdx == 0

	// 5. Routine detail.
	verbosityPrompt := promptui.Select{
		Label: "Routine request detail",
		Items: []string{string(VerbosityDetailed), string(VerbosityBrief)},
	}
	_, verbosity, err := verbosityPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("routine verbosity: %w", err)
	}
	cfg.Features.RoutineVerbosity = Verbosity(verbosity)

	// 6. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validPort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// Check for API key.
	envVar := APIKeyEnvVar(cfg.Provider)
	if envVar != "" {
		if os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running advisor server.\n", envVar)
		}
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func nonEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

func validURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("enter an http(s) URL")
	}
	return nil
}

func validPort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("enter a port between 1 and 65535")
	}
	return nil
}
