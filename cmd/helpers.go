package cmd

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/beauty-advisor/internal/advisor"
	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
	"github.com/ziadkadry99/beauty-advisor/internal/config"
	"github.com/ziadkadry99/beauty-advisor/internal/conversation"
	"github.com/ziadkadry99/beauty-advisor/internal/llm"
	"github.com/ziadkadry99/beauty-advisor/internal/logging"
	"github.com/ziadkadry99/beauty-advisor/internal/selection"
)

// proxyTimeout bounds one exchange with the completion proxy.
const proxyTimeout = 60 * time.Second

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `advisor init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger. --verbose forces debug level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	opts := logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON, File: cfg.Log.File}
	if verbose {
		opts.Level = "debug"
	}
	return logging.New(opts)
}

// createLLMProviderFromConfig creates an LLM provider based on config settings.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(llm.Settings{
		Provider:     string(cfg.Provider),
		Model:        cfg.Model,
		ProxyURL:     cfg.ProxyURL,
		Timeout:      proxyTimeout,
		RateLimitRPM: cfg.RateLimitRPM,
	})
}

// loadCatalog reads the product catalog named in the config.
func loadCatalog(cfg *config.Config, logger *zap.Logger) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	logging.Module(logger, "catalog").Info("catalog loaded",
		zap.String("path", cfg.CatalogPath),
		zap.Int("products", cat.Len()),
		zap.Int("categories", len(cat.Categories())),
	)
	return cat, nil
}

func selectionOptions(cfg *config.Config) selection.Options {
	return selection.Options{
		SearchOverridesCategory: cfg.Features.SearchOverridesCategory,
		Persist:                 cfg.Features.PersistSelection,
	}
}

func serviceConfig(cfg *config.Config, provider llm.Provider, logger *zap.Logger) advisor.ServiceConfig {
	return advisor.ServiceConfig{
		Provider: provider,
		Model:    cfg.Model,
		Chat: llm.GenerationOptions{
			MaxTokens:   cfg.Generation.ChatMaxTokens,
			Temperature: cfg.Generation.ChatTemperature,
		},
		Routine: llm.GenerationOptions{
			MaxTokens:   cfg.Generation.RoutineMaxTokens,
			Temperature: cfg.Generation.RoutineTemperature,
		},
		Logger: logging.Module(logger, "advisor"),
	}
}

func verbosity(cfg *config.Config) conversation.Verbosity {
	if cfg.Features.RoutineVerbosity == config.VerbosityBrief {
		return conversation.VerbosityBrief
	}
	return conversation.VerbosityDetailed
}

// parseIDs splits a comma-separated list of product ids.
func parseIDs(s string) []catalog.ID {
	var ids []catalog.ID
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ids = append(ids, catalog.NewID(part))
	}
	return ids
}
