package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/beauty-advisor/internal/advisor"
	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
	"github.com/ziadkadry99/beauty-advisor/internal/config"
	"github.com/ziadkadry99/beauty-advisor/internal/conversation"
	"github.com/ziadkadry99/beauty-advisor/internal/llm"
	"github.com/ziadkadry99/beauty-advisor/internal/llm/llmtest"
)

func TestParseIDs(t *testing.T) {
	ids := parseIDs(" 3, 1,,abc ")
	require.Len(t, ids, 3)
	assert.Equal(t, "3", ids[0].String())
	assert.Equal(t, "1", ids[1].String())
	assert.Equal(t, "abc", ids[2].String())
	assert.Empty(t, parseIDs(""))
}

func TestServiceConfigFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Generation.ChatMaxTokens = 300
	sc := serviceConfig(cfg, llmtest.New("x"), nil)
	assert.Equal(t, 300, sc.Chat.MaxTokens)
	assert.Equal(t, 1000, sc.Routine.MaxTokens)
	require.NotNil(t, sc.Routine.Temperature)
	assert.Equal(t, 0.7, *sc.Routine.Temperature)
	assert.Nil(t, sc.Chat.Temperature)
	assert.Empty(t, sc.Model, "the proxy chooses its model unless one is configured")
}

func TestVerbosity(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, conversation.VerbosityDetailed, verbosity(cfg))
	cfg.Features.RoutineVerbosity = config.VerbosityBrief
	assert.Equal(t, conversation.VerbosityBrief, verbosity(cfg))
}

func TestRunRoutine(t *testing.T) {
	cat := catalog.New([]catalog.Item{
		{ID: catalog.NewID("1"), Name: "Cleanser", Brand: "CeraVe", Category: "cleanser"},
		{ID: catalog.NewID("2"), Name: "Serum", Brand: "L'Oréal Paris", Category: "skincare"},
	})
	provider := llmtest.New("## Step 1\n- Cleanse")
	service := advisor.NewService(advisor.ServiceConfig{Provider: provider})
	regCfg := advisor.RegistryConfig{Catalog: cat}

	reply, err := runRoutine(context.Background(), service, parseIDs("2,1"), regCfg)
	require.NoError(t, err)
	assert.Equal(t, "## Step 1\n- Cleanse", reply.Content)

	prompt := provider.LastCall().Messages[1].Content
	assert.Contains(t, prompt, "1. **Serum**")
	assert.Contains(t, prompt, "2. **Cleanser**")

	_, err = runRoutine(context.Background(), service, parseIDs("9"), regCfg)
	assert.Error(t, err)
}

func TestRunRoutineFallback(t *testing.T) {
	cat := catalog.New([]catalog.Item{{ID: catalog.NewID("1"), Name: "Cleanser"}})
	service := advisor.NewService(advisor.ServiceConfig{
		Provider: llmtest.Failing(&llm.RemoteError{Status: 503, Message: "unavailable"}),
	})

	reply, err := runRoutine(context.Background(), service, parseIDs("1"), advisor.RegistryConfig{Catalog: cat})
	require.NoError(t, err)
	assert.True(t, reply.Fallback)
	assert.Equal(t, advisor.RoutineFallback, reply.Content)
}
