package advisor

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
	"github.com/ziadkadry99/beauty-advisor/internal/db"
	"github.com/ziadkadry99/beauty-advisor/internal/format"
	"github.com/ziadkadry99/beauty-advisor/internal/llm"
	"github.com/ziadkadry99/beauty-advisor/internal/llm/llmtest"
	"github.com/ziadkadry99/beauty-advisor/internal/prefs"
	"github.com/ziadkadry99/beauty-advisor/internal/selection"
	"github.com/ziadkadry99/beauty-advisor/internal/transcript"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Item{
		{ID: catalog.NewID("1"), Name: "Revitalift Cleanser", Brand: "L'Oréal Paris", Category: "cleanser", Description: "Gentle foaming cleanser."},
		{ID: catalog.NewID("2"), Name: "Hydra Serum", Brand: "L'Oréal Paris", Category: "skincare", Description: "Hyaluronic acid serum."},
		{ID: catalog.NewID("3"), Name: "Color Riche", Brand: "L'Oréal Paris", Category: "makeup", Description: "Satin lipstick."},
	})
}

type fixture struct {
	registry *Registry
	service  *Service
	provider *llmtest.Provider
	prefs    *prefs.Store
	archive  *transcript.Store
}

func newFixture(t *testing.T, provider *llmtest.Provider) *fixture {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	p := prefs.NewStore(database)
	a := transcript.NewStore(database)
	return &fixture{
		registry: NewRegistry(RegistryConfig{
			Catalog:   testCatalog(),
			Selection: selection.Options{SearchOverridesCategory: true, Persist: true},
			Prefs:     p,
			Archive:   a,
		}),
		service:  NewService(ServiceConfig{Provider: provider, Archive: a}),
		provider: provider,
		prefs:    p,
		archive:  a,
	}
}

func TestChatAppendsTurns(t *testing.T) {
	f := newFixture(t, llmtest.New("Hi Ana! I'm Scott 💄"))
	sess, err := f.registry.GetOrCreate(t.Context(), "")
	require.NoError(t, err)

	reply, err := f.service.Chat(t.Context(), sess, "Hi, I'm Ana")
	require.NoError(t, err)
	assert.Equal(t, ReplyResponse, reply.Type)
	assert.False(t, reply.Fallback)
	assert.Equal(t, "Hi Ana! I'm Scott 💄", reply.Content)
	assert.Contains(t, reply.HTML, "Hi Ana!")

	// The model saw the system turn and the user turn.
	call := f.provider.LastCall()
	require.Len(t, call.Messages, 2)
	assert.Equal(t, llm.RoleSystem, call.Messages[0].Role)
	assert.Equal(t, "Hi, I'm Ana", call.Messages[1].Content)

	turns := sess.Transcript()
	require.Len(t, turns, 2)
	assert.Equal(t, llm.RoleUser, turns[0].Role)
	assert.Equal(t, llm.RoleAssistant, turns[1].Role)
}

func TestChatReplaysWholeConversation(t *testing.T) {
	f := newFixture(t, llmtest.New("ok"))
	sess, err := f.registry.GetOrCreate(t.Context(), "")
	require.NoError(t, err)

	for _, msg := range []string{"one", "two", "three"} {
		_, err := f.service.Chat(t.Context(), sess, msg)
		require.NoError(t, err)
	}
	call := f.provider.LastCall()
	// system + 3 user + 2 assistant
	assert.Len(t, call.Messages, 6)
	assert.Equal(t, "three", call.Messages[5].Content)
}

func TestChatBlankInputIgnored(t *testing.T) {
	f := newFixture(t, llmtest.New("unused"))
	sess, err := f.registry.GetOrCreate(t.Context(), "")
	require.NoError(t, err)

	_, err = f.service.Chat(t.Context(), sess, "   \n\t")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Empty(t, f.provider.Calls())
	assert.Empty(t, sess.Transcript())
}

func TestChatRateLimitedFallback(t *testing.T) {
	f := newFixture(t, llmtest.Failing(&llm.RemoteError{Status: 429, Message: "rate limited"}))
	sess, err := f.registry.GetOrCreate(t.Context(), "")
	require.NoError(t, err)

	reply, err := f.service.Chat(t.Context(), sess, "hello")
	require.NoError(t, err)
	assert.True(t, reply.Fallback)
	assert.Equal(t, ReplyFallback, reply.Type)
	assert.Equal(t, ChatFallback, reply.Content)
	assert.Equal(t, llm.KindRemote, reply.ErrorKind)

	// The user turn stays, no assistant turn is added.
	turns := sess.Transcript()
	require.Len(t, turns, 1)
	assert.Equal(t, "hello", turns[0].Content)
}

func TestChatTransportFailureFallback(t *testing.T) {
	f := newFixture(t, llmtest.Failing(&llm.TransportError{Err: errors.New("connection refused")}))
	sess, err := f.registry.GetOrCreate(t.Context(), "")
	require.NoError(t, err)

	reply, err := f.service.Chat(t.Context(), sess, "hello")
	require.NoError(t, err)
	assert.Equal(t, llm.KindTransport, reply.ErrorKind)
}

func TestRoutineWithoutSelection(t *testing.T) {
	f := newFixture(t, llmtest.New("unused"))
	sess, err := f.registry.GetOrCreate(t.Context(), "")
	require.NoError(t, err)

	reply, err := f.service.GenerateRoutine(t.Context(), sess)
	require.NoError(t, err)
	assert.Equal(t, ReplyNotice, reply.Type)
	assert.Equal(t, NoProductsNotice, reply.Content)
	assert.Empty(t, f.provider.Calls())
	assert.Empty(t, sess.Transcript())
}

func TestRoutineGeneration(t *testing.T) {
	routine := "## 🌅 Morning\n- **Revitalift Cleanser** first\nPro tip: be gentle"
	f := newFixture(t, llmtest.New(routine))
	sess, err := f.registry.GetOrCreate(t.Context(), "")
	require.NoError(t, err)

	_, err = sess.Select(catalog.NewID("2"))
	require.NoError(t, err)
	_, err = sess.Select(catalog.NewID("1"))
	require.NoError(t, err)

	reply, err := f.service.GenerateRoutine(t.Context(), sess)
	require.NoError(t, err)
	assert.Equal(t, ReplyResponse, reply.Type)
	assert.Equal(t, routine, reply.Content)
	assert.True(t, strings.HasPrefix(reply.HTML, "<h2>"+format.RoutineTitle+"</h2><hr>"))
	assert.Contains(t, reply.HTML, "<strong>Revitalift Cleanser</strong>")

	call := f.provider.LastCall()
	assert.Equal(t, 1000, call.MaxTokens)
	require.NotNil(t, call.Temperature)
	assert.Equal(t, 0.7, *call.Temperature)

	prompt := call.Messages[len(call.Messages)-1].Content
	// Products appear in selection order.
	assert.Less(t, strings.Index(prompt, "Hydra Serum"), strings.Index(prompt, "Revitalift Cleanser"))

	turns := sess.Transcript()
	require.Len(t, turns, 2)
	assert.Equal(t, routine, turns[1].Content)
}

func TestRoutineFailureFallback(t *testing.T) {
	f := newFixture(t, llmtest.Failing(&llm.RemoteError{Status: 500, Message: "boom"}))
	sess, err := f.registry.GetOrCreate(t.Context(), "")
	require.NoError(t, err)
	_, err = sess.Select(catalog.NewID("3"))
	require.NoError(t, err)

	reply, err := f.service.GenerateRoutine(t.Context(), sess)
	require.NoError(t, err)
	assert.True(t, reply.Fallback)
	assert.Equal(t, RoutineFallback, reply.Content)
	assert.Len(t, sess.Transcript(), 1)
}

func TestChatAfterRoutineSharesConversation(t *testing.T) {
	provider := llmtest.New("follow-up").Then("routine text", nil)
	f := newFixture(t, provider)
	sess, err := f.registry.GetOrCreate(t.Context(), "")
	require.NoError(t, err)
	_, err = sess.Select(catalog.NewID("1"))
	require.NoError(t, err)

	_, err = f.service.GenerateRoutine(t.Context(), sess)
	require.NoError(t, err)
	_, err = f.service.Chat(t.Context(), sess, "Can I use it at night?")
	require.NoError(t, err)

	call := provider.LastCall()
	require.Len(t, call.Messages, 4)
	assert.Equal(t, "routine text", call.Messages[2].Content)
}

func TestRegistryRestoresSelection(t *testing.T) {
	f := newFixture(t, llmtest.New("ok"))
	sess, err := f.registry.GetOrCreate(t.Context(), "visitor-1")
	require.NoError(t, err)
	_, err = sess.Select(catalog.NewID("3"))
	require.NoError(t, err)

	// Simulate expiry of the live session.
	f.registry.Delete("visitor-1")
	_, ok := f.registry.Get("visitor-1")
	require.False(t, ok)

	restored, err := f.registry.GetOrCreate(t.Context(), "visitor-1")
	require.NoError(t, err)
	assert.NotSame(t, sess, restored)
	require.Len(t, restored.Selected(), 1)
	assert.Equal(t, "Color Riche", restored.Selected()[0].Name)
	// The conversation starts over.
	assert.Empty(t, restored.Transcript())
}

func TestRegistryReturnsLiveSession(t *testing.T) {
	f := newFixture(t, llmtest.New("ok"))
	a, err := f.registry.GetOrCreate(t.Context(), "same")
	require.NoError(t, err)
	b, err := f.registry.GetOrCreate(t.Context(), "same")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, f.registry.Len())
}

func TestRegistryExpiresIdleSessions(t *testing.T) {
	r := NewRegistry(RegistryConfig{Catalog: testCatalog(), TTL: 20 * time.Millisecond})
	_, err := r.GetOrCreate(t.Context(), "idle")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, ok := r.Get("idle")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestConcurrentGetOrCreate(t *testing.T) {
	f := newFixture(t, llmtest.New("ok"))
	var wg sync.WaitGroup
	sessions := make([]*Session, 8)
	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := f.registry.GetOrCreate(t.Context(), "shared")
			if err == nil {
				sessions[i] = s
			}
		}(i)
	}
	wg.Wait()
	for _, s := range sessions {
		assert.Same(t, sessions[0], s)
	}
}

func TestTurnsAreArchived(t *testing.T) {
	f := newFixture(t, llmtest.New("answer"))
	sess, err := f.registry.GetOrCreate(t.Context(), "archived")
	require.NoError(t, err)

	_, err = f.service.Chat(t.Context(), sess, "question")
	require.NoError(t, err)

	msgs, err := f.archive.GetMessages(t.Context(), "archived")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "question", msgs[1].Content)
	assert.Equal(t, "answer", msgs[2].Content)
}
