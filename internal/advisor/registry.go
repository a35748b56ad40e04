package advisor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
	"github.com/ziadkadry99/beauty-advisor/internal/conversation"
	"github.com/ziadkadry99/beauty-advisor/internal/prefs"
	"github.com/ziadkadry99/beauty-advisor/internal/selection"
	"github.com/ziadkadry99/beauty-advisor/internal/transcript"
)

// DefaultSessionTTL is how long an idle session is kept in memory.
const DefaultSessionTTL = time.Hour

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	Catalog      *catalog.Catalog
	Selection    selection.Options
	SystemPrompt string
	Verbosity    conversation.Verbosity
	// TTL is the idle lifetime of a session. Zero means DefaultSessionTTL.
	TTL time.Duration
	// Prefs mirrors selections durably. Optional.
	Prefs *prefs.Store
	// Archive records new sessions and their turns. Optional.
	Archive *transcript.Store
	Logger  *zap.Logger
}

// Registry keeps live sessions keyed by id. Idle sessions expire; their
// selection survives in the prefs store and is restored on return.
type Registry struct {
	cfg    RegistryConfig
	cache  *cache.Cache
	mu     sync.Mutex
	logger *zap.Logger
}

// NewRegistry creates a session registry.
func NewRegistry(cfg RegistryConfig) *Registry {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = conversation.DefaultSystemPrompt
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		cfg:    cfg,
		cache:  cache.New(cfg.TTL, cfg.TTL/4),
		logger: logger,
	}
}

// Get returns a live session and extends its lifetime.
func (r *Registry) Get(id string) (*Session, bool) {
	if x, found := r.cache.Get(id); found {
		sess := x.(*Session)
		r.cache.Set(id, sess, cache.DefaultExpiration)
		return sess, true
	}
	return nil, false
}

// GetOrCreate returns the session with id, creating it when it is not live.
// An empty id creates a session with a fresh id.
func (r *Registry) GetOrCreate(ctx context.Context, id string) (*Session, error) {
	if id != "" {
		if sess, ok := r.Get(id); ok {
			return sess, nil
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id == "" {
		id = uuid.New().String()
	} else if sess, ok := r.Get(id); ok {
		return sess, nil
	}

	var mirror selection.Mirror
	if r.cfg.Prefs != nil {
		mirror = r.cfg.Prefs.Scoped(id)
	}
	engine, err := selection.New(r.cfg.Catalog, mirror, r.cfg.Selection)
	if err != nil {
		// The engine is usable with an empty selection.
		r.logger.Warn("restoring selection failed", zap.String("session", id), zap.Error(err))
	}
	sess := newSession(id, engine, conversation.New(r.cfg.SystemPrompt, r.cfg.Verbosity))

	if r.cfg.Archive != nil {
		if _, err := r.cfg.Archive.CreateSession(ctx, id, ""); err != nil {
			r.logger.Warn("archiving session failed", zap.String("session", id), zap.Error(err))
		} else if _, err := r.cfg.Archive.AddMessage(ctx, transcript.Message{
			SessionID: id,
			Role:      "system",
			Kind:      transcript.KindSystem,
			Content:   r.cfg.SystemPrompt,
		}); err != nil {
			r.logger.Warn("archiving system turn failed", zap.String("session", id), zap.Error(err))
		}
	}

	r.cache.Set(id, sess, cache.DefaultExpiration)
	r.logger.Debug("session created", zap.String("session", id), zap.Int("selected", len(engine.Selected())))
	return sess, nil
}

// Delete drops a live session. Its durable selection is kept.
func (r *Registry) Delete(id string) {
	r.cache.Delete(id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.cache.ItemCount()
}
