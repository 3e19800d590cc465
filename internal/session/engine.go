package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/otostudy/otostudy-backend/internal/logger"
	"github.com/otostudy/otostudy-backend/internal/types"
)

// CatalogSource lists cards for a stack in their external order.
type CatalogSource interface {
	ListCards(ctx context.Context, stack, category string) ([]types.Card, error)
}

// ProgressSource fetches the stored progress map for a user.
type ProgressSource interface {
	GetProgressForUser(ctx context.Context, userID uuid.UUID) (map[string]*types.CardProgress, error)
}

// Engine owns one session's state and serializes event handling. Events may
// arrive from any goroutine; each is applied atomically and its effects are
// handed to the sync client as fire-and-forget writes.
type Engine struct {
	mu    sync.Mutex
	state State

	log      *logger.Logger
	sync     *syncClient
	catalog  CatalogSource
	progress ProgressSource
	fallback []types.Card
	userID   uuid.UUID
	closed   bool
}

type Config struct {
	Log      *logger.Logger
	Catalog  CatalogSource
	Progress ProgressSource
	Sink     ProgressSink
	// Fallback is the bundled catalog used when the catalog fetch fails.
	Fallback []types.Card
	// UserID is uuid.Nil for anonymous sessions.
	UserID uuid.UUID
}

func NewEngine(cfg Config) *Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("component", "session_engine")

	authenticated := cfg.UserID != uuid.Nil
	return &Engine{
		state:    NewState(authenticated),
		log:      log,
		sync:     newSyncClient(context.Background(), log, cfg.Sink),
		catalog:  cfg.Catalog,
		progress: cfg.Progress,
		fallback: cfg.Fallback,
		userID:   cfg.UserID,
	}
}

// Load performs the bootstrap fetches concurrently and settles the loading
// gate. Neither fetch can fail the session: a catalog error degrades to the
// bundled fallback, a progress error to empty sets.
func (e *Engine) Load(ctx context.Context, stack string) {
	var cards []types.Card
	var records map[string]*types.CardProgress

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if e.catalog == nil {
			cards = e.fallback
			return nil
		}
		fetched, err := e.catalog.ListCards(gctx, stack, "")
		if err != nil || len(fetched) == 0 {
			e.log.Warn("catalog fetch failed, using bundled catalog", "stack", stack, "error", err)
			cards = e.fallback
			return nil
		}
		cards = fetched
		return nil
	})
	if e.userID != uuid.Nil && e.progress != nil {
		g.Go(func() error {
			fetched, err := e.progress.GetProgressForUser(gctx, e.userID)
			if err != nil {
				e.log.Warn("progress fetch failed, starting with empty progress", "error", err)
				return nil
			}
			records = fetched
			return nil
		})
	}
	_ = g.Wait()

	e.Dispatch(CatalogLoaded{Cards: cards})
	e.Dispatch(ProgressLoaded{Records: records})
}

// Dispatch applies one event and executes its effects. Events arriving after
// Close are dropped.
func (e *Engine) Dispatch(ev Event) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	next, effects := Apply(e.state, ev)
	e.state = next
	e.mu.Unlock()

	e.sync.run(effects)
}

// State returns a copy of the current session state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

// Deck returns the currently visible card sequence.
func (e *Engine) Deck() []types.Card {
	return e.State().Deck()
}

// Close ends the session: subsequent events are dropped. Progress writes
// already in flight are not cancelled; their outcome is irrelevant once the
// session is gone.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}
