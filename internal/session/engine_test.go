package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/otostudy/otostudy-backend/internal/types"
)

type fakeCatalog struct {
	cards []types.Card
	err   error
}

func (f *fakeCatalog) ListCards(ctx context.Context, stack, category string) ([]types.Card, error) {
	return f.cards, f.err
}

type fakeProgress struct {
	records map[string]*types.CardProgress
	err     error
}

func (f *fakeProgress) GetProgressForUser(ctx context.Context, userID uuid.UUID) (map[string]*types.CardProgress, error) {
	return f.records, f.err
}

// recordingSink counts sink calls and signals each one on a channel so tests
// can wait for the fire-and-forget goroutines.
type recordingSink struct {
	mu        sync.Mutex
	seen      []string
	bookmarks map[string]bool
	err       error
	calls     chan struct{}
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		bookmarks: map[string]bool{},
		calls:     make(chan struct{}, 64),
	}
}

func (r *recordingSink) MarkSeen(ctx context.Context, cardID string) error {
	r.mu.Lock()
	r.seen = append(r.seen, cardID)
	r.mu.Unlock()
	r.calls <- struct{}{}
	return r.err
}

func (r *recordingSink) SetBookmark(ctx context.Context, cardID string, value bool) error {
	r.mu.Lock()
	r.bookmarks[cardID] = value
	r.mu.Unlock()
	r.calls <- struct{}{}
	return r.err
}

func (r *recordingSink) waitCalls(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.calls:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for sink call %d of %d", i+1, n)
		}
	}
}

func (r *recordingSink) seenCount(cardID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, id := range r.seen {
		if id == cardID {
			n++
		}
	}
	return n
}

func TestEngineLoadHappyPath(t *testing.T) {
	userID := uuid.New()
	e := NewEngine(Config{
		Catalog: &fakeCatalog{cards: testCatalog()},
		Progress: &fakeProgress{records: map[string]*types.CardProgress{
			"a": {CardID: "a", TimesSeen: 1},
		}},
		UserID: userID,
	})
	defer e.Close()

	e.Load(context.Background(), "ent-core")

	st := e.State()
	if st.Phase != PhaseActive {
		t.Fatalf("phase = %v, want active", st.Phase)
	}
	if deck := ids(e.Deck()); !equalIDs(deck, []string{"b", "c", "d", "e"}) {
		t.Fatalf("deck = %v, want [b c d e]", deck)
	}
}

func TestEngineLoadFallsBackOnCatalogError(t *testing.T) {
	e := NewEngine(Config{
		Catalog:  &fakeCatalog{err: errors.New("postgres down")},
		Fallback: testCatalog(),
	})
	defer e.Close()

	e.Load(context.Background(), "ent-core")

	if deck := e.Deck(); len(deck) != len(testCatalog()) {
		t.Fatalf("fallback deck has %d cards, want %d", len(deck), len(testCatalog()))
	}
	if e.State().Phase != PhaseActive {
		t.Fatalf("catalog failure must not be fatal, phase = %v", e.State().Phase)
	}
}

func TestEngineLoadDegradesOnProgressError(t *testing.T) {
	e := NewEngine(Config{
		Catalog:  &fakeCatalog{cards: testCatalog()},
		Progress: &fakeProgress{err: errors.New("progress table on fire")},
		UserID:   uuid.New(),
	})
	defer e.Close()

	e.Load(context.Background(), "ent-core")

	st := e.State()
	if st.Phase != PhaseActive {
		t.Fatalf("phase = %v, want active", st.Phase)
	}
	if len(st.SeenCards) != 0 || len(st.Bookmarked) != 0 {
		t.Fatal("failed progress fetch must degrade to empty sets")
	}
	if len(e.Deck()) != len(testCatalog()) {
		t.Fatal("with no progress the full deck should be visible")
	}
}

func TestEngineSyncsSeenAtMostOnce(t *testing.T) {
	sink := newRecordingSink()
	e := NewEngine(Config{
		Catalog: &fakeCatalog{cards: testCatalog()},
		Sink:    sink,
		UserID:  uuid.New(),
	})
	defer e.Close()
	e.Load(context.Background(), "ent-core")

	for i := 0; i < 4; i++ {
		e.Dispatch(DominantCardChanged{CardID: "c"})
	}
	sink.waitCalls(t, 1)

	if n := sink.seenCount("c"); n != 1 {
		t.Fatalf("sink received %d MarkSeen calls for card c, want 1", n)
	}
}

func TestEngineSwallowsSinkErrors(t *testing.T) {
	sink := newRecordingSink()
	sink.err = errors.New("network gone")
	e := NewEngine(Config{
		Catalog: &fakeCatalog{cards: testCatalog()},
		Sink:    sink,
		UserID:  uuid.New(),
	})
	defer e.Close()
	e.Load(context.Background(), "ent-core")

	e.Dispatch(BookmarkToggled{CardID: "a"})
	sink.waitCalls(t, 1)

	// The optimistic local state is kept despite the failed write.
	if !e.State().Bookmarked["a"] {
		t.Fatal("failed bookmark sync must not roll back local state")
	}
	// And the session keeps working.
	e.Dispatch(DominantCardChanged{CardID: "b"})
	sink.waitCalls(t, 1)
	if n := sink.seenCount("b"); n != 1 {
		t.Fatalf("sink received %d MarkSeen calls after an error, want 1", n)
	}
}

func TestEngineCloseDropsEvents(t *testing.T) {
	sink := newRecordingSink()
	e := NewEngine(Config{
		Catalog: &fakeCatalog{cards: testCatalog()},
		Sink:    sink,
		UserID:  uuid.New(),
	})
	e.Load(context.Background(), "ent-core")
	e.Close()

	e.Dispatch(DominantCardChanged{CardID: "a"})
	select {
	case <-sink.calls:
		t.Fatal("event dispatched after Close reached the sink")
	case <-time.After(100 * time.Millisecond):
	}
}
