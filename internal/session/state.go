// Package session implements the card session and progress reconciliation
// engine: which cards a user sees, in what order, how seen state is derived
// and persisted idempotently, and how local optimistic state reconciles with
// the progress store.
//
// The engine is headless. State transitions are expressed as a pure function
// Apply(State, Event) (State, []Effect); the Engine wraps Apply with a sink
// that executes effects as fire-and-forget progress writes. Any environment
// can feed it dominance events from whatever visibility primitive it has.
package session

import (
	"github.com/otostudy/otostudy-backend/internal/types"
)

type Phase int

const (
	// PhaseLoading gates on the catalog and progress fetches settling.
	PhaseLoading Phase = iota
	// PhaseActive is the normal swiping state.
	PhaseActive
	// PhaseAllReviewed is entered when the filtered deck is empty for an
	// authenticated user not showing all cards. ReviewAgain leaves it.
	PhaseAllReviewed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseActive:
		return "active"
	case PhaseAllReviewed:
		return "all_reviewed"
	}
	return "unknown"
}

// State is the full session state. It is a value: Apply never mutates its
// input, so historic states can be kept and compared in tests.
//
// Invariant: a card id never lives in both Bookmarked and SeenCards.
// Bookmarking removes the card from SeenCards so it stays visible
// regardless of seen history.
type State struct {
	Phase            Phase
	Authenticated    bool
	ActiveIndex      int
	SelectedCategory string // empty means all categories
	ShowAllCards     bool
	Streak           int
	HintDismissed    bool

	// Catalog is the full ordered card sequence for the session's stack.
	Catalog []types.Card

	// Bookmarked cards stay visible regardless of seen history.
	Bookmarked map[string]bool
	// SeenCards are cards seen in a prior session and not currently
	// bookmarked; they are hidden unless ShowAllCards is set.
	SeenCards map[string]bool
	// MarkedSeen is the session-local de-dup guard: one seen increment per
	// card per session. It starts empty on every mount, so a fresh session
	// that re-observes a card increments times_seen again.
	MarkedSeen map[string]bool

	catalogReady  bool
	progressReady bool
}

// NewState returns the initial loading state for a session.
func NewState(authenticated bool) State {
	return State{
		Phase:         PhaseLoading,
		Authenticated: authenticated,
		Bookmarked:    map[string]bool{},
		SeenCards:     map[string]bool{},
		MarkedSeen:    map[string]bool{},
	}
}

// Deck is the currently visible ordered card sequence.
func (s State) Deck() []types.Card {
	return Filter(s.Catalog, s.SelectedCategory, s.Authenticated, s.SeenCards, s.ShowAllCards)
}

// ActiveCard returns the card at ActiveIndex in the visible deck.
func (s State) ActiveCard() (types.Card, bool) {
	deck := s.Deck()
	if s.ActiveIndex < 0 || s.ActiveIndex >= len(deck) {
		return types.Card{}, false
	}
	return deck[s.ActiveIndex], true
}

func (s State) clone() State {
	out := s
	out.Bookmarked = cloneSet(s.Bookmarked)
	out.SeenCards = cloneSet(s.SeenCards)
	out.MarkedSeen = cloneSet(s.MarkedSeen)
	return out
}

func cloneSet(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		if v {
			out[k] = true
		}
	}
	return out
}
