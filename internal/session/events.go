package session

import (
	"github.com/otostudy/otostudy-backend/internal/types"
)

// Event is a discrete input to the state machine. Dominance events come from
// whatever viewport primitive the caller has; the other events come from
// user actions or the bootstrap fetches.
type Event interface{ isEvent() }

// CatalogLoaded settles the catalog half of the loading gate. On fetch
// failure the caller passes the bundled fallback catalog, never an error.
type CatalogLoaded struct {
	Cards []types.Card
}

// ProgressLoaded settles the progress half of the loading gate. Records is
// nil for anonymous users or after a failed fetch; both degrade to empty
// seen/bookmark sets.
type ProgressLoaded struct {
	Records map[string]*types.CardProgress
}

// DominantCardChanged fires when a card becomes the primary visible item.
// Deliveries may repeat or arrive out of order; handling is idempotent.
type DominantCardChanged struct {
	CardID string
}

// BookmarkToggled flips the bookmark for a card.
type BookmarkToggled struct {
	CardID string
}

// AnswerSubmitted is raised by interactive card types and drives the streak.
type AnswerSubmitted struct {
	CardID  string
	Correct bool
}

// CategorySelected switches the category filter. Empty means all.
type CategorySelected struct {
	Category string
}

// ReviewAgainRequested leaves the all-reviewed state by bypassing the seen
// filter. It does not clear SeenCards or MarkedSeen.
type ReviewAgainRequested struct{}

func (CatalogLoaded) isEvent()        {}
func (ProgressLoaded) isEvent()       {}
func (DominantCardChanged) isEvent()  {}
func (BookmarkToggled) isEvent()      {}
func (AnswerSubmitted) isEvent()      {}
func (CategorySelected) isEvent()     {}
func (ReviewAgainRequested) isEvent() {}

// Effect is a side effect requested by a transition. Effects are executed by
// the Engine as fire-and-forget progress writes; failures are logged and
// swallowed, never fed back into the state machine.
type Effect interface{ isEffect() }

type SyncSeen struct {
	CardID string
}

type SyncBookmark struct {
	CardID string
	Value  bool
}

func (SyncSeen) isEffect()     {}
func (SyncBookmark) isEffect() {}
