package session

// Apply is the transition function of the session state machine. It never
// mutates its input and returns the successor state plus any effects the
// caller must execute. Effects never feed back into the machine, so a failed
// progress write leaves the optimistic local state in place.
func Apply(prev State, ev Event) (State, []Effect) {
	s := prev.clone()
	var effects []Effect

	switch e := ev.(type) {
	case CatalogLoaded:
		s.Catalog = e.Cards
		s.catalogReady = true
		s = settleLoading(s)

	case ProgressLoaded:
		for id, rec := range e.Records {
			if rec == nil {
				continue
			}
			if rec.Bookmarked {
				s.Bookmarked[id] = true
				continue
			}
			if rec.TimesSeen > 0 {
				s.SeenCards[id] = true
			}
		}
		s.progressReady = true
		s = settleLoading(s)

	case DominantCardChanged:
		if s.Phase != PhaseActive {
			break
		}
		idx, ok := deckIndex(s, e.CardID)
		if !ok {
			// Stale event for a card no longer in the deck (fast scroll,
			// category switch in flight). Safe to drop.
			break
		}
		s.ActiveIndex = idx
		s.HintDismissed = true
		if !s.MarkedSeen[e.CardID] {
			s.MarkedSeen[e.CardID] = true
			if s.Authenticated {
				effects = append(effects, SyncSeen{CardID: e.CardID})
			}
		}

	case BookmarkToggled:
		if s.Phase != PhaseActive {
			break
		}
		value := !s.Bookmarked[e.CardID]
		if value {
			s.Bookmarked[e.CardID] = true
			// Bookmarked cards are always eligible for display.
			delete(s.SeenCards, e.CardID)
		} else {
			delete(s.Bookmarked, e.CardID)
		}
		if s.Authenticated {
			effects = append(effects, SyncBookmark{CardID: e.CardID, Value: value})
		}

	case AnswerSubmitted:
		if s.Phase != PhaseActive {
			break
		}
		if e.Correct {
			s.Streak++
		} else {
			s.Streak = 0
		}

	case CategorySelected:
		if s.Phase == PhaseLoading {
			break
		}
		s.SelectedCategory = e.Category
		s = recomputePhase(s)

	case ReviewAgainRequested:
		if s.Phase != PhaseAllReviewed {
			break
		}
		s.ShowAllCards = true
		s.ActiveIndex = 0
		s = recomputePhase(s)
	}

	return s, effects
}

func settleLoading(s State) State {
	if s.Phase != PhaseLoading || !s.catalogReady || !s.progressReady {
		return s
	}
	s.ActiveIndex = 0
	return recomputePhase(s)
}

// recomputePhase re-derives the phase from the filtered deck and clamps the
// active index. An empty deck is terminal only for an authenticated user not
// showing all cards; an anonymous user with an empty catalog just gets an
// empty active deck.
func recomputePhase(s State) State {
	deck := s.Deck()
	if len(deck) == 0 && s.Authenticated && !s.ShowAllCards {
		s.Phase = PhaseAllReviewed
		return s
	}
	s.Phase = PhaseActive
	if s.ActiveIndex >= len(deck) {
		s.ActiveIndex = len(deck) - 1
	}
	if s.ActiveIndex < 0 {
		s.ActiveIndex = 0
	}
	return s
}

func deckIndex(s State, cardID string) (int, bool) {
	for i, c := range s.Deck() {
		if c.ID == cardID {
			return i, true
		}
	}
	return 0, false
}
