package session

import (
	"github.com/otostudy/otostudy-backend/internal/types"
)

// Filter derives the visible ordered card sequence. It is a pure, total
// function: category filter first (stable, source order preserved), then the
// seen filter, which only applies to authenticated users not showing all
// cards. Anonymous users always see the full category slice.
func Filter(cards []types.Card, category string, authenticated bool, seen map[string]bool, showAll bool) []types.Card {
	out := make([]types.Card, 0, len(cards))
	for _, c := range cards {
		if category != "" && c.Category != category {
			continue
		}
		if authenticated && !showAll && seen[c.ID] {
			continue
		}
		out = append(out, c)
	}
	return out
}
