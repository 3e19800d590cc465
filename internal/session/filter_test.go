package session

import (
	"testing"

	"github.com/otostudy/otostudy-backend/internal/types"
)

func testCatalog() []types.Card {
	return []types.Card{
		{ID: "a", Category: types.CategoryLaryngology, Seq: 0},
		{ID: "b", Category: types.CategoryOtology, Seq: 1},
		{ID: "c", Category: types.CategoryLaryngology, Seq: 2},
		{ID: "d", Category: types.CategoryRhinology, Seq: 3},
		{ID: "e", Category: types.CategoryOtology, Seq: 4},
	}
}

func ids(cards []types.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func equalIDs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	cases := []struct {
		name     string
		category string
		authed   bool
		seen     map[string]bool
		showAll  bool
		want     []string
	}{
		{
			name: "no_filters_returns_everything_in_order",
			want: []string{"a", "b", "c", "d", "e"},
		},
		{
			name:     "category_filter_is_stable",
			category: types.CategoryLaryngology,
			want:     []string{"a", "c"},
		},
		{
			name:   "authed_hides_seen",
			authed: true,
			seen:   map[string]bool{"b": true, "d": true},
			want:   []string{"a", "c", "e"},
		},
		{
			name:    "show_all_bypasses_seen_filter",
			authed:  true,
			seen:    map[string]bool{"b": true, "d": true},
			showAll: true,
			want:    []string{"a", "b", "c", "d", "e"},
		},
		{
			name: "anonymous_ignores_seen",
			seen: map[string]bool{"a": true, "b": true, "c": true, "d": true, "e": true},
			want: []string{"a", "b", "c", "d", "e"},
		},
		{
			name:     "category_and_seen_compose",
			category: types.CategoryOtology,
			authed:   true,
			seen:     map[string]bool{"b": true},
			want:     []string{"e"},
		},
		{
			name:   "all_seen_yields_empty",
			authed: true,
			seen:   map[string]bool{"a": true, "b": true, "c": true, "d": true, "e": true},
			want:   []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(testCatalog(), tc.category, tc.authed, tc.seen, tc.showAll)
			if !equalIDs(ids(got), tc.want) {
				t.Fatalf("Filter returned %v, want %v", ids(got), tc.want)
			}
		})
	}
}

func TestFilterDoesNotReorder(t *testing.T) {
	catalog := []types.Card{
		{ID: "a", Category: types.CategoryOtology, Seq: 0},
		{ID: "b", Category: types.CategoryRhinology, Seq: 1},
		{ID: "c", Category: types.CategoryOtology, Seq: 2},
	}
	got := Filter(catalog, types.CategoryOtology, false, nil, false)
	if !equalIDs(ids(got), []string{"a", "c"}) {
		t.Fatalf("expected [a c] in source order, got %v", ids(got))
	}
}
