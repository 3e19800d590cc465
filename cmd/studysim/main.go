// studysim drives a headless study session against the bundled catalog.
// Useful for eyeballing engine behavior without a browser or a database:
//
//	go run ./cmd/studysim -category otology
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/otostudy/otostudy-backend/internal/catalog"
	"github.com/otostudy/otostudy-backend/internal/logger"
	"github.com/otostudy/otostudy-backend/internal/session"
)

func main() {
	category := flag.String("category", "", "category filter (empty = all)")
	flag.Parse()

	log, err := logger.New("development")
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cards, err := catalog.Load()
	if err != nil {
		log.Fatal("Bundled catalog unreadable", "error", err)
	}

	// Anonymous session: no progress source, no sink.
	engine := session.NewEngine(session.Config{
		Log:      log,
		Fallback: cards,
	})
	defer engine.Close()

	engine.Dispatch(session.CatalogLoaded{Cards: cards})
	engine.Dispatch(session.ProgressLoaded{})
	if *category != "" {
		engine.Dispatch(session.CategorySelected{Category: *category})
	}

	deck := engine.Deck()
	fmt.Printf("deck of %d cards\n", len(deck))
	for _, card := range deck {
		engine.Dispatch(session.DominantCardChanged{CardID: card.ID})
		st := engine.State()
		fmt.Printf("  [%02d] %-8s %-12s %-15s %s\n", st.ActiveIndex, card.Difficulty, card.Category, card.Type, card.ID)
	}

	st := engine.State()
	fmt.Printf("phase=%s seen-this-session=%d streak=%d\n", st.Phase, len(st.MarkedSeen), st.Streak)
}
