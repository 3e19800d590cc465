package catalog

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/otostudy/otostudy-backend/internal/types"
)

func TestLoad(t *testing.T) {
	cards, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cards) == 0 {
		t.Fatal("bundled catalog is empty")
	}

	ids := make(map[string]bool, len(cards))
	categories := make(map[string]bool)
	for i, c := range cards {
		if c.ID == "" {
			t.Fatalf("card at position %d has empty id", i)
		}
		if ids[c.ID] {
			t.Fatalf("card id %q duplicated", c.ID)
		}
		ids[c.ID] = true
		if c.Seq != i {
			t.Fatalf("card %q has seq %d, want position %d", c.ID, c.Seq, i)
		}
		if c.Stack == "" {
			t.Fatalf("card %q has no stack", c.ID)
		}
		if !types.ValidCategory(c.Category) {
			t.Fatalf("card %q has invalid category %q", c.ID, c.Category)
		}
		if !types.ValidDifficulty(c.Difficulty) {
			t.Fatalf("card %q has invalid difficulty %q", c.ID, c.Difficulty)
		}
		if !types.ValidCardType(c.Type) {
			t.Fatalf("card %q has invalid type %q", c.ID, c.Type)
		}
		categories[c.Category] = true

		var payload map[string]any
		if err := json.Unmarshal(c.Payload, &payload); err != nil {
			t.Fatalf("card %q payload is not valid JSON: %v", c.ID, err)
		}
	}

	// The deck should exercise every subspecialty tab.
	for _, cat := range []string{
		types.CategoryLaryngology, types.CategoryRhinology,
		types.CategoryOtology, types.CategoryHeadNeck,
	} {
		if !categories[cat] {
			t.Errorf("bundled catalog has no %s cards", cat)
		}
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.Card{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	ctx := context.Background()
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("first Seed failed: %v", err)
	}
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}

	cards, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	var count int64
	if err := db.Model(&types.Card{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != int64(len(cards)) {
		t.Fatalf("card table has %d rows after two seeds, want %d", count, len(cards))
	}
}
