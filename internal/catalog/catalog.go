// Package catalog holds the bundled static card catalog. It seeds the card
// table on startup and serves as the fallback deck whenever Postgres is
// unreachable, so a catalog failure never surfaces to the user.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gopkg.in/yaml.v3"

	"github.com/otostudy/otostudy-backend/internal/types"
)

//go:embed cards.yaml
var rawCatalog []byte

type seedFile struct {
	Stack string     `yaml:"stack"`
	Cards []seedCard `yaml:"cards"`
}

type seedCard struct {
	ID         string         `yaml:"id"`
	Category   string         `yaml:"category"`
	Difficulty string         `yaml:"difficulty"`
	Type       string         `yaml:"type"`
	Payload    map[string]any `yaml:"payload"`
}

// Load parses the embedded catalog. Seq is assigned from position in the
// file, which is the externally defined display order.
func Load() ([]types.Card, error) {
	var f seedFile
	if err := yaml.Unmarshal(rawCatalog, &f); err != nil {
		return nil, fmt.Errorf("failed to parse bundled catalog: %w", err)
	}
	if f.Stack == "" {
		return nil, fmt.Errorf("bundled catalog has no stack name")
	}
	cards := make([]types.Card, 0, len(f.Cards))
	seen := make(map[string]bool, len(f.Cards))
	for i, sc := range f.Cards {
		if sc.ID == "" {
			return nil, fmt.Errorf("catalog card at position %d has no id", i)
		}
		if seen[sc.ID] {
			return nil, fmt.Errorf("catalog card id %q is duplicated", sc.ID)
		}
		seen[sc.ID] = true
		if !types.ValidCategory(sc.Category) {
			return nil, fmt.Errorf("catalog card %q has unknown category %q", sc.ID, sc.Category)
		}
		if !types.ValidDifficulty(sc.Difficulty) {
			return nil, fmt.Errorf("catalog card %q has unknown difficulty %q", sc.ID, sc.Difficulty)
		}
		if !types.ValidCardType(sc.Type) {
			return nil, fmt.Errorf("catalog card %q has unknown type %q", sc.ID, sc.Type)
		}
		payload, err := json.Marshal(sc.Payload)
		if err != nil {
			return nil, fmt.Errorf("catalog card %q has unmarshalable payload: %w", sc.ID, err)
		}
		cards = append(cards, types.Card{
			ID:         sc.ID,
			Stack:      f.Stack,
			Category:   sc.Category,
			Difficulty: sc.Difficulty,
			Type:       sc.Type,
			Seq:        i,
			Payload:    payload,
		})
	}
	return cards, nil
}

// Seed upserts the bundled catalog into the card table. The bundled file is
// the source of truth for card content, so existing rows are overwritten.
func Seed(ctx context.Context, db *gorm.DB) error {
	cards, err := Load()
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&cards).Error; err != nil {
		return fmt.Errorf("failed to seed card catalog: %w", err)
	}
	return nil
}
