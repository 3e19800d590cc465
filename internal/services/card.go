package services

import (
  "context"

  "gorm.io/gorm"

  "github.com/otostudy/otostudy-backend/internal/clients/redis"
  "github.com/otostudy/otostudy-backend/internal/logger"
  "github.com/otostudy/otostudy-backend/internal/repos"
  "github.com/otostudy/otostudy-backend/internal/types"
)

// CardService serves the card catalog. Lookup order is redis cache, then
// Postgres, then the bundled fallback catalog; a storage failure is never
// surfaced, callers always get a deck.
type CardService interface {
  ListCards(ctx context.Context, stack, category string) ([]types.Card, error)
}

type cardService struct {
  db       *gorm.DB
  log      *logger.Logger
  cardRepo repos.CardRepo
  cache    redis.CardCache
  fallback []types.Card
}

func NewCardService(db *gorm.DB, log *logger.Logger, cardRepo repos.CardRepo, cache redis.CardCache, fallback []types.Card) CardService {
  serviceLog := log.With("service", "CardService")
  return &cardService{
    db:       db,
    log:      serviceLog,
    cardRepo: cardRepo,
    cache:    cache,
    fallback: fallback,
  }
}

func (cs *cardService) ListCards(ctx context.Context, stack, category string) ([]types.Card, error) {
  if cs.cache != nil {
    if cards, ok := cs.cache.Get(ctx, stack, category); ok {
      return cards, nil
    }
  }

  cards, err := cs.cardRepo.List(ctx, nil, stack, category)
  if err != nil {
    cs.log.Warn("card catalog query failed, serving bundled catalog", "stack", stack, "category", category, "error", err)
    return filterFallback(cs.fallback, stack, category), nil
  }
  if len(cards) == 0 && stack == "" && category == "" {
    // Unseeded database: behave as if the bundled catalog were loaded.
    return cs.fallback, nil
  }

  if cs.cache != nil {
    cs.cache.Set(ctx, stack, category, cards)
  }
  return cards, nil
}

func filterFallback(cards []types.Card, stack, category string) []types.Card {
  out := make([]types.Card, 0, len(cards))
  for _, c := range cards {
    if stack != "" && c.Stack != stack {
      continue
    }
    if category != "" && c.Category != category {
      continue
    }
    out = append(out, c)
  }
  return out
}
