package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/otostudy/otostudy-backend/internal/logger"
	"github.com/otostudy/otostudy-backend/internal/types"
	"github.com/otostudy/otostudy-backend/internal/utils"
)

// CardCache is a best-effort read cache for the card catalog. Misses and
// redis errors are equivalent; callers always fall through to Postgres.
type CardCache interface {
	Get(ctx context.Context, stack, category string) ([]types.Card, bool)
	Set(ctx context.Context, stack, category string, cards []types.Card)
	Close() error
}

type cardCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewCardCache(log *logger.Logger) (CardCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cacheLog := log.With("service", "RedisCardCache")

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSeconds := utils.GetEnvAsInt("CARD_CACHE_TTL_SECONDS", 300, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &cardCache{
		log: cacheLog,
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func cacheKey(stack, category string) string {
	return fmt.Sprintf("cards:%s:%s", stack, category)
}

func (c *cardCache) Get(ctx context.Context, stack, category string) ([]types.Card, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(stack, category)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Debug("card cache read failed", "error", err)
		}
		return nil, false
	}
	var cards []types.Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		c.log.Debug("card cache entry unreadable, treating as miss", "error", err)
		return nil, false
	}
	return cards, true
}

func (c *cardCache) Set(ctx context.Context, stack, category string, cards []types.Card) {
	raw, err := json.Marshal(cards)
	if err != nil {
		c.log.Debug("card cache marshal failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(stack, category), raw, c.ttl).Err(); err != nil {
		c.log.Debug("card cache write failed", "error", err)
	}
}

func (c *cardCache) Close() error {
	return c.rdb.Close()
}
