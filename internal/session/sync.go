package session

import (
	"context"

	"github.com/otostudy/otostudy-backend/internal/logger"
)

// ProgressSink receives the session's progress writes. Implementations are
// already bound to a user; the engine never sees credentials.
type ProgressSink interface {
	MarkSeen(ctx context.Context, cardID string) error
	SetBookmark(ctx context.Context, cardID string, value bool) error
}

// syncClient executes effects fire-and-forget. Progress sync is best-effort:
// a failed write is logged and lost, never retried and never surfaced,
// because sync must not block card navigation. The context is the session
// lifetime; once it is cancelled, results of in-flight writes are discarded.
type syncClient struct {
	log  *logger.Logger
	sink ProgressSink
	ctx  context.Context
}

func newSyncClient(ctx context.Context, log *logger.Logger, sink ProgressSink) *syncClient {
	return &syncClient{
		log:  log.With("component", "progress_sync"),
		sink: sink,
		ctx:  ctx,
	}
}

func (c *syncClient) run(effects []Effect) {
	if c.sink == nil {
		return
	}
	for _, eff := range effects {
		switch e := eff.(type) {
		case SyncSeen:
			go c.markSeen(e.CardID)
		case SyncBookmark:
			go c.setBookmark(e.CardID, e.Value)
		}
	}
}

func (c *syncClient) markSeen(cardID string) {
	if err := c.sink.MarkSeen(c.ctx, cardID); err != nil {
		c.log.Debug("seen sync failed, dropping", "card_id", cardID, "error", err)
	}
}

func (c *syncClient) setBookmark(cardID string, value bool) {
	if err := c.sink.SetBookmark(c.ctx, cardID, value); err != nil {
		c.log.Debug("bookmark sync failed, dropping", "card_id", cardID, "value", value, "error", err)
	}
}
