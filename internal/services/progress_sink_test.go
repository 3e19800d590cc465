package services

import (
  "context"
  "path/filepath"
  "testing"
  "time"
  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "github.com/otostudy/otostudy-backend/internal/logger"
  "github.com/otostudy/otostudy-backend/internal/repos"
  "github.com/otostudy/otostudy-backend/internal/session"
  "github.com/otostudy/otostudy-backend/internal/types"
)

func openProgressDB(t *testing.T) *gorm.DB {
  t.Helper()
  db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "progress.db")), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    t.Fatalf("failed to open sqlite: %v", err)
  }
  if err := db.AutoMigrate(&types.Card{}, &types.CardProgress{}); err != nil {
    t.Fatalf("failed to migrate: %v", err)
  }
  return db
}

// waitForProgress polls until the row appears; the engine's writes are
// fire-and-forget goroutines, so there is nothing to join on.
func waitForProgress(t *testing.T, repo repos.CardProgressRepo, userID uuid.UUID, cardID string, ok func(*types.CardProgress) bool) *types.CardProgress {
  t.Helper()
  deadline := time.Now().Add(2 * time.Second)
  for {
    rows, err := repo.GetByUserAndCardIDs(context.Background(), nil, userID, []string{cardID})
    if err != nil {
      t.Fatalf("GetByUserAndCardIDs failed: %v", err)
    }
    if len(rows) == 1 && ok(rows[0]) {
      return rows[0]
    }
    if time.Now().After(deadline) {
      t.Fatalf("timed out waiting for progress row for card %s", cardID)
    }
    time.Sleep(10 * time.Millisecond)
  }
}

// An engine bound to SinkForUser writes straight through to the store: one
// dominance event lands as one seen increment, a bookmark toggle as the flag.
func TestSinkForUserDrivesEngineWrites(t *testing.T) {
  db := openProgressDB(t)
  log := logger.Nop()
  progressRepo := repos.NewCardProgressRepo(db, log)
  progressService := NewProgressService(db, log, progressRepo)
  userID := uuid.New()

  deck := []types.Card{
    {ID: "lar-001", Category: types.CategoryLaryngology, Seq: 0},
    {ID: "oto-001", Category: types.CategoryOtology, Seq: 1},
  }
  engine := session.NewEngine(session.Config{
    Log:      log,
    Progress: progressService,
    Sink:     progressService.SinkForUser(userID),
    Fallback: deck,
    UserID:   userID,
  })
  defer engine.Close()

  engine.Load(context.Background(), "ent-core")
  if got := engine.State().Phase; got != session.PhaseActive {
    t.Fatalf("phase = %v, want active", got)
  }

  engine.Dispatch(session.DominantCardChanged{CardID: "lar-001"})
  row := waitForProgress(t, progressRepo, userID, "lar-001", func(r *types.CardProgress) bool {
    return r.TimesSeen == 1
  })
  if row.Bookmarked {
    t.Fatal("seen write must not touch the bookmark flag")
  }

  // Repeats are de-duped in the engine, so times_seen stays at 1.
  engine.Dispatch(session.DominantCardChanged{CardID: "lar-001"})

  engine.Dispatch(session.BookmarkToggled{CardID: "oto-001"})
  waitForProgress(t, progressRepo, userID, "oto-001", func(r *types.CardProgress) bool {
    return r.Bookmarked
  })

  row = waitForProgress(t, progressRepo, userID, "lar-001", func(r *types.CardProgress) bool {
    return r.TimesSeen == 1
  })
  if row.TimesSeen != 1 {
    t.Fatalf("times_seen = %d after duplicate dominance, want 1", row.TimesSeen)
  }
}

// A second session for the same user starts with a fresh de-dup set, so the
// same card increments again.
func TestSinkForUserSecondSessionReincrements(t *testing.T) {
  db := openProgressDB(t)
  log := logger.Nop()
  progressRepo := repos.NewCardProgressRepo(db, log)
  progressService := NewProgressService(db, log, progressRepo)
  userID := uuid.New()

  deck := []types.Card{{ID: "rhi-001", Category: types.CategoryRhinology, Seq: 0}}

  for want := 1; want <= 2; want++ {
    engine := session.NewEngine(session.Config{
      Log:      log,
      Progress: progressService,
      Sink:     progressService.SinkForUser(userID),
      Fallback: deck,
      UserID:   userID,
    })
    engine.Load(context.Background(), "ent-core")
    // After the first pass the deck is fully seen; review mode surfaces it.
    if engine.State().Phase == session.PhaseAllReviewed {
      engine.Dispatch(session.ReviewAgainRequested{})
    }
    engine.Dispatch(session.DominantCardChanged{CardID: "rhi-001"})
    target := want
    waitForProgress(t, progressRepo, userID, "rhi-001", func(r *types.CardProgress) bool {
      return r.TimesSeen == target
    })
    engine.Close()
  }
}
