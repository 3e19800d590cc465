package repos

import (
  "context"
  "path/filepath"
  "testing"
  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "github.com/otostudy/otostudy-backend/internal/logger"
  "github.com/otostudy/otostudy-backend/internal/types"
)

func openTestDB(t *testing.T) *gorm.DB {
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

func fetchOne(t *testing.T, repo CardProgressRepo, userID uuid.UUID, cardID string) *types.CardProgress {
  t.Helper()
  rows, err := repo.GetByUserAndCardIDs(context.Background(), nil, userID, []string{cardID})
  if err != nil {
    t.Fatalf("GetByUserAndCardIDs failed: %v", err)
  }
  if len(rows) != 1 {
    t.Fatalf("expected 1 progress row, got %d", len(rows))
  }
  return rows[0]
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func TestIncrementSeenCreatesThenIncrements(t *testing.T) {
  db := openTestDB(t)
  repo := NewCardProgressRepo(db, logger.Nop())
  ctx := context.Background()
  userID := uuid.New()

  if err := repo.IncrementSeen(ctx, nil, userID, "lar-001"); err != nil {
    t.Fatalf("first IncrementSeen failed: %v", err)
  }
  row := fetchOne(t, repo, userID, "lar-001")
  if row.TimesSeen != 1 {
    t.Fatalf("times_seen after first seen = %d, want 1", row.TimesSeen)
  }
  if row.LastSeenAt == nil {
    t.Fatal("last_seen_at not set")
  }

  if err := repo.IncrementSeen(ctx, nil, userID, "lar-001"); err != nil {
    t.Fatalf("second IncrementSeen failed: %v", err)
  }
  row = fetchOne(t, repo, userID, "lar-001")
  if row.TimesSeen != 2 {
    t.Fatalf("times_seen after second seen = %d, want 2", row.TimesSeen)
  }
  if row.Bookmarked || row.Completed || row.DifficultyRating != nil {
    t.Fatal("seen increment must not touch flag fields")
  }
}

func TestUpsertFieldsPreservesTimesSeen(t *testing.T) {
  db := openTestDB(t)
  repo := NewCardProgressRepo(db, logger.Nop())
  ctx := context.Background()
  userID := uuid.New()

  if err := repo.IncrementSeen(ctx, nil, userID, "oto-001"); err != nil {
    t.Fatalf("IncrementSeen failed: %v", err)
  }
  if err := repo.IncrementSeen(ctx, nil, userID, "oto-001"); err != nil {
    t.Fatalf("IncrementSeen failed: %v", err)
  }

  upd := types.CardProgressUpdate{Bookmarked: boolPtr(true)}
  if err := repo.UpsertFields(ctx, nil, userID, "oto-001", upd); err != nil {
    t.Fatalf("UpsertFields failed: %v", err)
  }

  row := fetchOne(t, repo, userID, "oto-001")
  if row.TimesSeen != 2 {
    t.Fatalf("bookmark update changed times_seen to %d, want 2", row.TimesSeen)
  }
  if !row.Bookmarked {
    t.Fatal("bookmarked flag not set")
  }
}

func TestUpsertFieldsCreatesMissingRow(t *testing.T) {
  db := openTestDB(t)
  repo := NewCardProgressRepo(db, logger.Nop())
  ctx := context.Background()
  userID := uuid.New()

  upd := types.CardProgressUpdate{
    Bookmarked:       boolPtr(true),
    DifficultyRating: intPtr(4),
  }
  if err := repo.UpsertFields(ctx, nil, userID, "rhi-001", upd); err != nil {
    t.Fatalf("UpsertFields failed: %v", err)
  }

  row := fetchOne(t, repo, userID, "rhi-001")
  if row.TimesSeen != 1 {
    t.Fatalf("fresh row times_seen = %d, want 1", row.TimesSeen)
  }
  if !row.Bookmarked {
    t.Fatal("bookmarked flag not set on fresh row")
  }
  if row.DifficultyRating == nil || *row.DifficultyRating != 4 {
    t.Fatalf("difficulty_rating = %v, want 4", row.DifficultyRating)
  }
}

func TestUpsertFieldsLeavesUnsetFieldsAlone(t *testing.T) {
  db := openTestDB(t)
  repo := NewCardProgressRepo(db, logger.Nop())
  ctx := context.Background()
  userID := uuid.New()

  first := types.CardProgressUpdate{
    Bookmarked: boolPtr(true),
    Completed:  boolPtr(true),
  }
  if err := repo.UpsertFields(ctx, nil, userID, "hn-001", first); err != nil {
    t.Fatalf("UpsertFields failed: %v", err)
  }

  // A later partial update must not clear the other flags.
  second := types.CardProgressUpdate{DifficultyRating: intPtr(2)}
  if err := repo.UpsertFields(ctx, nil, userID, "hn-001", second); err != nil {
    t.Fatalf("UpsertFields failed: %v", err)
  }

  row := fetchOne(t, repo, userID, "hn-001")
  if !row.Bookmarked || !row.Completed {
    t.Fatal("partial update cleared previously set flags")
  }
  if row.DifficultyRating == nil || *row.DifficultyRating != 2 {
    t.Fatalf("difficulty_rating = %v, want 2", row.DifficultyRating)
  }
}

func TestGetByUserIDScopesToUser(t *testing.T) {
  db := openTestDB(t)
  repo := NewCardProgressRepo(db, logger.Nop())
  ctx := context.Background()
  alice := uuid.New()
  bob := uuid.New()

  if err := repo.IncrementSeen(ctx, nil, alice, "lar-001"); err != nil {
    t.Fatalf("IncrementSeen failed: %v", err)
  }
  if err := repo.IncrementSeen(ctx, nil, alice, "lar-002"); err != nil {
    t.Fatalf("IncrementSeen failed: %v", err)
  }
  if err := repo.IncrementSeen(ctx, nil, bob, "lar-001"); err != nil {
    t.Fatalf("IncrementSeen failed: %v", err)
  }

  rows, err := repo.GetByUserID(ctx, nil, alice)
  if err != nil {
    t.Fatalf("GetByUserID failed: %v", err)
  }
  if len(rows) != 2 {
    t.Fatalf("expected 2 rows for alice, got %d", len(rows))
  }

  rows, err = repo.GetByUserID(ctx, nil, uuid.Nil)
  if err != nil {
    t.Fatalf("GetByUserID for nil user failed: %v", err)
  }
  if len(rows) != 0 {
    t.Fatalf("nil user must see no rows, got %d", len(rows))
  }
}
