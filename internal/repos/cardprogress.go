package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/otostudy/otostudy-backend/internal/logger"
  "github.com/otostudy/otostudy-backend/internal/types"
)

type CardProgressRepo interface {
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CardProgress, error)
  GetByUserAndCardIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cardIDs []string) ([]*types.CardProgress, error)
  IncrementSeen(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cardID string) error
  UpsertFields(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cardID string, upd types.CardProgressUpdate) error
}

type cardProgressRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCardProgressRepo(db *gorm.DB, baseLog *logger.Logger) CardProgressRepo {
  repoLog := baseLog.With("repo", "CardProgressRepo")
  return &cardProgressRepo{db: db, log: repoLog}
}

func (r *cardProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CardProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CardProgress
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *cardProgressRepo) GetByUserAndCardIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cardIDs []string) ([]*types.CardProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CardProgress
  if userID == uuid.Nil || len(cardIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND card_id IN ?", userID, cardIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// IncrementSeen upserts by the unique (user_id, card_id) pair: a missing row
// is created with times_seen=1, an existing row has times_seen incremented
// in SQL. The increment runs inside the database so concurrent seen events
// for the same card never lose an update. Flag fields are left untouched.
func (r *cardProgressRepo) IncrementSeen(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cardID string) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  now := time.Now()
  row := &types.CardProgress{
    ID:         uuid.New(),
    UserID:     userID,
    CardID:     cardID,
    TimesSeen:  1,
    LastSeenAt: &now,
  }
  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{{Name: "user_id"}, {Name: "card_id"}},
      DoUpdates: clause.Assignments(map[string]interface{}{
        "times_seen":   gorm.Expr("times_seen + 1"),
        "last_seen_at": now,
        "updated_at":   now,
      }),
    }).
    Create(row).Error; err != nil {
    return err
  }
  return nil
}

// UpsertFields upserts by (user_id, card_id), updating only the fields set
// in upd. A missing row is created with times_seen=1; an existing row keeps
// its times_seen, which only ever moves through IncrementSeen.
func (r *cardProgressRepo) UpsertFields(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cardID string, upd types.CardProgressUpdate) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  now := time.Now()
  row := &types.CardProgress{
    ID:         uuid.New(),
    UserID:     userID,
    CardID:     cardID,
    TimesSeen:  1,
    LastSeenAt: &now,
  }
  assignments := map[string]interface{}{
    "updated_at": now,
  }
  if upd.Bookmarked != nil {
    row.Bookmarked = *upd.Bookmarked
    assignments["bookmarked"] = *upd.Bookmarked
  }
  if upd.Completed != nil {
    row.Completed = *upd.Completed
    assignments["completed"] = *upd.Completed
  }
  if upd.DifficultyRating != nil {
    row.DifficultyRating = upd.DifficultyRating
    assignments["difficulty_rating"] = *upd.DifficultyRating
  }

  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}, {Name: "card_id"}},
      DoUpdates: clause.Assignments(assignments),
    }).
    Create(row).Error; err != nil {
    return err
  }
  return nil
}
