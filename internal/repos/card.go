package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/otostudy/otostudy-backend/internal/logger"
  "github.com/otostudy/otostudy-backend/internal/types"
)

type CardRepo interface {
  List(ctx context.Context, tx *gorm.DB, stack, category string) ([]types.Card, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]types.Card, error)
}

type cardRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCardRepo(db *gorm.DB, baseLog *logger.Logger) CardRepo {
  repoLog := baseLog.With("repo", "CardRepo")
  return &cardRepo{db: db, log: repoLog}
}

// List returns cards ordered by their externally assigned sequence. Empty
// stack or category means no filtering on that field.
func (r *cardRepo) List(ctx context.Context, tx *gorm.DB, stack, category string) ([]types.Card, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  query := transaction.WithContext(ctx).Model(&types.Card{})
  if stack != "" {
    query = query.Where("stack = ?", stack)
  }
  if category != "" {
    query = query.Where("category = ?", category)
  }

  var results []types.Card
  if err := query.Order("seq ASC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *cardRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]types.Card, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []types.Card
  if len(ids) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Order("seq ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
