package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "go.opentelemetry.io/otel"
  "go.opentelemetry.io/otel/trace"
  "gorm.io/gorm"

  "github.com/otostudy/otostudy-backend/internal/logger"
  "github.com/otostudy/otostudy-backend/internal/repos"
  "github.com/otostudy/otostudy-backend/internal/session"
  "github.com/otostudy/otostudy-backend/internal/types"
)

// ProgressService is the server side of the progress store: per-(user, card)
// rows written through commutative upserts. RecordSeen increments times_seen
// in SQL, UpdateCard sets only the provided flag fields; the two paths touch
// disjoint columns so out-of-order delivery from a swiping client is safe.
type ProgressService interface {
  GetProgressForUser(ctx context.Context, userID uuid.UUID) (map[string]*types.CardProgress, error)
  RecordSeen(ctx context.Context, userID uuid.UUID, cardID string) error
  UpdateCard(ctx context.Context, userID uuid.UUID, cardID string, upd types.CardProgressUpdate) error
  SinkForUser(userID uuid.UUID) session.ProgressSink
}

type progressService struct {
  db           *gorm.DB
  log          *logger.Logger
  progressRepo repos.CardProgressRepo
  tracer       trace.Tracer
}

func NewProgressService(db *gorm.DB, log *logger.Logger, progressRepo repos.CardProgressRepo) ProgressService {
  serviceLog := log.With("service", "ProgressService")
  return &progressService{
    db:           db,
    log:          serviceLog,
    progressRepo: progressRepo,
    tracer:       otel.Tracer("progress"),
  }
}

func (ps *progressService) GetProgressForUser(ctx context.Context, userID uuid.UUID) (map[string]*types.CardProgress, error) {
  ctx, span := ps.tracer.Start(ctx, "ProgressService.GetProgressForUser")
  defer span.End()

  if userID == uuid.Nil {
    return nil, fmt.Errorf("user id required")
  }
  rows, err := ps.progressRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("failed to load progress: %w", err)
  }
  out := make(map[string]*types.CardProgress, len(rows))
  for _, row := range rows {
    out[row.CardID] = row
  }
  return out, nil
}

func (ps *progressService) RecordSeen(ctx context.Context, userID uuid.UUID, cardID string) error {
  ctx, span := ps.tracer.Start(ctx, "ProgressService.RecordSeen")
  defer span.End()

  if userID == uuid.Nil {
    return fmt.Errorf("user id required")
  }
  if cardID == "" {
    return fmt.Errorf("card id required")
  }
  if err := ps.progressRepo.IncrementSeen(ctx, nil, userID, cardID); err != nil {
    return fmt.Errorf("failed to record seen event: %w", err)
  }
  return nil
}

func (ps *progressService) UpdateCard(ctx context.Context, userID uuid.UUID, cardID string, upd types.CardProgressUpdate) error {
  ctx, span := ps.tracer.Start(ctx, "ProgressService.UpdateCard")
  defer span.End()

  if userID == uuid.Nil {
    return fmt.Errorf("user id required")
  }
  if cardID == "" {
    return fmt.Errorf("card id required")
  }
  if upd.Empty() {
    return fmt.Errorf("no progress fields provided")
  }
  if err := ps.progressRepo.UpsertFields(ctx, nil, userID, cardID, upd); err != nil {
    return fmt.Errorf("failed to update progress: %w", err)
  }
  return nil
}

// SinkForUser binds the service to one user so the session engine can run
// in-process against the store.
func (ps *progressService) SinkForUser(userID uuid.UUID) session.ProgressSink {
  return &progressSink{svc: ps, userID: userID}
}

type progressSink struct {
  svc    *progressService
  userID uuid.UUID
}

func (s *progressSink) MarkSeen(ctx context.Context, cardID string) error {
  return s.svc.RecordSeen(ctx, s.userID, cardID)
}

func (s *progressSink) SetBookmark(ctx context.Context, cardID string, value bool) error {
  return s.svc.UpdateCard(ctx, s.userID, cardID, types.CardProgressUpdate{Bookmarked: &value})
}
