package requestdata

import (
  "context"
  "github.com/google/uuid"
)

type ctxKey struct{}

// RequestData carries the authenticated identity for a single request.
// The session/progress layers only ever see this, never raw credentials.
type RequestData struct {
  TokenString   string
  RefreshToken  string
  UserID        uuid.UUID
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, ctxKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(ctxKey{})
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}

// UserID returns the authenticated user id, or uuid.Nil for anonymous requests.
func UserID(ctx context.Context) uuid.UUID {
  if rd := GetRequestData(ctx); rd != nil {
    return rd.UserID
  }
  return uuid.Nil
}
