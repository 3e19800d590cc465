package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/otostudy/otostudy-backend/internal/logger"
  "github.com/otostudy/otostudy-backend/internal/requestdata"
  "github.com/otostudy/otostudy-backend/internal/services"
  "github.com/otostudy/otostudy-backend/internal/types"
)

type ProgressHandler struct {
  log             *logger.Logger
  progressService services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progressService services.ProgressService) *ProgressHandler {
  return &ProgressHandler{
    log:             log.With("handler", "ProgressHandler"),
    progressService: progressService,
  }
}

// GET /api/progress
// Returns the caller's progress records keyed by card id.
func (ph *ProgressHandler) GetProgress(c *gin.Context) {
  userID := requestdata.UserID(c.Request.Context())
  if userID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, errUnauthenticated)
    return
  }
  records, err := ph.progressService.GetProgressForUser(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  RespondOK(c, records)
}

// putProgressRequest covers both accepted body shapes: a seen-only event, or
// a flag update (bookmarked / completed / difficulty rating). Exactly one
// shape is sent per call; seen takes precedence if a client mixes them.
type putProgressRequest struct {
  CardID           string `json:"cardId"`
  Seen             *bool  `json:"seen,omitempty"`
  Bookmarked       *bool  `json:"bookmarked,omitempty"`
  Completed        *bool  `json:"completed,omitempty"`
  DifficultyRating *int   `json:"difficultyRating,omitempty"`
}

// PUT /api/progress
func (ph *ProgressHandler) PutProgress(c *gin.Context) {
  userID := requestdata.UserID(c.Request.Context())
  if userID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, errUnauthenticated)
    return
  }

  var req putProgressRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, errBadRequestBody)
    return
  }
  if req.CardID == "" {
    RespondError(c, http.StatusBadRequest, errors.New("cardId is required"))
    return
  }

  if req.Seen != nil && *req.Seen {
    if err := ph.progressService.RecordSeen(c.Request.Context(), userID, req.CardID); err != nil {
      RespondError(c, http.StatusInternalServerError, err)
      return
    }
    RespondOK(c, gin.H{"ok": true})
    return
  }

  upd := types.CardProgressUpdate{
    Bookmarked:       req.Bookmarked,
    Completed:        req.Completed,
    DifficultyRating: req.DifficultyRating,
  }
  if upd.Empty() {
    RespondError(c, http.StatusBadRequest, errors.New("no progress fields provided"))
    return
  }
  if err := ph.progressService.UpdateCard(c.Request.Context(), userID, req.CardID, upd); err != nil {
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  RespondOK(c, gin.H{"ok": true})
}
