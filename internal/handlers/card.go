package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/otostudy/otostudy-backend/internal/logger"
  "github.com/otostudy/otostudy-backend/internal/services"
)

type CardHandler struct {
  log         *logger.Logger
  cardService services.CardService
}

func NewCardHandler(log *logger.Logger, cardService services.CardService) *CardHandler {
  return &CardHandler{
    log:         log.With("handler", "CardHandler"),
    cardService: cardService,
  }
}

// GET /api/cards?stack=&category=
// Returns the card sequence in external order. Public: anonymous users can
// study, they just get no progress tracking.
func (ch *CardHandler) ListCards(c *gin.Context) {
  stack := c.Query("stack")
  category := c.Query("category")

  cards, err := ch.cardService.ListCards(c.Request.Context(), stack, category)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  RespondOK(c, cards)
}
