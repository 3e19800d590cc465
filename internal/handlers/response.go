package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
)

// Shared failure messages; handler-specific ones are built inline.
var (
  errUnauthenticated = errors.New("unauthenticated")
  errBadRequestBody  = errors.New("invalid request body")
)

// RespondError answers with the flat {"error": ...} envelope the web client
// expects on every failure path.
func RespondError(c *gin.Context, status int, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, gin.H{"error": msg})
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}
