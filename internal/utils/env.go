// Package utils holds the env accessors behind every runtime knob this
// service reads: POSTGRES_*, JWT_SECRET_KEY, ACCESS_TOKEN_TTL,
// REFRESH_TOKEN_TTL, REDIS_ADDR, CARD_CACHE_TTL_SECONDS, MEDIA_ROOT,
// MEDIA_BASE_URL, AVATAR_FONT, OTEL_ENABLED, OTEL_EXPORTER, LOG_MODE, PORT.
// Every knob has a default; a missing variable is logged at debug, never
// fatal.
package utils

import (
  "os"
  "strconv"
  "github.com/otostudy/otostudy-backend/internal/logger"
)

// GetEnv returns the variable's value or defaultVal when unset. The nil
// logger case exists for callers that run before logging is up.
func GetEnv(key, defaultVal string, log *logger.Logger) string {
  if log != nil {
    log = log.With("env_var", key)
  }
  val, ok := os.LookupEnv(key)
  if !ok {
    if log != nil {
      log.Debug("Environment variable not found, using default", "default", defaultVal)
    }
    return defaultVal
  }
  if log != nil {
    log.Debug("Environment variable found, using environment", "environment", val)
  }
  return val
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
  if log != nil {
    log = log.With("env_var", key)
  }
  valStr, ok := os.LookupEnv(key)
  if !ok {
    if log != nil {
      log.Debug("Environment variable not found, using default", "default", defaultVal)
    }
    return defaultVal
  }
  i, err := strconv.Atoi(valStr)
  if err != nil {
    if log != nil {
      log.Debug("Environment variable could not be parsed as int, using default", "providedVal", valStr, "defaultVal", defaultVal, "error", err)
    }
    return defaultVal
  }
  if log != nil {
    log.Debug("Environment variable found, using it", "value", i)
  }
  return i
}
