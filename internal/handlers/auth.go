package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/otostudy/otostudy-backend/internal/services"
  "github.com/otostudy/otostudy-backend/internal/types"
)

const (
  accessTokenCookie  = "access_token"
  refreshTokenCookie = "refresh_token"
)

type AuthHandler struct {
  authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req struct {
    Email     string `json:"email"`
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
    Password  string `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, errBadRequestBody)
    return
  }
  user := types.User{
    Email:     req.Email,
    FirstName: req.FirstName,
    LastName:  req.LastName,
    Password:  req.Password,
  }
  if err := ah.authService.RegisterUser(c.Request.Context(), &user); err != nil {
    RespondError(c, http.StatusBadRequest, err)
    return
  }
  RespondOK(c, gin.H{"success": "true"})
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Email    string `json:"email"`
    Password string `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, errBadRequestBody)
    return
  }
  accessToken, refreshToken, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, err)
    return
  }
  expiresIn := int(ah.authService.GetAccessTTL().Seconds())
  ah.setAuthCookies(c, accessToken, refreshToken, expiresIn)
  RespondOK(c, gin.H{"access_token": accessToken, "refresh_token": refreshToken, "expires_in": expiresIn})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
  accessToken, refreshToken, err := ah.authService.RefreshUser(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusUnauthorized, err)
    return
  }
  expiresIn := int(ah.authService.GetAccessTTL().Seconds())
  ah.setAuthCookies(c, accessToken, refreshToken, expiresIn)
  RespondOK(c, gin.H{"access_token": accessToken, "refresh_token": refreshToken, "expires_in": expiresIn})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
  if err := ah.authService.LogoutUser(c.Request.Context()); err != nil {
    RespondError(c, http.StatusBadRequest, err)
    return
  }
  c.SetCookie(accessTokenCookie, "", -1, "/", "", false, true)
  c.SetCookie(refreshTokenCookie, "", -1, "/", "", false, true)
  RespondOK(c, gin.H{"message": "logged out successfully"})
}

func (ah *AuthHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string, maxAge int) {
  c.SetCookie(accessTokenCookie, accessToken, maxAge, "/", "", false, true)
  c.SetCookie(refreshTokenCookie, refreshToken, maxAge, "/", "", false, true)
}
