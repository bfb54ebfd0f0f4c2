package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskhub-api/internal/application"
	"github.com/oksasatya/taskhub-api/internal/dispatch"
	"github.com/oksasatya/taskhub-api/internal/domain/entity"
	"github.com/oksasatya/taskhub-api/pkg/helpers"
	"github.com/oksasatya/taskhub-api/pkg/response"
)

// AuthHandler serves the session lifecycle: login, refresh, logout.
// Tokens travel in httpOnly cookies, outcomes in the standard envelope.
type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Missing required field: email or password")
		return
	}

	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == application.ErrInvalidCredentials {
			response.Fail(c, "Invalid credentials")
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.ServerError(c, "Failed to process login")
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.OK(c, gin.H{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
	}, "Login successful")
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Fail(c, "Missing refresh token")
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		if err == application.ErrInvalidCredentials {
			response.Fail(c, "Invalid refresh token")
			return
		}
		h.Logger.WithError(err).Error("token refresh failed")
		response.ServerError(c, "Failed to process refresh")
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.OK(c, gin.H{"refreshed": true}, "Token refreshed")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if actorVal, ok := c.Get(dispatch.ActorKey); ok {
		actor := actorVal.(entity.Actor)
		if err := h.Svc.Logout(c.Request.Context(), actor.ID); err != nil {
			h.Logger.WithError(err).WithField("user_id", actor.ID).Warn("session delete failed")
		}
	}
	h.Cookies.Clear(c)
	response.OK(c, gin.H{"logged_out": true}, "Logged out")
}
