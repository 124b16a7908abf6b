package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"knowvalue.app/server/internal/http/dto"
	"knowvalue.app/server/internal/http/middleware"
	"knowvalue.app/server/internal/service"
)

const (
	stateCookieName = "knowvalue_oauth_state"
	stateMaxAge     = 600
)

var sessionMaxAge = int(service.SessionTTL.Seconds())

type AuthHandler struct {
	authService  service.AuthService
	dashboardURL string
	isProduction bool
}

func NewAuthHandler(authService service.AuthService, dashboardURL string, isProduction bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		dashboardURL: dashboardURL,
		isProduction: isProduction,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	state, err := generateState()
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to generate state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate login"})
		return
	}

	authURL, err := h.authService.GetAuthorizationURL(state)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to get authorization URL", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate login"})
		return
	}

	c.SetCookie(stateCookieName, state, stateMaxAge, "/", "", h.isProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (h *AuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	code := c.Query("code")
	state := c.Query("state")

	if errorParam := c.Query("error"); errorParam != "" {
		slog.WarnContext(ctx, "OAuth error", "error", errorParam, "description", c.Query("error_description"))
		h.redirectWithError(c, "oauth_error")
		return
	}

	storedState, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || state != storedState {
		slog.WarnContext(ctx, "state mismatch")
		h.redirectWithError(c, "invalid_state")
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", h.isProduction, true)

	if code == "" {
		h.redirectWithError(c, "no_code")
		return
	}

	user, session, err := h.authService.HandleCallback(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to handle callback", "error", err)
		if errors.Is(err, service.ErrInvalidCode) {
			h.redirectWithError(c, "invalid_code")
			return
		}
		h.redirectWithError(c, "callback_failed")
		return
	}

	c.SetCookie(
		middleware.SessionCookieName,
		strconv.FormatInt(session.ID, 10),
		sessionMaxAge,
		"/",
		"",
		h.isProduction,
		true,
	)

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)
	c.Redirect(http.StatusTemporaryRedirect, h.dashboardURL)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if sessionID, err := middleware.SessionIDFromCookie(c); err == nil && sessionID > 0 {
		if err := h.authService.Logout(ctx, sessionID); err != nil {
			slog.WarnContext(ctx, "failed to delete session", "error", err, "session_id", sessionID)
		}
	}

	middleware.ClearSessionCookie(c, h.isProduction)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.GetUser(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *AuthHandler) redirectWithError(c *gin.Context, reason string) {
	c.Redirect(http.StatusTemporaryRedirect, h.dashboardURL+"?auth_error="+reason)
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
