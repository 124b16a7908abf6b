package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"knowvalue.app/server/common/logger"
	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/service"
)

type contextKey string

const (
	SessionCookieName              = "knowvalue_session"
	userContextKey      contextKey = "user"
	sessionIDContextKey contextKey = "session_id"
)

func RequireAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := SessionIDFromCookie(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		user, err := authService.ValidateSession(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrUserNotFound) {
				ClearSessionCookie(c, false)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
			return
		}

		attach(c, user, sessionID)
		c.Next()
	}
}

// OptionalAuth attaches the user to context if a valid session exists, but never aborts.
// Use for routes that work for both guests and authenticated users.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := SessionIDFromCookie(c)
		if err != nil {
			c.Next()
			return
		}

		user, err := authService.ValidateSession(c.Request.Context(), sessionID)
		if err != nil {
			c.Next()
			return
		}

		attach(c, user, sessionID)
		c.Next()
	}
}

func attach(c *gin.Context, user *model.User, sessionID int64) {
	ctx := context.WithValue(c.Request.Context(), userContextKey, user)
	ctx = context.WithValue(ctx, sessionIDContextKey, sessionID)
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID})
	c.Request = c.Request.WithContext(ctx)
}

func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// UserID returns the signed-in user's id, or zero for guests.
func UserID(ctx context.Context) int64 {
	if user := GetUser(ctx); user != nil {
		return user.ID
	}
	return 0
}

func GetSessionID(ctx context.Context) int64 {
	sessionID, _ := ctx.Value(sessionIDContextKey).(int64)
	return sessionID
}

func SessionIDFromCookie(c *gin.Context) (int64, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(cookie, 10, 64)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		"",
		secure,
		true,
	)
}
