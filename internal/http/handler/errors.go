package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"knowvalue.app/server/internal/service"
)

const pgUniqueViolation = "23505"

type errorKind struct {
	err    error
	status int
	// opaque kinds never leak the wrapped detail to clients.
	opaque bool
}

var errorKinds = []errorKind{
	{err: service.ErrUnauthenticated, status: http.StatusUnauthorized},
	{err: service.ErrForbidden, status: http.StatusForbidden},
	{err: service.ErrValidation, status: http.StatusBadRequest},
	{err: service.ErrNotFound, status: http.StatusNotFound},
	{err: service.ErrInvalidState, status: http.StatusBadRequest},
	{err: service.ErrConflict, status: http.StatusConflict},
	{err: service.ErrSignatureInvalid, status: http.StatusBadRequest, opaque: true},
	{err: service.ErrGateway, status: http.StatusInternalServerError, opaque: true},
	{err: service.ErrMissingConfiguration, status: http.StatusInternalServerError, opaque: true},
}

// StatusFor maps a service error to its HTTP status and client message.
func StatusFor(err error) (int, string) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Error()
	}

	for _, k := range errorKinds {
		if !errors.Is(err, k.err) {
			continue
		}
		if k.opaque {
			return k.status, k.err.Error()
		}
		return k.status, detail(err, k.err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return http.StatusConflict, "resource already exists"
	}

	return http.StatusInternalServerError, "internal server error"
}

// detail drops the kind prefix and any call-site context in front of it.
func detail(err, kind error) string {
	msg := err.Error()
	prefix := kind.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}

func respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	status, message := StatusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "request failed", "error", err, "status", status)
	} else {
		slog.DebugContext(ctx, "request rejected", "error", err, "status", status)
	}
	c.JSON(status, gin.H{"error": message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
