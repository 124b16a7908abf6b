package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"knowvalue.app/server/internal/http/dto"
	"knowvalue.app/server/internal/http/middleware"
	"knowvalue.app/server/internal/service"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	items, err := h.notificationService.List(ctx, middleware.UserID(ctx), page.Limit, page.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationResponses(items))
}

func (h *NotificationHandler) Count(c *gin.Context) {
	ctx := c.Request.Context()
	counts, err := h.notificationService.Unread(ctx, middleware.UserID(ctx))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: counts.UnreadNotifications})
}

// UnreadCount reports unread answers and notifications for the header badge.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	ctx := c.Request.Context()
	counts, err := h.notificationService.Unread(ctx, middleware.UserID(ctx))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUnreadCountResponse(counts))
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.notificationService.MarkRead(ctx, middleware.UserID(ctx), notificationID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
