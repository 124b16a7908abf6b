package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"knowvalue.app/server/internal/http/dto"
	"knowvalue.app/server/internal/http/middleware"
	"knowvalue.app/server/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RecordConsent(c *gin.Context) {
	var req dto.ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "version is required")
		return
	}

	ctx := c.Request.Context()
	user, err := h.userService.RecordConsent(ctx, middleware.UserID(ctx), req.Version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) ListPurchases(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	purchases, err := h.userService.ListPurchases(ctx, middleware.UserID(ctx), page.Limit, page.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseResponses(purchases))
}
