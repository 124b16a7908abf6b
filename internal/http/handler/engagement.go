package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"knowvalue.app/server/internal/http/dto"
	"knowvalue.app/server/internal/http/middleware"
	"knowvalue.app/server/internal/service"
)

type EngagementHandler struct {
	engagementService service.EngagementService
}

func NewEngagementHandler(engagementService service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	answerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	liked, count, err := h.engagementService.ToggleLike(ctx, middleware.UserID(ctx), answerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LikeResponse{Liked: liked, LikeCount: count})
}

func (h *EngagementHandler) AddComment(c *gin.Context) {
	answerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "content is required")
		return
	}

	ctx := c.Request.Context()
	comment, err := h.engagementService.AddComment(ctx, middleware.UserID(ctx), answerID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

func (h *EngagementHandler) ListComments(c *gin.Context) {
	answerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	comments, err := h.engagementService.ListComments(ctx, middleware.UserID(ctx), answerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentResponses(comments))
}
