package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"knowvalue.app/server/internal/http/dto"
	"knowvalue.app/server/internal/http/middleware"
	"knowvalue.app/server/internal/service"
)

type BestAnswerHandler struct {
	bestAnswerService service.BestAnswerService
}

func NewBestAnswerHandler(bestAnswerService service.BestAnswerService) *BestAnswerHandler {
	return &BestAnswerHandler{bestAnswerService: bestAnswerService}
}

func (h *BestAnswerHandler) Select(c *gin.Context) {
	var req dto.BestAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "answerId and questionId are required")
		return
	}
	questionID, ok := bodyID(c, "questionId", req.QuestionID)
	if !ok {
		return
	}
	answerID, ok := bodyID(c, "answerId", req.AnswerID)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.bestAnswerService.Select(ctx, middleware.UserID(ctx), questionID, answerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
