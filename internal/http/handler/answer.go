package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"knowvalue.app/server/internal/http/dto"
	"knowvalue.app/server/internal/http/middleware"
	"knowvalue.app/server/internal/service"
)

type AnswerHandler struct {
	answerService service.AnswerService
}

func NewAnswerHandler(answerService service.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

func (h *AnswerHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateAnswerRequest
	if !bindForm(c, &req) {
		return
	}
	questionID, ok := bodyID(c, "questionId", req.QuestionID)
	if !ok {
		return
	}

	params := service.CreateAnswerParams{
		QuestionID:     questionID,
		AuthorID:       middleware.UserID(ctx),
		Pitch:          req.Pitch,
		Content:        req.Content,
		ProposedAmount: req.ProposedAmount,
	}
	if isMultipart(c) {
		uploads, closeUploads, err := readUploads(c)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		defer closeUploads()
		params.Images = uploads
	}

	answer, err := h.answerService.Create(ctx, params)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ToAnswerResponse(answer)
	resp.Revealed = true
	c.JSON(http.StatusCreated, resp)
}

func (h *AnswerHandler) ListMine(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	answers, err := h.answerService.ListByAuthor(ctx, middleware.UserID(ctx), page.Limit, page.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAnswerSummaryResponses(answers))
}

func (h *AnswerHandler) MarkRead(c *gin.Context) {
	answerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	marked, err := h.answerService.MarkRead(ctx, middleware.UserID(ctx), answerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AnswerReadResponse{Marked: marked})
}
