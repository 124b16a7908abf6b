package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"knowvalue.app/server/internal/http/dto"
	"knowvalue.app/server/internal/http/middleware"
	"knowvalue.app/server/internal/service"
)

type QuestionHandler struct {
	questionService service.QuestionService
}

func NewQuestionHandler(questionService service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// Create accepts either a JSON body or a multipart form carrying images.
func (h *QuestionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateQuestionRequest
	if !bindForm(c, &req) {
		return
	}
	categoryID, err := optionalID(req.CategoryID)
	if err != nil {
		badRequest(c, "invalid categoryId")
		return
	}

	params := service.CreateQuestionParams{
		OwnerID:      middleware.UserID(ctx),
		Title:        req.Title,
		Content:      req.Content,
		RewardAmount: req.RewardAmount,
		CategoryID:   categoryID,
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

	detail, err := h.questionService.Create(ctx, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToQuestionDetailResponse(detail))
}

func (h *QuestionHandler) List(c *gin.Context) {
	var q dto.ListQuestionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid query")
		return
	}
	categoryID, err := optionalID(q.CategoryID)
	if err != nil {
		badRequest(c, "invalid categoryId")
		return
	}

	questions, err := h.questionService.ListPublic(c.Request.Context(), categoryID, q.Limit, q.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToQuestionResponses(questions))
}

func (h *QuestionHandler) Get(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	detail, err := h.questionService.Get(ctx, middleware.UserID(ctx), questionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToQuestionDetailResponse(detail))
}

// MarkRead records that the owner has seen every answer on the question.
func (h *QuestionHandler) MarkRead(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	n, err := h.questionService.MarkAnswersRead(ctx, middleware.UserID(ctx), questionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MarkReadResponse{Marked: n})
}

func (h *QuestionHandler) Checkout(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	url, err := h.questionService.StartCheckout(ctx, middleware.UserID(ctx), questionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CheckoutResponse{CheckoutURL: url})
}

func (h *QuestionHandler) ListMine(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	questions, err := h.questionService.ListByOwner(ctx, middleware.UserID(ctx), page.Limit, page.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToQuestionResponses(questions))
}
