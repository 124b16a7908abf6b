package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"knowvalue.app/server/internal/http/dto"
	"knowvalue.app/server/internal/http/middleware"
	"knowvalue.app/server/internal/service"
)

type NegotiationHandler struct {
	negotiationService service.NegotiationService
}

func NewNegotiationHandler(negotiationService service.NegotiationService) *NegotiationHandler {
	return &NegotiationHandler{negotiationService: negotiationService}
}

// Accept starts checkout for the proposal. The negotiation stays PENDING
// until the payment webhook arrives.
func (h *NegotiationHandler) Accept(c *gin.Context) {
	negotiationID, ok := h.bindNegotiationID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	url, err := h.negotiationService.Accept(ctx, middleware.UserID(ctx), negotiationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CheckoutResponse{CheckoutURL: url})
}

func (h *NegotiationHandler) Reject(c *gin.Context) {
	negotiationID, ok := h.bindNegotiationID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.negotiationService.Reject(ctx, middleware.UserID(ctx), negotiationID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *NegotiationHandler) bindNegotiationID(c *gin.Context) (int64, bool) {
	var req dto.NegotiationActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "negotiationId is required")
		return 0, false
	}
	return bodyID(c, "negotiationId", req.NegotiationID)
}
