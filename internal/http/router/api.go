package router

import (
	"github.com/gin-gonic/gin"

	"knowvalue.app/server/internal/http/handler"
)

func QuestionRouter(rg *gin.RouterGroup, h *handler.QuestionHandler, requireAuth, optionalAuth, limit gin.HandlerFunc) {
	rg.GET("", optionalAuth, h.List)
	rg.POST("", requireAuth, limit, h.Create)
	rg.GET("/:id", optionalAuth, h.Get)
	rg.POST("/:id/read", requireAuth, h.MarkRead)
	rg.POST("/:id/checkout", requireAuth, limit, h.Checkout)
}

func AnswerRouter(rg *gin.RouterGroup, answers *handler.AnswerHandler, engagement *handler.EngagementHandler, requireAuth, optionalAuth, limit gin.HandlerFunc) {
	rg.POST("", requireAuth, limit, answers.Create)
	rg.POST("/:id/read", requireAuth, answers.MarkRead)
	rg.POST("/:id/like", requireAuth, limit, engagement.ToggleLike)
	rg.POST("/:id/comments", requireAuth, limit, engagement.AddComment)
	rg.GET("/:id/comments", optionalAuth, engagement.ListComments)
}

func NegotiationRouter(rg *gin.RouterGroup, h *handler.NegotiationHandler) {
	rg.POST("/accept", h.Accept)
	rg.POST("/reject", h.Reject)
}

func NotificationRouter(rg *gin.RouterGroup, h *handler.NotificationHandler) {
	rg.GET("", h.List)
	rg.GET("/count", h.Count)
	rg.POST("/:id/read", h.MarkRead)
}

func MeRouter(rg *gin.RouterGroup, users *handler.UserHandler, questions *handler.QuestionHandler, answers *handler.AnswerHandler, limit gin.HandlerFunc) {
	rg.GET("/questions", questions.ListMine)
	rg.GET("/answers", answers.ListMine)
	rg.GET("/purchases", users.ListPurchases)
	rg.POST("/consent", limit, users.RecordConsent)
}
