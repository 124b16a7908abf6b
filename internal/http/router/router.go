package router

import (
	"github.com/gin-gonic/gin"

	"knowvalue.app/server/internal/http/handler"
	"knowvalue.app/server/internal/http/handler/webhook"
	"knowvalue.app/server/internal/http/middleware"
	"knowvalue.app/server/internal/metrics"
	"knowvalue.app/server/internal/service"
)

type RouterConfig struct {
	DashboardURL string
	IsProduction bool
	Metrics      *metrics.Metrics
	// LimiterPool throttles mutating API routes; nil disables rate limiting.
	LimiterPool *middleware.LimiterPool
	// LocalUploadsDir is served under /uploads when images are stored on disk.
	LocalUploadsDir string
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	if cfg.LocalUploadsDir != "" {
		router.Static("/uploads", cfg.LocalUploadsDir)
	}

	authService := services.Auth()
	requireAuth := middleware.RequireAuth(authService)
	optionalAuth := middleware.OptionalAuth(authService)
	limit := rateLimit(cfg.LimiterPool)

	authHandler := handler.NewAuthHandler(authService, cfg.DashboardURL, cfg.IsProduction)
	AuthRouter(router.Group("/auth"), authHandler, requireAuth)

	stripeHandler := webhook.NewStripeWebhookHandler(services.Payments())
	WebhookRouter(router.Group("/webhooks"), stripeHandler)

	v1 := router.Group("/api/v1")
	{
		categoryHandler := handler.NewCategoryHandler(services.Categories())
		v1.GET("/categories", categoryHandler.List)

		questionHandler := handler.NewQuestionHandler(services.Questions())
		QuestionRouter(v1.Group("/questions"), questionHandler, requireAuth, optionalAuth, limit)

		answerHandler := handler.NewAnswerHandler(services.Answers())
		engagementHandler := handler.NewEngagementHandler(services.Engagement())
		AnswerRouter(v1.Group("/answers"), answerHandler, engagementHandler, requireAuth, optionalAuth, limit)

		negotiationHandler := handler.NewNegotiationHandler(services.Negotiations())
		NegotiationRouter(v1.Group("/negotiations", requireAuth, limit), negotiationHandler)

		bestAnswerHandler := handler.NewBestAnswerHandler(services.BestAnswers())
		v1.POST("/best-answer", requireAuth, limit, bestAnswerHandler.Select)

		notificationHandler := handler.NewNotificationHandler(services.Notifications())
		NotificationRouter(v1.Group("/notifications", requireAuth), notificationHandler)
		v1.GET("/unread-count", requireAuth, notificationHandler.UnreadCount)

		userHandler := handler.NewUserHandler(services.Users())
		MeRouter(v1.Group("/me", requireAuth), userHandler, questionHandler, answerHandler, limit)
	}
}

func rateLimit(pool *middleware.LimiterPool) gin.HandlerFunc {
	if pool == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(pool)
}
