package routes

import (
	"net/http"

	"qa-forum/config"
	"qa-forum/handlers"
	"qa-forum/helper"
	"qa-forum/middleware"
	"qa-forum/models"
	"qa-forum/monitoring"
	"qa-forum/repositories"
	"qa-forum/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter wires the services on top of store and mounts every route
// under /api/v1.
func SetupRouter(cfg *config.Config, store *repositories.Store, log *zap.Logger) *gin.Engine {
	validator := helper.NewValidator()

	authService := services.NewAuthService(store, validator, cfg.JWT)
	profileService := services.NewProfileService(store, validator)
	questionService := services.NewQuestionService(store, validator)
	answerService := services.NewAnswerService(store, validator)
	voteService := services.NewVoteService(store)
	tagService := services.NewTagService(store, validator)
	queryService := services.NewQueryService(store)

	authHandler := handlers.NewAuthHandler(authService, profileService)
	questionHandler := handlers.NewQuestionHandler(questionService, queryService)
	answerHandler := handlers.NewAnswerHandler(answerService, queryService)
	voteHandler := handlers.NewVoteHandler(voteService)
	tagHandler := handlers.NewTagHandler(tagService, queryService)
	memberHandler := handlers.NewMemberHandler(queryService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())
	router.Use(monitoring.MetricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", monitoring.PrometheusHandler())

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		v1.GET("/questions", questionHandler.NewestQuestions)
		v1.GET("/questions/hot", questionHandler.HottestQuestions)
		v1.GET("/questions/:id", questionHandler.GetQuestion)
		v1.GET("/questions/:id/answers", answerHandler.AnswersByQuestion)
		v1.GET("/tags/popular", tagHandler.PopularTags)
		v1.GET("/tags/:name/questions", questionHandler.QuestionsByTag)
		v1.GET("/members/best", memberHandler.BestMembers)

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
		protected.Use(middleware.RateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
			protected.DELETE("/profile", authHandler.DeleteProfile)

			questions := protected.Group("/questions")
			{
				questions.POST("", questionHandler.AskQuestion)
				questions.DELETE("/:id", questionHandler.DeleteQuestion)
				questions.POST("/:id/tags", questionHandler.AttachTags)
				questions.POST("/:id/answers", answerHandler.CreateAnswer)
				questions.POST("/:id/vote", voteHandler.VoteQuestion)
				questions.DELETE("/:id/vote", voteHandler.RetractQuestionVote)
			}

			answers := protected.Group("/answers")
			{
				answers.DELETE("/:id", answerHandler.DeleteAnswer)
				answers.POST("/:id/correct", answerHandler.ToggleCorrect)
				answers.POST("/:id/vote", voteHandler.VoteAnswer)
				answers.DELETE("/:id/vote", voteHandler.RetractAnswerVote)
			}

			tags := protected.Group("/tags")
			{
				tags.POST("", middleware.RequireRole(models.RoleAdmin), tagHandler.CreateTag)
				tags.GET("", tagHandler.GetTags)
				tags.GET("/:name", tagHandler.GetTag)
			}
		}
	}

	return router
}
