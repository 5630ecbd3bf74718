package router

import (
	"net/http"
	"time"

	"github.com/examportal/examportal-backend/internal/config"
	"github.com/examportal/examportal-backend/internal/handler"
	"github.com/examportal/examportal-backend/internal/middleware"
	"github.com/examportal/examportal-backend/internal/response"
	"github.com/examportal/examportal-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Question   *handler.QuestionHandler
	Exam       *handler.ExamHandler
	HallTicket *handler.HallTicketHandler
	Candidate  *handler.CandidateHandler
	AdminUser  *handler.AdminUserHandler
	Monitor    *handler.MonitorHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// CORS: restrict to the configured list when set, otherwise allow all so
	// dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for the login route.
	authLimiter := middleware.NewRateLimiter(cfg.AuthRatePerMinute, time.Minute)

	// Auth group.
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)
		auth.GET("/me", middleware.RequireAnyJWT(authService), handlers.Auth.Me)
		auth.POST("/logout",
			middleware.RequireCandidateJWT(authService),
			handlers.Auth.Logout,
		)
	}

	// Questions group. Listing is open to both principals; everything else
	// splits by token type.
	questions := router.Group("/api/v1/questions")
	{
		questions.GET("",
			middleware.RequireAnyJWT(authService),
			middleware.CheckSingleDeviceSession(authService),
			handlers.Question.List,
		)
		questions.GET("/random",
			middleware.RequireCandidateJWT(authService),
			middleware.CheckSingleDeviceSession(authService),
			handlers.Question.Random,
		)

		questions.GET("/:id", middleware.RequireAdminJWT(authService), handlers.Question.Get)
		questions.POST("", middleware.RequireAdminJWT(authService), handlers.Question.Create)
		questions.POST("/bulk", middleware.RequireAdminJWT(authService), handlers.Question.BulkCreate)
		questions.PUT("/:id", middleware.RequireAdminJWT(authService), handlers.Question.Update)
		questions.DELETE("/:id", middleware.RequireAdminJWT(authService), handlers.Question.Delete)
	}

	// Exams group.
	exams := router.Group("/api/v1/exams")
	{
		exams.POST("/submit",
			middleware.RequireCandidateJWT(authService),
			middleware.CheckSingleDeviceSession(authService),
			handlers.Exam.Submit,
		)
		exams.GET("/results/me",
			middleware.RequireCandidateJWT(authService),
			middleware.CheckSingleDeviceSession(authService),
			handlers.Exam.MyResults,
		)

		exams.GET("/results", middleware.RequireAdminJWT(authService), handlers.Exam.AllResults)
		exams.GET("/results/:id",
			middleware.RequireAnyJWT(authService),
			middleware.CheckSingleDeviceSession(authService),
			handlers.Exam.GetResult,
		)
		exams.DELETE("/results/:id", middleware.RequireAdminJWT(authService), handlers.Exam.DeleteResult)
		exams.GET("/statistics", middleware.RequireAdminJWT(authService), handlers.Exam.Statistics)
	}

	// Hall ticket utilities (admin only).
	hallTicket := router.Group("/api/v1/hall-ticket")
	hallTicket.Use(middleware.RequireAdminJWT(authService))
	{
		hallTicket.GET("/generate", handlers.HallTicket.Generate)
		hallTicket.GET("/validate/:ticket", handlers.HallTicket.Validate)
		hallTicket.GET("/parse/:ticket", handlers.HallTicket.Parse)
	}

	// Candidate management (admin only).
	candidates := router.Group("/api/v1/candidates")
	candidates.Use(middleware.RequireAdminJWT(authService))
	{
		candidates.GET("", handlers.Candidate.List)
		candidates.POST("", handlers.Candidate.Create)
		candidates.GET("/:id", handlers.Candidate.Get)
		candidates.PUT("/:id", handlers.Candidate.Update)
		candidates.DELETE("/:id", handlers.Candidate.Delete)
		candidates.POST("/:id/reset-session", handlers.Candidate.ResetSession)
	}

	// Admin account management (admin only).
	admins := router.Group("/api/v1/admins")
	admins.Use(middleware.RequireAdminJWT(authService))
	{
		admins.GET("", handlers.AdminUser.List)
		admins.POST("", handlers.AdminUser.Create)
		admins.PUT("/:id", handlers.AdminUser.Update)
		admins.DELETE("/:id", handlers.AdminUser.Delete)
	}

	// WebSocket group (admin WS auth via ?token=).
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAdminWSAuth(authService))
	{
		ws.GET("/admin/monitor", handlers.Monitor.Stream)
	}

	return router
}
