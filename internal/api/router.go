package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stackit-hq/stackit-api/internal/api/handler"
	"github.com/stackit-hq/stackit-api/internal/api/middleware"
	"github.com/stackit-hq/stackit-api/internal/core/domain"
	"github.com/stackit-hq/stackit-api/internal/core/ports"
)

// Services bundles the use-case implementations the router wires to
// handlers.
type Services struct {
	Auth     ports.AuthService
	Composer ports.QuestionService
	Feed     ports.FeedService
	Detail   ports.DetailService
	Admin    ports.AdminService
}

// Options carries the remaining router dependencies.
type Options struct {
	JWTSecret string
	Mongo     *mongo.Database
	Redis     *redis.Client
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("stackit"))

	authMiddleware := middleware.Auth(opts.JWTSecret)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	questionHandler := handler.NewQuestionHandler(svc.Composer, svc.Feed, svc.Detail)
	answerHandler := handler.NewAnswerHandler(svc.Detail)
	adminHandler := handler.NewAdminHandler(svc.Admin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)
	e.POST("/auth/reset-password", authHandler.ResetPassword)
	e.POST("/auth/reset-password/confirm", authHandler.ConfirmResetPassword)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/profile", authHandler.Profile)
	v1.GET("/questions", questionHandler.List)
	v1.POST("/questions", questionHandler.Create)
	v1.GET("/questions/:id", questionHandler.Get)
	v1.POST("/questions/:id/votes", answerHandler.VoteQuestion)
	v1.POST("/questions/:id/answers", answerHandler.AddAnswer)
	v1.POST("/answers/:id/votes", answerHandler.VoteAnswer)
	v1.POST("/answers/:id/accept", answerHandler.Accept)
	v1.POST("/answers/:id/comments", answerHandler.AddComment)

	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.Mongo, opts.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
