package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/goalpilot/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Goal     *apiHandler.GoalHandler
	Task     *apiHandler.TaskHandler
	Insights *apiHandler.InsightsHandler
	Profile  *apiHandler.ProfileHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Health)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", authMiddleware(handlers.Auth.Logout))

	// Goal routes
	r.POST("/api/v1/goals/generate", authMiddleware(handlers.Goal.Generate))
	r.GET("/api/v1/goals", authMiddleware(handlers.Goal.List))
	r.POST("/api/v1/goals", authMiddleware(handlers.Goal.Create))
	r.GET("/api/v1/goals/{id}", authMiddleware(handlers.Goal.Get))
	r.PATCH("/api/v1/goals/{id}/activate", authMiddleware(handlers.Goal.Activate))
	r.DELETE("/api/v1/goals/{id}", authMiddleware(handlers.Goal.Delete))

	// Task routes
	r.GET("/api/v1/tasks/today", authMiddleware(handlers.Task.Today))
	r.PATCH("/api/v1/tasks/{id}/progress", authMiddleware(handlers.Task.UpdateProgress))

	// Analytics and AI copy
	r.GET("/api/v1/analytics/stats", authMiddleware(handlers.Insights.Stats))
	r.GET("/api/v1/analytics/summary", authMiddleware(handlers.Insights.Summary))
	r.POST("/api/v1/notifications/generate", authMiddleware(handlers.Insights.Notification))

	// Profile routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.Get))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.Update))

	return r
}
