// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"primeform/internal/delivery/http/middleware"
	"primeform/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	PlanHandler         *handler.PlanHandler
	ProgressHandler     *handler.ProgressHandler
	SubscriptionHandler *handler.SubscriptionHandler
	NotificationHandler *handler.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the stub backend, mirroring
// the production API surface the client coordinates against.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	v1 := e.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", r.params.AuthHandler.Signup)
		authGroup.POST("/login", r.params.AuthHandler.Login)
		authGroup.POST("/logout", r.params.AuthHandler.Logout)
	}

	protected := v1.Group("")
	protected.Use(r.params.AuthMiddleware.Authenticate)
	{
		protected.GET("/users/me", r.params.UserHandler.Me)
		protected.PATCH("/users/me", r.params.UserHandler.UpdateMe)
		protected.POST("/users/onboarding", r.params.UserHandler.SubmitOnboarding)

		protected.GET("/diet-plans/current", r.params.PlanHandler.CurrentDietPlan)
		protected.POST("/diet-plans/generate", r.params.PlanHandler.GenerateDietPlan)
		protected.GET("/workout-plans/current", r.params.PlanHandler.CurrentWorkoutPlan)
		protected.POST("/workout-plans/generate", r.params.PlanHandler.GenerateWorkoutPlan)

		protected.POST("/completions", r.params.ProgressHandler.CreateCompletion)
		protected.GET("/completions", r.params.ProgressHandler.ListCompletions)
		protected.GET("/streaks/:planType", r.params.ProgressHandler.GetStreak)

		protected.GET("/subscriptions/current", r.params.SubscriptionHandler.Current)
		protected.POST("/subscriptions", r.params.SubscriptionHandler.Subscribe)

		protected.GET("/notifications", r.params.NotificationHandler.List)
		protected.PATCH("/notifications/:id/read", r.params.NotificationHandler.MarkRead)
	}
}
