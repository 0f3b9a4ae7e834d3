// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"plantheon/internal/delivery/http/middleware"
	"plantheon/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	GardenHandler     *handler.GardenHandler
	BookingHandler    *handler.BookingHandler
	AccountHandler    *handler.AccountHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	gardenHandler     *handler.GardenHandler
	bookingHandler    *handler.BookingHandler
	accountHandler    *handler.AccountHandler
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		gardenHandler:     params.GardenHandler,
		bookingHandler:    params.BookingHandler,
		accountHandler:    params.AccountHandler,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	// Health check endpoint
	api.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/google", r.authHandler.GoogleExchange)
		authGroup.GET("/google/url", r.authHandler.SignInURL)
		authGroup.GET("/callback", r.authHandler.Callback)
		authGroup.GET("/session", r.authHandler.Session)
		authGroup.POST("/mock", r.authHandler.MockSignIn)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Catalog routes
	api.GET("/gardens", r.gardenHandler.ListGardens)
	api.GET("/gardens/:id", r.gardenHandler.GetGarden)
	api.GET("/plans", r.gardenHandler.ListPlans)

	// Booking flow routes. Confirm stays unguarded so an anonymous attempt
	// gets the log-in notice without losing the flow's selections.
	flowGroup := api.Group("/booking/flow")
	{
		flowGroup.POST("", r.bookingHandler.StartFlow)
		flowGroup.GET("/:id", r.bookingHandler.GetFlow)
		flowGroup.POST("/:id/garden", r.bookingHandler.SelectGarden)
		flowGroup.POST("/:id/date", r.bookingHandler.SelectDate)
		flowGroup.POST("/:id/time", r.bookingHandler.SelectTime)
		flowGroup.POST("/:id/plan", r.bookingHandler.SelectPlan)
		flowGroup.POST("/:id/back", r.bookingHandler.Back)
		flowGroup.POST("/:id/confirm", r.bookingHandler.Confirm)
	}

	// Dashboard routes that require a signed-in user
	dashboardGroup := api.Group("/dashboard")
	dashboardGroup.Use(r.sessionMiddleware.RequireSession)
	{
		dashboardGroup.GET("/bookings", r.bookingHandler.ListBookings)
		dashboardGroup.GET("/bookings/:id", r.bookingHandler.GetBooking)
		dashboardGroup.POST("/bookings/:id/cancel", r.bookingHandler.CancelBooking)
		dashboardGroup.GET("/profile", r.accountHandler.GetProfile)
		dashboardGroup.PUT("/profile", r.accountHandler.UpdateProfile)
		dashboardGroup.GET("/payment-methods", r.accountHandler.ListPaymentMethods)
		dashboardGroup.POST("/payment-methods", r.accountHandler.AddPaymentMethod)
		dashboardGroup.DELETE("/payment-methods/:id", r.accountHandler.RemovePaymentMethod)
		dashboardGroup.POST("/payment-methods/:id/default", r.accountHandler.SetDefaultPaymentMethod)
		dashboardGroup.GET("/payment-history", r.accountHandler.ListPaymentHistory)
		dashboardGroup.DELETE("/account", r.accountHandler.DeleteAccount)
	}
}
