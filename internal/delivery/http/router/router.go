// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"rately/internal/delivery/http/middleware"
	"rately/internal/delivery/http/router/handler"
	"rately/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AccountHandler *handler.AccountHandler
	StoreHandler   *handler.StoreHandler
	RatingHandler  *handler.RatingHandler
	StatsHandler   *handler.StatsHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	accountHandler *handler.AccountHandler
	storeHandler   *handler.StoreHandler
	ratingHandler  *handler.RatingHandler
	statsHandler   *handler.StatsHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		accountHandler: params.AccountHandler,
		storeHandler:   params.StoreHandler,
		ratingHandler:  params.RatingHandler,
		statsHandler:   params.StatsHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.PUT("/password", r.authHandler.UpdatePassword, r.authMiddleware.Authenticate)
	}

	// Public store directory
	storeGroup := e.Group("/stores")
	{
		storeGroup.GET("", r.storeHandler.List)
		storeGroup.GET("/:id", r.storeHandler.Get)
		storeGroup.GET("/:id/ratings", r.storeHandler.Ratings)
		storeGroup.GET("/:id/stats", r.storeHandler.Stats)
		storeGroup.GET("/:id/qr", r.storeHandler.ShareQR)
	}

	// Store mutations require the store-owner capability
	ownerGroup := e.Group("/stores")
	ownerGroup.Use(r.authMiddleware.Authenticate)
	ownerGroup.Use(r.authMiddleware.RequireRole(entity.RoleStoreOwner, entity.RoleSystemAdmin))
	{
		ownerGroup.POST("", r.storeHandler.Create)
		ownerGroup.PUT("/:id", r.storeHandler.Update)
		ownerGroup.DELETE("/:id", r.storeHandler.Delete)
	}

	// Rating creation requires the rating capability; update and delete stay
	// open to any signed-in caller so admins can moderate, with ownership
	// enforced in the service layer.
	ratingGroup := e.Group("/ratings")
	ratingGroup.Use(r.authMiddleware.Authenticate)
	{
		ratingGroup.POST("", r.ratingHandler.Create,
			r.authMiddleware.RequireRole(entity.RoleNormalUser, entity.RoleSystemAdmin))
		ratingGroup.PUT("/:id", r.ratingHandler.Update)
		ratingGroup.DELETE("/:id", r.ratingHandler.Delete)
		ratingGroup.GET("/mine", r.ratingHandler.ListMine)
	}

	// Profile routes for the signed-in caller
	meGroup := e.Group("/me")
	meGroup.Use(r.authMiddleware.Authenticate)
	{
		meGroup.GET("", r.accountHandler.GetProfile)
		meGroup.PUT("", r.accountHandler.UpdateProfile)
		meGroup.GET("/stores", r.storeHandler.ListMine,
			r.authMiddleware.RequireRole(entity.RoleStoreOwner, entity.RoleSystemAdmin))
	}

	// Admin routes require the SYSTEM_ADMIN role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleSystemAdmin))
	{
		adminGroup.GET("/accounts", r.accountHandler.List)
		adminGroup.POST("/accounts", r.accountHandler.Create)
		adminGroup.GET("/accounts/stats", r.accountHandler.Stats)
		adminGroup.GET("/accounts/:id", r.accountHandler.Get)
		adminGroup.PUT("/accounts/:id", r.accountHandler.Update)
		adminGroup.DELETE("/accounts/:id", r.accountHandler.Delete)
		adminGroup.GET("/ratings", r.ratingHandler.List)
		adminGroup.GET("/stats", r.statsHandler.Platform)
		adminGroup.GET("/dashboard", r.statsHandler.Dashboard)
	}
}
