package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/middleware"
	"library-catalog/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")

	// Every v1 request runs through identity resolution: an absent
	// credential yields an unauthenticated context, an invalid one is
	// a hard 401 before any handler runs.
	v1.Use(middleware.Identity(c.JWTManager, c.UserService))

	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupCatalogRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupEventRoutes(v1, c)
	}

	return router
}

// ========================================
// CATALOG ROUTES
// ========================================
func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/books", c.CatalogHandler.AllBooks)
	v1.GET("/books/count", c.CatalogHandler.BookCount)
	v1.POST("/books", c.CatalogHandler.AddBook)

	v1.GET("/authors", c.CatalogHandler.AllAuthors)
	v1.GET("/authors/count", c.CatalogHandler.AuthorCount)
	v1.PATCH("/authors", c.CatalogHandler.EditAuthor)
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/users", c.UserHandler.CreateUser)
	v1.POST("/login", c.UserHandler.Login)
	v1.GET("/me", c.UserHandler.Me)
}

// ========================================
// EVENT ROUTES
// ========================================
func setupEventRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/events", c.EventsHandler.Subscribe)
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"name":    c.Config.App.Name,
			"version": c.Config.App.Version,
		})
	}
}
