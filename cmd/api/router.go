package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
	"library-catalog/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares. Identity resolves the bearer token into a
	// user (or leaves the request anonymous); it never rejects.
	// Authorization happens per handler.
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.Identity(c.JWTManager, c.IdentityRepo),
	)

	router.GET("/health", healthCheckHandler(c))

	setupAuthRoutes(router, c)
	setupBookRoutes(router, c)
	setupAuthorRoutes(router, c)
	setupArticleRoutes(router, c)
	setupViewRoutes(router, c)

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(r *gin.Engine, c *container.Container) {
	auth := r.Group("/auth")
	{
		auth.POST("/register/", c.AuthHandler.Register)
		auth.POST("/login/", c.AuthHandler.Login)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(r *gin.Engine, c *container.Container) {
	books := r.Group("/books")
	{
		books.GET("/", c.BookHandler.List)
		books.POST("/create/", c.BookHandler.Create)
		books.GET("/:id/", c.BookHandler.GetByID)
		books.PUT("/:id/update/", c.BookHandler.Update)
		books.PATCH("/:id/update/", c.BookHandler.Update)
		books.DELETE("/:id/delete/", c.BookHandler.Delete)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(r *gin.Engine, c *container.Container) {
	authors := r.Group("/authors")
	{
		authors.GET("/", c.AuthorHandler.List)
		authors.POST("/create/", c.AuthorHandler.Create)
		authors.GET("/:id/", c.AuthorHandler.GetByID)
		authors.DELETE("/:id/delete/", c.AuthorHandler.Delete)
	}
}

// ========================================
// ARTICLE ROUTES
// ========================================
func setupArticleRoutes(r *gin.Engine, c *container.Container) {
	articles := r.Group("/articles")
	{
		articles.GET("/", c.ArticleHandler.List)
		articles.POST("/create/", c.ArticleHandler.Create)
		articles.GET("/:id/", c.ArticleHandler.GetByID)
		articles.PUT("/:id/edit/", c.ArticleHandler.Update)
		articles.PATCH("/:id/edit/", c.ArticleHandler.Update)
		articles.DELETE("/:id/delete/", c.ArticleHandler.Delete)
	}
}

// ========================================
// ROLE VIEW ROUTES
// ========================================
func setupViewRoutes(r *gin.Engine, c *container.Container) {
	views := r.Group("/views")
	{
		views.GET("/admin/", c.ViewsHandler.Admin)
		views.GET("/librarian/", c.ViewsHandler.Librarian)
		views.GET("/member/", c.ViewsHandler.Member)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "Database is unreachable")
			return
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down"
		}

		response.Success(ctx, http.StatusOK, "Healthy", gin.H{
			"version":  c.Config.App.Version,
			"database": "up",
			"cache":    cacheStatus,
		})
	}
}
