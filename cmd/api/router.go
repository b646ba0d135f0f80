package main

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/view"
	"library-catalog/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(view.Templates())

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
	)
	if c.RateLimiter != nil {
		router.Use(c.RateLimiter.Middleware())
	}

	router.NoRoute(func(ctx *gin.Context) {
		view.NotFound(ctx, "Page not found")
	})
	router.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/catalog")
	})

	catalog := router.Group("/catalog")
	{
		catalog.GET("", c.CatalogHandler.Index)
		catalog.GET("/books/export", c.CatalogHandler.ExportBooks)

		setupAuthorRoutes(catalog, c)
		setupGenreRoutes(catalog, c)
		setupBookRoutes(catalog, c)
		setupBookInstanceRoutes(catalog, c)
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))
		v1.GET("/catalog/summary", c.CatalogHandler.Summary)
	}

	return router
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(catalog *gin.RouterGroup, c *container.Container) {
	catalog.GET("/authors", c.AuthorHandler.List)

	author := catalog.Group("/author")
	{
		author.GET("/create", c.AuthorHandler.CreateForm)
		author.POST("/create", c.AuthorHandler.Create)
		author.GET("/:id", c.AuthorHandler.Detail)
		author.GET("/:id/update", c.AuthorHandler.UpdateForm)
		author.POST("/:id/update", c.AuthorHandler.Update)
		author.GET("/:id/delete", c.AuthorHandler.DeleteForm)
		author.POST("/:id/delete", c.AuthorHandler.Delete)
	}
}

// ========================================
// GENRE ROUTES
// ========================================
func setupGenreRoutes(catalog *gin.RouterGroup, c *container.Container) {
	catalog.GET("/genres", c.GenreHandler.List)

	genre := catalog.Group("/genre")
	{
		genre.GET("/create", c.GenreHandler.CreateForm)
		genre.POST("/create", c.GenreHandler.Create)
		genre.GET("/:id", c.GenreHandler.Detail)
		genre.GET("/:id/update", c.GenreHandler.UpdateForm)
		genre.POST("/:id/update", c.GenreHandler.Update)
		genre.GET("/:id/delete", c.GenreHandler.DeleteForm)
		genre.POST("/:id/delete", c.GenreHandler.Delete)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(catalog *gin.RouterGroup, c *container.Container) {
	catalog.GET("/books", c.BookHandler.List)

	book := catalog.Group("/book")
	{
		book.GET("/create", c.BookHandler.CreateForm)
		book.POST("/create", c.BookHandler.Create)
		book.GET("/:id", c.BookHandler.Detail)
		book.GET("/:id/update", c.BookHandler.UpdateForm)
		book.POST("/:id/update", c.BookHandler.Update)
		book.GET("/:id/delete", c.BookHandler.DeleteForm)
		book.POST("/:id/delete", c.BookHandler.Delete)
	}
}

// ========================================
// BOOK INSTANCE ROUTES
// ========================================
func setupBookInstanceRoutes(catalog *gin.RouterGroup, c *container.Container) {
	catalog.GET("/bookinstances", c.InstanceHandler.List)

	instance := catalog.Group("/bookinstance")
	{
		instance.GET("/create", c.InstanceHandler.CreateForm)
		instance.POST("/create", c.InstanceHandler.Create)
		instance.GET("/:id", c.InstanceHandler.Detail)
		instance.GET("/:id/update", c.InstanceHandler.UpdateForm)
		instance.POST("/:id/update", c.InstanceHandler.Update)
		instance.GET("/:id/delete", c.InstanceHandler.DeleteForm)
		instance.POST("/:id/delete", c.InstanceHandler.Delete)
	}
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		services, healthy := appCtx.Health(ctx)
		if !healthy {
			response.ServiceUnavailable(c, degradedMessage(services))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"store":     appCtx.Config.Store.Driver,
			"services":  services,
		})
	}
}

// degradedMessage names every service not reporting ok or disabled, in a stable order.
func degradedMessage(services map[string]string) string {
	failing := lo.FilterMap(lo.Keys(services), func(name string, _ int) (string, bool) {
		state := services[name]
		return name + ": " + state, state != "ok" && state != "disabled"
	})
	sort.Strings(failing)
	return "degraded: " + strings.Join(failing, "; ")
}
