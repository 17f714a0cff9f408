// Package router assembles the gin engine: middleware chain, route groups
// and the health endpoint.
package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell-server/internal/api/http/handler"
	"github.com/inkwell/inkwell-server/internal/api/http/middleware"
	"github.com/inkwell/inkwell-server/internal/logger"
	"github.com/inkwell/inkwell-server/internal/service"
)

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router wires handlers and middleware into an HTTP handler.
type Router struct {
	authHandler  *handler.Auth
	postHandler  *handler.Post
	logging      *middleware.Logging
	authenticate *middleware.Authenticate
	pinger       Pinger
}

// New creates a Router over the application services.
func New(
	authService *service.Auth,
	postService *service.Post,
	tokenService *service.TokenService,
	pinger Pinger,
	logger *logger.Logger,
) *Router {
	return &Router{
		authHandler:  handler.NewAuth(authService, tokenService),
		postHandler:  handler.NewPost(postService),
		logging:      middleware.NewLogging(logger),
		authenticate: middleware.NewAuthenticate(authService, logger),
		pinger:       pinger,
	}
}

// Handler builds the gin engine. Every route resolves the optional caller;
// mutating routes additionally require one.
func (r *Router) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(r.logging.Handle())

	engine.GET("/health", r.health)

	v1 := engine.Group("/api/v1")
	v1.Use(r.authenticate.Resolve())
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/refresh", r.authHandler.Refresh)
			auth.POST("/logout", r.authHandler.Logout)
			auth.POST("/logout-all", middleware.RequireCaller(), r.authHandler.LogoutAll)
		}

		v1.GET("/me", middleware.RequireCaller(), r.authHandler.Me)
		v1.GET("/users/:id", r.authHandler.GetUser)
		v1.GET("/users/:id/posts", r.postHandler.ListByAuthor)

		posts := v1.Group("/posts")
		{
			posts.GET("", r.postHandler.List)
			posts.GET("/search", r.postHandler.Search)
			posts.GET("/slug/:slug", r.postHandler.GetBySlug)
			posts.GET("/:id", r.postHandler.Get)

			posts.POST("", middleware.RequireCaller(), r.postHandler.Create)
			posts.PATCH("/:id", middleware.RequireCaller(), r.postHandler.Update)
			posts.DELETE("/:id", middleware.RequireCaller(), r.postHandler.Delete)
			posts.POST("/:id/publish", middleware.RequireCaller(), r.postHandler.Publish)
			posts.POST("/:id/unpublish", middleware.RequireCaller(), r.postHandler.Unpublish)
		}
	}

	return engine
}

func (r *Router) health(c *gin.Context) {
	if err := r.pinger.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
