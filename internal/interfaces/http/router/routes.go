package router

import (
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/watchlist/backend/docs"
	"github.com/watchlist/backend/internal/interfaces/http/handler"
)

// MovieRoutes builds the watchlist group. The list is served both with and
// without a trailing slash so neither form redirects; a trailing slash on
// basePath is ignored. middleware applies to the watchlist routes only.
func MovieRoutes(basePath string, h *handler.MovieHandler, middleware ...gin.HandlerFunc) *DomainGroup {
	prefix := strings.TrimRight(basePath, "/")
	g := NewDomainGroup(prefix).Use(middleware...)
	if prefix != "" {
		g.GET("", h.List)
	}
	return g.
		GET("/", h.List).
		POST("/add", h.Add).
		POST("/toggle/:id", h.Toggle).
		POST("/delete/:id", h.Delete)
}

// SystemRoutes builds the health and ping endpoints
func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("").
		GET("/health", h.Health).
		GET("/api/ping", h.Ping)
}

// SwaggerRoutes serves the generated API docs under /swagger
func SwaggerRoutes() *DomainGroup {
	return NewDomainGroup("/swagger").
		GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
