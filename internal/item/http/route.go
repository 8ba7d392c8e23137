package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers item and comment routes.
// Search is public; everything else needs the sharer header.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, sharerMiddleware gin.HandlerFunc) {
	group := g.Group("/items")

	group.GET("/search", h.Search)

	group.Use(sharerMiddleware)
	{
		group.GET("", h.ListOwned)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.POST("/:id/comment", h.AddComment)
	}
}
