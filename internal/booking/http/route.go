package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, sharerMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.Use(sharerMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.ListMine)
		group.GET("/owner", h.ListOwned)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Confirm)
	}
}
