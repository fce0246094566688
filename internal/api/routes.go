package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.GET("/properties", handler.GetProperties)
		api.GET("/properties/:id", handler.GetPropertyByID)
		api.POST("/properties", handler.IngestProperties)

		api.GET("/inquiries", handler.GetInquiries)
		api.POST("/inquiries/:id/response", handler.RespondInquiry)
		api.POST("/inquiries/:id/archive", handler.ArchiveInquiry)
		api.DELETE("/inquiries/:id", handler.DeleteInquiry)

		api.GET("/favorites", handler.GetFavorites)
		api.POST("/favorites/:id/toggle", handler.ToggleFavorite)

		api.GET("/map", handler.GetMapData)
		api.GET("/locations", handler.GetLocations)
	}
}
