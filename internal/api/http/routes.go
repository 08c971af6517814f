package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every endpoint on router
func RegisterRoutes(router gin.IRouter, h *Handlers) {
	router.GET("/health", h.Health)

	// Discovery
	router.GET("/folders", h.ListFolders)
	router.GET("/images", h.ListImages)
	router.GET("/siblings", h.Siblings)
	router.GET("/neighbors", h.Neighbors)
	router.GET("/thumbnail", h.Thumbnail)
	router.GET("/image", h.Image)

	// Archives
	archives := router.Group("/archives")
	archives.GET("", h.ListArchives)
	archives.GET("/entries", h.ListEntries)
	archives.POST("/extract", h.ExtractArchive)
	archives.POST("/open", h.OpenArchive)
}
