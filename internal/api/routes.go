package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"speechcoach/internal/utils"
)

// RegisterRoutes attaches all handlers to the router
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.POST("/analyze-speech", h.analyzeSpeech)

	r.GET("/api/analysis/:id", h.getAnalysis)
	r.GET("/api/download/:id", h.downloadAudio)
	r.GET("/api/health", h.healthCheck)

	r.NoRoute(func(c *gin.Context) {
		utils.Error(c, http.StatusNotFound, "Not found", "the requested route does not exist")
	})
}
