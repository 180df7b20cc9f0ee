package utils

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, data gin.H) {
	data["success"] = true
	c.JSON(200, data)
}

func Error(c *gin.Context, status int, code, msg string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   code,
		"message": msg,
	})
}
