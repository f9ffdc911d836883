package handler

import "github.com/gin-gonic/gin"

// All endpoints answer with the same envelope; nothing throws across this
// boundary.
func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondErr(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}
