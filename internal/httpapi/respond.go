package httpapi

import (
	"github.com/gin-gonic/gin"
)

// respondError writes the JSON error envelope. Every failure path must
// end here so no request is left without a response.
func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
