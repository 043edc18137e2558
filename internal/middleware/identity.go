package middleware

import "github.com/gin-gonic/gin"

// RequireAddress guards routes that need a payment identity attached by
// AuthMiddleware. Owner checks themselves happen in the shop service
// against the stored owner address.
func RequireAddress() gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.GetString("address")
		if address == "" {
			c.AbortWithStatusJSON(403, gin.H{"error": "payment address missing"})
			return
		}
		c.Next()
	}
}
