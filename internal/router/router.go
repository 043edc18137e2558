package router

import (
	"github.com/mastercodercat/coffee-swap-protocol/internal/auth"
	"github.com/mastercodercat/coffee-swap-protocol/internal/middleware"
	"github.com/mastercodercat/coffee-swap-protocol/internal/shop"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(authHandler *auth.Handler, shopHandler *shop.Handler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.Default())

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public auth routes
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// Public shop queries
	shops := r.Group("/shops")
	{
		shops.GET("/:key/owner", shopHandler.Owner)
		shops.GET("/:key/menu", shopHandler.Menu)
		shops.GET("/:key/recipes", shopHandler.Recipes)
		shops.GET("/:key/ingredients", shopHandler.Ingredients)
		shops.GET("/:key/menu/:id/price", shopHandler.Price)
	}

	r.GET("/balances/:address", shopHandler.Balance)

	// Authenticated routes: instantiation, owner mutations, purchases
	protected := r.Group("/shops")
	protected.Use(middleware.AuthMiddleware(), middleware.RequireAddress())
	{
		protected.POST("", shopHandler.CreateShop)
		protected.PUT("/:key/menu/:id/price", shopHandler.SetPrice)
		protected.POST("/:key/ingredients", shopHandler.LoadIngredients)
		protected.POST("/:key/purchases", shopHandler.BuyCoffee)
	}

	return r
}
