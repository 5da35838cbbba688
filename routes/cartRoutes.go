package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nmwangi/duka-api/controllers"
	"github.com/nmwangi/duka-api/middlewares"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/api/cart", middlewares.RequireAuth())
	{
		cart.GET("", controllers.GetCart)
		cart.POST("/add", controllers.AddToCart)
		cart.PUT("/update/:itemId", controllers.UpdateCartItem)
		cart.DELETE("/remove/:itemId", controllers.RemoveFromCart)
		cart.DELETE("/clear", controllers.ClearCart)
	}
}
