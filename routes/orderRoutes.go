package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nmwangi/duka-api/controllers"
	"github.com/nmwangi/duka-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/api/orders", middlewares.RequireAuth())
	{
		orders.POST("/checkout", controllers.Checkout)
		orders.GET("", controllers.GetOrders)
		orders.GET("/:id", controllers.GetOrder)
		orders.PUT("/:id/cancel", controllers.CancelOrder)

		orders.PUT("/:id/confirm", middlewares.RequireAdmin(), controllers.ConfirmOrder)
		orders.PUT("/:id/ship", middlewares.RequireAdmin(), controllers.ShipOrder)
		orders.PUT("/:id/deliver", middlewares.RequireAdmin(), controllers.DeliverOrder)
	}
}
