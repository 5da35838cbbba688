package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nmwangi/duka-api/controllers"
	"github.com/nmwangi/duka-api/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	products := server.Group("/api/products")
	{
		products.GET("", controllers.GetProducts)
		products.GET("/categories", controllers.GetCategories)
		products.GET("/low-stock", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.GetLowStockProducts)
		products.GET("/:id", controllers.GetProduct)

		products.POST("", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.CreateProduct)
		products.PUT("/:id", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.UpdateProduct)
		products.DELETE("/:id", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.DeleteProduct)
		products.POST("/:id/image", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.UploadProductImage)
	}
}
