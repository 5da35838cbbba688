package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nmwangi/duka-api/controllers"
	"github.com/nmwangi/duka-api/middlewares"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/api/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/signin", controllers.Signin)
		auth.GET("/me", middlewares.RequireAuth(), controllers.GetCurrentUser)
	}
}
