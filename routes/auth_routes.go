package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/media-blog/api-go/controllers"
)

func SetupAuthRoutes(public *gin.RouterGroup, authController *controllers.AuthController) {
	token := public.Group("/token")
	{
		token.POST("/", authController.ObtainToken)
		token.POST("/refresh/", authController.RefreshToken)
		token.POST("/blacklist/", authController.Logout)
	}
}
