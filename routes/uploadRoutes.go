package routes

import (
	"cityfix-be/controllers"
	"cityfix-be/middlewares"

	"github.com/gin-gonic/gin"
)

// UploadRoutes sets up the image upload routes. Retrieval is public so
// stored images can be rendered without credentials.
func UploadRoutes(r *gin.Engine) {
	uploads := r.Group("/api/uploads")
	{
		uploads.POST("", middlewares.AuthMiddleware(), controllers.UploadImage)
		uploads.GET("/:id", controllers.GetUpload)
	}
}
