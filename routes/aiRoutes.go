package routes

import (
	"cityfix-be/controllers"
	"cityfix-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AIRoutes sets up the image analysis routes
func AIRoutes(r *gin.Engine, dailyLimit int) {
	aiGroup := r.Group("/api/ai", middlewares.AuthMiddleware())
	{
		aiGroup.POST("/analyze", middlewares.ReportRateLimiter(dailyLimit), controllers.AnalyzeImage)
	}
}
