package routes

import (
	"cityfix-be/controllers"
	"cityfix-be/middlewares"

	"github.com/gin-gonic/gin"
)

// ReportRoutes sets up the report routes
func ReportRoutes(r *gin.Engine, dailyLimit int) {
	reports := r.Group("/api/reports", middlewares.AuthMiddleware())
	{
		reports.POST("", middlewares.ReportRateLimiter(dailyLimit), controllers.CreateReport)
		reports.GET("", controllers.GetUserReports)
		reports.GET("/community/feed", controllers.GetCommunityFeed)
		reports.GET("/:id", controllers.GetReportByID)
		reports.PUT("/:id", controllers.UpdateReport)
	}
}
