package routers

import (
	"github.com/gin-gonic/gin"

	"sip/dpanalytics/internal/app/domains/repo/rptenant"
	"sip/dpanalytics/internal/app/pkg/logger"
	"sip/dpanalytics/internal/app/server/handlers/analytics"
	"sip/dpanalytics/internal/app/server/middlewares"
)

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(
	analyticsHandler *analytics.AnalyticsHandler,
	tenantRepo rptenant.TenantRepository,
	log logger.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.ErrorHandler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "dpanalytics",
			"message": "Service is running",
		})
	})

	v1 := r.Group("/api/v1")
	{
		// 所有分析接口都要求显式租户标识
		analyticsGroup := v1.Group("/analytics")
		analyticsGroup.Use(middlewares.Tenant(tenantRepo, log))
		{
			analyticsGroup.GET("/eda", analyticsHandler.GetEDA)
			analyticsGroup.GET("/segmentation", analyticsHandler.GetSegmentation)
			analyticsGroup.GET("/segmentation/chart", analyticsHandler.GetSegmentationChart)
			analyticsGroup.GET("/forecast", analyticsHandler.GetForecast)
			analyticsGroup.GET("/forecast/chart", analyticsHandler.GetForecastChart)
			analyticsGroup.GET("/overview", analyticsHandler.GetOverview)
			analyticsGroup.GET("/revenue/trends", analyticsHandler.GetRevenueTrends)
			analyticsGroup.GET("/customers/top", analyticsHandler.GetTopCustomers)
		}
	}

	return r
}
