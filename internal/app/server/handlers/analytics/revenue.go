package analytics

import (
	"github.com/gin-gonic/gin"

	"sip/dpanalytics/internal/app/domains/apimodel/response"
	"sip/dpanalytics/internal/app/domains/repo/rpanalytics"
	"sip/dpanalytics/internal/app/pkg/ginx"
	"sip/dpanalytics/internal/app/server/middlewares"
)

// revenueTrendsQuery 收入趋势查询参数
type revenueTrendsQuery struct {
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	GroupBy   string `form:"groupBy" binding:"omitempty,oneof=day week month"`
}

// GetRevenueTrends godoc
// @Summary      收入趋势
// @Description  按日/周/月时间桶聚合收入和订单数，直接由存储聚合，
// @Description  不经过统计引擎；日期区间两端均为闭区间
// @Tags         analytics
// @Produce      json
// @Param        X-Tenant-ID header string true "租户ID"
// @Param        startDate query string false "起始日期（YYYY-MM-DD）"
// @Param        endDate query string false "结束日期（YYYY-MM-DD）"
// @Param        groupBy query string false "时间桶粒度（day/week/month，默认 day）"
// @Success      200 {object} ginx.Response{data=[]response.RevenueTrendResponse} "趋势点列表"
// @Failure      400 {object} ginx.Response "参数错误"
// @Failure      500 {object} ginx.Response "提取失败"
// @Router       /analytics/revenue/trends [get]
func (h *AnalyticsHandler) GetRevenueTrends(c *gin.Context) {
	tenantID := middlewares.TenantID(c)

	var query revenueTrendsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}
	if query.GroupBy == "" {
		query.GroupBy = "day"
	}

	points, err := h.analyticsService.GetRevenueTrends(c.Request.Context(), tenantID, rpanalytics.RevenueTrendQuery{
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		GroupBy:   query.GroupBy,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.Success(c, response.FromRevenueTrendPoints(points))
}
