package analytics

import (
	"github.com/gin-gonic/gin"

	"sip/dpanalytics/internal/app/domains/apimodel/response"
	"sip/dpanalytics/internal/app/pkg/ginx"
	"sip/dpanalytics/internal/app/server/middlewares"
)

// topCustomersQuery Top 客户查询参数
type topCustomersQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// GetOverview godoc
// @Summary      租户数据总览
// @Description  客户/订单/商品计数、总收入、客单价，直接由存储聚合，
// @Description  不经过统计引擎
// @Tags         analytics
// @Produce      json
// @Param        X-Tenant-ID header string true "租户ID"
// @Success      200 {object} ginx.Response{data=response.OverviewResponse} "总览"
// @Failure      500 {object} ginx.Response "提取失败"
// @Router       /analytics/overview [get]
func (h *AnalyticsHandler) GetOverview(c *gin.Context) {
	tenantID := middlewares.TenantID(c)

	stats, err := h.analyticsService.GetOverview(c.Request.Context(), tenantID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.Success(c, response.FromOverviewStats(stats))
}

// GetTopCustomers godoc
// @Summary      Top 客户
// @Description  按累计消费降序取前 N 个客户，默认 5，上限 100
// @Tags         analytics
// @Produce      json
// @Param        X-Tenant-ID header string true "租户ID"
// @Param        limit query int false "返回数量（1-100）"
// @Success      200 {object} ginx.Response{data=[]response.TopCustomerResponse} "客户列表"
// @Failure      400 {object} ginx.Response "参数错误"
// @Failure      500 {object} ginx.Response "提取失败"
// @Router       /analytics/customers/top [get]
func (h *AnalyticsHandler) GetTopCustomers(c *gin.Context) {
	tenantID := middlewares.TenantID(c)

	var query topCustomersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}
	if query.Limit == 0 {
		query.Limit = 5
	}

	customers, err := h.analyticsService.GetTopCustomers(c.Request.Context(), tenantID, query.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.Success(c, response.FromCustomerEntities(customers))
}
