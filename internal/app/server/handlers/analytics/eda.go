package analytics

import (
	"github.com/gin-gonic/gin"

	"sip/dpanalytics/internal/app/pkg/ginx"
	"sip/dpanalytics/internal/app/server/middlewares"
)

// GetEDA godoc
// @Summary      探索性数据分析
// @Description  提取当前租户的订单/客户/商品数据，交由统计引擎计算
// @Description  聚合指标（总收入、月度销售、星期季节性、Top 客户等）
// @Description  载荷可能包含 error 字段而非预期形状，消费方需先检查
// @Tags         analytics
// @Produce      json
// @Param        X-Tenant-ID header string true "租户ID"
// @Success      200 {object} ginx.Response "引擎原样输出"
// @Failure      500 {object} ginx.Response "提取或计算失败"
// @Router       /analytics/eda [get]
func (h *AnalyticsHandler) GetEDA(c *gin.Context) {
	tenantID := middlewares.TenantID(c)

	raw, err := h.analyticsService.GetEDA(c.Request.Context(), tenantID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.RawSuccess(c, raw)
}
