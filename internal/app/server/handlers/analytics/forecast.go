package analytics

import (
	"github.com/gin-gonic/gin"

	"sip/dpanalytics/internal/app/pkg/ginx"
	"sip/dpanalytics/internal/app/server/middlewares"
	"sip/dpanalytics/internal/app/shaping"
)

// GetForecast godoc
// @Summary      销售预测（原始结果）
// @Description  返回引擎输出的时序数据和质量指标，MAPE 可能为 "N/A"
// @Tags         analytics
// @Produce      json
// @Param        X-Tenant-ID header string true "租户ID"
// @Success      200 {object} ginx.Response "引擎原样输出"
// @Failure      500 {object} ginx.Response "提取或计算失败"
// @Router       /analytics/forecast [get]
func (h *AnalyticsHandler) GetForecast(c *gin.Context) {
	tenantID := middlewares.TenantID(c)

	raw, err := h.analyticsService.GetForecast(c.Request.Context(), tenantID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.RawSuccess(c, raw)
}

// GetForecastChart godoc
// @Summary      销售预测（渲染视图）
// @Description  历史与预测序列按日期合并，最后一个历史日期上历史值
// @Description  复制进预测槽位形成唯一重叠点，保证折线视觉连续
// @Tags         analytics
// @Produce      json
// @Param        X-Tenant-ID header string true "租户ID"
// @Success      200 {object} ginx.Response{data=shaping.ForecastView} "渲染视图"
// @Failure      500 {object} ginx.Response "提取或计算失败"
// @Router       /analytics/forecast/chart [get]
func (h *AnalyticsHandler) GetForecastChart(c *gin.Context) {
	tenantID := middlewares.TenantID(c)
	ctx := c.Request.Context()

	raw, err := h.analyticsService.GetForecast(ctx, tenantID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	view, shapeErr := shaping.ShapeForecast(raw)
	if shapeErr != nil {
		h.log.Warnf(ctx, "forecast shaping fell back to neutral view: %v", shapeErr)
	}

	ginx.Success(c, view)
}
