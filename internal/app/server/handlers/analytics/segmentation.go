package analytics

import (
	"github.com/gin-gonic/gin"

	"sip/dpanalytics/internal/app/pkg/ginx"
	"sip/dpanalytics/internal/app/server/middlewares"
	"sip/dpanalytics/internal/app/shaping"
)

// GetSegmentation godoc
// @Summary      RFM 客户分群（原始结果）
// @Description  返回引擎输出的 segments_summary 和 customer_segments
// @Tags         analytics
// @Produce      json
// @Param        X-Tenant-ID header string true "租户ID"
// @Success      200 {object} ginx.Response "引擎原样输出"
// @Failure      500 {object} ginx.Response "提取或计算失败"
// @Router       /analytics/segmentation [get]
func (h *AnalyticsHandler) GetSegmentation(c *gin.Context) {
	tenantID := middlewares.TenantID(c)

	raw, err := h.analyticsService.GetSegmentation(c.Request.Context(), tenantID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.RawSuccess(c, raw)
}

// GetSegmentationChart godoc
// @Summary      RFM 客户分群（渲染视图）
// @Description  对原始结果做客户端整形：按货币价值升序排列并按位次
// @Description  赋予 Low/Mid/High 标签；上游载荷缺失或形状不符时返回
// @Description  中性"无数据"视图而不是错误
// @Tags         analytics
// @Produce      json
// @Param        X-Tenant-ID header string true "租户ID"
// @Success      200 {object} ginx.Response{data=shaping.SegmentationView} "渲染视图"
// @Failure      500 {object} ginx.Response "提取或计算失败"
// @Router       /analytics/segmentation/chart [get]
func (h *AnalyticsHandler) GetSegmentationChart(c *gin.Context) {
	tenantID := middlewares.TenantID(c)
	ctx := c.Request.Context()

	raw, err := h.analyticsService.GetSegmentation(ctx, tenantID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	view, shapeErr := shaping.ShapeSegmentation(raw)
	if shapeErr != nil {
		// 整形失败属于展示层问题：记录诊断，照常返回中性视图
		h.log.Warnf(ctx, "segmentation shaping fell back to neutral view: %v", shapeErr)
	}
	if view.Available && len(view.Tiers) != 3 {
		h.log.Warnf(ctx, "segmentation returned %d clusters, expected 3", len(view.Tiers))
	}

	ginx.Success(c, view)
}
