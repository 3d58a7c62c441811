package analytics

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sip/dpanalytics/internal/app/domains/services/svanalytics"
	"sip/dpanalytics/internal/app/pkg/errorx"
	"sip/dpanalytics/internal/app/pkg/ginx"
	"sip/dpanalytics/internal/app/pkg/logger"
)

// AnalyticsHandler 分析 HTTP 处理器
type AnalyticsHandler struct {
	analyticsService *svanalytics.AnalyticsService
	log              logger.Logger
}

// NewAnalyticsHandler 创建分析处理器实例
func NewAnalyticsHandler(analyticsService *svanalytics.AnalyticsService, log logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		log:              log,
	}
}

// respondError 统一错误映射
// 诊断文本只进服务端日志，对外一律返回通用文案
func (h *AnalyticsHandler) respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var extractErr *errorx.ExtractionError
	if errors.As(err, &extractErr) {
		h.log.Errorf(ctx, "extraction failed: %v", err)
		ginx.InternalError(c, "failed to load analytics data")
		return
	}

	if errorx.IsEngineError(err) {
		h.log.Errorf(ctx, "engine invocation failed: %v", err)
		ginx.InternalError(c, "analysis computation failed")
		return
	}

	h.log.Errorf(ctx, "analytics request failed: %v", err)
	ginx.InternalError(c, "internal error")
}
