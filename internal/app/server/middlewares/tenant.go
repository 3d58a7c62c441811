package middlewares

import (
	"github.com/gin-gonic/gin"

	"sip/dpanalytics/internal/app/domains/repo/rptenant"
	"sip/dpanalytics/internal/app/pkg/errorx"
	"sip/dpanalytics/internal/app/pkg/ginx"
	"sip/dpanalytics/internal/app/pkg/logger"
)

// 租户 ID 在 gin Context 中的键
const ctxKeyTenantID = "tenant_id"

// TenantHeader 网关透传的租户标识头（认证由上游网关完成）
const TenantHeader = "X-Tenant-ID"

// Tenant 租户上下文中间件
// 租户隔离只靠显式传参保证，没有运行期沙箱：这里是唯一入口，
// 缺失租户标识的请求一律拒绝，不存在"默认租户"
func Tenant(tenantRepo rptenant.TenantRepository, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(TenantHeader)
		if tenantID == "" {
			ginx.BadRequest(c, errorx.ErrTenantRequired.Error())
			c.Abort()
			return
		}

		exists, err := tenantRepo.Exists(c.Request.Context(), tenantID)
		if err != nil {
			log.Errorf(c.Request.Context(), "tenant lookup failed: tenant_id=%s, error=%v", tenantID, err)
			ginx.InternalError(c, "failed to resolve tenant")
			c.Abort()
			return
		}
		if !exists {
			ginx.NotFound(c, "tenant not found")
			c.Abort()
			return
		}

		c.Set(ctxKeyTenantID, tenantID)
		c.Request = c.Request.WithContext(
			logger.WithTenantID(c.Request.Context(), tenantID))

		c.Next()
	}
}

// TenantID 从 gin Context 读取已解析的租户 ID
func TenantID(c *gin.Context) string {
	return c.GetString(ctxKeyTenantID)
}
