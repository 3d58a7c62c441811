package rptenant

import (
	"context"

	"sip/dpanalytics/internal/app/domains/entity/ettenant"
)

// TenantRepository 租户仓储接口（只定义，不实现）
type TenantRepository interface {
	// GetByID 根据ID查询租户
	GetByID(ctx context.Context, tenantID string) (*ettenant.Tenant, error)

	// Exists 检查租户是否存在
	Exists(ctx context.Context, tenantID string) (bool, error)
}
