package rptenant

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sip/dpanalytics/internal/app/domains/entity/ettenant"
)

// TenantRepositoryImpl 租户仓储实现（MySQL）
type TenantRepositoryImpl struct {
	db *gorm.DB
}

// NewTenantRepository 创建租户仓储实例
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &TenantRepositoryImpl{db: db}
}

// GetByID 根据ID查询租户
func (r *TenantRepositoryImpl) GetByID(ctx context.Context, tenantID string) (*ettenant.Tenant, error) {
	var tenant ettenant.Tenant
	err := r.db.WithContext(ctx).Where("id = ?", tenantID).First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Exists 检查租户是否存在
func (r *TenantRepositoryImpl) Exists(ctx context.Context, tenantID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ettenant.Tenant{}).
		Where("id = ?", tenantID).
		Count(&count).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}
