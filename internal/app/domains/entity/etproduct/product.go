package etproduct

import (
	"time"

	"gorm.io/datatypes"
)

// Product 商品实体
// 上游同步的完整商品记录以 JSON 原样存储，分析时整体透传给引擎
type Product struct {
	ID        string         `gorm:"column:id;primaryKey;type:varchar(64)"`
	TenantID  string         `gorm:"column:tenant_id;type:varchar(64);not null;index:idx_tenant"`
	RawData   datatypes.JSON `gorm:"column:raw_data;type:json;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;not null"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
