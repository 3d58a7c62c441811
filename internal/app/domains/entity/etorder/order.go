package etorder

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order 订单实体
// 进入分析流程后视为不可变快照
type Order struct {
	ID         string          `gorm:"column:id;primaryKey;type:varchar(64)"`
	TenantID   string          `gorm:"column:tenant_id;type:varchar(64);not null;index:idx_tenant_created"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:decimal(18,4);not null"`
	CustomerID string          `gorm:"column:customer_id;type:varchar(64);index:idx_customer"`
	CreatedAt  time.Time       `gorm:"column:created_at;not null;index:idx_tenant_created"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
