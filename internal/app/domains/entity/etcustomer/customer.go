package etcustomer

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer 客户实体
type Customer struct {
	ID          string          `gorm:"column:id;primaryKey;type:varchar(64)"`
	TenantID    string          `gorm:"column:tenant_id;type:varchar(64);not null;index:idx_tenant"`
	TotalSpent  decimal.Decimal `gorm:"column:total_spent;type:decimal(18,4);not null;default:0"`
	OrdersCount int             `gorm:"column:orders_count;not null;default:0"`
	FirstName   string          `gorm:"column:first_name;type:varchar(128)"`
	LastName    string          `gorm:"column:last_name;type:varchar(128)"`
	CreatedAt   time.Time       `gorm:"column:created_at;not null"`
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
