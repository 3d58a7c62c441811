package ettenant

import "time"

// Tenant 租户实体
// 租户是彼此隔离的商家组织，任何分析数据不得跨租户可见
type Tenant struct {
	ID         string    `gorm:"column:id;primaryKey;type:varchar(64)"`
	Name       string    `gorm:"column:name;type:varchar(255);not null"`
	ShopDomain string    `gorm:"column:shop_domain;type:varchar(255);uniqueIndex:uk_shop_domain;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

// TableName 指定表名
func (Tenant) TableName() string {
	return "tenants"
}
