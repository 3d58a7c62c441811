package rpanalytics

import (
	"context"

	"github.com/shopspring/decimal"

	"sip/dpanalytics/internal/app/domains/entity/etcustomer"
	"sip/dpanalytics/internal/app/domains/entity/etorder"
	"sip/dpanalytics/internal/app/domains/entity/etproduct"
)

// OverviewStats 总览聚合（补充接口使用）
type OverviewStats struct {
	TotalCustomers int64           `json:"total_customers"`
	TotalOrders    int64           `json:"total_orders"`
	TotalProducts  int64           `json:"total_products"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	AvgOrderValue  decimal.Decimal `json:"avg_order_value"`
}

// RevenueTrendQuery 收入趋势查询条件
type RevenueTrendQuery struct {
	StartDate string // 起始日期（含），YYYY-MM-DD，空表示不限
	EndDate   string // 结束日期（含），YYYY-MM-DD，空表示不限
	GroupBy   string // 时间桶粒度：day/week/month，空按 day 处理
}

// RevenueTrendPoint 单个时间桶的收入聚合
type RevenueTrendPoint struct {
	Date       string          `json:"date"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int64           `json:"order_count"`
}

// AnalyticsRepository 分析数据提取仓储接口（只定义，不实现）
// 每个方法按分析类型只取所需的最小字段投影，tenantID 为必填参数，
// 任何跨租户记录不得进入返回集
type AnalyticsRepository interface {
	// OrdersForEDA 探索性分析所需订单投影（金额、时间、客户关联）
	OrdersForEDA(ctx context.Context, tenantID string) ([]etorder.Order, error)

	// CustomersForEDA 探索性分析所需客户投影（生命周期价值字段）
	CustomersForEDA(ctx context.Context, tenantID string) ([]etcustomer.Customer, error)

	// ProductsForEDA 探索性分析所需商品记录（整体透传）
	ProductsForEDA(ctx context.Context, tenantID string) ([]etproduct.Product, error)

	// OrdersForSegmentation RFM 分群所需订单投影（ID、金额、时间、客户关联）
	OrdersForSegmentation(ctx context.Context, tenantID string) ([]etorder.Order, error)

	// OrdersForForecast 销售预测所需订单投影（金额、时间）
	OrdersForForecast(ctx context.Context, tenantID string) ([]etorder.Order, error)

	// Overview 总览聚合
	Overview(ctx context.Context, tenantID string) (*OverviewStats, error)

	// RevenueTrends 按时间桶聚合的收入趋势
	RevenueTrends(ctx context.Context, tenantID string, query RevenueTrendQuery) ([]RevenueTrendPoint, error)

	// TopCustomers 按累计消费取 Top N 客户
	TopCustomers(ctx context.Context, tenantID string, limit int) ([]etcustomer.Customer, error)
}
