package response

import "github.com/shopspring/decimal"

// OverviewResponse 总览响应（DTO）
// 金额字段以十进制字符串输出，避免浮点精度损失
type OverviewResponse struct {
	TotalCustomers int64           `json:"total_customers"`
	TotalOrders    int64           `json:"total_orders"`
	TotalProducts  int64           `json:"total_products"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	AvgOrderValue  decimal.Decimal `json:"avg_order_value"`
}

// RevenueTrendResponse 收入趋势单桶响应（DTO）
type RevenueTrendResponse struct {
	Date       string          `json:"date"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int64           `json:"order_count"`
}

// TopCustomerResponse Top 客户响应（DTO）
type TopCustomerResponse struct {
	ID          string          `json:"id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	OrdersCount int             `json:"orders_count"`
}
