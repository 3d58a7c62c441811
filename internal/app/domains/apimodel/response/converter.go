package response

import (
	"sip/dpanalytics/internal/app/domains/entity/etcustomer"
	"sip/dpanalytics/internal/app/domains/repo/rpanalytics"
)

// FromOverviewStats 从聚合结果转换为响应 DTO
func FromOverviewStats(stats *rpanalytics.OverviewStats) *OverviewResponse {
	return &OverviewResponse{
		TotalCustomers: stats.TotalCustomers,
		TotalOrders:    stats.TotalOrders,
		TotalProducts:  stats.TotalProducts,
		TotalRevenue:   stats.TotalRevenue,
		AvgOrderValue:  stats.AvgOrderValue,
	}
}

// FromRevenueTrendPoints 从收入趋势聚合结果转换为响应 DTO
func FromRevenueTrendPoints(points []rpanalytics.RevenueTrendPoint) []*RevenueTrendResponse {
	out := make([]*RevenueTrendResponse, 0, len(points))
	for _, p := range points {
		out = append(out, &RevenueTrendResponse{
			Date:       p.Date,
			Revenue:    p.Revenue,
			OrderCount: p.OrderCount,
		})
	}
	return out
}

// FromCustomerEntities 从客户实体列表转换为响应 DTO
func FromCustomerEntities(customers []etcustomer.Customer) []*TopCustomerResponse {
	out := make([]*TopCustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, &TopCustomerResponse{
			ID:          c.ID,
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			TotalSpent:  c.TotalSpent,
			OrdersCount: c.OrdersCount,
		})
	}
	return out
}
