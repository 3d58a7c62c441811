package rpanalytics

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sip/dpanalytics/internal/app/domains/entity/etcustomer"
	"sip/dpanalytics/internal/app/domains/entity/etorder"
	"sip/dpanalytics/internal/app/domains/entity/etproduct"
)

// AnalyticsRepositoryImpl 分析数据提取仓储实现（MySQL）
// 只读访问，不开启事务；存储层错误原样向上传递，不做重试
type AnalyticsRepositoryImpl struct {
	db *gorm.DB
}

// NewAnalyticsRepository 创建分析仓储实例
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &AnalyticsRepositoryImpl{db: db}
}

// OrdersForEDA 探索性分析所需订单投影
func (r *AnalyticsRepositoryImpl) OrdersForEDA(ctx context.Context, tenantID string) ([]etorder.Order, error) {
	var orders []etorder.Order
	err := r.db.WithContext(ctx).
		Select("total_price", "created_at", "customer_id").
		Where("tenant_id = ?", tenantID).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CustomersForEDA 探索性分析所需客户投影
func (r *AnalyticsRepositoryImpl) CustomersForEDA(ctx context.Context, tenantID string) ([]etcustomer.Customer, error) {
	var customers []etcustomer.Customer
	err := r.db.WithContext(ctx).
		Select("total_spent", "orders_count", "first_name", "last_name").
		Where("tenant_id = ?", tenantID).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// ProductsForEDA 探索性分析所需商品记录（整体透传，不做字段裁剪）
func (r *AnalyticsRepositoryImpl) ProductsForEDA(ctx context.Context, tenantID string) ([]etproduct.Product, error) {
	var products []etproduct.Product
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// OrdersForSegmentation RFM 分群所需订单投影
func (r *AnalyticsRepositoryImpl) OrdersForSegmentation(ctx context.Context, tenantID string) ([]etorder.Order, error) {
	var orders []etorder.Order
	err := r.db.WithContext(ctx).
		Select("id", "total_price", "created_at", "customer_id").
		Where("tenant_id = ?", tenantID).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// OrdersForForecast 销售预测所需订单投影
func (r *AnalyticsRepositoryImpl) OrdersForForecast(ctx context.Context, tenantID string) ([]etorder.Order, error) {
	var orders []etorder.Order
	err := r.db.WithContext(ctx).
		Select("total_price", "created_at").
		Where("tenant_id = ?", tenantID).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Overview 总览聚合
func (r *AnalyticsRepositoryImpl) Overview(ctx context.Context, tenantID string) (*OverviewStats, error) {
	stats := &OverviewStats{}

	if err := r.db.WithContext(ctx).Model(&etcustomer.Customer{}).
		Where("tenant_id = ?", tenantID).
		Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&etorder.Order{}).
		Where("tenant_id = ?", tenantID).
		Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&etproduct.Product{}).
		Where("tenant_id = ?", tenantID).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	var revenue decimal.NullDecimal
	if err := r.db.WithContext(ctx).Model(&etorder.Order{}).
		Select("SUM(total_price)").
		Where("tenant_id = ?", tenantID).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	if revenue.Valid {
		stats.TotalRevenue = revenue.Decimal
	}

	if stats.TotalOrders > 0 {
		stats.AvgOrderValue = stats.TotalRevenue.
			Div(decimal.NewFromInt(stats.TotalOrders)).
			Round(4)
	}

	return stats, nil
}

// 时间桶粒度到 MySQL DATE_FORMAT 的映射
var revenueBucketFormats = map[string]string{
	"day":   "%Y-%m-%d",
	"week":  "%x-W%v",
	"month": "%Y-%m",
}

// RevenueTrends 按时间桶聚合的收入趋势
// 桶键用 DATE_FORMAT 在存储侧生成，同时统计桶内订单数
func (r *AnalyticsRepositoryImpl) RevenueTrends(ctx context.Context, tenantID string, query RevenueTrendQuery) ([]RevenueTrendPoint, error) {
	format, ok := revenueBucketFormats[query.GroupBy]
	if !ok {
		format = revenueBucketFormats["day"]
	}

	db := r.db.WithContext(ctx).Model(&etorder.Order{}).
		Select("DATE_FORMAT(created_at, ?) AS date, SUM(total_price) AS revenue, COUNT(*) AS order_count", format).
		Where("tenant_id = ?", tenantID)

	if query.StartDate != "" {
		db = db.Where("created_at >= ?", query.StartDate)
	}
	if query.EndDate != "" {
		// 结束日期按含当天处理
		db = db.Where("created_at < DATE_ADD(?, INTERVAL 1 DAY)", query.EndDate)
	}

	var points []RevenueTrendPoint
	err := db.Group("date").Order("date").Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

// TopCustomers 按累计消费取 Top N 客户
func (r *AnalyticsRepositoryImpl) TopCustomers(ctx context.Context, tenantID string, limit int) ([]etcustomer.Customer, error) {
	var customers []etcustomer.Customer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("total_spent DESC").
		Limit(limit).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
