package svanalytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sip/dpanalytics/internal/app/domains/entity/etanalysis"
	"sip/dpanalytics/internal/app/domains/entity/etcustomer"
	"sip/dpanalytics/internal/app/domains/entity/etorder"
	"sip/dpanalytics/internal/app/domains/repo/rpanalytics"
	"sip/dpanalytics/internal/app/infra/persistence/redis"
	"sip/dpanalytics/internal/app/pkg/errorx"
	"sip/dpanalytics/internal/app/pkg/logger"
	"sip/dpanalytics/internal/app/pkg/numx"
)

// EngineInvoker 引擎桥接接口
type EngineInvoker interface {
	Invoke(ctx context.Context, kind etanalysis.Kind, payload interface{}) (json.RawMessage, error)
}

// ComputationNotifier 计算完成通知接口
type ComputationNotifier interface {
	PublishComputationComplete(ctx context.Context, notification *redis.ComputationNotification) error
}

// AnalyticsService 分析服务，负责单次请求内的线性管道编排：
// 提取 → 归一化 → 引擎调用 → 返回原样结果
// 请求之间无共享可变状态，互不影响
type AnalyticsService struct {
	repo     rpanalytics.AnalyticsRepository
	engine   EngineInvoker
	notifier ComputationNotifier
	log      logger.Logger
}

// NewAnalyticsService 创建分析服务实例
// notifier 可为 nil（未配置 Redis 时跳过完成通知）
func NewAnalyticsService(
	repo rpanalytics.AnalyticsRepository,
	engine EngineInvoker,
	notifier ComputationNotifier,
	log logger.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		repo:     repo,
		engine:   engine,
		notifier: notifier,
		log:      log,
	}
}

// GetEDA 探索性分析
// 提取订单金额/时间/客户关联、客户生命周期价值字段和完整商品记录
func (s *AnalyticsService) GetEDA(ctx context.Context, tenantID string) (json.RawMessage, error) {
	ctx = s.requestContext(ctx, tenantID, etanalysis.KindEDA)

	orders, err := s.repo.OrdersForEDA(ctx, tenantID)
	if err != nil {
		return nil, errorx.NewExtractionError(string(etanalysis.KindEDA), err)
	}

	customers, err := s.repo.CustomersForEDA(ctx, tenantID)
	if err != nil {
		return nil, errorx.NewExtractionError(string(etanalysis.KindEDA), err)
	}

	products, err := s.repo.ProductsForEDA(ctx, tenantID)
	if err != nil {
		return nil, errorx.NewExtractionError(string(etanalysis.KindEDA), err)
	}

	productRecords := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		var record map[string]interface{}
		if err := json.Unmarshal(p.RawData, &record); err != nil {
			return nil, errorx.NewExtractionError(string(etanalysis.KindEDA),
				fmt.Errorf("decode product %s failed: %w", p.ID, err))
		}
		productRecords = append(productRecords, record)
	}

	customerRecords := make([]map[string]interface{}, 0, len(customers))
	for _, c := range customers {
		customerRecords = append(customerRecords, customerEDARecord(c))
	}

	payload := map[string]interface{}{
		"orders":    orderRecords(orders, false),
		"customers": customerRecords,
		"products":  productRecords,
	}

	return s.compute(ctx, tenantID, etanalysis.KindEDA, payload)
}

// GetSegmentation RFM 客户分群
func (s *AnalyticsService) GetSegmentation(ctx context.Context, tenantID string) (json.RawMessage, error) {
	ctx = s.requestContext(ctx, tenantID, etanalysis.KindSegmentation)

	orders, err := s.repo.OrdersForSegmentation(ctx, tenantID)
	if err != nil {
		return nil, errorx.NewExtractionError(string(etanalysis.KindSegmentation), err)
	}

	payload := map[string]interface{}{
		"orders": orderRecords(orders, true),
	}

	return s.compute(ctx, tenantID, etanalysis.KindSegmentation, payload)
}

// GetForecast 销售预测
func (s *AnalyticsService) GetForecast(ctx context.Context, tenantID string) (json.RawMessage, error) {
	ctx = s.requestContext(ctx, tenantID, etanalysis.KindForecast)

	orders, err := s.repo.OrdersForForecast(ctx, tenantID)
	if err != nil {
		return nil, errorx.NewExtractionError(string(etanalysis.KindForecast), err)
	}

	records := make([]map[string]interface{}, 0, len(orders))
	for _, o := range orders {
		records = append(records, map[string]interface{}{
			"totalPrice": o.TotalPrice,
			"createdAt":  o.CreatedAt,
		})
	}

	payload := map[string]interface{}{"orders": records}

	return s.compute(ctx, tenantID, etanalysis.KindForecast, payload)
}

// GetOverview 总览聚合（不经过引擎）
func (s *AnalyticsService) GetOverview(ctx context.Context, tenantID string) (*rpanalytics.OverviewStats, error) {
	stats, err := s.repo.Overview(ctx, tenantID)
	if err != nil {
		return nil, errorx.NewExtractionError("overview", err)
	}
	return stats, nil
}

// GetRevenueTrends 收入趋势聚合（不经过引擎）
func (s *AnalyticsService) GetRevenueTrends(ctx context.Context, tenantID string, query rpanalytics.RevenueTrendQuery) ([]rpanalytics.RevenueTrendPoint, error) {
	points, err := s.repo.RevenueTrends(ctx, tenantID, query)
	if err != nil {
		return nil, errorx.NewExtractionError("revenue_trends", err)
	}
	return points, nil
}

// GetTopCustomers 按累计消费取 Top N 客户（不经过引擎）
func (s *AnalyticsService) GetTopCustomers(ctx context.Context, tenantID string, limit int) ([]etcustomer.Customer, error) {
	customers, err := s.repo.TopCustomers(ctx, tenantID, limit)
	if err != nil {
		return nil, errorx.NewExtractionError("top_customers", err)
	}
	return customers, nil
}

// compute 归一化载荷并调用引擎，完成后广播通知
// 单请求内严格串行：提取先于归一化，归一化先于进程派生，派生先于结果解析
func (s *AnalyticsService) compute(ctx context.Context, tenantID string, kind etanalysis.Kind, payload interface{}) (json.RawMessage, error) {
	req := &etanalysis.ComputationRequest{
		ID:       uuid.New().String(),
		TenantID: tenantID,
		Kind:     kind,
		Payload:  numx.Normalize(payload),
	}
	ctx = logger.WithTraceID(ctx, req.ID)

	result, err := s.engine.Invoke(ctx, req.Kind, req.Payload)

	status := redis.NotifyStatusSucceeded
	if err != nil {
		status = redis.NotifyStatusFailed
	}
	s.notifyComplete(ctx, req, status)

	if err != nil {
		return nil, err
	}

	return result, nil
}

// notifyComplete 发布计算完成通知
// 通知失败只记录日志，不影响本次请求的结果
func (s *AnalyticsService) notifyComplete(ctx context.Context, req *etanalysis.ComputationRequest, status string) {
	if s.notifier == nil {
		return
	}

	notification := &redis.ComputationNotification{
		RequestID: req.ID,
		TenantID:  req.TenantID,
		Analysis:  string(req.Kind),
		Status:    status,
		Timestamp: time.Now().Unix(),
	}

	if err := s.notifier.PublishComputationComplete(ctx, notification); err != nil {
		s.log.Warnf(ctx, "publish computation notification failed: request_id=%s, error=%v", req.ID, err)
	}
}

// requestContext 注入租户和分析类型日志字段
func (s *AnalyticsService) requestContext(ctx context.Context, tenantID string, kind etanalysis.Kind) context.Context {
	ctx = logger.WithTenantID(ctx, tenantID)
	return logger.WithAnalysis(ctx, string(kind))
}

// orderRecords 订单投影转为引擎线缆记录
// withID 为 true 时附带订单 ID（分群分析需要按 id 计数）
func orderRecords(orders []etorder.Order, withID bool) []map[string]interface{} {
	records := make([]map[string]interface{}, 0, len(orders))
	for _, o := range orders {
		record := map[string]interface{}{
			"totalPrice": o.TotalPrice,
			"createdAt":  o.CreatedAt,
			"customerId": o.CustomerID,
		}
		if withID {
			record["id"] = o.ID
		}
		records = append(records, record)
	}
	return records
}

// customerEDARecord 客户投影转为引擎线缆记录
func customerEDARecord(c etcustomer.Customer) map[string]interface{} {
	return map[string]interface{}{
		"totalSpent":  c.TotalSpent,
		"ordersCount": c.OrdersCount,
		"firstName":   c.FirstName,
		"lastName":    c.LastName,
	}
}
