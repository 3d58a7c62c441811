package etanalysis

// Kind 分析类型
type Kind string

const (
	KindEDA          Kind = "eda"
	KindSegmentation Kind = "segmentation"
	KindForecast     Kind = "forecast"
)

// Valid 判断分析类型是否合法
func (k Kind) Valid() bool {
	switch k {
	case KindEDA, KindSegmentation, KindForecast:
		return true
	}
	return false
}

// ComputationRequest 一次计算请求（请求级生命周期，不落库）
// Payload 为已归一化的记录集，随请求创建、随响应销毁
type ComputationRequest struct {
	ID       string      // 计算请求 ID（UUID，用于全链路追踪）
	TenantID string      // 租户 ID，必填
	Kind     Kind        // 分析类型
	Payload  interface{} // 归一化后的记录集
}
