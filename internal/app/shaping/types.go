package shaping

import (
	"encoding/json"
	"fmt"
)

// 本包只依赖引擎桥接层对外的线缆格式（原样 JSON），不依赖其内部实现，
// 可以在与桥接层不同的层级/进程中执行

// SegmentSummary 每个聚类一行的汇总（线缆格式）
// customerId 列在引擎侧是按客户计数的聚合结果，线缆上沿用原列名
type SegmentSummary struct {
	Cluster       float64 `json:"Cluster"`
	Recency       float64 `json:"Recency"`
	Frequency     float64 `json:"Frequency"`
	Monetary      float64 `json:"Monetary"`
	CustomerCount float64 `json:"customerId"`
}

// CustomerSegment 单客户分群归属（线缆格式）
type CustomerSegment struct {
	CustomerID string  `json:"customerId"`
	Recency    float64 `json:"Recency"`
	Frequency  float64 `json:"Frequency"`
	Monetary   float64 `json:"Monetary"`
	Segment    string  `json:"Segment"`
}

// TimeSeriesPoint 时序点（线缆格式），kind 为 history 或 forecast
type TimeSeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Type  string  `json:"type"`
}

// 时序点类型
const (
	PointTypeHistory  = "history"
	PointTypeForecast = "forecast"
)

// MAPE 平均绝对百分比误差
// 实际值包含 0 时引擎回退输出字符串 "N/A"，用 NA 标记表达
type MAPE struct {
	Value float64
	NA    bool
}

// UnmarshalJSON 实现 json.Unmarshaler，接受数值或 "N/A"
func (m *MAPE) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		m.Value = v
		m.NA = false
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.NA = true
		return nil
	}

	return fmt.Errorf("mape must be a number or \"N/A\": %s", string(data))
}

// MarshalJSON 实现 json.Marshaler
func (m MAPE) MarshalJSON() ([]byte, error) {
	if m.NA {
		return json.Marshal("N/A")
	}
	return json.Marshal(m.Value)
}

// ForecastMetrics 预测质量指标（线缆格式）
type ForecastMetrics struct {
	RMSE float64 `json:"RMSE"`
	MAPE MAPE    `json:"MAPE"`
}

// SegmentTier 渲染用的分层汇总行
type SegmentTier struct {
	Label         string  `json:"label"`
	CustomerCount int     `json:"customer_count"`
	AvgSpend      float64 `json:"avg_spend"`
	AvgFrequency  float64 `json:"avg_frequency"`
	AvgRecency    float64 `json:"avg_recency"`
}

// SegmentationView 分群渲染视图
// Available=false 表示中性"无数据"态，Message 只含可展示的中性文案
type SegmentationView struct {
	Available bool              `json:"available"`
	Message   string            `json:"message,omitempty"`
	Tiers     []SegmentTier     `json:"tiers,omitempty"`
	Customers []CustomerSegment `json:"customers,omitempty"`
}

// ChartPoint 合并后的单日期图表点
// History/Forecast 为 nil 表示该侧无值（显式缺值标记，不是 0）
type ChartPoint struct {
	Date     string   `json:"date"`
	History  *float64 `json:"history"`
	Forecast *float64 `json:"forecast"`
}

// ForecastView 预测渲染视图
type ForecastView struct {
	Available bool             `json:"available"`
	Message   string           `json:"message,omitempty"`
	Points    []ChartPoint     `json:"points,omitempty"`
	Metrics   *ForecastMetrics `json:"metrics,omitempty"`
}
