package shaping

import (
	"encoding/json"
	"fmt"
	"sort"
)

// 分层标签按排序位次赋予，与聚类编号无关
var tierLabels = []string{"Low Value", "Mid Value", "High Value"}

const noSegmentationData = "No segmentation data available"

// segmentationPayload 分群接口的线缆载荷
type segmentationPayload struct {
	Error            string            `json:"error"`
	SegmentsSummary  json.RawMessage   `json:"segments_summary"`
	CustomerSegments []CustomerSegment `json:"customer_segments"`
}

// ShapeSegmentation 将分群原始载荷整形为渲染视图
// 规则：
// 1. segments_summary 必须是序列，否则返回中性无数据视图（不抛出）
// 2. 按货币价值升序排序后按位次赋标签：0→Low 1→Mid 2→High，
//    其余保留通用聚类标签
// 3. 相同输入集合无论原始顺序如何，输出恒定
//
// 返回的 error 仅供服务端日志，视图永远可安全展示
func ShapeSegmentation(raw json.RawMessage) (*SegmentationView, error) {
	neutral := &SegmentationView{Available: false, Message: noSegmentationData}

	if len(raw) == 0 {
		return neutral, fmt.Errorf("segmentation payload is empty")
	}

	var payload segmentationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return neutral, fmt.Errorf("segmentation payload is not an object: %w", err)
	}

	if payload.Error != "" {
		return neutral, fmt.Errorf("engine reported error: %s", payload.Error)
	}

	var summary []SegmentSummary
	if err := json.Unmarshal(payload.SegmentsSummary, &summary); err != nil {
		return neutral, fmt.Errorf("segments_summary is not a sequence: %w", err)
	}
	if len(summary) == 0 {
		return neutral, fmt.Errorf("segments_summary is empty")
	}

	// 确定性全序：货币价值为主键，频次/近度/聚类编号依次决胜，
	// 保证相同集合在任意输入顺序下输出一致
	sorted := make([]SegmentSummary, len(summary))
	copy(sorted, summary)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Monetary != b.Monetary {
			return a.Monetary < b.Monetary
		}
		if a.Frequency != b.Frequency {
			return a.Frequency < b.Frequency
		}
		if a.Recency != b.Recency {
			return a.Recency < b.Recency
		}
		return a.Cluster < b.Cluster
	})

	tiers := make([]SegmentTier, 0, len(sorted))
	for i, row := range sorted {
		label := fmt.Sprintf("Cluster %d", int(row.Cluster))
		if i < len(tierLabels) {
			label = tierLabels[i]
		}

		tiers = append(tiers, SegmentTier{
			Label:         label,
			CustomerCount: int(row.CustomerCount),
			AvgSpend:      row.Monetary,
			AvgFrequency:  row.Frequency,
			AvgRecency:    row.Recency,
		})
	}

	return &SegmentationView{
		Available: true,
		Tiers:     tiers,
		Customers: payload.CustomerSegments,
	}, nil
}
