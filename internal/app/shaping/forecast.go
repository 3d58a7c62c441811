package shaping

import (
	"encoding/json"
	"fmt"
)

const noForecastData = "No forecast data available"

// forecastPayload 预测接口的线缆载荷
type forecastPayload struct {
	Error   string           `json:"error"`
	Data    json.RawMessage  `json:"data"`
	Metrics *ForecastMetrics `json:"metrics"`
}

// ShapeForecast 将预测原始载荷整形为渲染视图
// 规则：
// 1. data 必须是时序点序列，否则返回中性无数据视图（不抛出）
// 2. 按日期合并为单条记录，历史值与预测值分列，缺值用显式 nil 表达
// 3. 历史与预测都非空时，把最后一个历史日期的历史值复制进同一记录的
//    预测槽位，形成折线图上唯一的双值重叠点，其余记录恰好只有一侧有值
//
// 返回的 error 仅供服务端日志，视图永远可安全展示
func ShapeForecast(raw json.RawMessage) (*ForecastView, error) {
	neutral := &ForecastView{Available: false, Message: noForecastData}

	if len(raw) == 0 {
		return neutral, fmt.Errorf("forecast payload is empty")
	}

	var payload forecastPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return neutral, fmt.Errorf("forecast payload is not an object: %w", err)
	}

	if payload.Error != "" {
		return neutral, fmt.Errorf("engine reported error: %s", payload.Error)
	}

	var points []TimeSeriesPoint
	if err := json.Unmarshal(payload.Data, &points); err != nil {
		return neutral, fmt.Errorf("forecast data is not a sequence: %w", err)
	}
	if len(points) == 0 {
		return neutral, fmt.Errorf("forecast data is empty")
	}

	// 按日期合并，保持首次出现的相对顺序
	index := make(map[string]int, len(points))
	merged := make([]ChartPoint, 0, len(points))
	lastHistoryDate := ""
	hasForecast := false

	for _, p := range points {
		i, ok := index[p.Date]
		if !ok {
			i = len(merged)
			index[p.Date] = i
			merged = append(merged, ChartPoint{Date: p.Date})
		}

		v := p.Value
		switch p.Type {
		case PointTypeHistory:
			merged[i].History = &v
			merged[i].Forecast = nil
			lastHistoryDate = p.Date
		case PointTypeForecast:
			hasForecast = true
			// 历史值优先占据该日期，历史区间内的预测值不参与渲染；
			// 重叠点由下方的衔接规则统一产生
			if merged[i].History == nil {
				merged[i].Forecast = &v
			}
		}
	}

	// 衔接规则：唯一的双值点落在最后一个历史日期
	if lastHistoryDate != "" && hasForecast {
		i := index[lastHistoryDate]
		if merged[i].History != nil {
			v := *merged[i].History
			merged[i].Forecast = &v
		}
	}

	return &ForecastView{
		Available: true,
		Points:    merged,
		Metrics:   payload.Metrics,
	}, nil
}
