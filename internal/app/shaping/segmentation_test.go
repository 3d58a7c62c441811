package shaping

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeSegmentationLabelsByMonetaryRank(t *testing.T) {
	// 聚类编号乱序，标签只取决于货币价值排序位次
	raw := json.RawMessage(`{
		"segments_summary": [
			{"Cluster": 2, "Recency": 10, "Frequency": 5, "Monetary": 500, "customerId": 12},
			{"Cluster": 0, "Recency": 90, "Frequency": 1, "Monetary": 50, "customerId": 40},
			{"Cluster": 1, "Recency": 3, "Frequency": 9, "Monetary": 900, "customerId": 5}
		],
		"customer_segments": [
			{"customerId": "c1", "Recency": 3, "Frequency": 9, "Monetary": 900, "Segment": "High Value"}
		]
	}`)

	view, err := ShapeSegmentation(raw)
	require.NoError(t, err)
	require.True(t, view.Available)
	require.Len(t, view.Tiers, 3)

	assert.Equal(t, "Low Value", view.Tiers[0].Label)
	assert.Equal(t, 50.0, view.Tiers[0].AvgSpend)
	assert.Equal(t, 40, view.Tiers[0].CustomerCount)

	assert.Equal(t, "Mid Value", view.Tiers[1].Label)
	assert.Equal(t, 500.0, view.Tiers[1].AvgSpend)

	assert.Equal(t, "High Value", view.Tiers[2].Label)
	assert.Equal(t, 900.0, view.Tiers[2].AvgSpend)
	assert.Equal(t, 5, view.Tiers[2].CustomerCount)

	require.Len(t, view.Customers, 1)
	assert.Equal(t, "c1", view.Customers[0].CustomerID)
}

func TestShapeSegmentationOrderIndependent(t *testing.T) {
	a := json.RawMessage(`{"segments_summary": [
		{"Cluster": 0, "Monetary": 50, "Frequency": 1, "Recency": 90, "customerId": 40},
		{"Cluster": 1, "Monetary": 900, "Frequency": 9, "Recency": 3, "customerId": 5},
		{"Cluster": 2, "Monetary": 500, "Frequency": 5, "Recency": 10, "customerId": 12}
	]}`)
	b := json.RawMessage(`{"segments_summary": [
		{"Cluster": 2, "Monetary": 500, "Frequency": 5, "Recency": 10, "customerId": 12},
		{"Cluster": 0, "Monetary": 50, "Frequency": 1, "Recency": 90, "customerId": 40},
		{"Cluster": 1, "Monetary": 900, "Frequency": 9, "Recency": 3, "customerId": 5}
	]}`)

	va, err := ShapeSegmentation(a)
	require.NoError(t, err)
	vb, err := ShapeSegmentation(b)
	require.NoError(t, err)

	assert.Equal(t, va.Tiers, vb.Tiers)
}

func TestShapeSegmentationExtraClustersKeepGenericLabel(t *testing.T) {
	raw := json.RawMessage(`{"segments_summary": [
		{"Cluster": 3, "Monetary": 10, "customerId": 1},
		{"Cluster": 1, "Monetary": 20, "customerId": 2},
		{"Cluster": 0, "Monetary": 30, "customerId": 3},
		{"Cluster": 7, "Monetary": 40, "customerId": 4}
	]}`)

	view, err := ShapeSegmentation(raw)
	require.NoError(t, err)
	require.Len(t, view.Tiers, 4)
	assert.Equal(t, "Low Value", view.Tiers[0].Label)
	assert.Equal(t, "Mid Value", view.Tiers[1].Label)
	assert.Equal(t, "High Value", view.Tiers[2].Label)
	assert.Equal(t, "Cluster 7", view.Tiers[3].Label)
}

func TestShapeSegmentationMonetaryTieIsDeterministic(t *testing.T) {
	a := json.RawMessage(`{"segments_summary": [
		{"Cluster": 1, "Monetary": 100, "Frequency": 2, "customerId": 1},
		{"Cluster": 0, "Monetary": 100, "Frequency": 5, "customerId": 2}
	]}`)
	b := json.RawMessage(`{"segments_summary": [
		{"Cluster": 0, "Monetary": 100, "Frequency": 5, "customerId": 2},
		{"Cluster": 1, "Monetary": 100, "Frequency": 2, "customerId": 1}
	]}`)

	va, err := ShapeSegmentation(a)
	require.NoError(t, err)
	vb, err := ShapeSegmentation(b)
	require.NoError(t, err)

	assert.Equal(t, va.Tiers, vb.Tiers)
	assert.Equal(t, 2.0, va.Tiers[0].AvgFrequency)
}

func TestShapeSegmentationNeutralStates(t *testing.T) {
	cases := []struct {
		name string
		raw  json.RawMessage
	}{
		{"empty payload", nil},
		{"engine error marker", json.RawMessage(`{"error": "Not enough data points for clustering"}`)},
		{"summary not a sequence", json.RawMessage(`{"segments_summary": {"Cluster": 1}}`)},
		{"summary missing", json.RawMessage(`{}`)},
		{"summary empty", json.RawMessage(`{"segments_summary": []}`)},
		{"not an object", json.RawMessage(`[1, 2, 3]`)},
		{"garbage", json.RawMessage(`Traceback`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view, err := ShapeSegmentation(tc.raw)
			require.Error(t, err)
			require.NotNil(t, view)
			assert.False(t, view.Available)
			assert.Equal(t, "No segmentation data available", view.Message)
			assert.Empty(t, view.Tiers)
		})
	}
}

func TestShapeSegmentationNeverLeaksDiagnostics(t *testing.T) {
	raw := json.RawMessage(`{"error": "division by zero in cluster 2"}`)
	view, err := ShapeSegmentation(raw)
	require.Error(t, err)
	assert.NotContains(t, view.Message, "division by zero")
}
