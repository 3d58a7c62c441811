package analytics_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sip/dpanalytics/internal/app/domains/entity/etanalysis"
	"sip/dpanalytics/internal/app/domains/entity/etcustomer"
	"sip/dpanalytics/internal/app/domains/entity/etorder"
	"sip/dpanalytics/internal/app/domains/entity/etproduct"
	"sip/dpanalytics/internal/app/domains/entity/ettenant"
	"sip/dpanalytics/internal/app/domains/repo/rpanalytics"
	"sip/dpanalytics/internal/app/domains/services/svanalytics"
	"sip/dpanalytics/internal/app/pkg/errorx"
	"sip/dpanalytics/internal/app/pkg/logger"
	"sip/dpanalytics/internal/app/server/handlers/analytics"
	"sip/dpanalytics/internal/app/server/middlewares"
	"sip/dpanalytics/internal/app/server/routers"
)

type stubRepo struct {
	orders    []etorder.Order
	customers []etcustomer.Customer
	products  []etproduct.Product
}

func (s *stubRepo) OrdersForEDA(ctx context.Context, tenantID string) ([]etorder.Order, error) {
	return s.orders, nil
}

func (s *stubRepo) CustomersForEDA(ctx context.Context, tenantID string) ([]etcustomer.Customer, error) {
	return s.customers, nil
}

func (s *stubRepo) ProductsForEDA(ctx context.Context, tenantID string) ([]etproduct.Product, error) {
	return s.products, nil
}

func (s *stubRepo) OrdersForSegmentation(ctx context.Context, tenantID string) ([]etorder.Order, error) {
	return s.orders, nil
}

func (s *stubRepo) OrdersForForecast(ctx context.Context, tenantID string) ([]etorder.Order, error) {
	return s.orders, nil
}

func (s *stubRepo) Overview(ctx context.Context, tenantID string) (*rpanalytics.OverviewStats, error) {
	return &rpanalytics.OverviewStats{
		TotalCustomers: 2,
		TotalOrders:    5,
		TotalProducts:  7,
		TotalRevenue:   decimal.RequireFromString("99.50"),
		AvgOrderValue:  decimal.RequireFromString("19.90"),
	}, nil
}

func (s *stubRepo) RevenueTrends(ctx context.Context, tenantID string, query rpanalytics.RevenueTrendQuery) ([]rpanalytics.RevenueTrendPoint, error) {
	// 粒度必须在 handler 层补好默认值才允许到达存储层
	if query.GroupBy == "" {
		return nil, fmt.Errorf("group by must be defaulted before reaching storage")
	}
	return []rpanalytics.RevenueTrendPoint{
		{Date: "2024-01-01", Revenue: decimal.RequireFromString("19.90"), OrderCount: 1},
		{Date: "2024-01-02", Revenue: decimal.RequireFromString("39.80"), OrderCount: 2},
	}, nil
}

func (s *stubRepo) TopCustomers(ctx context.Context, tenantID string, limit int) ([]etcustomer.Customer, error) {
	if limit < len(s.customers) {
		return s.customers[:limit], nil
	}
	return s.customers, nil
}

type stubEngine struct {
	raw json.RawMessage
	err error
}

func (s *stubEngine) Invoke(ctx context.Context, kind etanalysis.Kind, payload interface{}) (json.RawMessage, error) {
	return s.raw, s.err
}

type stubTenantRepo struct{}

func (s *stubTenantRepo) GetByID(ctx context.Context, tenantID string) (*ettenant.Tenant, error) {
	if tenantID == "t1" {
		return &ettenant.Tenant{ID: "t1"}, nil
	}
	return nil, errorx.ErrTenantNotFound
}

func (s *stubTenantRepo) Exists(ctx context.Context, tenantID string) (bool, error) {
	return tenantID == "t1", nil
}

func newTestRouter(engine svanalytics.EngineInvoker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewNopLogger()

	repo := &stubRepo{
		orders: []etorder.Order{
			{
				ID:         "o1",
				TenantID:   "t1",
				TotalPrice: decimal.RequireFromString("19.90"),
				CustomerID: "c1",
				CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		customers: []etcustomer.Customer{
			{ID: "c1", TenantID: "t1", TotalSpent: decimal.RequireFromString("250.00"), OrdersCount: 3},
		},
	}

	svc := svanalytics.NewAnalyticsService(repo, engine, nil, log)
	handler := analytics.NewAnalyticsHandler(svc, log)
	return routers.SetupRoutes(handler, &stubTenantRepo{}, log)
}

func doRequest(r *gin.Engine, path, tenant string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if tenant != "" {
		req.Header.Set(middlewares.TenantHeader, tenant)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMissingTenantHeaderRejected(t *testing.T) {
	r := newTestRouter(&stubEngine{raw: json.RawMessage(`{}`)})
	w := doRequest(r, "/api/v1/analytics/eda", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), errorx.ErrTenantRequired.Error())
}

func TestUnknownTenantRejected(t *testing.T) {
	r := newTestRouter(&stubEngine{raw: json.RawMessage(`{}`)})
	w := doRequest(r, "/api/v1/analytics/eda", "t2")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSegmentationPassthrough(t *testing.T) {
	r := newTestRouter(&stubEngine{raw: json.RawMessage(
		`{"segments_summary": [{"Cluster": 0, "Monetary": 50, "customerId": 4}], "customer_segments": []}`)})

	w := doRequest(r, "/api/v1/analytics/segmentation", "t1")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			SegmentsSummary []map[string]interface{} `json:"segments_summary"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.SegmentsSummary, 1)
	assert.Equal(t, 50.0, body.Data.SegmentsSummary[0]["Monetary"])
}

func TestForecastChartShaped(t *testing.T) {
	r := newTestRouter(&stubEngine{raw: json.RawMessage(`{
		"data": [
			{"date": "2024-01-01", "value": 100, "type": "history"},
			{"date": "2024-01-02", "value": 110, "type": "forecast"}
		],
		"metrics": {"RMSE": 1.0, "MAPE": "N/A"}
	}`)})

	w := doRequest(r, "/api/v1/analytics/forecast/chart", "t1")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Available bool `json:"available"`
			Points    []struct {
				Date     string   `json:"date"`
				History  *float64 `json:"history"`
				Forecast *float64 `json:"forecast"`
			} `json:"points"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Data.Available)
	require.Len(t, body.Data.Points, 2)

	// 唯一重叠点在最后一个历史日期
	assert.NotNil(t, body.Data.Points[0].History)
	assert.NotNil(t, body.Data.Points[0].Forecast)
	assert.Nil(t, body.Data.Points[1].History)
	assert.NotNil(t, body.Data.Points[1].Forecast)
}

func TestChartNeutralOnEngineErrorMarker(t *testing.T) {
	r := newTestRouter(&stubEngine{raw: json.RawMessage(`{"error": "No order data for segmentation"}`)})

	w := doRequest(r, "/api/v1/analytics/segmentation/chart", "t1")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Available bool   `json:"available"`
			Message   string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Data.Available)
	assert.Equal(t, "No segmentation data available", body.Data.Message)
}

func TestEngineFailureHidesDiagnostics(t *testing.T) {
	r := newTestRouter(&stubEngine{err: errorx.NewEngineExecutionError("eda.py", 1, "Traceback: secret path /opt/x")})

	w := doRequest(r, "/api/v1/analytics/eda", "t1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "Traceback")
	assert.NotContains(t, w.Body.String(), "/opt/x")
	assert.Contains(t, w.Body.String(), "analysis computation failed")
}

func TestOverviewAndTopCustomers(t *testing.T) {
	r := newTestRouter(&stubEngine{raw: json.RawMessage(`{}`)})

	w := doRequest(r, "/api/v1/analytics/overview", "t1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_orders":5`)

	w = doRequest(r, "/api/v1/analytics/customers/top?limit=1", "t1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"orders_count":3`)

	w = doRequest(r, "/api/v1/analytics/customers/top?limit=500", "t1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRevenueTrends(t *testing.T) {
	r := newTestRouter(&stubEngine{raw: json.RawMessage(`{}`)})

	// 未指定粒度时按日聚合
	w := doRequest(r, "/api/v1/analytics/revenue/trends", "t1")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []struct {
			Date       string `json:"date"`
			Revenue    string `json:"revenue"`
			OrderCount int64  `json:"order_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "2024-01-01", body.Data[0].Date)
	assert.Equal(t, "19.9", body.Data[0].Revenue)
	assert.Equal(t, int64(2), body.Data[1].OrderCount)

	w = doRequest(r, "/api/v1/analytics/revenue/trends?groupBy=month&startDate=2024-01-01&endDate=2024-03-31", "t1")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRevenueTrendsRejectsBadParams(t *testing.T) {
	r := newTestRouter(&stubEngine{raw: json.RawMessage(`{}`)})

	w := doRequest(r, "/api/v1/analytics/revenue/trends?groupBy=hour", "t1")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, "/api/v1/analytics/revenue/trends?startDate=01-01-2024", "t1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
