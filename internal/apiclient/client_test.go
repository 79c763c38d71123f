package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techmart/internal/domain"
)

func TestClient_GetProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/5", r.URL.Path)
		assert.Equal(t, "agent/1", r.UserAgent())
		_, _ = w.Write([]byte(`{"id":5,"name":"Mouse","sku":"M-5","price":"49.99","stockQuantity":12}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", WithUserAgent("agent/1"))
	p, err := c.GetProduct(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Mouse", p.Name)
	assert.True(t, decimal.RequireFromString("49.99").Equal(p.Price))
	assert.Equal(t, int64(12), p.StockQuantity)
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/products/1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := New(srv.URL)

	_, err := c.GetProduct(context.Background(), 1)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.NotFound())
	assert.EqualError(t, err, "API Error: Not Found")

	_, err = c.CreateTransaction(context.Background(), domain.TransactionPayload{})
	assert.EqualError(t, err, "API Error: Internal Server Error")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestClient_ErrorKeepsServerReason(t *testing.T) {
	status := "404 Product Missing"
	stub := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		code := 404
		if status == "503" {
			code = 503
		}
		return &http.Response{
			StatusCode: code,
			Status:     status,
			Body:       io.NopCloser(strings.NewReader("")),
			Request:    r,
		}, nil
	})
	c := New("http://api.test", WithHTTPClient(&http.Client{Transport: stub}))

	_, err := c.GetProduct(context.Background(), 1)
	assert.EqualError(t, err, "API Error: Product Missing")

	// bare code falls back to the standard text
	status = "503"
	_, err = c.GetProduct(context.Background(), 1)
	assert.EqualError(t, err, "API Error: Service Unavailable")
}

func TestClient_LowStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/inventory/low-stock", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "5", q.Get("limit"))
		assert.Equal(t, "7", q.Get("threshold"))
		_, _ = w.Write([]byte(`{"products":[{"id":4,"stockQuantity":4}],"threshold":7,"total":6,"page":2,"limit":5,"totalPages":2}`))
	}))
	defer srv.Close()

	out, err := New(srv.URL+"/api").LowStock(context.Background(), 7, ListQuery{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.Threshold)
	page := out.ProductPage()
	assert.Equal(t, 6, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 1)
	assert.Equal(t, int64(4), page.Data[0].ID)
}

func TestClient_Dashboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.Method + " " + r.URL.Path {
		case "GET /dashboard/overview":
			assert.Equal(t, "2025-03-01", q.Get("from"))
			assert.Equal(t, "2025-03-31", q.Get("to"))
			_, _ = w.Write([]byte(`{"data":{"totalRevenue":1619.5,"totalTransactions":2},"trends":{"revenueChange":12.5}}`))
		case "GET /products/completed-by-category":
			assert.Empty(t, r.URL.RawQuery)
			_, _ = w.Write([]byte(`[{"category":"Audio","count":3}]`))
		case "GET /analytics/hourly-sales":
			assert.Equal(t, "2025-03-30", q.Get("date"))
			_, _ = w.Write([]byte(`{"data":[{"hour":"09:00","revenue":30,"transactions":2}],"totalRevenue":30,"totalTransactions":2,"period":{"date":"2025-03-30"}}`))
		case "GET /products/best-performing":
			assert.Equal(t, "3", q.Get("limit"))
			_, _ = w.Write([]byte(`[{"productId":2,"totalRevenue":1290}]`))
		case "POST /transactions/calculate-fraud-scores":
			_, _ = w.Write([]byte(`{"processed":2,"updated":2,"verdictBreakdown":{"safe":1,"medium-risk":1}}`))
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	ctx := context.Background()
	c := New(srv.URL)

	ov, err := c.Overview(ctx, "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.Equal(t, 1619.5, ov.Data.TotalRevenue)
	assert.Equal(t, 12.5, ov.Trends.RevenueChange)

	cats, err := c.CompletedByCategory(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryCount{{Category: "Audio", Count: 3}}, cats)

	hs, err := c.HourlySales(ctx, "2025-03-30")
	require.NoError(t, err)
	assert.Equal(t, 2, hs.TotalTransactions)
	assert.Equal(t, "09:00", hs.Data[0].Hour)

	best, err := c.BestPerforming(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), best[0].ProductID)

	fs, err := c.CalculateFraudScores(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictBreakdown{Safe: 1, MediumRisk: 1}, fs.VerdictBreakdown)
}

func TestClient_CreateTransaction(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transactions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":10,"customerId":1,"productId":2,"status":"completed","totalAmount":"161.17"}`))
	}))
	defer srv.Close()

	tx, err := New(srv.URL).CreateTransaction(context.Background(), domain.TransactionPayload{
		CustomerID:      1,
		ProductID:       2,
		Quantity:        3,
		UnitPrice:       49.99,
		Status:          domain.TransactionCompleted,
		PaymentMethod:   domain.PaymentCreditCard,
		DiscountApplied: 15,
		TaxAmount:       16.2,
		ShippingCost:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), tx.ID)
	assert.Equal(t, "161.17", tx.TotalAmount.StringFixed(2))
	assert.Equal(t, 49.99, got["unitPrice"])
	assert.Equal(t, "completed", got["status"])
	assert.Equal(t, 15.0, got["discountApplied"])
}

func TestClient_ListQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "usb hub", r.URL.Query().Get("search"))
		_, _ = w.Write([]byte(`{"data":[{"id":1}],"total":11,"page":2,"limit":10,"totalPages":2}`))
	}))
	defer srv.Close()

	page, err := New(srv.URL).ListProducts(context.Background(), ListQuery{Page: 2, Limit: 10, Search: "usb hub"})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 2, page.TotalPages)
}

func TestIPLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ip":"198.51.100.4"}`))
	}))
	defer srv.Close()

	ip, err := NewIPLookup(srv.URL, 0).LookupIP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.4", ip)

	srv.Close()
	_, err = NewIPLookup(srv.URL, 0).LookupIP(context.Background())
	assert.Error(t, err)
}
