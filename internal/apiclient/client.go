// Package apiclient is the JSON client for the Techmart REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"techmart/internal/domain"
)

// DefaultBaseURL адрес API по умолчанию
const DefaultBaseURL = "http://localhost:3000/api"

// APIError ответ сервера со статусом вне 2xx
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string { return "API Error: " + e.Status }

// NotFound reports a 404 response.
func (e *APIError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	logger    *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// URL joins path to the base URL, adding a leading slash when missing.
func (c *Client) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// ListQuery параметры постраничных списков
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

func (q ListQuery) encode() string {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v.Encode()
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ListProducts(ctx context.Context, q ListQuery) (domain.Page[domain.Product], error) {
	var page domain.Page[domain.Product]
	err := c.do(ctx, http.MethodGet, withQuery("/products", q.encode()), nil, &page)
	return page, err
}

// LowStock товары с остатком не выше threshold; threshold <= 0 leaves the
// server default.
func (c *Client) LowStock(ctx context.Context, threshold int64, q ListQuery) (domain.LowStockPage, error) {
	v, _ := url.ParseQuery(q.encode())
	if threshold > 0 {
		v.Set("threshold", strconv.FormatInt(threshold, 10))
	}
	var out domain.LowStockPage
	err := c.do(ctx, http.MethodGet, withQuery("/inventory/low-stock", v.Encode()), nil, &out)
	return out, err
}

func (c *Client) CreateTransaction(ctx context.Context, p domain.TransactionPayload) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", p, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *Client) ListTransactions(ctx context.Context, q ListQuery) (domain.Page[domain.Transaction], error) {
	var page domain.Page[domain.Transaction]
	err := c.do(ctx, http.MethodGet, withQuery("/transactions", q.encode()), nil, &page)
	return page, err
}

func periodQuery(from, to string) string {
	v := url.Values{}
	if from != "" {
		v.Set("from", from)
	}
	if to != "" {
		v.Set("to", to)
	}
	return v.Encode()
}

// Overview KPI дашборда; from and to are dates (YYYY-MM-DD) or empty.
func (c *Client) Overview(ctx context.Context, from, to string) (domain.Overview, error) {
	var out domain.Overview
	err := c.do(ctx, http.MethodGet, withQuery("/dashboard/overview", periodQuery(from, to)), nil, &out)
	return out, err
}

func (c *Client) CompletedByCategory(ctx context.Context, from, to string) ([]domain.CategoryCount, error) {
	var out []domain.CategoryCount
	err := c.do(ctx, http.MethodGet, withQuery("/products/completed-by-category", periodQuery(from, to)), nil, &out)
	return out, err
}

func (c *Client) HourlySales(ctx context.Context, date string) (domain.HourlySales, error) {
	v := url.Values{}
	if date != "" {
		v.Set("date", date)
	}
	var out domain.HourlySales
	err := c.do(ctx, http.MethodGet, withQuery("/analytics/hourly-sales", v.Encode()), nil, &out)
	return out, err
}

func (c *Client) BestPerforming(ctx context.Context, limit int) ([]domain.BestPerformingProduct, error) {
	v := url.Values{}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var out []domain.BestPerformingProduct
	err := c.do(ctx, http.MethodGet, withQuery("/products/best-performing", v.Encode()), nil, &out)
	return out, err
}

func (c *Client) CalculateFraudScores(ctx context.Context) (domain.FraudScores, error) {
	var out domain.FraudScores
	err := c.do(ctx, http.MethodPost, "/transactions/calculate-fraud-scores", nil, &out)
	return out, err
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: marshal request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), rdr)
	if err != nil {
		return fmt.Errorf("apiclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &APIError{StatusCode: resp.StatusCode, Status: reason(resp)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apiclient: decode %s %s: %w", method, path, err)
	}
	return nil
}

// reason returns the status text as sent by the server.
func reason(resp *http.Response) string {
	if r := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); r != "" && r != resp.Status {
		return r
	}
	return http.StatusText(resp.StatusCode)
}
