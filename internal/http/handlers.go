package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"techmart/internal/builder"
	"techmart/internal/domain"
	"techmart/internal/repository"
	"techmart/internal/service"
)

// DefaultLowStockThreshold порог остатка, если запрос его не задаёт
const DefaultLowStockThreshold = 10

type Server struct {
	engine       *gin.Engine
	products     *service.ProductService
	transactions *service.TransactionService
	logger       *zap.Logger
	analytics    *service.AnalyticsService
	limiter      *RateLimiter
	lowStock     int64
}

type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) { s.limiter = rl }
}

// WithAnalytics включает маршруты дашборда
func WithAnalytics(a *service.AnalyticsService) Option {
	return func(s *Server) { s.analytics = a }
}

func WithLowStockThreshold(n int64) Option {
	return func(s *Server) { s.lowStock = n }
}

func NewServer(products *service.ProductService, transactions *service.TransactionService, opts ...Option) *Server {
	s := &Server{
		products:     products,
		transactions: transactions,
		logger:       zap.NewNop(),
		lowStock:     DefaultLowStockThreshold,
	}
	for _, o := range opts {
		o(s)
	}
	r := gin.New()
	r.Use(requestLogger(s.logger), gin.Recovery())
	if s.limiter != nil {
		r.Use(s.limiter.Middleware())
	}
	s.engine = r
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := s.engine.Group("/api")
	{
		products := api.Group("/products")
		products.POST("", s.createProduct)
		products.GET("", s.listProducts)
		products.GET("/low-stock", s.lowStockProducts)
		products.GET("/:id", s.getProduct)
		products.PUT("/:id", s.updateProduct)
		products.DELETE("/:id", s.deleteProduct)

		txs := api.Group("/transactions")
		txs.POST("", s.createTransaction)
		txs.GET("", s.listTransactions)
		txs.POST("/quote", s.quote)
		txs.GET("/:id", s.getTransaction)

		api.GET("/inventory/low-stock", s.lowStockProducts)

		if s.analytics != nil {
			api.GET("/dashboard/overview", s.overview)
			api.GET("/analytics/hourly-sales", s.hourlySales)
			products.GET("/completed-by-category", s.completedByCategory)
			products.GET("/best-performing", s.bestPerforming)
			txs.POST("/calculate-fraud-scores", s.calculateFraudScores)
		}
	}
}

// Product handlers
type productReq struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price" swaggertype:"string" example:"49.99"`
	StockQuantity int64           `json:"stockQuantity"`
	Description   string          `json:"description"`
}

func (r productReq) product(id int64) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          r.Name,
		Category:      r.Category,
		SKU:           r.SKU,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		Description:   r.Description,
	}
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param input body productReq true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.products.Create(c, req.product(0))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := s.products.GetByID(c, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param input body productReq true "Update"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.products.Update(c, req.product(id))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Delete product
// @Tags products
// @Param id path int true "Product ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.products.Delete(c, id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List products
// @Tags products
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param search query string false "Name, SKU or category contains"
// @Success 200 {object} domain.Page[domain.Product]
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	page, err := s.products.List(c, listParams(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary Low stock products
// @Tags products
// @Produce json
// @Param threshold query int false "Max stock quantity"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} domain.LowStockPage
// @Failure 400 {object} map[string]string
// @Router /products/low-stock [get]
// @Router /inventory/low-stock [get]
func (s *Server) lowStockProducts(c *gin.Context) {
	threshold := s.lowStock
	if v := c.Query("threshold"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid threshold"})
			return
		}
		threshold = x
	}
	out, err := s.products.LowStock(c, threshold, listParams(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Transaction handlers

// @Summary Create transaction
// @Description Reserves stock and records the transaction. totalAmount is computed server-side.
// @Tags transactions
// @Accept json
// @Produce json
// @Param input body domain.TransactionPayload true "Transaction"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /transactions [post]
func (s *Server) createTransaction(c *gin.Context) {
	var req domain.TransactionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.IPAddress == "" {
		req.IPAddress = c.ClientIP()
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Request.UserAgent()
	}
	tx, err := s.transactions.Create(c, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.logger.Info("transaction created",
		zap.Int64("id", tx.ID),
		zap.Int64("product_id", tx.ProductID),
		zap.String("total", tx.TotalAmount.StringFixed(2)),
	)
	c.JSON(http.StatusCreated, tx)
}

// @Summary Get transaction by id
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} domain.Transaction
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [get]
func (s *Server) getTransaction(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	tx, err := s.transactions.GetTransaction(c, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param search query string false "Status, payment method, session or product"
// @Success 200 {object} domain.Page[domain.Transaction]
// @Router /transactions [get]
func (s *Server) listTransactions(c *gin.Context) {
	page, err := s.transactions.List(c, listParams(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type quoteReq struct {
	Quantity        int64   `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
	DiscountPercent float64 `json:"discountPercent"`
	ShippingCost    float64 `json:"shippingCost"`
}

// @Summary Price a prospective transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param input body quoteReq true "Pricing input"
// @Success 200 {object} builder.PricingBreakdown
// @Failure 400 {object} map[string]string
// @Router /transactions/quote [post]
func (s *Server) quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	q, err := s.transactions.Quote(builder.PricingInput{
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		DiscountPercent: req.DiscountPercent,
		ShippingCost:    req.ShippingCost,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, q.Rounded())
}

// Dashboard handlers

const dayLayout = "2006-01-02"

// parseBound accepts RFC3339 or a bare date. A bare upper bound covers
// the whole day.
func parseBound(v string, upper bool) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(dayLayout, v)
	if err != nil {
		return time.Time{}, err
	}
	if upper {
		t = t.Add(24 * time.Hour)
	}
	return t, nil
}

func periodParams(c *gin.Context) (service.Period, error) {
	from, err := parseBound(c.Query("from"), false)
	if err != nil {
		return service.Period{}, err
	}
	to, err := parseBound(c.Query("to"), true)
	if err != nil {
		return service.Period{}, err
	}
	return service.Period{From: from, To: to}, nil
}

// @Summary Dashboard KPIs
// @Description Totals for the period and percent change against the preceding period of equal length. Defaults to the last 30 days.
// @Tags dashboard
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD or RFC3339)"
// @Param to query string false "End date, inclusive (YYYY-MM-DD or RFC3339)"
// @Success 200 {object} domain.Overview
// @Failure 400 {object} map[string]string
// @Router /dashboard/overview [get]
func (s *Server) overview(c *gin.Context) {
	p, err := periodParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	out, err := s.analytics.Overview(c, p)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Completed transactions per category
// @Tags products
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD or RFC3339)"
// @Param to query string false "End date, inclusive (YYYY-MM-DD or RFC3339)"
// @Success 200 {array} domain.CategoryCount
// @Failure 400 {object} map[string]string
// @Router /products/completed-by-category [get]
func (s *Server) completedByCategory(c *gin.Context) {
	p, err := periodParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	out, err := s.analytics.CompletedByCategory(c, p)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Hourly sales for one UTC day
// @Tags dashboard
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.HourlySales
// @Failure 400 {object} map[string]string
// @Router /analytics/hourly-sales [get]
func (s *Server) hourlySales(c *gin.Context) {
	var day time.Time
	if v := c.Query("date"); v != "" {
		d, err := time.Parse(dayLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		day = d
	}
	out, err := s.analytics.HourlySales(c, day)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Top products by completed revenue
// @Tags products
// @Produce json
// @Param limit query int false "Rows to return"
// @Success 200 {array} domain.BestPerformingProduct
// @Router /products/best-performing [get]
func (s *Server) bestPerforming(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := s.analytics.BestPerforming(c, limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Recalculate fraud scores
// @Description Scores every transaction and stores the score and verdict.
// @Tags transactions
// @Produce json
// @Success 200 {object} domain.FraudScores
// @Router /transactions/calculate-fraud-scores [post]
func (s *Server) calculateFraudScores(c *gin.Context) {
	out, err := s.analytics.CalculateFraudScores(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.logger.Info("fraud scores recalculated",
		zap.Int("processed", out.Processed),
		zap.Int("updated", out.Updated),
	)
	c.JSON(http.StatusOK, out)
}

func listParams(c *gin.Context) service.ListParams {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return service.ListParams{Page: page, Limit: limit, Search: c.Query("search")}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotEnoughStock):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
