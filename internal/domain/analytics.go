package domain

// FraudVerdict итоговая оценка риска транзакции
type FraudVerdict string

const (
	VerdictSafe       FraudVerdict = "safe"
	VerdictLowRisk    FraudVerdict = "low-risk"
	VerdictMediumRisk FraudVerdict = "medium-risk"
	VerdictHighRisk   FraudVerdict = "high-risk"
	VerdictFraudulent FraudVerdict = "fraudulent"
)

// Flagged reports whether the verdict needs manual review.
func (v FraudVerdict) Flagged() bool {
	return v == VerdictHighRisk || v == VerdictFraudulent
}

// OverviewData KPI за период
type OverviewData struct {
	TotalRevenue           float64 `json:"totalRevenue"`
	TotalTransactions      int     `json:"totalTransactions"`
	AverageOrderValue      float64 `json:"averageOrderValue"`
	SuccessfulTransactions int     `json:"successfulTransactions"`
	FailedTransactions     int     `json:"failedTransactions"`
	RefundedTransactions   int     `json:"refundedTransactions"`
	PendingTransactions    int     `json:"pendingTransactions"`
	FlaggedTransactions    int     `json:"flaggedTransactions"`
}

// OverviewTrends percent change against the preceding period of equal length.
type OverviewTrends struct {
	RevenueChange      float64 `json:"revenueChange"`
	TransactionsChange float64 `json:"transactionsChange"`
}

// Overview ответ GET /dashboard/overview
type Overview struct {
	Data   OverviewData   `json:"data"`
	Trends OverviewTrends `json:"trends"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type HourlySalesPoint struct {
	Hour              string  `json:"hour"`
	Revenue           float64 `json:"revenue"`
	Transactions      int     `json:"transactions"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

type SalesPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Date  string `json:"date"`
}

// HourlySales ответ GET /analytics/hourly-sales
type HourlySales struct {
	Data              []HourlySalesPoint `json:"data"`
	TotalRevenue      float64            `json:"totalRevenue"`
	TotalTransactions int                `json:"totalTransactions"`
	Period            SalesPeriod        `json:"period"`
}

// BestPerformingProduct строка GET /products/best-performing
type BestPerformingProduct struct {
	ProductID         int64   `json:"productId"`
	ProductName       string  `json:"productName"`
	Category          string  `json:"category"`
	SKU               string  `json:"sku"`
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalSales        int64   `json:"totalSales"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	CurrentStock      int64   `json:"currentStock"`
}

type VerdictBreakdown struct {
	Safe       int `json:"safe"`
	LowRisk    int `json:"low-risk"`
	MediumRisk int `json:"medium-risk"`
	HighRisk   int `json:"high-risk"`
	Fraudulent int `json:"fraudulent"`
}

// FraudScores ответ POST /transactions/calculate-fraud-scores
type FraudScores struct {
	Processed        int              `json:"processed"`
	Updated          int              `json:"updated"`
	VerdictBreakdown VerdictBreakdown `json:"verdictBreakdown"`
}
