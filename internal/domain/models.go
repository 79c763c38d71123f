package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product представляет товар каталога Techmart.
// Price передаётся по сети десятичной строкой ("49.99").
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stockQuantity"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ProductSummary краткое описание товара внутри транзакции
type ProductSummary struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentGooglePay    PaymentMethod = "google_pay"
	PaymentApplePay     PaymentMethod = "apple_pay"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentPayPal       PaymentMethod = "paypal"
)

// PaymentMethods lists the accepted methods in display order.
var PaymentMethods = []PaymentMethod{
	PaymentCreditCard,
	PaymentGooglePay,
	PaymentApplePay,
	PaymentBankTransfer,
	PaymentPayPal,
}

func (m PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}

// TransactionStatus статус транзакции
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRefunded  TransactionStatus = "refunded"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionCompleted, TransactionPending, TransactionFailed, TransactionRefunded:
		return true
	}
	return false
}

// Transaction сущность транзакции, как её хранит и отдаёт API
type Transaction struct {
	ID              int64             `json:"id"`
	CustomerID      int64             `json:"customerId"`
	ProductID       int64             `json:"productId"`
	Quantity        int64             `json:"quantity"`
	UnitPrice       decimal.Decimal   `json:"unitPrice"`
	TotalAmount     decimal.Decimal   `json:"totalAmount"`
	Status          TransactionStatus `json:"status"`
	PaymentMethod   PaymentMethod     `json:"paymentMethod"`
	Timestamp       time.Time         `json:"timestamp"`
	IPAddress       string            `json:"ipAddress"`
	UserAgent       string            `json:"userAgent"`
	SessionID       string            `json:"sessionId"`
	DiscountApplied decimal.Decimal   `json:"discountApplied"`
	TaxAmount       decimal.Decimal   `json:"taxAmount"`
	ShippingCost    decimal.Decimal   `json:"shippingCost"`
	FraudScore      int               `json:"fraudScore"`
	FraudVerdict    FraudVerdict      `json:"fraudVerdict,omitempty"`
	Product         *ProductSummary   `json:"product,omitempty"`
}

// TransactionPayload тело запроса POST /transactions.
// DiscountApplied is an absolute currency amount, not a percentage.
type TransactionPayload struct {
	CustomerID      int64             `json:"customerId"`
	ProductID       int64             `json:"productId"`
	Quantity        int64             `json:"quantity"`
	UnitPrice       float64           `json:"unitPrice"`
	Status          TransactionStatus `json:"status"`
	PaymentMethod   PaymentMethod     `json:"paymentMethod"`
	IPAddress       string            `json:"ipAddress"`
	UserAgent       string            `json:"userAgent"`
	SessionID       string            `json:"sessionId"`
	DiscountApplied float64           `json:"discountApplied"`
	TaxAmount       float64           `json:"taxAmount"`
	ShippingCost    float64           `json:"shippingCost"`
}

// Page постраничный ответ списков
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// LowStockPage ответ GET /inventory/low-stock
type LowStockPage struct {
	Products   []Product `json:"products"`
	Threshold  int64     `json:"threshold"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}

// ProductPage returns the same page in the generic table shape.
func (l LowStockPage) ProductPage() Page[Product] {
	return Page[Product]{Data: l.Products, Total: l.Total, Page: l.Page, Limit: l.Limit, TotalPages: l.TotalPages}
}

// TotalPages returns the page count for total items split by limit.
func TotalPages(total, limit int) int {
	if limit <= 0 || total == 0 {
		return 1
	}
	return (total + limit - 1) / limit
}
