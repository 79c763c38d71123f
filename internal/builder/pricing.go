package builder

import "github.com/shopspring/decimal"

// TaxRate фиксированная ставка налога
const TaxRate = 0.12

// PricingInput входные данные расчёта
type PricingInput struct {
	Quantity        int64
	UnitPrice       float64
	DiscountPercent float64
	ShippingCost    float64
}

// PricingBreakdown производные суммы заказа. Values are kept at full
// precision; use Rounded for display or submission.
type PricingBreakdown struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discountAmount"`
	TaxAmount      float64 `json:"taxAmount"`
	ShippingCost   float64 `json:"shippingCost"`
	TotalAmount    float64 `json:"totalAmount"`
}

// ComputePricing is pure: equal inputs always yield equal outputs.
func ComputePricing(in PricingInput) PricingBreakdown {
	subtotal := float64(in.Quantity) * in.UnitPrice
	discount := subtotal * in.DiscountPercent / 100
	taxable := subtotal - discount
	tax := taxable * TaxRate
	return PricingBreakdown{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		ShippingCost:   in.ShippingCost,
		TotalAmount:    taxable + tax + in.ShippingCost,
	}
}

// Rounded returns a copy with every amount rounded to cents.
func (b PricingBreakdown) Rounded() PricingBreakdown {
	return PricingBreakdown{
		Subtotal:       Round2(b.Subtotal),
		DiscountAmount: Round2(b.DiscountAmount),
		TaxAmount:      Round2(b.TaxAmount),
		ShippingCost:   Round2(b.ShippingCost),
		TotalAmount:    Round2(b.TotalAmount),
	}
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatAmount renders v with exactly two decimals, e.g. "161.17".
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
