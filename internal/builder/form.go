package builder

import "techmart/internal/domain"

// FormState поля формы создания транзакции.
// UnitPrice is owned by the product resolver and never edited directly.
type FormState struct {
	CustomerID      int64                `json:"customerId"`
	ProductID       int64                `json:"productId"`
	Quantity        int64                `json:"quantity"`
	UnitPrice       float64              `json:"unitPrice"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod"`
	DiscountPercent float64              `json:"discountPercent"`
	ShippingCost    float64              `json:"shippingCost"`
}

// DefaultForm начальное состояние формы
func DefaultForm() FormState {
	return FormState{
		Quantity:      1,
		PaymentMethod: domain.PaymentCreditCard,
		ShippingCost:  10,
	}
}

func (f FormState) pricingInput() PricingInput {
	return PricingInput{
		Quantity:        f.Quantity,
		UnitPrice:       f.UnitPrice,
		DiscountPercent: f.DiscountPercent,
		ShippingCost:    f.ShippingCost,
	}
}

// SelectOption значение выпадающего списка
type SelectOption struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

var DiscountOptions = []SelectOption{
	{Value: 0, Label: "No Discount"},
	{Value: 5, Label: "5% Off"},
	{Value: 10, Label: "10% Off"},
	{Value: 15, Label: "15% Off"},
}

var ShippingOptions = []SelectOption{
	{Value: 0, Label: "Free Shipping"},
	{Value: 10, Label: "Standard - $10"},
	{Value: 20, Label: "Express - $20"},
	{Value: 30, Label: "Overnight - $30"},
}
