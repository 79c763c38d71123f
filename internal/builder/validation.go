package builder

import "fmt"

// Field names used as keys in ValidationResult.FieldErrors.
const (
	FieldCustomerID      = "customerId"
	FieldProductID       = "productId"
	FieldQuantity        = "quantity"
	FieldUnitPrice       = "unitPrice"
	FieldPaymentMethod   = "paymentMethod"
	FieldDiscountPercent = "discountPercent"
	FieldShippingCost    = "shippingCost"
)

// MsgProductLoadFailed is shown on productId when resolution fails.
const MsgProductLoadFailed = "Failed to load product details"

// ValidationResult результат проверки формы
type ValidationResult struct {
	FieldErrors   map[string]string `json:"fieldErrors"`
	IsSubmittable bool              `json:"isSubmittable"`
}

// ResolutionState состояние разрешения товара на момент проверки
type ResolutionState struct {
	Product *ResolvedProduct
	Pending bool
	Err     error
}

// Validate recomputes the full result from the form and the resolver's
// latest output. It never reuses an earlier result.
func Validate(f FormState, res ResolutionState) ValidationResult {
	errs := make(map[string]string)

	if f.CustomerID < 1 {
		errs[FieldCustomerID] = "Customer ID is required"
	}
	if f.ProductID < 1 {
		errs[FieldProductID] = "Product ID is required"
	} else if res.Err != nil {
		errs[FieldProductID] = MsgProductLoadFailed
	}
	if f.Quantity < 1 {
		errs[FieldQuantity] = "Quantity must be at least 1"
	}
	if f.UnitPrice < 0 {
		errs[FieldUnitPrice] = "Unit price must be positive"
	}
	if !f.PaymentMethod.Valid() {
		errs[FieldPaymentMethod] = "Invalid payment method"
	}
	if f.DiscountPercent < 0 {
		errs[FieldDiscountPercent] = "Number must be greater than or equal to 0"
	} else if f.DiscountPercent > 100 {
		errs[FieldDiscountPercent] = "Number must be less than or equal to 100"
	}
	if f.ShippingCost < 0 {
		errs[FieldShippingCost] = "Number must be greater than or equal to 0"
	}

	// stock check runs independently of the schema checks above
	if p := res.Product; p != nil && f.Quantity > p.StockQuantity {
		errs[FieldQuantity] = fmt.Sprintf("Only %d units available", p.StockQuantity)
	}

	consistent := res.Product != nil && !res.Pending && res.Product.ID == f.ProductID
	return ValidationResult{
		FieldErrors:   errs,
		IsSubmittable: len(errs) == 0 && consistent,
	}
}
