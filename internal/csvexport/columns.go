package csvexport

var ProductColumns = []Column{
	{Key: "id", Header: "ID"},
	{Key: "name", Header: "Product Name"},
	{Key: "sku", Header: "SKU"},
	{Key: "category", Header: "Category"},
	{Key: "price", Header: "Price"},
	{Key: "stockQuantity", Header: "Stock"},
	{Key: "createdAt", Header: "Created"},
}

var TransactionColumns = []Column{
	{Key: "id", Header: "Transaction ID"},
	{Key: "customerId", Header: "Customer ID"},
	{Key: "product.name", Header: "Product Name"},
	{Key: "product.category", Header: "Category"},
	{Key: "quantity", Header: "Quantity"},
	{Key: "unitPrice", Header: "Unit Price"},
	{Key: "totalAmount", Header: "Total Amount"},
	{Key: "status", Header: "Status"},
	{Key: "paymentMethod", Header: "Payment Method"},
	{Key: "timestamp", Header: "Date"},
	{Key: "discountApplied", Header: "Discount"},
	{Key: "taxAmount", Header: "Tax"},
	{Key: "shippingCost", Header: "Shipping"},
}
