package csvexport

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techmart/internal/domain"
)

func TestEncode_QuotesCommas(t *testing.T) {
	rows := []Record{{"a": 1, "b": "x,y"}}
	out, err := Encode(rows, []Column{{Key: "a", Header: "A"}, {Key: "b", Header: "B"}})
	require.NoError(t, err)
	assert.Equal(t, "A,B\n1,\"x,y\"", out)
}

func TestEncode_Escaping(t *testing.T) {
	rows := []Record{
		{"v": `say "hi"`},
		{"v": "two\nlines"},
		{"v": nil},
		{"v": " padded "},
	}
	out, err := Encode(rows, []Column{{Key: "v", Header: "V"}})
	require.NoError(t, err)
	assert.Equal(t, "V\n\"say \"\"hi\"\"\"\n\"two\nlines\"\n\n padded ", out)
}

func TestEncode_DottedPaths(t *testing.T) {
	rows, err := Records([]map[string]any{
		{"id": 1, "customer": map[string]any{"firstName": "Ada", "address": map[string]any{"city": "Paris"}}},
		{"id": 2},
	})
	require.NoError(t, err)

	out, err := Encode(rows, []Column{
		{Key: "id", Header: "ID"},
		{Key: "customer.firstName", Header: "First"},
		{Key: "customer.address.city", Header: "City"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ID,First,City\n1,Ada,Paris\n2,,", out)
}

func TestEncode_DottedKeyIsAlwaysAPath(t *testing.T) {
	rows := []Record{
		{"product.name": "flat", "product": map[string]any{"name": "nested"}},
		{"product.name": "flat only"},
	}
	out, err := Encode(rows, []Column{{Key: "product.name", Header: "Product"}})
	require.NoError(t, err)
	assert.Equal(t, "Product\nnested\n", out)
}

func TestEncode_DefaultColumns(t *testing.T) {
	out, err := Encode([]Record{{"b": 2, "a": 1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2", out)
}

func TestEncode_NoData(t *testing.T) {
	_, err := Encode(nil, ProductColumns)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRecords_Transactions(t *testing.T) {
	txs := []domain.Transaction{{
		ID:          4,
		CustomerID:  9,
		Quantity:    3,
		UnitPrice:   decimal.RequireFromString("49.99"),
		TotalAmount: decimal.RequireFromString("161.17"),
		Status:      domain.TransactionCompleted,
		Product:     &domain.ProductSummary{Name: "Desk, oak", Category: "Furniture"},
	}}
	rows, err := Records(txs)
	require.NoError(t, err)

	out, err := Encode(rows, []Column{
		{Key: "id", Header: "ID"},
		{Key: "product.name", Header: "Product"},
		{Key: "quantity", Header: "Qty"},
		{Key: "totalAmount", Header: "Total"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ID,Product,Qty,Total\n4,\"Desk, oak\",3,161.17", out)
}

func TestFilenameAndWriteFile(t *testing.T) {
	now := time.Date(2026, 10, 16, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "products_2026-10-16.csv", Filename("products", now))

	dir := t.TempDir()
	path, err := WriteFile(dir, "products", []Record{{"id": 1}}, []Column{{Key: "id", Header: "ID"}}, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "products_2026-10-16.csv"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ID\n1", string(b))
}
