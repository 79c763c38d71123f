package builder

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestComputePricing_Example(t *testing.T) {
	b := ComputePricing(PricingInput{Quantity: 3, UnitPrice: 49.99, DiscountPercent: 10, ShippingCost: 10})

	assert.InDelta(t, 149.97, b.Subtotal, 1e-9)
	assert.InDelta(t, 14.997, b.DiscountAmount, 1e-9)
	assert.InDelta(t, 16.19676, b.TaxAmount, 1e-9)
	assert.InDelta(t, 10.0, b.ShippingCost, 1e-9)
	assert.InDelta(t, 161.16976, b.TotalAmount, 1e-9)

	r := b.Rounded()
	assert.Equal(t, 149.97, r.Subtotal)
	assert.Equal(t, 15.0, r.DiscountAmount)
	assert.Equal(t, 16.2, r.TaxAmount)
	assert.Equal(t, 161.17, r.TotalAmount)
	assert.Equal(t, "161.17", FormatAmount(b.TotalAmount))
}

func TestComputePricing_ZeroQuantity(t *testing.T) {
	b := ComputePricing(PricingInput{Quantity: 0, UnitPrice: 20, DiscountPercent: 5, ShippingCost: 30})
	assert.Zero(t, b.Subtotal)
	assert.Zero(t, b.TaxAmount)
	assert.Equal(t, 30.0, b.TotalAmount)
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		0:         0,
		1.004:     1,
		2.675:     2.68,
		16.19676:  16.2,
		14.997:    15,
		-3.14159:  -3.14,
		123.4567:  123.46,
		99.999999: 100,
	}
	for in, want := range cases {
		assert.Equal(t, want, Round2(in), "Round2(%v)", in)
	}
}

func TestComputePricing_TotalFormula(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("total equals (q*p - q*p*d/100) * 1.12 + s", prop.ForAll(
		func(q int64, p float64, d float64, s float64) bool {
			b := ComputePricing(PricingInput{Quantity: q, UnitPrice: p, DiscountPercent: d, ShippingCost: s})
			sub := float64(q) * p
			want := (sub-sub*d/100)*1.12 + s
			diff := b.TotalAmount - want
			if diff < 0 {
				diff = -diff
			}
			return diff <= 1e-6*(1+want)
		},
		gen.Int64Range(0, 1000),
		gen.Float64Range(0, 10000),
		discountGen(),
		gen.Float64Range(0, 100),
	))

	properties.Property("pricing is deterministic", prop.ForAll(
		func(q int64, p float64, d float64) bool {
			in := PricingInput{Quantity: q, UnitPrice: p, DiscountPercent: d, ShippingCost: 10}
			return ComputePricing(in) == ComputePricing(in)
		},
		gen.Int64Range(0, 1000),
		gen.Float64Range(0, 10000),
		discountGen(),
	))

	properties.TestingRun(t)
}

func discountGen() gopter.Gen {
	return gen.IntRange(0, 3).Map(func(i int) float64 { return float64(i * 5) })
}

func TestDefaultFormUsesListedOptions(t *testing.T) {
	f := DefaultForm()
	has := func(opts []SelectOption, v float64) bool {
		for _, o := range opts {
			if o.Value == v {
				return true
			}
		}
		return false
	}
	assert.True(t, has(DiscountOptions, f.DiscountPercent))
	assert.True(t, has(ShippingOptions, f.ShippingCost))
}
