package console

import "testing"

func TestParseDiscountValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "plainNumber", raw: "10", want: 10},
		{name: "decimal", raw: "2.50", want: 2.5},
		{name: "empty", raw: "", want: 0},
		{name: "whitespace", raw: "   ", want: 0},
		{name: "nonNumeric", raw: "abc", want: 0},
		{name: "negative", raw: "-5", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDiscountValue(tt.raw); got != tt.want {
				t.Errorf("ParseDiscountValue(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		kind         string
		subtotal     float64
		wantDesconto float64
		wantTotal    float64
	}{
		{
			name:         "fixedWithinSubtotal",
			raw:          "10",
			kind:         DiscountFixed,
			subtotal:     100,
			wantDesconto: 10,
			wantTotal:    90,
		},
		{
			name:         "fixedClampedToSubtotal",
			raw:          "150",
			kind:         DiscountFixed,
			subtotal:     100,
			wantDesconto: 100,
			wantTotal:    0,
		},
		{
			name:         "percentageHalf",
			raw:          "50",
			kind:         DiscountPercent,
			subtotal:     100,
			wantDesconto: 50,
			wantTotal:    50,
		},
		{
			name:         "percentageOverHundredFloorsTotal",
			raw:          "150",
			kind:         DiscountPercent,
			subtotal:     100,
			wantDesconto: 150,
			wantTotal:    0,
		},
		{
			name:         "invalidInputIsZero",
			raw:          "abc",
			kind:         DiscountFixed,
			subtotal:     100,
			wantDesconto: 0,
			wantTotal:    100,
		},
		{
			name:         "negativeInputIsZero",
			raw:          "-10",
			kind:         DiscountPercent,
			subtotal:     100,
			wantDesconto: 0,
			wantTotal:    100,
		},
		{
			name:         "unknownKindIsZero",
			raw:          "10",
			kind:         "pts",
			subtotal:     100,
			wantDesconto: 0,
			wantTotal:    100,
		},
		{
			name:         "zeroSubtotal",
			raw:          "10",
			kind:         DiscountFixed,
			subtotal:     0,
			wantDesconto: 0,
			wantTotal:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desconto, total := ComputeDiscount(tt.raw, tt.kind, tt.subtotal)
			if desconto != tt.wantDesconto {
				t.Errorf("ComputeDiscount() desconto = %v, want %v", desconto, tt.wantDesconto)
			}
			if total != tt.wantTotal {
				t.Errorf("ComputeDiscount() total = %v, want %v", total, tt.wantTotal)
			}
		})
	}
}

func TestComputeDiscountIsIdempotent(t *testing.T) {
	d1, t1 := ComputeDiscount("25", DiscountPercent, 80)
	d2, t2 := ComputeDiscount("25", DiscountPercent, 80)

	if d1 != d2 || t1 != t2 {
		t.Errorf("ComputeDiscount() not idempotent: (%v, %v) vs (%v, %v)", d1, t1, d2, t2)
	}
}
