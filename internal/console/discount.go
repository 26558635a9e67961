package console

import (
	"strconv"
	"strings"
)

// Discount kinds as entered by staff. The raw value is only persisted
// upstream at close-out time; until then it lives in the session inputs.
const (
	DiscountFixed   = "R$"
	DiscountPercent = "%"
)

// ParseDiscountValue parses a raw discount input. Invalid or negative input
// counts as no discount.
func ParseDiscountValue(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	valor, err := strconv.ParseFloat(raw, 64)
	if err != nil || valor < 0 {
		return 0
	}
	return valor
}

// ComputeDiscount derives the applied discount and final total for a
// subtotal. Fixed discounts are clamped to the subtotal; percentage discounts
// are not, but the total is floored at zero afterward.
func ComputeDiscount(raw, kind string, subtotal float64) (desconto, total float64) {
	valor := ParseDiscountValue(raw)

	switch kind {
	case DiscountFixed:
		desconto = valor
		if desconto > subtotal {
			desconto = subtotal
		}
	case DiscountPercent:
		desconto = subtotal * (valor / 100)
	}

	total = subtotal - desconto
	if total < 0 {
		total = 0
	}
	return desconto, total
}
