package models

import "github.com/shopspring/decimal"

// roundMoney normalizes a monetary or percentage value to two decimal
// places, ties rounded away from zero.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// moneyPtr returns a pointer to a rounded copy, for nullable metrics.
func moneyPtr(d decimal.Decimal) *decimal.Decimal {
	v := roundMoney(d)
	return &v
}
