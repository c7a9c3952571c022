// Package money converts between base-currency decimal amounts and integer
// minor units (rupees to paise). Every amount sent to the payment gateway
// goes through ToMinorUnits first.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ToMinorUnits rounds half-up to the nearest minor unit.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(hundred)
}
