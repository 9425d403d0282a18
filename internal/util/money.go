package util

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// IsSupportedCurrency checks the ISO 4217 code against go-money's table
func IsSupportedCurrency(code string) bool {
	return money.GetCurrency(strings.ToUpper(code)) != nil
}

// FormatMoney renders an amount with the currency's symbol and minor
// units, e.g. $60,000.00. Unknown currencies are rendered as USD.
func FormatMoney(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(currency)
	if !IsSupportedCurrency(code) {
		code = money.USD
	}
	cur := money.New(0, code).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
