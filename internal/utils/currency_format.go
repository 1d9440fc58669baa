package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// LedgerCurrency is the ISO code amounts are kept in.
const LedgerCurrency = "ETB"

// FormatMoney renders amount in the display format of currency (e.g. "1,250.50 Br").
// Unknown currencies fall back to the plain amount at two decimals followed by the code.
func FormatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return FormatWithPrecision(amount, 2) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), currency).Display()
}

// FormatSignedMoney is FormatMoney with an explicit "+" for positive amounts.
func FormatSignedMoney(amount decimal.Decimal, currency string) string {
	if amount.IsPositive() {
		return "+" + FormatMoney(amount, currency)
	}
	return FormatMoney(amount, currency)
}

// FormatWithPrecision formats an amount with the given precision
// This is a convenience function when you only have the precision value
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
