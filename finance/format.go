package finance

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Amount renders d with digit grouping and at most two fraction digits,
// e.g. 50000 -> "50,000" and 1234.5 -> "1,234.5".
func Amount(d decimal.Decimal) string {
	return printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
}

// Rupees prefixes Amount with the rupee sign.
func Rupees(d decimal.Decimal) string {
	return "₹" + Amount(d)
}
