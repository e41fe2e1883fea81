package payments

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currencies charged in whole units.
var zeroDecimalCurrencies = map[string]struct{}{
	"bif": {}, "clp": {}, "djf": {}, "gnf": {}, "jpy": {}, "kmf": {}, "krw": {}, "mga": {},
	"pyg": {}, "rwf": {}, "ugx": {}, "vnd": {}, "vuv": {}, "xaf": {}, "xof": {}, "xpf": {},
}

// FormatPrice renders a minor-unit amount for display, e.g. 4900 usd -> "49.00 USD".
func FormatPrice(minor int64, currency string) string {
	currency = strings.ToLower(strings.TrimSpace(currency))
	code := strings.ToUpper(currency)

	if _, ok := zeroDecimalCurrencies[currency]; ok {
		return strings.TrimSpace(decimal.NewFromInt(minor).String() + " " + code)
	}
	return strings.TrimSpace(decimal.New(minor, -2).StringFixed(2) + " " + code)
}
