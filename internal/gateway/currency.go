package gateway

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currencies charged in whole units or in thousandths, per ISO 4217. Every
// other currency has two decimal places.
var (
	zeroDecimalCurrencies = map[string]bool{
		"BIF": true, "CLP": true, "DJF": true, "GNF": true, "ISK": true,
		"JPY": true, "KMF": true, "KRW": true, "PYG": true, "RWF": true,
		"UGX": true, "UYI": true, "VND": true, "VUV": true, "XAF": true,
		"XOF": true, "XPF": true,
	}
	threeDecimalCurrencies = map[string]bool{
		"BHD": true, "IQD": true, "JOD": true, "KWD": true, "LYD": true,
		"OMR": true, "TND": true,
	}
)

// MinorUnits returns the number of decimal places of currency.
func MinorUnits(currency string) int32 {
	code := strings.ToUpper(currency)
	switch {
	case zeroDecimalCurrencies[code]:
		return 0
	case threeDecimalCurrencies[code]:
		return 3
	}
	return 2
}

// ToMinorUnits converts amount into the smallest unit of currency. ok is false
// when amount has more precision than the currency allows.
func ToMinorUnits(amount decimal.Decimal, currency string) (units int64, ok bool) {
	scaled := amount.Shift(MinorUnits(currency))
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, false
	}
	return scaled.IntPart(), true
}
