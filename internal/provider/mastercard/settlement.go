package mastercard

import "cardfx-service/internal/domain/model"

// settlementMarkets maps base currencies priced on a dedicated regional
// sub-endpoint to that market's identifier. Currencies not listed here are
// served by the default multi-settlement-currency group. The table is static
// provider metadata and never mutated at runtime.
var settlementMarkets = map[model.Currency]string{
	"AUD": "AU",
	"NZD": "NZ",
	"SGD": "SG",
	"HKD": "HK",
	"INR": "IN",
}

// MarketFor returns the regional market identifier serving a base currency,
// or the empty string for the default group.
func MarketFor(base model.Currency) string {
	return settlementMarkets[base.Normalize()]
}
