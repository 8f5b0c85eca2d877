package mastercard

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"cardfx-service/internal/domain/model"
)

// currencyAliases canonicalizes the provider's non-ISO spellings for
// matching. Output currencies are always ISO codes.
var currencyAliases = map[string]model.Currency{
	"EURO": "EUR",
}

type settlementDocument struct {
	Data []settlementEntry `json:"data"`
}

type settlementEntry struct {
	SettlementCurrency string          `json:"settlementCurrency"`
	Rates              []varianceEntry `json:"rates"`
}

type varianceEntry struct {
	Currency    string          `json:"currency"`
	VariancePct json.RawMessage `json:"variancePct"`
}

func canonical(label string) model.Currency {
	if iso, aliased := currencyAliases[label]; aliased {
		return iso
	}
	return model.Currency(label).Normalize()
}

// variance returns the percentage figure for a currency in this entry's
// list. Absent entries and missing or non-numeric values report !ok: the
// provider publishes no markup for that currency.
func (e settlementEntry) variance(currency model.Currency) (float64, bool) {
	for _, v := range e.Rates {
		if canonical(v.Currency) != currency {
			continue
		}
		return parseVariance(v.VariancePct)
	}
	return 0, false
}

func parseVariance(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	var numeric float64
	if err := json.Unmarshal(raw, &numeric); err == nil {
		return numeric, true
	}

	// Some feeds quote the figure ("2.5"); anything else is non-numeric.
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err != nil {
		return 0, false
	}
	dec, err := decimal.NewFromString(quoted)
	if err != nil {
		return 0, false
	}
	return dec.InexactFloat64(), true
}

// Normalize derives the pair rate from a raw settlement document: the
// variance list of the entry settling in base marks referenceRate up
// directly; when only the quote side settles, the variance describes the
// opposite direction and divides instead. Pairs touching no settlement
// currency, or whose variance figure is unusable, are unsupported, which is
// an expected outcome rather than a failure. singleRegion documents carry
// exactly one entry and skip the settlement search.
func Normalize(raw json.RawMessage, base, quote model.Currency, referenceRate float64, singleRegion bool) (model.Rate, error) {
	var doc settlementDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.Rate{}, fmt.Errorf("%w: failed to decode settlement document: %v", model.ErrParse, err)
	}
	if len(doc.Data) == 0 {
		return model.Rate{}, fmt.Errorf("%w: settlement document carries no entries", model.ErrParse)
	}

	base, quote = base.Normalize(), quote.Normalize()

	if singleRegion {
		variance, usable := doc.Data[0].variance(quote)
		if !usable {
			return model.UnsupportedRate(), nil
		}
		return markUp(referenceRate, variance)
	}

	if entry, found := findSettlement(doc.Data, base); found {
		variance, usable := entry.variance(quote)
		if !usable {
			return model.UnsupportedRate(), nil
		}
		return markUp(referenceRate, variance)
	}

	if entry, found := findSettlement(doc.Data, quote); found {
		variance, usable := entry.variance(base)
		if !usable {
			return model.UnsupportedRate(), nil
		}
		return markDown(referenceRate, variance)
	}

	return model.UnsupportedRate(), nil
}

func findSettlement(entries []settlementEntry, currency model.Currency) (settlementEntry, bool) {
	for _, entry := range entries {
		if canonical(entry.SettlementCurrency) == currency {
			return entry, true
		}
	}
	return settlementEntry{}, false
}

func markUp(referenceRate, variancePct float64) (model.Rate, error) {
	return finishRate(referenceRate * (1 + variancePct/100))
}

// markDown applies an inverted variance: the figure describes the settlement
// currency's markup over the other side, and base/quote are swapped relative
// to the direct case.
func markDown(referenceRate, variancePct float64) (model.Rate, error) {
	factor := 1 + variancePct/100
	if factor == 0 {
		return model.Rate{}, fmt.Errorf("%w: variance of -100%% yields no rate", model.ErrParse)
	}
	return finishRate(referenceRate / factor)
}

func finishRate(value float64) (model.Rate, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return model.Rate{}, fmt.Errorf("%w: settlement math produced a non-finite rate", model.ErrParse)
	}
	return model.SupportedRate(value), nil
}
