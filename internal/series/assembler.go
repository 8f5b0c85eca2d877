package series

import (
	"context"
	"time"

	"cardfx-service/internal/domain/model"
	"cardfx-service/pkg/utils"
)

// PerDateFetch resolves the rate for a single calendar day. It may fail or
// report an unsupported pair; the assembler absorbs both.
type PerDateFetch func(ctx context.Context, date time.Time) (model.Rate, error)

// Assemble walks every calendar day from start to end inclusive and builds
// the aligned date and rate slices. Days whose fetch fails or comes back
// unsupported repeat the last known good value; days before the first good
// value stay nil. Weekends are enumerated like any other day; gap handling
// belongs to the fetch function, not the calendar walk.
func Assemble(ctx context.Context, start, end time.Time, fetch PerDateFetch) ([]string, []*float64) {
	days := utils.EnumerateDays(start, end)

	dates := make([]string, 0, len(days))
	rates := make([]*float64, 0, len(days))

	var lastKnown *float64
	for _, day := range days {
		dates = append(dates, utils.FormatDate(day))

		rate, err := fetch(ctx, day)
		if err == nil && rate.Usable() {
			v := rate.Value
			lastKnown = &v
		}

		if lastKnown == nil {
			rates = append(rates, nil)
			continue
		}
		v := *lastKnown
		rates = append(rates, &v)
	}

	return dates, rates
}
