package forecast

import (
	"time"

	"app/models"
)

// OrderRecord is a single raw order event for one product.
type OrderRecord struct {
	OccurredAt time.Time
	Quantity   int
}

// BuildDailyHistory aggregates raw order records into a gapless daily series.
// Records are bucketed by UTC calendar day and summed; every day between the
// first and last observed day is present, days with no orders at quantity 0.
// The regression in Forecast relies on this regular spacing.
func BuildDailyHistory(orders []OrderRecord) []models.HistoryPoint {
	if len(orders) == 0 {
		return []models.HistoryPoint{}
	}

	totals := make(map[time.Time]int, len(orders))
	var first, last time.Time
	for i, o := range orders {
		day := o.OccurredAt.UTC().Truncate(24 * time.Hour)
		totals[day] += o.Quantity
		if i == 0 || day.Before(first) {
			first = day
		}
		if i == 0 || day.After(last) {
			last = day
		}
	}

	days := int(last.Sub(first).Hours()/24) + 1
	history := make([]models.HistoryPoint, 0, days)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		history = append(history, models.HistoryPoint{Date: day, Quantity: totals[day]})
	}
	return history
}
