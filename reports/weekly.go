/*
weekly.go - Weekly breakdown per driver

PURPOSE:
  Partitions a driver's history into consecutive 7-day windows anchored at
  the start date of the driver's earliest contract, then aggregates the
  driver's daily rates per window.

WINDOWING:
  Windows advance from the anchor in 7-day steps until the window start
  passes today; they are NOT bounded by the report range. The requested range
  only filters which windows are kept: a window survives if it overlaps the
  range at all, then its aggregates cover the full 7-day span.
*/
package reports

import (
	"github.com/shopspring/decimal"

	"github.com/realdriver/fleet-engine/fleet"
)

// Week is one 7-day window of a driver's history.
type Week struct {
	Number int // 1-based, counted from the contract start
	Window fleet.Period

	RateCount    int
	PaidCount    int
	PendingCount int
	TotalValue   decimal.Decimal
	PaidValue    decimal.Decimal
	PendingValue decimal.Decimal
}

// WeeklyBreakdown is the per-driver weekly report plus its roll-up row.
type WeeklyBreakdown struct {
	Driver fleet.Driver
	Weeks  []Week

	WeekCount  int
	RateCount  int
	TotalValue decimal.Decimal
	PaidValue  decimal.Decimal
}

// WeeklyReport builds the weekly breakdown for one driver over the requested
// range. Returns nil when the driver does not exist or has no contract to
// anchor the weeks on.
func WeeklyReport(store *fleet.Store, driverID fleet.DriverID, period fleet.Period, today fleet.Date) *WeeklyBreakdown {
	driver, ok := store.DriverByID(driverID)
	if !ok {
		return nil
	}

	anchor, ok := earliestContractStart(store.ContractsByDriver(driverID))
	if !ok {
		return nil
	}

	breakdown := &WeeklyBreakdown{
		Driver:     driver,
		TotalValue: decimal.Zero,
		PaidValue:  decimal.Zero,
	}

	number := 1
	for start := anchor; start.BeforeOrEqual(today); start = start.AddDays(7) {
		window := fleet.Period{Start: start, End: start.AddDays(6)}
		if window.Overlaps(period) {
			breakdown.Weeks = append(breakdown.Weeks, weekFor(store, driverID, number, window))
		}
		number++
	}

	breakdown.WeekCount = len(breakdown.Weeks)
	for _, w := range breakdown.Weeks {
		breakdown.RateCount += w.RateCount
		breakdown.TotalValue = breakdown.TotalValue.Add(w.TotalValue)
		breakdown.PaidValue = breakdown.PaidValue.Add(w.PaidValue)
	}
	return breakdown
}

func weekFor(store *fleet.Store, driverID fleet.DriverID, number int, window fleet.Period) Week {
	week := Week{
		Number:       number,
		Window:       window,
		TotalValue:   decimal.Zero,
		PaidValue:    decimal.Zero,
		PendingValue: decimal.Zero,
	}

	for _, r := range store.DailyRates() {
		if r.DriverID != driverID || !window.Contains(r.Date) {
			continue
		}
		week.RateCount++
		week.TotalValue = week.TotalValue.Add(r.Value)
		if r.Status == fleet.PaymentPaid {
			week.PaidCount++
			week.PaidValue = week.PaidValue.Add(r.Value)
		}
	}
	week.PendingCount = week.RateCount - week.PaidCount
	week.PendingValue = week.TotalValue.Sub(week.PaidValue)
	return week
}

func earliestContractStart(contracts []fleet.Contract) (fleet.Date, bool) {
	var earliest fleet.Date
	for _, c := range contracts {
		if earliest.IsZero() || c.StartDate.Before(earliest) {
			earliest = c.StartDate
		}
	}
	return earliest, !earliest.IsZero()
}
