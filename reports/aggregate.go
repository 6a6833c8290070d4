/*
aggregate.go - Period-scoped report aggregation

PURPOSE:
  Builds the three report views for an arbitrary inclusive date window:
  by-vehicle, by-driver and by-maintenance. All three are derived from the
  same single pass of filtered records so one generation call is internally
  consistent, and the input collections are never mutated so a second call
  with the same inputs produces identical output.

GROUPING:
  Daily rates group by their own vehicle id and driver id. Records whose
  vehicle or driver no longer exists are skipped in the grouped views; the
  flat tables elsewhere render placeholders for them instead.

ORDERING:
  Every view is sorted descending by total value, ties broken by id so output
  is deterministic.
*/
package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/realdriver/fleet-engine/fleet"
)

// =============================================================================
// REPORT ROWS
// =============================================================================

// VehicleRow aggregates daily rates and maintenance for one vehicle.
type VehicleRow struct {
	VehicleID fleet.VehicleID
	Label     string // "Make Model"
	Plate     string

	RateCount int
	RateValue decimal.Decimal
	PaidCount int
	PaidValue decimal.Decimal

	MaintenanceCount int
	MaintenanceCost  decimal.Decimal

	// PaidValue minus MaintenanceCost.
	Balance decimal.Decimal
}

// DriverRow aggregates daily rates for one driver.
type DriverRow struct {
	DriverID fleet.DriverID
	Name     string
	TaxID    string

	RateCount int
	RateValue decimal.Decimal
	PaidCount int
	PaidValue decimal.Decimal
}

// MaintenanceRow aggregates maintenance events for one vehicle, keeping the
// individual events (newest first) for the detail listing.
type MaintenanceRow struct {
	VehicleID fleet.VehicleID
	Label     string
	Plate     string

	Count  int
	Cost   decimal.Decimal
	Events []fleet.Maintenance
}

// Totals is a grand-total row: sum of totals and sum of the paid split.
type Totals struct {
	Value decimal.Decimal
	Paid  decimal.Decimal
}

// PeriodReport is the output of one report generation call.
type PeriodReport struct {
	Period fleet.Period

	ByVehicle     []VehicleRow
	ByDriver      []DriverRow
	ByMaintenance []MaintenanceRow

	VehicleTotals    Totals
	DriverTotals     Totals
	MaintenanceCount int
	MaintenanceCost  decimal.Decimal
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate builds the period report for an inclusive [start, end] window.
func Generate(store *fleet.Store, period fleet.Period) (PeriodReport, error) {
	if !period.Valid() {
		return PeriodReport{}, fleet.ErrInvalidPeriod
	}

	// One filtered snapshot feeds all three views.
	var rates []fleet.DailyRate
	for _, r := range store.DailyRates() {
		if period.Contains(r.Date) {
			rates = append(rates, r)
		}
	}
	var maints []fleet.Maintenance
	for _, m := range store.Maintenances() {
		if period.Contains(m.Date) {
			maints = append(maints, m)
		}
	}

	report := PeriodReport{Period: period}
	report.ByVehicle, report.VehicleTotals = vehicleRows(store, rates, maints)
	report.ByDriver, report.DriverTotals = driverRows(store, rates)
	report.ByMaintenance, report.MaintenanceCount, report.MaintenanceCost = maintenanceRows(store, maints)
	return report, nil
}

func vehicleRows(store *fleet.Store, rates []fleet.DailyRate, maints []fleet.Maintenance) ([]VehicleRow, Totals) {
	byID := make(map[fleet.VehicleID]*VehicleRow)

	row := func(id fleet.VehicleID) *VehicleRow {
		if r, ok := byID[id]; ok {
			return r
		}
		v, ok := store.VehicleByID(id)
		if !ok {
			return nil
		}
		r := &VehicleRow{
			VehicleID:       id,
			Label:           v.Label(),
			Plate:           v.Plate,
			RateValue:       decimal.Zero,
			PaidValue:       decimal.Zero,
			MaintenanceCost: decimal.Zero,
		}
		byID[id] = r
		return r
	}

	for _, rate := range rates {
		r := row(rate.VehicleID)
		if r == nil {
			continue
		}
		r.RateCount++
		r.RateValue = r.RateValue.Add(rate.Value)
		if rate.Status == fleet.PaymentPaid {
			r.PaidCount++
			r.PaidValue = r.PaidValue.Add(rate.Value)
		}
	}

	for _, m := range maints {
		r := row(m.VehicleID)
		if r == nil {
			continue
		}
		r.MaintenanceCount++
		r.MaintenanceCost = r.MaintenanceCost.Add(m.Value)
	}

	rows := make([]VehicleRow, 0, len(byID))
	totals := Totals{Value: decimal.Zero, Paid: decimal.Zero}
	for _, r := range byID {
		r.Balance = r.PaidValue.Sub(r.MaintenanceCost)
		rows = append(rows, *r)
		totals.Value = totals.Value.Add(r.RateValue)
		totals.Paid = totals.Paid.Add(r.PaidValue)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].RateValue.Equal(rows[j].RateValue) {
			return rows[i].RateValue.GreaterThan(rows[j].RateValue)
		}
		return rows[i].VehicleID < rows[j].VehicleID
	})
	return rows, totals
}

func driverRows(store *fleet.Store, rates []fleet.DailyRate) ([]DriverRow, Totals) {
	byID := make(map[fleet.DriverID]*DriverRow)

	for _, rate := range rates {
		r, ok := byID[rate.DriverID]
		if !ok {
			d, found := store.DriverByID(rate.DriverID)
			if !found {
				continue
			}
			r = &DriverRow{
				DriverID:  rate.DriverID,
				Name:      d.Name,
				TaxID:     d.TaxID,
				RateValue: decimal.Zero,
				PaidValue: decimal.Zero,
			}
			byID[rate.DriverID] = r
		}
		r.RateCount++
		r.RateValue = r.RateValue.Add(rate.Value)
		if rate.Status == fleet.PaymentPaid {
			r.PaidCount++
			r.PaidValue = r.PaidValue.Add(rate.Value)
		}
	}

	rows := make([]DriverRow, 0, len(byID))
	totals := Totals{Value: decimal.Zero, Paid: decimal.Zero}
	for _, r := range byID {
		rows = append(rows, *r)
		totals.Value = totals.Value.Add(r.RateValue)
		totals.Paid = totals.Paid.Add(r.PaidValue)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].RateValue.Equal(rows[j].RateValue) {
			return rows[i].RateValue.GreaterThan(rows[j].RateValue)
		}
		return rows[i].DriverID < rows[j].DriverID
	})
	return rows, totals
}

func maintenanceRows(store *fleet.Store, maints []fleet.Maintenance) ([]MaintenanceRow, int, decimal.Decimal) {
	byID := make(map[fleet.VehicleID]*MaintenanceRow)

	for _, m := range maints {
		r, ok := byID[m.VehicleID]
		if !ok {
			v, found := store.VehicleByID(m.VehicleID)
			if !found {
				continue
			}
			r = &MaintenanceRow{
				VehicleID: m.VehicleID,
				Label:     v.Label(),
				Plate:     v.Plate,
				Cost:      decimal.Zero,
			}
			byID[m.VehicleID] = r
		}
		r.Count++
		r.Cost = r.Cost.Add(m.Value)
		r.Events = append(r.Events, m)
	}

	rows := make([]MaintenanceRow, 0, len(byID))
	count := 0
	cost := decimal.Zero
	for _, r := range byID {
		sort.SliceStable(r.Events, func(i, j int) bool {
			return r.Events[i].Date.After(r.Events[j].Date)
		})
		rows = append(rows, *r)
		count += r.Count
		cost = cost.Add(r.Cost)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Cost.Equal(rows[j].Cost) {
			return rows[i].Cost.GreaterThan(rows[j].Cost)
		}
		return rows[i].VehicleID < rows[j].VehicleID
	})
	return rows, count, cost
}

// DefaultPeriod returns the span covering every dated record in the store, or
// the last seven days when the store holds no dated records at all.
func DefaultPeriod(store *fleet.Store, today fleet.Date) fleet.Period {
	var min, max fleet.Date
	widen := func(d fleet.Date) {
		if d.IsZero() {
			return
		}
		if min.IsZero() || d.Before(min) {
			min = d
		}
		if max.IsZero() || d.After(max) {
			max = d
		}
	}

	for _, r := range store.DailyRates() {
		widen(r.Date)
	}
	for _, m := range store.Maintenances() {
		widen(m.Date)
	}
	for _, f := range store.FinancialEntries() {
		widen(f.Date)
	}
	for _, c := range store.Contracts() {
		widen(c.StartDate)
		widen(c.EndDate)
	}

	if min.IsZero() {
		return fleet.Period{Start: today.AddDays(-7), End: today}
	}
	return fleet.Period{Start: min, End: max}
}
