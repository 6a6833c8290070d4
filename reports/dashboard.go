/*
dashboard.go - Dashboard summary

PURPOSE:
  Assembles the derived blocks the dashboard renders: headline counts,
  current-month revenue/expense split, recent activity lists, vehicle status
  distribution, upcoming contract expirations, per-contract progress and the
  availability/utilization panels.

MONTH SCOPE:
  "This month" blocks cover the calendar month of the supplied date. Revenue
  combines explicit revenue entries with paid daily rates; expenses combine
  explicit expense entries with maintenance costs.
*/
package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/realdriver/fleet-engine/fleet"
)

const detailListLimit = 5

// MaintenanceDetail is a maintenance event with its vehicle resolved.
type MaintenanceDetail struct {
	Maintenance  fleet.Maintenance
	VehicleLabel string
}

// PendingRate is an unpaid daily rate with its driver resolved.
type PendingRate struct {
	Rate       fleet.DailyRate
	DriverName string
}

// ExpiringContract is one row of the upcoming-expirations widget. Band uses
// the widget's strict threshold set, not the contracts-table one.
type ExpiringContract struct {
	Contract     fleet.Contract
	DriverName   string
	VehicleLabel string
	DaysToExpiry int
	Band         Band
}

// ContractProgressItem pairs a contract's progress with resolved labels.
type ContractProgressItem struct {
	Contract     fleet.Contract
	DriverName   string
	VehicleLabel string
	Progress     ContractProgress
}

// VehicleAvailabilityItem pairs availability with its vehicle.
type VehicleAvailabilityItem struct {
	Vehicle      fleet.Vehicle
	Availability VehicleAvailability
}

// FinancialSummary is the current-month money roll-up.
type FinancialSummary struct {
	Revenue  decimal.Decimal // revenue entries + paid daily rates
	Expenses decimal.Decimal // expense entries + maintenance costs
	Balance  decimal.Decimal
}

// Dashboard is everything the dashboard needs, computed in one call from one
// consistent snapshot.
type Dashboard struct {
	ActiveDrivers   int
	ActiveVehicles  int
	ActiveContracts int
	MonthRateCount  int

	Financial FinancialSummary

	RecentMaintenances  []MaintenanceDetail
	PendingRates        []PendingRate
	VehicleStatusCounts map[fleet.VehicleStatus]int
	ExpiringContracts   []ExpiringContract
	ContractProgress    []ContractProgressItem
	Availability        []VehicleAvailabilityItem
	Utilization         []VehicleUtilization
}

// BuildDashboard computes the full dashboard as of the given date.
func BuildDashboard(store *fleet.Store, today fleet.Date) Dashboard {
	d := Dashboard{
		VehicleStatusCounts: make(map[fleet.VehicleStatus]int),
	}

	for _, dr := range store.Drivers() {
		if dr.Status == fleet.DriverActive {
			d.ActiveDrivers++
		}
	}
	for _, v := range store.Vehicles() {
		d.VehicleStatusCounts[v.Status]++
		if v.Status == fleet.VehicleActive {
			d.ActiveVehicles++
		}
	}
	for _, c := range store.Contracts() {
		if c.Status == fleet.ContractActive {
			d.ActiveContracts++
		}
	}
	for _, r := range store.DailyRates() {
		if r.Date.SameMonth(today) {
			d.MonthRateCount++
		}
	}

	d.Financial = monthFinancials(store, today)
	d.RecentMaintenances = recentMaintenances(store)
	d.PendingRates = pendingRates(store)
	d.ExpiringContracts = expiringContracts(store, today)
	d.ContractProgress = contractProgressItems(store)
	d.Availability = availabilityItems(store, today)
	d.Utilization = UtilizationRanking(store.Vehicles(), store.DailyRates(), store.Maintenances(), today)
	return d
}

func monthFinancials(store *fleet.Store, today fleet.Date) FinancialSummary {
	revenue := decimal.Zero
	expenses := decimal.Zero

	for _, f := range store.FinancialEntries() {
		if !f.Date.SameMonth(today) {
			continue
		}
		switch f.Type {
		case fleet.EntryRevenue:
			revenue = revenue.Add(f.Value)
		case fleet.EntryExpense:
			expenses = expenses.Add(f.Value)
		}
	}
	for _, r := range store.DailyRates() {
		if r.Status == fleet.PaymentPaid && r.Date.SameMonth(today) {
			revenue = revenue.Add(r.Value)
		}
	}
	for _, m := range store.Maintenances() {
		if m.Date.SameMonth(today) {
			expenses = expenses.Add(m.Value)
		}
	}

	return FinancialSummary{
		Revenue:  revenue,
		Expenses: expenses,
		Balance:  revenue.Sub(expenses),
	}
}

func recentMaintenances(store *fleet.Store) []MaintenanceDetail {
	ms := append([]fleet.Maintenance(nil), store.Maintenances()...)
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].Date.After(ms[j].Date) })
	if len(ms) > detailListLimit {
		ms = ms[:detailListLimit]
	}

	out := make([]MaintenanceDetail, len(ms))
	for i, m := range ms {
		out[i] = MaintenanceDetail{Maintenance: m, VehicleLabel: store.VehicleLabel(m.VehicleID)}
	}
	return out
}

func pendingRates(store *fleet.Store) []PendingRate {
	var pending []fleet.DailyRate
	for _, r := range store.DailyRates() {
		if r.Status == fleet.PaymentPending {
			pending = append(pending, r)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].Date.Before(pending[j].Date) })
	if len(pending) > detailListLimit {
		pending = pending[:detailListLimit]
	}

	out := make([]PendingRate, len(pending))
	for i, r := range pending {
		out[i] = PendingRate{Rate: r, DriverName: store.DriverName(r.DriverID)}
	}
	return out
}

func expiringContracts(store *fleet.Store, today fleet.Date) []ExpiringContract {
	var rows []ExpiringContract
	for _, c := range store.Contracts() {
		if c.Status != fleet.ContractActive {
			continue
		}
		days := DaysToExpiry(c, today)
		if days > expiringSoonDays {
			continue
		}
		rows = append(rows, ExpiringContract{
			Contract:     c,
			DriverName:   store.DriverName(c.DriverID),
			VehicleLabel: store.VehicleLabel(c.VehicleID),
			DaysToExpiry: days,
			Band:         UpcomingBand(days),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].DaysToExpiry < rows[j].DaysToExpiry })
	if len(rows) > detailListLimit {
		rows = rows[:detailListLimit]
	}
	return rows
}

func contractProgressItems(store *fleet.Store) []ContractProgressItem {
	var out []ContractProgressItem
	for _, c := range store.Contracts() {
		if c.Status != fleet.ContractActive {
			continue
		}
		out = append(out, ContractProgressItem{
			Contract:     c,
			DriverName:   store.DriverName(c.DriverID),
			VehicleLabel: store.VehicleLabel(c.VehicleID),
			Progress:     ContractProgressFor(c, store.DailyRates()),
		})
	}
	return out
}

func availabilityItems(store *fleet.Store, today fleet.Date) []VehicleAvailabilityItem {
	var out []VehicleAvailabilityItem
	for _, v := range store.Vehicles() {
		if v.Status != fleet.VehicleActive {
			continue
		}
		out = append(out, VehicleAvailabilityItem{
			Vehicle:      v,
			Availability: AvailabilityFor(v, store.Contracts(), store.Maintenances(), today),
		})
	}
	return out
}
