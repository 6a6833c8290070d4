/*
availability.go - Vehicle availability and utilization

PURPOSE:
  Two independent per-vehicle day metrics:

  Availability: fraction of elapsed days the vehicle was not consumed by a
  maintenance event, measured from its earliest contract start (falling back
  to its registration date, then today). One maintenance event consumes
  exactly one day - a simplifying policy, not a measured outage window.

  Utilization: fraction of days since registration that produced a paid daily
  rate, over the vehicle's whole history. This is a dashboard-only view
  computed independently of availability; the two do not reconcile and do not
  sum to 100%.
*/
package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/realdriver/fleet-engine/fleet"
)

// =============================================================================
// AVAILABILITY
// =============================================================================

// VehicleAvailability is the availability window for one vehicle.
type VehicleAvailability struct {
	Since           fleet.Date
	TotalDays       int
	MaintenanceDays int
	AvailableDays   int
	Percent         float64
	MaintenanceCost decimal.Decimal
}

// AvailabilityFor computes the availability of one vehicle against the full
// contract and maintenance collections.
func AvailabilityFor(v fleet.Vehicle, contracts []fleet.Contract, maints []fleet.Maintenance, today fleet.Date) VehicleAvailability {
	since := availabilityAnchor(v, contracts, today)
	totalDays := since.DaysUntil(today)

	window := fleet.Period{Start: since, End: today}
	maintDays := 0
	cost := decimal.Zero
	for _, m := range maints {
		if m.VehicleID != v.ID || !window.Contains(m.Date) {
			continue
		}
		maintDays++
		cost = cost.Add(m.Value)
	}

	available := totalDays - maintDays
	percent := 100.0
	if totalDays > 0 {
		percent = float64(available) / float64(totalDays) * 100
	}

	return VehicleAvailability{
		Since:           since,
		TotalDays:       totalDays,
		MaintenanceDays: maintDays,
		AvailableDays:   available,
		Percent:         percent,
		MaintenanceCost: cost,
	}
}

// availabilityAnchor picks the start of the availability window: earliest
// contract start for the vehicle, else its registration date, else today.
func availabilityAnchor(v fleet.Vehicle, contracts []fleet.Contract, today fleet.Date) fleet.Date {
	anchor := fleet.Date{}
	for _, c := range contracts {
		if c.VehicleID != v.ID {
			continue
		}
		if anchor.IsZero() || c.StartDate.Before(anchor) {
			anchor = c.StartDate
		}
	}
	if !anchor.IsZero() {
		return anchor
	}
	if !v.RegisteredAt.IsZero() {
		return v.RegisteredAt
	}
	return today
}

// =============================================================================
// UTILIZATION
// =============================================================================

// VehicleUtilization is the all-time usage view for one vehicle.
type VehicleUtilization struct {
	Vehicle            fleet.Vehicle
	UsageDays          int // paid daily rates, all-time
	MaintenanceCount   int // maintenance events, all-time
	TotalDays          int // days since registration
	UtilizationPercent float64
	MaintenancePercent float64
}

// UtilizationFor computes the utilization view for one vehicle.
func UtilizationFor(v fleet.Vehicle, rates []fleet.DailyRate, maints []fleet.Maintenance, today fleet.Date) VehicleUtilization {
	usage := 0
	for _, r := range rates {
		if r.VehicleID == v.ID && r.Status == fleet.PaymentPaid {
			usage++
		}
	}

	maintCount := 0
	for _, m := range maints {
		if m.VehicleID == v.ID {
			maintCount++
		}
	}

	since := v.RegisteredAt
	if since.IsZero() {
		since = today
	}
	totalDays := since.DaysUntil(today)

	utilization, maintenance := 0.0, 0.0
	if totalDays > 0 {
		utilization = float64(usage) / float64(totalDays) * 100
		maintenance = float64(maintCount) / float64(totalDays) * 100
	}

	return VehicleUtilization{
		Vehicle:            v,
		UsageDays:          usage,
		MaintenanceCount:   maintCount,
		TotalDays:          totalDays,
		UtilizationPercent: utilization,
		MaintenancePercent: maintenance,
	}
}

// UtilizationRanking computes utilization for every vehicle, ordered from
// most to least utilized.
func UtilizationRanking(vehicles []fleet.Vehicle, rates []fleet.DailyRate, maints []fleet.Maintenance, today fleet.Date) []VehicleUtilization {
	out := make([]VehicleUtilization, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, UtilizationFor(v, rates, maints, today))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UtilizationPercent > out[j].UtilizationPercent
	})
	return out
}
