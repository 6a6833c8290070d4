package reports_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realdriver/fleet-engine/fleet"
	"github.com/realdriver/fleet-engine/reports"
)

func testVehicle(id fleet.VehicleID, registered string) fleet.Vehicle {
	v := fleet.Vehicle{
		ID: id, Make: "Honda", Model: "Civic", Plate: "ABC-1234", Year: 2020,
		Status: fleet.VehicleActive,
	}
	if registered != "" {
		v.RegisteredAt = fleet.MustDate(registered)
	}
	return v
}

func maintenanceOn(vehicle fleet.VehicleID, date string, value int64) fleet.Maintenance {
	return fleet.Maintenance{
		VehicleID: vehicle, Category: "preventive",
		Date: fleet.MustDate(date), Value: money(value),
	}
}

// =============================================================================
// AVAILABILITY TESTS
// =============================================================================

func TestAvailability_AnchoredAtEarliestContract(t *testing.T) {
	// GIVEN: A vehicle whose earliest contract started 10 days ago, with two
	//        maintenance events since
	// THEN: 10 total days, 2 consumed, 8 available, 80%

	v := testVehicle(1, "2023-06-01") // registration loses to contract anchor
	today := fleet.MustDate("2024-01-11")
	contracts := []fleet.Contract{
		{ID: 1, VehicleID: 1, DriverID: 1, StartDate: fleet.MustDate("2024-01-01"), EndDate: fleet.MustDate("2024-01-31"), Status: fleet.ContractActive},
		{ID: 2, VehicleID: 1, DriverID: 1, StartDate: fleet.MustDate("2024-01-05"), EndDate: fleet.MustDate("2024-02-04"), Status: fleet.ContractActive},
	}
	maints := []fleet.Maintenance{
		maintenanceOn(1, "2024-01-03", 200),
		maintenanceOn(1, "2024-01-08", 300),
	}

	a := reports.AvailabilityFor(v, contracts, maints, today)

	assert.Equal(t, "2024-01-01", a.Since.String())
	assert.Equal(t, 10, a.TotalDays)
	assert.Equal(t, 2, a.MaintenanceDays)
	assert.Equal(t, 8, a.AvailableDays)
	assert.InDelta(t, 80.0, a.Percent, 0.001)
	assert.True(t, a.MaintenanceCost.Equal(money(500)))
}

func TestAvailability_FallsBackToRegistrationDate(t *testing.T) {
	// Registered exactly 10 days ago, no contracts, 2 maintenance events in
	// the window: 10 total, 2 consumed, 80% available.
	v := testVehicle(1, "2024-01-01")
	today := fleet.MustDate("2024-01-11")
	maints := []fleet.Maintenance{
		maintenanceOn(1, "2024-01-04", 150),
		maintenanceOn(1, "2024-01-07", 150),
	}

	a := reports.AvailabilityFor(v, nil, maints, today)

	assert.Equal(t, "2024-01-01", a.Since.String())
	assert.Equal(t, 10, a.TotalDays)
	assert.Equal(t, 2, a.MaintenanceDays)
	assert.Equal(t, 8, a.AvailableDays)
	assert.InDelta(t, 80.0, a.Percent, 0.001)
}

func TestAvailability_NoHistoryAnchorsToday(t *testing.T) {
	// No contracts and no registration date: the window is empty and the
	// vehicle reports fully available.
	v := testVehicle(1, "")
	today := fleet.MustDate("2024-01-06")

	a := reports.AvailabilityFor(v, nil, nil, today)

	assert.Equal(t, 0, a.TotalDays)
	assert.Equal(t, 100.0, a.Percent)
}

func TestAvailability_IgnoresOtherVehiclesAndOutOfWindowEvents(t *testing.T) {
	v := testVehicle(1, "2024-01-01")
	today := fleet.MustDate("2024-01-11")
	maints := []fleet.Maintenance{
		maintenanceOn(2, "2024-01-05", 100), // other vehicle
		maintenanceOn(1, "2023-12-20", 100), // before the window
		maintenanceOn(1, "2024-01-05", 100), // counted
	}

	a := reports.AvailabilityFor(v, nil, maints, today)

	assert.Equal(t, 1, a.MaintenanceDays)
	assert.True(t, a.MaintenanceCost.Equal(money(100)))
}

// =============================================================================
// UTILIZATION TESTS
// =============================================================================

func TestUtilization_PaidRatesOverDaysSinceRegistration(t *testing.T) {
	// GIVEN: Registered 20 days ago, 5 paid rates and 2 pending all-time
	// THEN: 5 usage days over 20 = 25%

	v := testVehicle(1, "2024-01-01")
	today := fleet.MustDate("2024-01-21")

	var rates []fleet.DailyRate
	for i := 0; i < 5; i++ {
		rates = append(rates, fleet.DailyRate{VehicleID: 1, DriverID: 1, Date: fleet.MustDate("2024-01-02").AddDays(i), Value: money(150), Status: fleet.PaymentPaid})
	}
	rates = append(rates,
		fleet.DailyRate{VehicleID: 1, DriverID: 1, Date: fleet.MustDate("2024-01-10"), Value: money(150), Status: fleet.PaymentPending},
		fleet.DailyRate{VehicleID: 2, DriverID: 1, Date: fleet.MustDate("2024-01-10"), Value: money(150), Status: fleet.PaymentPaid},
	)

	u := reports.UtilizationFor(v, rates, []fleet.Maintenance{maintenanceOn(1, "2024-01-04", 100)}, today)

	assert.Equal(t, 5, u.UsageDays, "pending and other-vehicle rates excluded")
	assert.Equal(t, 20, u.TotalDays)
	assert.InDelta(t, 25.0, u.UtilizationPercent, 0.001)
	assert.Equal(t, 1, u.MaintenanceCount)
	assert.InDelta(t, 5.0, u.MaintenancePercent, 0.001)
}

func TestUtilization_IsAllTime(t *testing.T) {
	// Utilization ignores contract windows entirely: a paid rate from long
	// before any contract still counts.
	v := testVehicle(1, "2023-01-01")
	today := fleet.MustDate("2024-01-01")
	rates := []fleet.DailyRate{
		{VehicleID: 1, DriverID: 1, Date: fleet.MustDate("2023-02-01"), Value: money(150), Status: fleet.PaymentPaid},
	}

	u := reports.UtilizationFor(v, rates, nil, today)

	assert.Equal(t, 1, u.UsageDays)
	assert.Equal(t, 365, u.TotalDays)
}

func TestUtilizationRanking_MostUtilizedFirst(t *testing.T) {
	busy := testVehicle(1, "2024-01-01")
	idle := testVehicle(2, "2024-01-01")
	today := fleet.MustDate("2024-01-11")
	rates := []fleet.DailyRate{
		{VehicleID: 1, DriverID: 1, Date: fleet.MustDate("2024-01-02"), Value: money(150), Status: fleet.PaymentPaid},
		{VehicleID: 1, DriverID: 1, Date: fleet.MustDate("2024-01-03"), Value: money(150), Status: fleet.PaymentPaid},
	}

	ranking := reports.UtilizationRanking([]fleet.Vehicle{idle, busy}, rates, nil, today)

	assert.Len(t, ranking, 2)
	assert.Equal(t, fleet.VehicleID(1), ranking[0].Vehicle.ID)
	assert.Equal(t, fleet.VehicleID(2), ranking[1].Vehicle.ID)
}

func TestAvailabilityAndUtilization_DoNotReconcile(t *testing.T) {
	// The two metrics use different anchors and different inputs; their
	// percentages are independent and need not sum to anything.
	v := testVehicle(1, "2024-01-01")
	today := fleet.MustDate("2024-01-11")
	contracts := []fleet.Contract{
		{ID: 1, VehicleID: 1, DriverID: 1, StartDate: fleet.MustDate("2024-01-06"), EndDate: fleet.MustDate("2024-02-05"), Status: fleet.ContractActive},
	}
	rates := []fleet.DailyRate{
		{VehicleID: 1, DriverID: 1, Date: fleet.MustDate("2024-01-02"), Value: money(150), Status: fleet.PaymentPaid},
	}

	a := reports.AvailabilityFor(v, contracts, nil, today)
	u := reports.UtilizationFor(v, rates, nil, today)

	assert.Equal(t, 5, a.TotalDays, "availability anchors at the contract")
	assert.Equal(t, 10, u.TotalDays, "utilization anchors at registration")
}
