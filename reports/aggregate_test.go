package reports_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realdriver/fleet-engine/fleet"
	"github.com/realdriver/fleet-engine/reports"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func seededStore() *fleet.Store {
	return fleet.NewStoreFromState(fleet.SeedState())
}

func january() fleet.Period {
	return fleet.Period{Start: fleet.MustDate("2024-01-01"), End: fleet.MustDate("2024-01-31")}
}

// =============================================================================
// GENERATION TESTS
// =============================================================================

func TestGenerate_RejectsInvalidPeriod(t *testing.T) {
	store := seededStore()

	_, err := reports.Generate(store, fleet.Period{
		Start: fleet.MustDate("2024-01-31"), End: fleet.MustDate("2024-01-01"),
	})
	assert.ErrorIs(t, err, fleet.ErrInvalidPeriod)

	_, err = reports.Generate(store, fleet.Period{})
	assert.ErrorIs(t, err, fleet.ErrInvalidPeriod)
}

func TestGenerate_SeedDataByVehicle(t *testing.T) {
	// GIVEN: The seed data (one 150 paid rate on vehicle 1, one 150 pending
	//        on vehicle 2, one 500 maintenance on vehicle 1)
	// THEN: Two vehicle rows; equal totals tie-break on vehicle id

	report, err := reports.Generate(seededStore(), january())
	require.NoError(t, err)

	require.Len(t, report.ByVehicle, 2)

	v1 := report.ByVehicle[0]
	assert.Equal(t, fleet.VehicleID(1), v1.VehicleID)
	assert.Equal(t, "Honda Civic", v1.Label)
	assert.Equal(t, "ABC-1234", v1.Plate)
	assert.Equal(t, 1, v1.RateCount)
	assert.True(t, v1.RateValue.Equal(money(150)))
	assert.Equal(t, 1, v1.PaidCount)
	assert.True(t, v1.PaidValue.Equal(money(150)))
	assert.Equal(t, 1, v1.MaintenanceCount)
	assert.True(t, v1.MaintenanceCost.Equal(money(500)))
	assert.True(t, v1.Balance.Equal(money(-350)), "balance = paid - maintenance, got %s", v1.Balance)

	v2 := report.ByVehicle[1]
	assert.Equal(t, fleet.VehicleID(2), v2.VehicleID)
	assert.Equal(t, 0, v2.PaidCount)
	assert.True(t, v2.Balance.Equal(money(0)))

	assert.True(t, report.VehicleTotals.Value.Equal(money(300)))
	assert.True(t, report.VehicleTotals.Paid.Equal(money(150)))
}

func TestGenerate_SeedDataByDriver(t *testing.T) {
	report, err := reports.Generate(seededStore(), january())
	require.NoError(t, err)

	require.Len(t, report.ByDriver, 2)
	assert.Equal(t, "João Silva", report.ByDriver[0].Name)
	assert.Equal(t, "123.456.789-00", report.ByDriver[0].TaxID)
	assert.True(t, report.ByDriver[0].PaidValue.Equal(money(150)))
	assert.True(t, report.ByDriver[1].PaidValue.Equal(money(0)))

	assert.True(t, report.DriverTotals.Value.Equal(money(300)))
	assert.True(t, report.DriverTotals.Paid.Equal(money(150)))
}

func TestGenerate_SeedDataByMaintenance(t *testing.T) {
	report, err := reports.Generate(seededStore(), january())
	require.NoError(t, err)

	require.Len(t, report.ByMaintenance, 1)
	row := report.ByMaintenance[0]
	assert.Equal(t, fleet.VehicleID(1), row.VehicleID)
	assert.Equal(t, 1, row.Count)
	assert.True(t, row.Cost.Equal(money(500)))
	require.Len(t, row.Events, 1)

	assert.Equal(t, 1, report.MaintenanceCount)
	assert.True(t, report.MaintenanceCost.Equal(money(500)))
}

func TestGenerate_PeriodFiltersRecords(t *testing.T) {
	// Only the Jan 15 paid rate falls inside [Jan 14, Jan 15]; the Jan 16
	// rate and Jan 10 maintenance are out.
	report, err := reports.Generate(seededStore(), fleet.Period{
		Start: fleet.MustDate("2024-01-14"), End: fleet.MustDate("2024-01-15"),
	})
	require.NoError(t, err)

	require.Len(t, report.ByVehicle, 1)
	assert.Equal(t, fleet.VehicleID(1), report.ByVehicle[0].VehicleID)
	assert.Equal(t, 0, report.MaintenanceCount)
}

func TestGenerate_SortsByValueThenID(t *testing.T) {
	store := fleet.NewStore()
	for i := 1; i <= 3; i++ {
		_, err := store.AddDriver(fleet.Driver{
			Name: "Driver", TaxID: "1", LicenseNo: "1", Phone: "1",
		})
		require.NoError(t, err)
		_, err = store.AddVehicle(fleet.Vehicle{Make: "Make", Model: "Model", Plate: "P", Year: 2020})
		require.NoError(t, err)
	}
	add := func(driver fleet.DriverID, vehicle fleet.VehicleID, value int64) {
		_, err := store.AddDailyRate(fleet.DailyRate{
			DriverID: driver, VehicleID: vehicle,
			Date: fleet.MustDate("2024-01-15"), Value: money(value), Status: fleet.PaymentPaid,
		})
		require.NoError(t, err)
	}
	add(1, 1, 100)
	add(2, 2, 300)
	add(3, 3, 100)

	report, err := reports.Generate(store, january())
	require.NoError(t, err)

	require.Len(t, report.ByVehicle, 3)
	assert.Equal(t, fleet.VehicleID(2), report.ByVehicle[0].VehicleID, "largest total first")
	assert.Equal(t, fleet.VehicleID(1), report.ByVehicle[1].VehicleID, "ties break on id")
	assert.Equal(t, fleet.VehicleID(3), report.ByVehicle[2].VehicleID)
}

func TestGenerate_DanglingReferencesAreSkippedInGroupedViews(t *testing.T) {
	// A rate pointing at a deleted vehicle/driver contributes to no group,
	// and its value stays out of the totals.
	store := seededStore()
	store.DeleteVehicle(2)
	store.DeleteDriver(2)

	report, err := reports.Generate(store, january())
	require.NoError(t, err)

	require.Len(t, report.ByVehicle, 1)
	require.Len(t, report.ByDriver, 1)
	assert.True(t, report.VehicleTotals.Value.Equal(money(150)))
	assert.True(t, report.DriverTotals.Value.Equal(money(150)))
}

func TestGenerate_IsIdempotent(t *testing.T) {
	// Generating twice from the same store yields identical reports and does
	// not mutate the collections.
	store := seededStore()
	before := store.Snapshot()

	first, err := reports.Generate(store, january())
	require.NoError(t, err)
	second, err := reports.Generate(store, january())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, store.Snapshot())
}

// =============================================================================
// DEFAULT PERIOD
// =============================================================================

func TestDefaultPeriod_SpansAllRecordDates(t *testing.T) {
	p := reports.DefaultPeriod(seededStore(), fleet.MustDate("2024-06-01"))

	assert.Equal(t, "2024-01-01", p.Start.String(), "earliest is the contract start")
	assert.Equal(t, "2024-01-31", p.End.String(), "latest is the contract end")
}

func TestDefaultPeriod_EmptyStoreIsLastSevenDays(t *testing.T) {
	today := fleet.MustDate("2024-06-08")
	p := reports.DefaultPeriod(fleet.NewStore(), today)

	assert.Equal(t, "2024-06-01", p.Start.String(), "seven days back")
	assert.Equal(t, "2024-06-08", p.End.String())
}
