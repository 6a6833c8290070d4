package reports_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realdriver/fleet-engine/fleet"
	"github.com/realdriver/fleet-engine/reports"
)

// =============================================================================
// DASHBOARD TESTS
// =============================================================================

func TestDashboard_HeadlineCounts(t *testing.T) {
	d := reports.BuildDashboard(seededStore(), fleet.MustDate("2024-01-20"))

	assert.Equal(t, 2, d.ActiveDrivers)
	assert.Equal(t, 2, d.ActiveVehicles)
	assert.Equal(t, 1, d.ActiveContracts)
	assert.Equal(t, 2, d.MonthRateCount)
	assert.Equal(t, 2, d.VehicleStatusCounts[fleet.VehicleActive])
}

func TestDashboard_MonthFinancials(t *testing.T) {
	// Seed data in January: revenue entry 150 + paid rate 150 = 300 revenue;
	// expense entry 500 + maintenance 500 = 1000 expenses.
	d := reports.BuildDashboard(seededStore(), fleet.MustDate("2024-01-20"))

	assert.True(t, d.Financial.Revenue.Equal(money(300)), "revenue = %s", d.Financial.Revenue)
	assert.True(t, d.Financial.Expenses.Equal(money(1000)), "expenses = %s", d.Financial.Expenses)
	assert.True(t, d.Financial.Balance.Equal(money(-700)))
}

func TestDashboard_MonthScopeExcludesOtherMonths(t *testing.T) {
	// Viewed from February, none of the January records count.
	d := reports.BuildDashboard(seededStore(), fleet.MustDate("2024-02-15"))

	assert.Equal(t, 0, d.MonthRateCount)
	assert.True(t, d.Financial.Revenue.Equal(money(0)))
	assert.True(t, d.Financial.Expenses.Equal(money(0)))
}

func TestDashboard_RecentAndPendingLists(t *testing.T) {
	d := reports.BuildDashboard(seededStore(), fleet.MustDate("2024-01-20"))

	require.Len(t, d.RecentMaintenances, 1)
	assert.Equal(t, "Honda Civic", d.RecentMaintenances[0].VehicleLabel)

	require.Len(t, d.PendingRates, 1)
	assert.Equal(t, "Maria Santos", d.PendingRates[0].DriverName)
}

func TestDashboard_ListsCapAtFive(t *testing.T) {
	store := seededStore()
	for i := 0; i < 8; i++ {
		_, err := store.AddMaintenance(fleet.Maintenance{
			VehicleID: 1, Category: "corrective",
			Date: fleet.MustDate("2024-01-02").AddDays(i), Value: money(100),
		})
		require.NoError(t, err)
	}

	d := reports.BuildDashboard(store, fleet.MustDate("2024-01-20"))

	assert.Len(t, d.RecentMaintenances, 5)
	assert.Equal(t, "2024-01-10", d.RecentMaintenances[0].Maintenance.Date.String(), "newest first")
}

func TestDashboard_ExpiringContractsUseStrictBand(t *testing.T) {
	// Contract ends Jan 31; from Jan 25 that is 6 days out: listed (within
	// the 10-day horizon) but green under the widget's 3-day yellow.
	d := reports.BuildDashboard(seededStore(), fleet.MustDate("2024-01-25"))

	require.Len(t, d.ExpiringContracts, 1)
	row := d.ExpiringContracts[0]
	assert.Equal(t, 6, row.DaysToExpiry)
	assert.Equal(t, reports.BandHealthy, row.Band)
	assert.Equal(t, "João Silva", row.DriverName)
	assert.Equal(t, "Honda Civic", row.VehicleLabel)
}

func TestDashboard_ExpiringContractsHorizon(t *testing.T) {
	// From Jan 20 the contract is 11 days out, beyond the 10-day horizon.
	d := reports.BuildDashboard(seededStore(), fleet.MustDate("2024-01-20"))
	assert.Empty(t, d.ExpiringContracts)
}

func TestDashboard_ContractProgressOnlyActive(t *testing.T) {
	store := seededStore()
	c, ok := store.ContractByID(1)
	require.True(t, ok)
	c.Status = fleet.ContractFinished
	require.NoError(t, store.UpdateContract(c))

	d := reports.BuildDashboard(store, fleet.MustDate("2024-01-20"))
	assert.Empty(t, d.ContractProgress)
}

func TestDashboard_ProgressResolvesLabels(t *testing.T) {
	d := reports.BuildDashboard(seededStore(), fleet.MustDate("2024-01-20"))

	require.Len(t, d.ContractProgress, 1)
	item := d.ContractProgress[0]
	assert.Equal(t, "João Silva", item.DriverName)
	assert.Equal(t, "Honda Civic", item.VehicleLabel)
	assert.True(t, item.Progress.PaidAmount.Equal(money(150)))
}

func TestDashboard_AvailabilityCoversActiveVehicles(t *testing.T) {
	d := reports.BuildDashboard(seededStore(), fleet.MustDate("2024-01-11"))

	require.Len(t, d.Availability, 2)
	v1 := d.Availability[0]
	assert.Equal(t, fleet.VehicleID(1), v1.Vehicle.ID)
	assert.Equal(t, 10, v1.Availability.TotalDays, "anchored at the Jan 1 contract")
	assert.Equal(t, 1, v1.Availability.MaintenanceDays)
}

func TestDashboard_DanglingReferencesDegradeToPlaceholders(t *testing.T) {
	// Deleting the driver must not break any dashboard block.
	store := seededStore()
	store.DeleteDriver(1)

	d := reports.BuildDashboard(store, fleet.MustDate("2024-01-25"))

	require.Len(t, d.ExpiringContracts, 1)
	assert.Equal(t, fleet.DriverNotFoundLabel, d.ExpiringContracts[0].DriverName)
}
