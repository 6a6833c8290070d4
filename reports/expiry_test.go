package reports_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realdriver/fleet-engine/fleet"
	"github.com/realdriver/fleet-engine/reports"
)

func contractEnding(end string, status fleet.ContractStatus) fleet.Contract {
	return fleet.Contract{
		ID:      1,
		EndDate: fleet.MustDate(end),
		Status:  status,
	}
}

// =============================================================================
// DAYS TO EXPIRY
// =============================================================================

func TestDaysToExpiry(t *testing.T) {
	today := fleet.MustDate("2024-01-20")

	assert.Equal(t, 11, reports.DaysToExpiry(contractEnding("2024-01-31", fleet.ContractActive), today))
	assert.Equal(t, 0, reports.DaysToExpiry(contractEnding("2024-01-20", fleet.ContractActive), today))
	assert.Equal(t, -5, reports.DaysToExpiry(contractEnding("2024-01-15", fleet.ContractActive), today))
}

// =============================================================================
// TABLE BAND (wide 10-day yellow)
// =============================================================================

func TestContractBand_Thresholds(t *testing.T) {
	today := fleet.MustDate("2024-01-20")

	cases := []struct {
		end  string
		want reports.Band
	}{
		{"2024-01-19", reports.BandExpired},  // already past
		{"2024-01-20", reports.BandExpired},  // ends today
		{"2024-01-21", reports.BandExpiring}, // 1 day left
		{"2024-01-30", reports.BandExpiring}, // 10 days left, still yellow
		{"2024-01-31", reports.BandHealthy},  // 11 days left
		{"2024-06-01", reports.BandHealthy},
	}
	for _, tc := range cases {
		c := contractEnding(tc.end, fleet.ContractActive)
		assert.Equal(t, tc.want, reports.ContractBand(c, today), "end date %s", tc.end)
	}
}

func TestContractBand_NonActiveIsAlwaysInactive(t *testing.T) {
	// A finished or cancelled contract bands gray no matter its dates.
	today := fleet.MustDate("2024-01-20")

	for _, status := range []fleet.ContractStatus{fleet.ContractFinished, fleet.ContractCancelled} {
		c := contractEnding("2024-01-21", status) // would be expiring if active
		assert.Equal(t, reports.BandInactive, reports.ContractBand(c, today), "status %s", status)
	}
}

// =============================================================================
// WIDGET BAND (strict 3-day yellow)
// =============================================================================

func TestUpcomingBand_StrictThresholds(t *testing.T) {
	cases := []struct {
		days int
		want reports.Band
	}{
		{-1, reports.BandExpired},
		{0, reports.BandExpired},
		{1, reports.BandExpiring},
		{3, reports.BandExpiring},
		{4, reports.BandHealthy}, // yellow under the table band, green here
		{10, reports.BandHealthy},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, reports.UpcomingBand(tc.days), "%d days", tc.days)
	}
}

func TestBands_DisagreeBetween4And10Days(t *testing.T) {
	// The two threshold sets are intentionally different: 4-10 days out is
	// yellow in the table but green in the widget.
	today := fleet.MustDate("2024-01-20")
	c := contractEnding("2024-01-26", fleet.ContractActive) // 6 days

	assert.Equal(t, reports.BandExpiring, reports.ContractBand(c, today))
	assert.Equal(t, reports.BandHealthy, reports.UpcomingBand(reports.DaysToExpiry(c, today)))
}
