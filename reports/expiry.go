/*
expiry.go - Contract expiration banding

PURPOSE:
  Classifies a contract's time-to-expiry into a discrete traffic-light band.

TWO THRESHOLD SETS:
  The contracts table/report and the dashboard widget intentionally use
  different yellow thresholds, and they must stay distinct:

    ContractBand (table, report):   <=0 expired | 1-10 expiring | >10 healthy
    UpcomingBand (dashboard widget): <=0 expired | 1-3 expiring | >3 healthy

  Non-active contracts always band inactive (gray) regardless of date math.
*/
package reports

import "github.com/realdriver/fleet-engine/fleet"

// Band is a discrete expiry classification.
type Band string

const (
	BandExpired  Band = "expired"  // red
	BandExpiring Band = "expiring" // yellow
	BandHealthy  Band = "healthy"  // green
	BandInactive Band = "inactive" // gray, non-active contracts
)

// Yellow thresholds, in days to expiry. The wide set drives the contracts
// table and report; the strict set drives the upcoming-expirations widget.
const (
	expiringSoonDays       = 10
	expiringSoonStrictDays = 3
)

// DaysToExpiry returns the whole days from today until the contract end date.
// Zero or negative means the contract has passed its end date.
func DaysToExpiry(c fleet.Contract, today fleet.Date) int {
	return today.DaysUntil(c.EndDate)
}

// ContractBand classifies a contract for the contracts table and reports.
func ContractBand(c fleet.Contract, today fleet.Date) Band {
	if c.Status != fleet.ContractActive {
		return BandInactive
	}
	return bandFor(DaysToExpiry(c, today), expiringSoonDays)
}

// UpcomingBand classifies a day count for the upcoming-expirations dashboard
// widget, which uses the stricter 3-day yellow threshold.
func UpcomingBand(daysToExpiry int) Band {
	return bandFor(daysToExpiry, expiringSoonStrictDays)
}

func bandFor(days, yellowMax int) Band {
	switch {
	case days <= 0:
		return BandExpired
	case days <= yellowMax:
		return BandExpiring
	default:
		return BandHealthy
	}
}
