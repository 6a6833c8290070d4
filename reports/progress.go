/*
Package reports derives every computed view in the system from the record
collections: contract progress, expiration banding, vehicle availability and
utilization, period-scoped aggregation, weekly driver breakdowns and the
dashboard summary.

DESIGN PRINCIPLES:
  1. Pure functions: calculators read the store and return values. They never
     mutate collections, log, or touch storage.
  2. Total: a dangling foreign key degrades to a placeholder or is skipped in
     grouped views. No calculator returns an error for bad records.
  3. Explicit clock: every date-relative calculation takes "today" as an
     argument so results are reproducible in tests.

SEE ALSO:
  - fleet: record model and store
  - app: report query surface wired to persistence
*/
package reports

import (
	"github.com/shopspring/decimal"

	"github.com/realdriver/fleet-engine/fleet"
)

// =============================================================================
// CONTRACT PROGRESS
// =============================================================================

// ContractProgress describes how much of a contract's value has been paid off
// through daily rates.
type ContractProgress struct {
	// Sum of paid daily rates for the contract's driver inside the contract
	// window.
	PaidAmount decimal.Decimal

	// Full contract value: monthly value times duration in 30-day months.
	TotalContractValue decimal.Decimal

	// TotalContractValue minus PaidAmount, floored at zero.
	Remaining decimal.Decimal

	// PaidAmount as a share of TotalContractValue, clamped to [0, 100].
	// Defined as 0 when the contract value is zero.
	PercentPaid float64

	// Number of paid daily rates counted into PaidAmount.
	PaidCount int

	// Expected number of daily rates: the contract duration in days. This is
	// a policy assumption, not a measured count.
	ExpectedCount int
}

// ContractProgressFor computes progress for one contract against the full
// daily-rate collection. Rates are matched by driver id, paid status and date
// within the contract window, inclusive on both ends.
func ContractProgressFor(c fleet.Contract, rates []fleet.DailyRate) ContractProgress {
	window := c.Window()

	paid := decimal.Zero
	paidCount := 0
	for _, r := range rates {
		if r.DriverID != c.DriverID || r.Status != fleet.PaymentPaid {
			continue
		}
		if !window.Contains(r.Date) {
			continue
		}
		paid = paid.Add(r.Value)
		paidCount++
	}

	total := c.TotalValue()
	remaining := total.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	// A zero-value contract has no meaningful completion ratio; report 0%.
	percent := 0.0
	if total.IsPositive() {
		percent = paid.Div(total).InexactFloat64() * 100
		if percent > 100 {
			percent = 100
		}
	}

	return ContractProgress{
		PaidAmount:         paid,
		TotalContractValue: total,
		Remaining:          remaining,
		PercentPaid:        percent,
		PaidCount:          paidCount,
		ExpectedCount:      c.DurationDays,
	}
}
