/*
Package fleet provides the core record model for a single-tenant fleet and
driver management system.

PURPOSE:
  This package contains the six entity types (drivers, vehicles, daily rates,
  maintenance events, rental contracts, financial entries), the in-memory
  record Store that owns them, and the relationship resolver that joins them
  by id.

KEY CONCEPTS IN THIS FILE (types.go):
  - Typed integer ids: small positive integers, unique per collection,
    assigned as current-max+1 at creation and never reclaimed
  - Tagged entity records with explicit required/optional fields
  - decimal.Decimal for every monetary value

DESIGN PRINCIPLES:
  1. No embedded objects: every cross-entity reference is an id. Deleting a
     driver leaves dangling ids behind; readers resolve them to placeholders.
  2. Derived contract fields (end date, weekly and daily value) are recomputed
     on every write, never edited independently.
  3. Collections are independently owned by the Store; edits to one never
     cascade into another.

SEE ALSO:
  - store.go: Record store and CRUD operations
  - resolver.go: Id lookups with "not found" placeholders
  - reports package: All derived metrics
*/
package fleet

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// Record ids are small positive integers, unique within their collection.
// Id 0 is "no reference" (e.g. a vehicle without an assigned driver).
type (
	DriverID      int
	VehicleID     int
	DailyRateID   int
	MaintenanceID int
	ContractID    int
	FinancialID   int
)

// =============================================================================
// STATUSES
// =============================================================================

type DriverStatus string

const (
	DriverActive   DriverStatus = "active"
	DriverInactive DriverStatus = "inactive"
)

type VehicleStatus string

const (
	VehicleActive        VehicleStatus = "active"
	VehicleInactive      VehicleStatus = "inactive"
	VehicleInMaintenance VehicleStatus = "in_maintenance"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
)

type ContractStatus string

const (
	ContractActive    ContractStatus = "active"
	ContractFinished  ContractStatus = "finished"
	ContractCancelled ContractStatus = "cancelled"
)

type EntryType string

const (
	EntryRevenue EntryType = "revenue"
	EntryExpense EntryType = "expense"
)

// =============================================================================
// ENTITIES
// =============================================================================

// Driver is a registered driver. Name, tax id, license and phone are required.
type Driver struct {
	ID        DriverID     `json:"id"`
	Name      string       `json:"name"`
	TaxID     string       `json:"taxId"`
	LicenseNo string       `json:"licenseNo"`
	Phone     string       `json:"phone"`
	Address   string       `json:"address,omitempty"`
	Status    DriverStatus `json:"status"`
}

// Vehicle is a fleet vehicle. DriverID is an optional owning-driver reference
// (0 = unassigned). RegisteredAt anchors availability windows when the vehicle
// has no contract history.
type Vehicle struct {
	ID           VehicleID     `json:"id"`
	Make         string        `json:"make"`
	Model        string        `json:"model"`
	Plate        string        `json:"plate"`
	Year         int           `json:"year"`
	Color        string        `json:"color,omitempty"`
	DriverID     DriverID      `json:"driverId,omitempty"`
	Status       VehicleStatus `json:"status"`
	RegisteredAt Date          `json:"registeredAt,omitempty"`
}

// DailyRate is one day's earned/owed amount for a driver operating a vehicle.
type DailyRate struct {
	ID        DailyRateID     `json:"id"`
	DriverID  DriverID        `json:"driverId"`
	VehicleID VehicleID       `json:"vehicleId"`
	Date      Date            `json:"date"`
	Value     decimal.Decimal `json:"value"`
	Status    PaymentStatus   `json:"status"`
}

// Maintenance is a single maintenance event. Category is free text
// (e.g. "preventive", "corrective").
type Maintenance struct {
	ID          MaintenanceID   `json:"id"`
	VehicleID   VehicleID       `json:"vehicleId"`
	Category    string          `json:"category"`
	Date        Date            `json:"date"`
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description,omitempty"`
}

// Contract binds one driver to one vehicle for a fixed duration at a monthly
// rate. EndDate, WeeklyValue and DailyValue are derived; see DeriveContractTerms.
type Contract struct {
	ID           ContractID      `json:"id"`
	VehicleID    VehicleID       `json:"vehicleId"`
	DriverID     DriverID        `json:"driverId"`
	StartDate    Date            `json:"startDate"`
	EndDate      Date            `json:"endDate"`
	DurationDays int             `json:"durationDays"`
	MonthlyValue decimal.Decimal `json:"monthlyValue"`
	WeeklyValue  decimal.Decimal `json:"weeklyValue"`
	DailyValue   decimal.Decimal `json:"dailyValue"`
	Status       ContractStatus  `json:"status"`
	Notes        string          `json:"notes,omitempty"`
}

// Window returns the contract's inclusive [start, end] period.
func (c Contract) Window() Period {
	return Period{Start: c.StartDate, End: c.EndDate}
}

// FinancialEntry is a standalone revenue or expense record, outside the
// daily-rate and maintenance ledgers.
type FinancialEntry struct {
	ID          FinancialID     `json:"id"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Date        Date            `json:"date"`
	Type        EntryType       `json:"type"`
	Category    string          `json:"category,omitempty"`
}

// =============================================================================
// DERIVED CONTRACT TERMS
// =============================================================================

// Contract value divisors are fixed policy constants, not calendar-accurate:
// a "month" is always 30 days and a "week" is always a quarter of a month.
var (
	weeksPerMonth = decimal.NewFromInt(4)
	daysPerMonth  = decimal.NewFromInt(30)
)

// DeriveContractTerms fills the computed fields of a contract from its start
// date, duration and monthly value. Called on every contract write so the
// derived fields can never drift from their inputs.
func DeriveContractTerms(c *Contract) {
	c.EndDate = c.StartDate.AddDays(c.DurationDays)
	c.WeeklyValue = c.MonthlyValue.Div(weeksPerMonth)
	c.DailyValue = c.MonthlyValue.Div(daysPerMonth)
}

// TotalValue is the full contract value: monthly value times the duration
// expressed in fractional 30-day months.
func (c Contract) TotalValue() decimal.Decimal {
	months := decimal.NewFromInt(int64(c.DurationDays)).Div(daysPerMonth)
	return c.MonthlyValue.Mul(months)
}

// =============================================================================
// PLACEHOLDER LABELS
// =============================================================================

// Labels rendered for dangling references. Reports must stay total: a missing
// relation is never an error, always a placeholder.
const (
	DriverNotFoundLabel  = "driver not found"
	VehicleNotFoundLabel = "vehicle not found"
)

// Label returns the display name for a vehicle ("Make Model").
func (v Vehicle) Label() string {
	return v.Make + " " + v.Model
}
