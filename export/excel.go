/*
Package export writes spreadsheet workbooks: a raw dump of all six
collections and the period report workbook.

PURPOSE:
  The full export mirrors the collections one labeled sheet per entity type.
  The report export carries the computed by-vehicle and by-driver aggregate
  sheets for a date range. File names embed an ISO date+time stamp so
  successive exports never collide.

FORMATS:
  Dates are written as "YYYY-MM-DD" strings; monetary values as numbers
  rounded to 2 decimals, which is display policy, not internal precision.
*/
package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/realdriver/fleet-engine/fleet"
	"github.com/realdriver/fleet-engine/reports"
)

// Sheet names in the full export, one per collection.
const (
	SheetDrivers      = "Drivers"
	SheetVehicles     = "Vehicles"
	SheetDailyRates   = "Daily Rates"
	SheetMaintenances = "Maintenances"
	SheetContracts    = "Contracts"
	SheetFinancial    = "Financial"

	SheetReportVehicles = "Report by Vehicle"
	SheetReportDrivers  = "Report by Driver"
)

// =============================================================================
// FULL STATE WORKBOOK
// =============================================================================

// StateWorkbook builds the raw-dump workbook: one sheet per collection.
// The caller owns the returned file and must Close it.
func StateWorkbook(state fleet.State) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := driverSheet(f, state.Drivers); err != nil {
		return nil, err
	}
	if err := vehicleSheet(f, state.Vehicles); err != nil {
		return nil, err
	}
	if err := dailyRateSheet(f, state.DailyRates); err != nil {
		return nil, err
	}
	if err := maintenanceSheet(f, state.Maintenances); err != nil {
		return nil, err
	}
	if err := contractSheet(f, state.Contracts); err != nil {
		return nil, err
	}
	if err := financialSheet(f, state.FinancialEntries); err != nil {
		return nil, err
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet(f.GetSheetName(0)); err != nil {
		return nil, fmt.Errorf("remove default sheet: %w", err)
	}
	return f, nil
}

func driverSheet(f *excelize.File, drivers []fleet.Driver) error {
	rows := [][]any{{"ID", "Name", "Tax ID", "License", "Phone", "Address", "Status"}}
	for _, d := range drivers {
		rows = append(rows, []any{int(d.ID), d.Name, d.TaxID, d.LicenseNo, d.Phone, d.Address, string(d.Status)})
	}
	return writeSheet(f, SheetDrivers, rows)
}

func vehicleSheet(f *excelize.File, vehicles []fleet.Vehicle) error {
	rows := [][]any{{"ID", "Make", "Model", "Plate", "Year", "Color", "Driver ID", "Status", "Registered"}}
	for _, v := range vehicles {
		rows = append(rows, []any{
			int(v.ID), v.Make, v.Model, v.Plate, v.Year, v.Color,
			int(v.DriverID), string(v.Status), dateCell(v.RegisteredAt),
		})
	}
	return writeSheet(f, SheetVehicles, rows)
}

func dailyRateSheet(f *excelize.File, rates []fleet.DailyRate) error {
	rows := [][]any{{"ID", "Driver ID", "Vehicle ID", "Date", "Value", "Status"}}
	for _, r := range rates {
		rows = append(rows, []any{
			int(r.ID), int(r.DriverID), int(r.VehicleID), r.Date.String(), moneyCell(r.Value), string(r.Status),
		})
	}
	return writeSheet(f, SheetDailyRates, rows)
}

func maintenanceSheet(f *excelize.File, maints []fleet.Maintenance) error {
	rows := [][]any{{"ID", "Vehicle ID", "Category", "Date", "Value", "Description"}}
	for _, m := range maints {
		rows = append(rows, []any{
			int(m.ID), int(m.VehicleID), m.Category, m.Date.String(), moneyCell(m.Value), m.Description,
		})
	}
	return writeSheet(f, SheetMaintenances, rows)
}

func contractSheet(f *excelize.File, contracts []fleet.Contract) error {
	rows := [][]any{{
		"ID", "Vehicle ID", "Driver ID", "Start", "End", "Duration (days)",
		"Monthly", "Weekly", "Daily", "Status", "Notes",
	}}
	for _, c := range contracts {
		rows = append(rows, []any{
			int(c.ID), int(c.VehicleID), int(c.DriverID), c.StartDate.String(), c.EndDate.String(),
			c.DurationDays, moneyCell(c.MonthlyValue), moneyCell(c.WeeklyValue), moneyCell(c.DailyValue),
			string(c.Status), c.Notes,
		})
	}
	return writeSheet(f, SheetContracts, rows)
}

func financialSheet(f *excelize.File, entries []fleet.FinancialEntry) error {
	rows := [][]any{{"ID", "Description", "Value", "Date", "Type", "Category"}}
	for _, e := range entries {
		rows = append(rows, []any{
			int(e.ID), e.Description, moneyCell(e.Value), e.Date.String(), string(e.Type), e.Category,
		})
	}
	return writeSheet(f, SheetFinancial, rows)
}

// =============================================================================
// REPORT WORKBOOK
// =============================================================================

// ReportWorkbook builds the aggregate workbook for one generated report.
func ReportWorkbook(report reports.PeriodReport) (*excelize.File, error) {
	f := excelize.NewFile()

	vehicleRows := [][]any{{"Vehicle", "Plate", "Rates", "Total", "Paid Rates", "Paid", "Maintenances", "Maintenance Cost", "Balance"}}
	for _, r := range report.ByVehicle {
		vehicleRows = append(vehicleRows, []any{
			r.Label, r.Plate, r.RateCount, moneyCell(r.RateValue), r.PaidCount, moneyCell(r.PaidValue),
			r.MaintenanceCount, moneyCell(r.MaintenanceCost), moneyCell(r.Balance),
		})
	}
	vehicleRows = append(vehicleRows, []any{
		"Total", "", "", moneyCell(report.VehicleTotals.Value), "", moneyCell(report.VehicleTotals.Paid), "", "", "",
	})
	if err := writeSheet(f, SheetReportVehicles, vehicleRows); err != nil {
		return nil, err
	}

	driverRows := [][]any{{"Driver", "Tax ID", "Rates", "Total", "Paid Rates", "Paid"}}
	for _, r := range report.ByDriver {
		driverRows = append(driverRows, []any{
			r.Name, r.TaxID, r.RateCount, moneyCell(r.RateValue), r.PaidCount, moneyCell(r.PaidValue),
		})
	}
	driverRows = append(driverRows, []any{
		"Total", "", "", moneyCell(report.DriverTotals.Value), "", moneyCell(report.DriverTotals.Paid),
	})
	if err := writeSheet(f, SheetReportDrivers, driverRows); err != nil {
		return nil, err
	}

	if err := f.DeleteSheet(f.GetSheetName(0)); err != nil {
		return nil, fmt.Errorf("remove default sheet: %w", err)
	}
	return f, nil
}

// =============================================================================
// FILE NAMES
// =============================================================================

const stampLayout = "2006-01-02_15-04-05"

// ExportFileName names a full-dump workbook, e.g.
// "fleet_export_2024-01-15_10-30-00.xlsx".
func ExportFileName(now time.Time) string {
	return "fleet_export_" + now.Format(stampLayout) + ".xlsx"
}

// ReportFileName names a report workbook for a date range, e.g.
// "reports_2024-01-01_to_2024-01-31_2024-02-01_09-00-00.xlsx".
func ReportFileName(period fleet.Period, now time.Time) string {
	return fmt.Sprintf("reports_%s_to_%s_%s.xlsx",
		period.Start, period.End, now.Format(stampLayout))
}

// =============================================================================
// HELPERS
// =============================================================================

func writeSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write sheet %s row %d: %w", name, i+1, err)
		}
	}
	return nil
}

// moneyCell applies the 2-decimal display rounding.
func moneyCell(v decimal.Decimal) float64 {
	return v.Round(2).InexactFloat64()
}

func dateCell(d fleet.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
