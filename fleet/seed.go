package fleet

import "github.com/shopspring/decimal"

// SeedState returns the fixed starter dataset used when neither the primary
// store nor the auto-backup can be loaded. It mirrors the demo records the
// system has shipped with since its first release.
func SeedState() State {
	return State{
		Drivers: []Driver{
			{
				ID:        1,
				Name:      "João Silva",
				TaxID:     "123.456.789-00",
				LicenseNo: "12345678901",
				Phone:     "(11) 99999-9999",
				Address:   "Rua das Flores, 123",
				Status:    DriverActive,
			},
			{
				ID:        2,
				Name:      "Maria Santos",
				TaxID:     "987.654.321-00",
				LicenseNo: "98765432109",
				Phone:     "(11) 88888-8888",
				Address:   "Av. Principal, 456",
				Status:    DriverActive,
			},
		},
		Vehicles: []Vehicle{
			{
				ID:           1,
				Make:         "Honda",
				Model:        "Civic",
				Plate:        "ABC-1234",
				Year:         2020,
				Color:        "Prata",
				DriverID:     1,
				Status:       VehicleActive,
				RegisteredAt: MustDate("2024-01-01"),
			},
			{
				ID:           2,
				Make:         "Toyota",
				Model:        "Corolla",
				Plate:        "XYZ-5678",
				Year:         2019,
				Color:        "Branco",
				DriverID:     2,
				Status:       VehicleActive,
				RegisteredAt: MustDate("2024-01-01"),
			},
		},
		DailyRates: []DailyRate{
			{
				ID:        1,
				DriverID:  1,
				VehicleID: 1,
				Date:      MustDate("2024-01-15"),
				Value:     decimal.NewFromInt(150),
				Status:    PaymentPaid,
			},
			{
				ID:        2,
				DriverID:  2,
				VehicleID: 2,
				Date:      MustDate("2024-01-16"),
				Value:     decimal.NewFromInt(150),
				Status:    PaymentPending,
			},
		},
		Maintenances: []Maintenance{
			{
				ID:          1,
				VehicleID:   1,
				Category:    "preventive",
				Date:        MustDate("2024-01-10"),
				Value:       decimal.NewFromInt(500),
				Description: "Troca de óleo e filtros",
			},
		},
		Contracts: []Contract{
			{
				ID:           1,
				VehicleID:    1,
				DriverID:     1,
				StartDate:    MustDate("2024-01-01"),
				EndDate:      MustDate("2024-01-31"),
				DurationDays: 30,
				MonthlyValue: decimal.NewFromInt(1500),
				WeeklyValue:  decimal.NewFromInt(375),
				DailyValue:   decimal.NewFromInt(50),
				Status:       ContractActive,
				Notes:        "Contrato de 30 dias",
			},
		},
		FinancialEntries: []FinancialEntry{
			{
				ID:          1,
				Description: "Diária João Silva",
				Value:       decimal.NewFromInt(150),
				Date:        MustDate("2024-01-15"),
				Type:        EntryRevenue,
				Category:    "Diárias",
			},
			{
				ID:          2,
				Description: "Manutenção Honda Civic",
				Value:       decimal.NewFromInt(500),
				Date:        MustDate("2024-01-10"),
				Type:        EntryExpense,
				Category:    "Manutenção",
			},
		},
	}
}
