/*
resolver.go - Relationship resolver

PURPOSE:
  Pure lookup functions joining records by foreign key. Lookups are linear
  scans over the in-memory collections; volumes are hundreds of records, not
  millions, so no secondary index is kept.

TOTALITY:
  A missing relation is reported through the ok-bool, never an error. The
  label helpers collapse the miss into a fixed placeholder so report
  generation can never fail on a dangling id.
*/
package fleet

// DriverByID returns the driver with the given id.
func (s *Store) DriverByID(id DriverID) (Driver, bool) {
	for _, d := range s.state.Drivers {
		if d.ID == id {
			return d, true
		}
	}
	return Driver{}, false
}

// VehicleByID returns the vehicle with the given id.
func (s *Store) VehicleByID(id VehicleID) (Vehicle, bool) {
	for _, v := range s.state.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return Vehicle{}, false
}

// ContractByID returns the contract with the given id.
func (s *Store) ContractByID(id ContractID) (Contract, bool) {
	for _, c := range s.state.Contracts {
		if c.ID == id {
			return c, true
		}
	}
	return Contract{}, false
}

// DailyRateByID returns the daily rate with the given id.
func (s *Store) DailyRateByID(id DailyRateID) (DailyRate, bool) {
	for _, r := range s.state.DailyRates {
		if r.ID == id {
			return r, true
		}
	}
	return DailyRate{}, false
}

// MaintenanceByID returns the maintenance event with the given id.
func (s *Store) MaintenanceByID(id MaintenanceID) (Maintenance, bool) {
	for _, m := range s.state.Maintenances {
		if m.ID == id {
			return m, true
		}
	}
	return Maintenance{}, false
}

// FinancialEntryByID returns the financial entry with the given id.
func (s *Store) FinancialEntryByID(id FinancialID) (FinancialEntry, bool) {
	for _, f := range s.state.FinancialEntries {
		if f.ID == id {
			return f, true
		}
	}
	return FinancialEntry{}, false
}

// DriverName resolves a driver id to its display name, or the placeholder.
func (s *Store) DriverName(id DriverID) string {
	if d, ok := s.DriverByID(id); ok {
		return d.Name
	}
	return DriverNotFoundLabel
}

// VehicleLabel resolves a vehicle id to "Make Model", or the placeholder.
func (s *Store) VehicleLabel(id VehicleID) string {
	if v, ok := s.VehicleByID(id); ok {
		return v.Label()
	}
	return VehicleNotFoundLabel
}

// ContractsByDriver returns all contracts referencing the driver.
func (s *Store) ContractsByDriver(id DriverID) []Contract {
	var out []Contract
	for _, c := range s.state.Contracts {
		if c.DriverID == id {
			out = append(out, c)
		}
	}
	return out
}

// ContractsByVehicle returns all contracts referencing the vehicle.
func (s *Store) ContractsByVehicle(id VehicleID) []Contract {
	var out []Contract
	for _, c := range s.state.Contracts {
		if c.VehicleID == id {
			out = append(out, c)
		}
	}
	return out
}
