/*
store.go - In-memory record store and CRUD operations

PURPOSE:
  The Store owns the six record collections and is the single source of truth
  while the application runs. Every mutation validates its input first,
  assigns ids as current-max+1, and either fully applies or fully aborts -
  there are no partial writes.

CONCURRENCY:
  The execution model is single-threaded: exactly one logical writer and no
  background mutation (see the app package). The Store therefore does no
  locking of its own.

PERSISTENCE:
  The Store knows nothing about storage. The app package snapshots it after
  every mutation and hands the State to a Persister.

SEE ALSO:
  - resolver.go: Read-side id lookups
  - store/sqlite: Primary persister
  - store/jsonfile: Auto-backup persister
*/
package fleet

import "context"

// =============================================================================
// STATE - The six collections as one value
// =============================================================================

// State is a snapshot of all six collections. It is the unit of persistence,
// backup and restore.
type State struct {
	Drivers          []Driver         `json:"drivers"`
	Vehicles         []Vehicle        `json:"vehicles"`
	DailyRates       []DailyRate      `json:"dailyRates"`
	Maintenances     []Maintenance    `json:"maintenances"`
	Contracts        []Contract       `json:"contracts"`
	FinancialEntries []FinancialEntry `json:"financialEntries"`
}

// Counts returns the record count per collection, in entity order.
type Counts struct {
	Drivers          int `json:"drivers"`
	Vehicles         int `json:"vehicles"`
	DailyRates       int `json:"dailyRates"`
	Maintenances     int `json:"maintenances"`
	Contracts        int `json:"contracts"`
	FinancialEntries int `json:"financialEntries"`
}

func (s State) Counts() Counts {
	return Counts{
		Drivers:          len(s.Drivers),
		Vehicles:         len(s.Vehicles),
		DailyRates:       len(s.DailyRates),
		Maintenances:     len(s.Maintenances),
		Contracts:        len(s.Contracts),
		FinancialEntries: len(s.FinancialEntries),
	}
}

// Clone returns a deep copy. Record values contain no shared pointers, so
// copying the slices is sufficient.
func (s State) Clone() State {
	return State{
		Drivers:          append([]Driver(nil), s.Drivers...),
		Vehicles:         append([]Vehicle(nil), s.Vehicles...),
		DailyRates:       append([]DailyRate(nil), s.DailyRates...),
		Maintenances:     append([]Maintenance(nil), s.Maintenances...),
		Contracts:        append([]Contract(nil), s.Contracts...),
		FinancialEntries: append([]FinancialEntry(nil), s.FinancialEntries...),
	}
}

// =============================================================================
// PERSISTER - Boundary contract for storage backends
// =============================================================================

// Persister loads and saves full snapshots. SaveAll is last-write-wins; there
// is no partial update. LoadAll returns ErrNoPersistedState when nothing has
// been saved yet and ErrCorruptState when saved data cannot be decoded.
type Persister interface {
	LoadAll(ctx context.Context) (State, error)
	SaveAll(ctx context.Context, state State) error
}

// =============================================================================
// STORE
// =============================================================================

// Store holds the live collections.
type Store struct {
	state State
}

func NewStore() *Store {
	return &Store{}
}

// NewStoreFromState builds a store around an existing snapshot (loaded from a
// persister or a restored backup).
func NewStoreFromState(state State) *Store {
	return &Store{state: state.Clone()}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State { return s.state.Clone() }

// ReplaceAll swaps in a whole new state atomically. Used by restore.
func (s *Store) ReplaceAll(state State) {
	s.state = state.Clone()
}

// Read accessors. Callers must not mutate the returned slices.
func (s *Store) Drivers() []Driver                   { return s.state.Drivers }
func (s *Store) Vehicles() []Vehicle                 { return s.state.Vehicles }
func (s *Store) DailyRates() []DailyRate             { return s.state.DailyRates }
func (s *Store) Maintenances() []Maintenance         { return s.state.Maintenances }
func (s *Store) Contracts() []Contract               { return s.state.Contracts }
func (s *Store) FinancialEntries() []FinancialEntry  { return s.state.FinancialEntries }

// =============================================================================
// VALIDATION
// =============================================================================

func validateDriver(d Driver) error {
	switch {
	case d.Name == "":
		return required("name")
	case d.TaxID == "":
		return required("taxId")
	case d.LicenseNo == "":
		return required("licenseNo")
	case d.Phone == "":
		return required("phone")
	}
	return nil
}

func validateVehicle(v Vehicle) error {
	switch {
	case v.Make == "":
		return required("make")
	case v.Model == "":
		return required("model")
	case v.Plate == "":
		return required("plate")
	case v.Year <= 0:
		return mustBePositive("year")
	}
	return nil
}

func validateDailyRate(r DailyRate) error {
	switch {
	case r.DriverID == 0:
		return required("driverId")
	case r.VehicleID == 0:
		return required("vehicleId")
	case r.Date.IsZero():
		return required("date")
	case !r.Value.IsPositive():
		return mustBePositive("value")
	}
	return nil
}

func validateMaintenance(m Maintenance) error {
	switch {
	case m.VehicleID == 0:
		return required("vehicleId")
	case m.Category == "":
		return required("category")
	case m.Date.IsZero():
		return required("date")
	case !m.Value.IsPositive():
		return mustBePositive("value")
	}
	return nil
}

func validateContract(c Contract) error {
	switch {
	case c.VehicleID == 0:
		return required("vehicleId")
	case c.DriverID == 0:
		return required("driverId")
	case c.StartDate.IsZero():
		return required("startDate")
	case !c.MonthlyValue.IsPositive():
		return mustBePositive("monthlyValue")
	case c.DurationDays < 1 || c.DurationDays > 365:
		return &ValidationError{Field: "durationDays", Message: "must be between 1 and 365"}
	}
	return nil
}

func validateFinancialEntry(f FinancialEntry) error {
	switch {
	case f.Description == "":
		return required("description")
	case !f.Value.IsPositive():
		return mustBePositive("value")
	case f.Date.IsZero():
		return required("date")
	case f.Type != EntryRevenue && f.Type != EntryExpense:
		return &ValidationError{Field: "type", Message: "must be revenue or expense"}
	}
	return nil
}

// =============================================================================
// DRIVER CRUD
// =============================================================================

// AddDriver validates, assigns the next id and appends. Returns the stored
// record.
func (s *Store) AddDriver(d Driver) (Driver, error) {
	if err := validateDriver(d); err != nil {
		return Driver{}, err
	}
	if d.Status == "" {
		d.Status = DriverActive
	}
	d.ID = nextDriverID(s.state.Drivers)
	s.state.Drivers = append(s.state.Drivers, d)
	return d, nil
}

// UpdateDriver replaces the record with the same id wholesale.
func (s *Store) UpdateDriver(d Driver) error {
	if err := validateDriver(d); err != nil {
		return err
	}
	for i := range s.state.Drivers {
		if s.state.Drivers[i].ID == d.ID {
			s.state.Drivers[i] = d
			return nil
		}
	}
	return ErrRecordNotFound
}

// DeleteDriver filters the record out. Dangling references in other
// collections are left in place and resolved to placeholders on read.
func (s *Store) DeleteDriver(id DriverID) {
	s.state.Drivers = filterDrivers(s.state.Drivers, id)
}

func nextDriverID(drivers []Driver) DriverID {
	max := DriverID(0)
	for _, d := range drivers {
		if d.ID > max {
			max = d.ID
		}
	}
	return max + 1
}

func filterDrivers(drivers []Driver, id DriverID) []Driver {
	out := drivers[:0]
	for _, d := range drivers {
		if d.ID != id {
			out = append(out, d)
		}
	}
	return out
}

// =============================================================================
// VEHICLE CRUD
// =============================================================================

func (s *Store) AddVehicle(v Vehicle) (Vehicle, error) {
	if err := validateVehicle(v); err != nil {
		return Vehicle{}, err
	}
	if v.Status == "" {
		v.Status = VehicleActive
	}
	if v.RegisteredAt.IsZero() {
		v.RegisteredAt = Today()
	}
	v.ID = nextVehicleID(s.state.Vehicles)
	s.state.Vehicles = append(s.state.Vehicles, v)
	return v, nil
}

func (s *Store) UpdateVehicle(v Vehicle) error {
	if err := validateVehicle(v); err != nil {
		return err
	}
	for i := range s.state.Vehicles {
		if s.state.Vehicles[i].ID == v.ID {
			s.state.Vehicles[i] = v
			return nil
		}
	}
	return ErrRecordNotFound
}

func (s *Store) DeleteVehicle(id VehicleID) {
	out := s.state.Vehicles[:0]
	for _, v := range s.state.Vehicles {
		if v.ID != id {
			out = append(out, v)
		}
	}
	s.state.Vehicles = out
}

func nextVehicleID(vehicles []Vehicle) VehicleID {
	max := VehicleID(0)
	for _, v := range vehicles {
		if v.ID > max {
			max = v.ID
		}
	}
	return max + 1
}

// =============================================================================
// DAILY RATE CRUD
// =============================================================================

func (s *Store) AddDailyRate(r DailyRate) (DailyRate, error) {
	if err := validateDailyRate(r); err != nil {
		return DailyRate{}, err
	}
	if r.Status == "" {
		r.Status = PaymentPending
	}
	r.ID = nextDailyRateID(s.state.DailyRates)
	s.state.DailyRates = append(s.state.DailyRates, r)
	return r, nil
}

func (s *Store) UpdateDailyRate(r DailyRate) error {
	if err := validateDailyRate(r); err != nil {
		return err
	}
	for i := range s.state.DailyRates {
		if s.state.DailyRates[i].ID == r.ID {
			s.state.DailyRates[i] = r
			return nil
		}
	}
	return ErrRecordNotFound
}

func (s *Store) DeleteDailyRate(id DailyRateID) {
	out := s.state.DailyRates[:0]
	for _, r := range s.state.DailyRates {
		if r.ID != id {
			out = append(out, r)
		}
	}
	s.state.DailyRates = out
}

func nextDailyRateID(rates []DailyRate) DailyRateID {
	max := DailyRateID(0)
	for _, r := range rates {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

// =============================================================================
// MAINTENANCE CRUD
// =============================================================================

func (s *Store) AddMaintenance(m Maintenance) (Maintenance, error) {
	if err := validateMaintenance(m); err != nil {
		return Maintenance{}, err
	}
	m.ID = nextMaintenanceID(s.state.Maintenances)
	s.state.Maintenances = append(s.state.Maintenances, m)
	return m, nil
}

func (s *Store) UpdateMaintenance(m Maintenance) error {
	if err := validateMaintenance(m); err != nil {
		return err
	}
	for i := range s.state.Maintenances {
		if s.state.Maintenances[i].ID == m.ID {
			s.state.Maintenances[i] = m
			return nil
		}
	}
	return ErrRecordNotFound
}

func (s *Store) DeleteMaintenance(id MaintenanceID) {
	out := s.state.Maintenances[:0]
	for _, m := range s.state.Maintenances {
		if m.ID != id {
			out = append(out, m)
		}
	}
	s.state.Maintenances = out
}

func nextMaintenanceID(ms []Maintenance) MaintenanceID {
	max := MaintenanceID(0)
	for _, m := range ms {
		if m.ID > max {
			max = m.ID
		}
	}
	return max + 1
}

// =============================================================================
// CONTRACT CRUD
// =============================================================================

// AddContract validates and derives the computed fields (end date, weekly and
// daily value) before storing. Callers never set those fields themselves.
func (s *Store) AddContract(c Contract) (Contract, error) {
	if err := validateContract(c); err != nil {
		return Contract{}, err
	}
	if c.Status == "" {
		c.Status = ContractActive
	}
	DeriveContractTerms(&c)
	c.ID = nextContractID(s.state.Contracts)
	s.state.Contracts = append(s.state.Contracts, c)
	return c, nil
}

func (s *Store) UpdateContract(c Contract) error {
	if err := validateContract(c); err != nil {
		return err
	}
	DeriveContractTerms(&c)
	for i := range s.state.Contracts {
		if s.state.Contracts[i].ID == c.ID {
			s.state.Contracts[i] = c
			return nil
		}
	}
	return ErrRecordNotFound
}

func (s *Store) DeleteContract(id ContractID) {
	out := s.state.Contracts[:0]
	for _, c := range s.state.Contracts {
		if c.ID != id {
			out = append(out, c)
		}
	}
	s.state.Contracts = out
}

func nextContractID(cs []Contract) ContractID {
	max := ContractID(0)
	for _, c := range cs {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

// =============================================================================
// FINANCIAL ENTRY CRUD
// =============================================================================

func (s *Store) AddFinancialEntry(f FinancialEntry) (FinancialEntry, error) {
	if err := validateFinancialEntry(f); err != nil {
		return FinancialEntry{}, err
	}
	f.ID = nextFinancialID(s.state.FinancialEntries)
	s.state.FinancialEntries = append(s.state.FinancialEntries, f)
	return f, nil
}

func (s *Store) UpdateFinancialEntry(f FinancialEntry) error {
	if err := validateFinancialEntry(f); err != nil {
		return err
	}
	for i := range s.state.FinancialEntries {
		if s.state.FinancialEntries[i].ID == f.ID {
			s.state.FinancialEntries[i] = f
			return nil
		}
	}
	return ErrRecordNotFound
}

func (s *Store) DeleteFinancialEntry(id FinancialID) {
	out := s.state.FinancialEntries[:0]
	for _, f := range s.state.FinancialEntries {
		if f.ID != id {
			out = append(out, f)
		}
	}
	s.state.FinancialEntries = out
}

func nextFinancialID(fs []FinancialEntry) FinancialID {
	max := FinancialID(0)
	for _, f := range fs {
		if f.ID > max {
			max = f.ID
		}
	}
	return max + 1
}
