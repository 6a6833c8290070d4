/*
Package sqlite provides the primary SQLite-backed persister.

PURPOSE:
  Persists full snapshots of the six record collections. The persistence
  model is last-write-wins over the whole state: SaveAll replaces every table
  inside one database transaction, LoadAll reads everything back.

WHY REPLACE-ALL:
  The store is the source of truth while the application runs; the database
  only has to survive restarts. Replacing the whole snapshot in one
  transaction keeps the six tables mutually consistent without tracking
  per-record dirty state, and the data volumes (hundreds of records) make the
  cost irrelevant.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better crash recovery.

USAGE:
  store, err := sqlite.New("./data/fleet.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - fleet.Persister: Interface this package implements
  - store/jsonfile: Secondary auto-backup persister
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/realdriver/fleet-engine/fleet"
)

// Store implements fleet.Persister on SQLite.
type Store struct {
	db *sql.DB
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS drivers (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		tax_id TEXT NOT NULL,
		license_no TEXT NOT NULL,
		phone TEXT NOT NULL,
		address TEXT,
		status TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS vehicles (
		id INTEGER PRIMARY KEY,
		make TEXT NOT NULL,
		model TEXT NOT NULL,
		plate TEXT NOT NULL,
		year INTEGER NOT NULL,
		color TEXT,
		driver_id INTEGER,
		status TEXT NOT NULL,
		registered_at TEXT
	);

	CREATE TABLE IF NOT EXISTS daily_rates (
		id INTEGER PRIMARY KEY,
		driver_id INTEGER NOT NULL,
		vehicle_id INTEGER NOT NULL,
		date TEXT NOT NULL,
		value TEXT NOT NULL,
		status TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_daily_rates_driver_date
		ON daily_rates(driver_id, date);
	CREATE INDEX IF NOT EXISTS idx_daily_rates_vehicle
		ON daily_rates(vehicle_id);

	CREATE TABLE IF NOT EXISTS maintenances (
		id INTEGER PRIMARY KEY,
		vehicle_id INTEGER NOT NULL,
		category TEXT NOT NULL,
		date TEXT NOT NULL,
		value TEXT NOT NULL,
		description TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_maintenances_vehicle_date
		ON maintenances(vehicle_id, date);

	CREATE TABLE IF NOT EXISTS contracts (
		id INTEGER PRIMARY KEY,
		vehicle_id INTEGER NOT NULL,
		driver_id INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		duration_days INTEGER NOT NULL,
		monthly_value TEXT NOT NULL,
		weekly_value TEXT NOT NULL,
		daily_value TEXT NOT NULL,
		status TEXT NOT NULL,
		notes TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_contracts_driver
		ON contracts(driver_id);
	CREATE INDEX IF NOT EXISTS idx_contracts_vehicle
		ON contracts(vehicle_id);

	CREATE TABLE IF NOT EXISTS financial_entries (
		id INTEGER PRIMARY KEY,
		description TEXT NOT NULL,
		value TEXT NOT NULL,
		date TEXT NOT NULL,
		entry_type TEXT NOT NULL,
		category TEXT
	);

	-- Meta distinguishes "never saved" from "saved an empty state".
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SAVE
// =============================================================================

// SaveAll replaces the persisted snapshot inside one transaction.
func (s *Store) SaveAll(ctx context.Context, state fleet.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{
		"drivers", "vehicles", "daily_rates", "maintenances", "contracts", "financial_entries",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, d := range state.Drivers {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO drivers (id, name, tax_id, license_no, phone, address, status)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.Name, d.TaxID, d.LicenseNo, d.Phone, d.Address, d.Status)
		if err != nil {
			return fmt.Errorf("insert driver %d: %w", d.ID, err)
		}
	}

	for _, v := range state.Vehicles {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO vehicles (id, make, model, plate, year, color, driver_id, status, registered_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, v.Make, v.Model, v.Plate, v.Year, v.Color, v.DriverID, v.Status, dateString(v.RegisteredAt))
		if err != nil {
			return fmt.Errorf("insert vehicle %d: %w", v.ID, err)
		}
	}

	for _, r := range state.DailyRates {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO daily_rates (id, driver_id, vehicle_id, date, value, status)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.DriverID, r.VehicleID, r.Date.String(), r.Value.String(), r.Status)
		if err != nil {
			return fmt.Errorf("insert daily rate %d: %w", r.ID, err)
		}
	}

	for _, m := range state.Maintenances {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO maintenances (id, vehicle_id, category, date, value, description)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			m.ID, m.VehicleID, m.Category, m.Date.String(), m.Value.String(), m.Description)
		if err != nil {
			return fmt.Errorf("insert maintenance %d: %w", m.ID, err)
		}
	}

	for _, c := range state.Contracts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO contracts (id, vehicle_id, driver_id, start_date, end_date, duration_days,
			                        monthly_value, weekly_value, daily_value, status, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.VehicleID, c.DriverID, c.StartDate.String(), c.EndDate.String(), c.DurationDays,
			c.MonthlyValue.String(), c.WeeklyValue.String(), c.DailyValue.String(), c.Status, c.Notes)
		if err != nil {
			return fmt.Errorf("insert contract %d: %w", c.ID, err)
		}
	}

	for _, f := range state.FinancialEntries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO financial_entries (id, description, value, date, entry_type, category)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			f.ID, f.Description, f.Value.String(), f.Date.String(), f.Type, f.Category)
		if err != nil {
			return fmt.Errorf("insert financial entry %d: %w", f.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('saved', '1')
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`); err != nil {
		return fmt.Errorf("mark saved: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// =============================================================================
// LOAD
// =============================================================================

// LoadAll reads the persisted snapshot. Returns fleet.ErrNoPersistedState
// when nothing has ever been saved and fleet.ErrCorruptState when stored rows
// cannot be decoded.
func (s *Store) LoadAll(ctx context.Context) (fleet.State, error) {
	var marker string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'saved'`).Scan(&marker)
	if err == sql.ErrNoRows {
		return fleet.State{}, fleet.ErrNoPersistedState
	}
	if err != nil {
		return fleet.State{}, fmt.Errorf("read meta: %w", err)
	}

	var state fleet.State
	if state.Drivers, err = s.loadDrivers(ctx); err != nil {
		return fleet.State{}, corrupt("drivers", err)
	}
	if state.Vehicles, err = s.loadVehicles(ctx); err != nil {
		return fleet.State{}, corrupt("vehicles", err)
	}
	if state.DailyRates, err = s.loadDailyRates(ctx); err != nil {
		return fleet.State{}, corrupt("daily_rates", err)
	}
	if state.Maintenances, err = s.loadMaintenances(ctx); err != nil {
		return fleet.State{}, corrupt("maintenances", err)
	}
	if state.Contracts, err = s.loadContracts(ctx); err != nil {
		return fleet.State{}, corrupt("contracts", err)
	}
	if state.FinancialEntries, err = s.loadFinancialEntries(ctx); err != nil {
		return fleet.State{}, corrupt("financial_entries", err)
	}
	return state, nil
}

func corrupt(table string, err error) error {
	return fmt.Errorf("%w: %s: %v", fleet.ErrCorruptState, table, err)
}

func (s *Store) loadDrivers(ctx context.Context) ([]fleet.Driver, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, tax_id, license_no, phone, address, status FROM drivers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []fleet.Driver
	for rows.Next() {
		var d fleet.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.TaxID, &d.LicenseNo, &d.Phone, &d.Address, &d.Status); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) loadVehicles(ctx context.Context) ([]fleet.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, make, model, plate, year, color, driver_id, status, registered_at FROM vehicles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []fleet.Vehicle
	for rows.Next() {
		var v fleet.Vehicle
		var registered string
		if err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Plate, &v.Year, &v.Color, &v.DriverID, &v.Status, &registered); err != nil {
			return nil, err
		}
		if v.RegisteredAt, err = parseDate(registered); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) loadDailyRates(ctx context.Context) ([]fleet.DailyRate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, driver_id, vehicle_id, date, value, status FROM daily_rates ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []fleet.DailyRate
	for rows.Next() {
		var r fleet.DailyRate
		var date, value string
		if err := rows.Scan(&r.ID, &r.DriverID, &r.VehicleID, &date, &value, &r.Status); err != nil {
			return nil, err
		}
		if r.Date, err = fleet.ParseDate(date); err != nil {
			return nil, err
		}
		if r.Value, err = decimal.NewFromString(value); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) loadMaintenances(ctx context.Context) ([]fleet.Maintenance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, vehicle_id, category, date, value, description FROM maintenances ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []fleet.Maintenance
	for rows.Next() {
		var m fleet.Maintenance
		var date, value string
		if err := rows.Scan(&m.ID, &m.VehicleID, &m.Category, &date, &value, &m.Description); err != nil {
			return nil, err
		}
		if m.Date, err = fleet.ParseDate(date); err != nil {
			return nil, err
		}
		if m.Value, err = decimal.NewFromString(value); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) loadContracts(ctx context.Context) ([]fleet.Contract, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, vehicle_id, driver_id, start_date, end_date, duration_days,
		        monthly_value, weekly_value, daily_value, status, notes
		 FROM contracts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []fleet.Contract
	for rows.Next() {
		var c fleet.Contract
		var start, end, monthly, weekly, daily string
		if err := rows.Scan(&c.ID, &c.VehicleID, &c.DriverID, &start, &end, &c.DurationDays,
			&monthly, &weekly, &daily, &c.Status, &c.Notes); err != nil {
			return nil, err
		}
		if c.StartDate, err = fleet.ParseDate(start); err != nil {
			return nil, err
		}
		if c.EndDate, err = fleet.ParseDate(end); err != nil {
			return nil, err
		}
		if c.MonthlyValue, err = decimal.NewFromString(monthly); err != nil {
			return nil, err
		}
		if c.WeeklyValue, err = decimal.NewFromString(weekly); err != nil {
			return nil, err
		}
		if c.DailyValue, err = decimal.NewFromString(daily); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) loadFinancialEntries(ctx context.Context) ([]fleet.FinancialEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, value, date, entry_type, category FROM financial_entries ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []fleet.FinancialEntry
	for rows.Next() {
		var f fleet.FinancialEntry
		var date, value string
		if err := rows.Scan(&f.ID, &f.Description, &value, &date, &f.Type, &f.Category); err != nil {
			return nil, err
		}
		if f.Date, err = fleet.ParseDate(date); err != nil {
			return nil, err
		}
		if f.Value, err = decimal.NewFromString(value); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func dateString(d fleet.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func parseDate(s string) (fleet.Date, error) {
	if s == "" {
		return fleet.Date{}, nil
	}
	return fleet.ParseDate(s)
}
