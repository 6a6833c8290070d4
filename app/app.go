/*
app.go - Application wiring and the save/load/backup lifecycle

PURPOSE:
  The App owns the in-memory store and both persisters, and is the only place
  that sequences persistence: every mutation goes through Mutate, which saves
  the full snapshot synchronously to the primary store and then refreshes the
  auto-backup document.

STARTUP RECOVERY:
  Load walks a fallback chain: primary store, then auto-backup document, then
  the built-in seed data. Each downgrade is logged, so a recovered-from-backup
  start is visible in the logs.

CONCURRENCY:
  One App serves one logical writer. Nothing here locks; see fleet.Store.
*/
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/realdriver/fleet-engine/backup"
	"github.com/realdriver/fleet-engine/export"
	"github.com/realdriver/fleet-engine/fleet"
	"github.com/realdriver/fleet-engine/reports"
	"github.com/realdriver/fleet-engine/store/jsonfile"
	"github.com/realdriver/fleet-engine/store/sqlite"
)

// App wires the store to its persisters and exposes the operation surface.
type App struct {
	cfg   Config
	log   *logrus.Logger
	store *fleet.Store

	primary   fleet.Persister
	secondary fleet.Persister
	closer    func() error

	now func() time.Time
}

// New builds a fully wired App: sqlite primary, json auto-backup secondary.
func New(cfg Config) (*App, error) {
	log := NewLogger(cfg)

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	primary, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open primary store: %w", err)
	}

	a := NewWithPersisters(log, primary, jsonfile.New(cfg.BackupPath))
	a.cfg = cfg
	a.closer = primary.Close
	return a, nil
}

// NewWithPersisters wires an App around explicit persisters. Used by New and
// by tests that substitute in-memory fakes.
func NewWithPersisters(log *logrus.Logger, primary, secondary fleet.Persister) *App {
	return &App{
		log:       log,
		store:     fleet.NewStore(),
		primary:   primary,
		secondary: secondary,
		now:       time.Now,
	}
}

// Store exposes the live collections for reads and CRUD. Mutations made
// directly on the store are not persisted; use Mutate.
func (a *App) Store() *fleet.Store { return a.store }

func (a *App) Close() error {
	if a.closer != nil {
		return a.closer()
	}
	return nil
}

// =============================================================================
// LOAD - Startup fallback chain
// =============================================================================

// Load fills the store from the first healthy source: primary, then
// auto-backup, then seed data. It only fails on unexpected I/O errors; a
// missing or corrupt store downgrades to the next source.
func (a *App) Load(ctx context.Context) error {
	state, err := a.primary.LoadAll(ctx)
	switch {
	case err == nil:
		a.log.WithFields(countFields(state)).Info("loaded from primary store")
		a.store.ReplaceAll(state)
		return nil
	case errors.Is(err, fleet.ErrNoPersistedState):
		a.log.Info("primary store empty, trying auto-backup")
	case errors.Is(err, fleet.ErrCorruptState):
		a.log.WithError(err).Warn("primary store corrupt, trying auto-backup")
	default:
		return fmt.Errorf("load primary: %w", err)
	}

	state, err = a.secondary.LoadAll(ctx)
	switch {
	case err == nil:
		a.log.WithFields(countFields(state)).Warn("recovered from auto-backup")
		a.store.ReplaceAll(state)
		return nil
	case errors.Is(err, fleet.ErrNoPersistedState):
		a.log.Info("no auto-backup, seeding initial data")
	case errors.Is(err, fleet.ErrCorruptState):
		a.log.WithError(err).Warn("auto-backup corrupt, seeding initial data")
	default:
		return fmt.Errorf("load auto-backup: %w", err)
	}

	a.store.ReplaceAll(fleet.SeedState())
	return nil
}

// =============================================================================
// SAVE - Synchronous persist plus auto-backup
// =============================================================================

// Save persists the current snapshot. The primary write must succeed; an
// auto-backup failure is logged but does not fail the save.
func (a *App) Save(ctx context.Context) error {
	state := a.store.Snapshot()

	if err := a.primary.SaveAll(ctx, state); err != nil {
		return fmt.Errorf("save primary: %w", err)
	}
	if err := a.secondary.SaveAll(ctx, state); err != nil {
		a.log.WithError(err).Warn("auto-backup write failed")
	}
	return nil
}

// Mutate applies fn to the store and persists on success. When fn returns an
// error nothing is saved.
func (a *App) Mutate(ctx context.Context, fn func(*fleet.Store) error) error {
	if err := fn(a.store); err != nil {
		return err
	}
	return a.Save(ctx)
}

// =============================================================================
// BACKUP / RESTORE
// =============================================================================

// Backup encodes the current state as a downloadable backup document and
// returns the bytes plus the timestamped file name.
func (a *App) Backup() ([]byte, string, error) {
	now := a.now()
	doc := backup.New(a.store.Snapshot(), now)
	data, err := backup.Encode(doc)
	if err != nil {
		return nil, "", err
	}
	return data, backup.FileName(now), nil
}

// Restore replaces the entire state with a backup document's payload and
// persists it. The current data is overwritten, not merged.
func (a *App) Restore(ctx context.Context, data []byte) error {
	doc, err := backup.Decode(data)
	if err != nil {
		return err
	}

	a.store.ReplaceAll(*doc.Data)
	if err := a.Save(ctx); err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"backupId":  doc.Metadata.BackupID,
		"timestamp": doc.Timestamp,
	}).Info("restored from backup")
	return nil
}

// =============================================================================
// REPORTS
// =============================================================================

// GenerateReports builds the aggregate report for an inclusive date range.
func (a *App) GenerateReports(period fleet.Period) (reports.PeriodReport, error) {
	return reports.Generate(a.store, period)
}

// GenerateWeeklyReport builds the per-driver weekly breakdown. Returns nil
// when the driver does not exist or has no contract anchoring the weeks.
func (a *App) GenerateWeeklyReport(driverID fleet.DriverID, period fleet.Period) *reports.WeeklyBreakdown {
	return reports.WeeklyReport(a.store, driverID, period, fleet.DateOf(a.now()))
}

// Dashboard builds the current-month overview.
func (a *App) Dashboard() reports.Dashboard {
	return reports.BuildDashboard(a.store, fleet.DateOf(a.now()))
}

// DefaultReportPeriod spans all recorded dates, or the last 7 days when the
// store is empty.
func (a *App) DefaultReportPeriod() fleet.Period {
	return reports.DefaultPeriod(a.store, fleet.DateOf(a.now()))
}

// =============================================================================
// EXPORT
// =============================================================================

// ExportState writes the full-dump workbook into the export directory and
// returns its path.
func (a *App) ExportState() (string, error) {
	f, err := export.StateWorkbook(a.store.Snapshot())
	if err != nil {
		return "", err
	}
	defer f.Close()
	return a.writeWorkbook(f, export.ExportFileName(a.now()))
}

// ExportReport generates the report for the period and writes the report
// workbook into the export directory.
func (a *App) ExportReport(period fleet.Period) (string, error) {
	report, err := reports.Generate(a.store, period)
	if err != nil {
		return "", err
	}
	f, err := export.ReportWorkbook(report)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return a.writeWorkbook(f, export.ReportFileName(period, a.now()))
}

func (a *App) writeWorkbook(f *excelize.File, name string) (string, error) {
	dir := a.cfg.ExportDir
	if dir == "" {
		dir = "exports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}
	a.log.WithField("path", path).Info("workbook written")
	return path, nil
}

func countFields(state fleet.State) logrus.Fields {
	c := state.Counts()
	return logrus.Fields{
		"drivers":   c.Drivers,
		"vehicles":  c.Vehicles,
		"rates":     c.DailyRates,
		"contracts": c.Contracts,
	}
}
