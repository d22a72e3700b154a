package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AzorianSolutions/grandstart/internal/infrastructure/database"
)

// Repository defines inventory persistence operations.
type Repository interface {
	// RecordRun stores a run and its devices in one transaction.
	// Returns ErrRunExists if the run ID is already recorded.
	RecordRun(ctx context.Context, run *Run, devices []Device) error

	// GetRun retrieves a run by ID.
	// Returns ErrRunNotFound if it does not exist.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns the most recent runs, newest first. A limit of zero
	// or less returns every run.
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// ListDevices returns the devices of one run in generation order.
	ListDevices(ctx context.Context, runID string) ([]Device, error)

	// ListBySubscriber returns every device recorded for a subscriber,
	// newest run first.
	ListBySubscriber(ctx context.Context, subscriberID string) ([]Device, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a repository over an open, migrated database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const runColumns = `id, started_at, finished_at, input_path, template_path, output_dir,
	use_location_id, dry_run, subscribers, group_count, line_count,
	device_count, ht818_count, ht814_count, ht812_count`

// RecordRun stores a run and its devices.
func (r *SQLiteRepository) RecordRun(ctx context.Context, run *Run, devices []Device) error {
	if run == nil || strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRun)
	}

	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		c := run.Counters
		_, err := tx.ExecContext(ctx, `INSERT INTO runs (`+runColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, formatTime(run.StartedAt), formatTime(run.FinishedAt),
			run.InputPath, run.TemplatePath, run.OutputDir,
			boolToInt(run.UseLocationID), boolToInt(run.DryRun),
			c.Subscribers, c.Groups, c.Lines, c.Devices, c.HT818, c.HT814, c.HT812,
		)
		if err != nil {
			if isUniqueConstraintError(err) {
				return ErrRunExists
			}
			return fmt.Errorf("inserting run: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO provisioned_devices
			(run_id, device_id, model, subscriber_id, location_id, line_count, file_path)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("preparing device insert: %w", err)
		}
		defer stmt.Close()

		for _, d := range devices {
			if _, err := stmt.ExecContext(ctx, run.ID, d.DeviceID, d.Model,
				d.SubscriberID, d.LocationID, d.Lines, d.FilePath); err != nil {
				return fmt.Errorf("inserting device %s: %w", d.DeviceID, err)
			}
		}
		return nil
	})
}

// GetRun retrieves a run by ID.
func (r *SQLiteRepository) GetRun(ctx context.Context, id string) (*Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("querying run: %w", err)
	}
	return run, nil
}

// ListRuns returns recent runs, newest first.
func (r *SQLiteRepository) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// ListDevices returns the devices of one run in generation order.
func (r *SQLiteRepository) ListDevices(ctx context.Context, runID string) ([]Device, error) {
	return r.queryDevices(ctx, `
		SELECT run_id, device_id, model, subscriber_id, location_id, line_count, file_path
		FROM provisioned_devices
		WHERE run_id = ?
		ORDER BY rowid`, runID)
}

// ListBySubscriber returns every device recorded for a subscriber.
func (r *SQLiteRepository) ListBySubscriber(ctx context.Context, subscriberID string) ([]Device, error) {
	return r.queryDevices(ctx, `
		SELECT d.run_id, d.device_id, d.model, d.subscriber_id, d.location_id, d.line_count, d.file_path
		FROM provisioned_devices d
		JOIN runs r ON r.id = d.run_id
		WHERE d.subscriber_id = ?
		ORDER BY r.started_at DESC, d.device_id`, subscriberID)
}

func (r *SQLiteRepository) queryDevices(ctx context.Context, query string, args ...any) ([]Device, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()

	var devices []Device
	for rows.Next() {
		var d Device
		if err := rows.Scan(&d.RunID, &d.DeviceID, &d.Model, &d.SubscriberID,
			&d.LocationID, &d.Lines, &d.FilePath); err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating devices: %w", err)
	}
	return devices, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run                   Run
		startedAt, finishedAt string
		useLocation, dryRun   int
	)
	c := &run.Counters
	if err := row.Scan(&run.ID, &startedAt, &finishedAt, &run.InputPath, &run.TemplatePath,
		&run.OutputDir, &useLocation, &dryRun, &c.Subscribers, &c.Groups, &c.Lines,
		&c.Devices, &c.HT818, &c.HT814, &c.HT812); err != nil {
		return nil, err
	}
	run.StartedAt = parseTime(startedAt)
	run.FinishedAt = parseTime(finishedAt)
	run.UseLocationID = useLocation != 0
	run.DryRun = dryRun != 0
	return &run, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s) //nolint:errcheck // format is controlled
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
