package storage

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"spacex-dashboard/models"
	"spacex-dashboard/utils"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const insertBatchSize = 50

// Store mirrors the launch dataset into a SQL database. It supports
// PostgreSQL ("postgres") and SQLite ("sqlite").
type Store struct {
	db     *sqlx.DB
	driver string
}

// OpenStore connects to the database, retrying with back-off, and applies
// the embedded schema migrations.
func OpenStore(ctx context.Context, driver, dsn string, retry *utils.RetryConfig) (*Store, error) {
	dialect, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}

	var db *sqlx.DB
	err = retry.DoContext(ctx, "store: connect", func() error {
		var connErr error
		db, connErr = sqlx.ConnectContext(ctx, driver, dsn)
		return connErr
	})
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrations: %w", err)
	}
	provider, err := goose.NewProvider(dialect, db.DB, migrations)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

func dialectFor(driver string) (goose.Dialect, error) {
	switch driver {
	case "postgres":
		return goose.DialectPostgres, nil
	case "sqlite":
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("store: unsupported driver %q", driver)
	}
}

// Source names the store for logs and errors.
func (s *Store) Source() string {
	return s.driver + " store"
}

// ReplaceAll deletes the stored records and inserts records in their
// current order, in one transaction.
func (s *Store) ReplaceAll(records []*models.LaunchRecord) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM launches"); err != nil {
		return fmt.Errorf("store: clear: %w", err)
	}

	for i := 0; i < len(records); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := insertBatch(tx, i, records[i:end]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

func insertBatch(tx *sqlx.Tx, offset int, batch []*models.LaunchRecord) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*5)

	for i, r := range batch {
		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			offset+i, r.LaunchSite, r.PayloadMassKg, r.Outcome, r.BoosterCategory)
	}

	query := tx.Rebind(`
		INSERT INTO launches (position, launch_site, payload_mass_kg, outcome, booster_category)
		VALUES ` + strings.Join(valueStrings, ","))

	if _, err := tx.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("store: insert batch at %d: %w", offset, err)
	}
	return nil
}

// FetchAll returns every stored record in insertion order.
func (s *Store) FetchAll() ([]*models.LaunchRecord, error) {
	var records []*models.LaunchRecord
	err := s.db.Select(&records, `
		SELECT launch_site, payload_mass_kg, outcome, booster_category
		FROM launches
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("store: fetch all: %w", err)
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.Get(&n, "SELECT COUNT(*) FROM launches"); err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
