// Package store persists extracted application records into SQLite.
// Inserts are idempotent: an application number already present is
// skipped, never overwritten, so re-scraping a register is safe.
package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"daregister"
)

const queryTimeout = 15 * time.Second

// Store wraps the SQLite database holding scraped applications.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema
// exists. Use ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	// SQLite serialises writers anyway; a single connection avoids
	// SQLITE_BUSY under the scraper's sequential workload.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db}
	if err := s.createSchema(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return s, nil
}

func (s *Store) createSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS applications (
		application_number TEXT PRIMARY KEY,
		address            TEXT NOT NULL,
		description        TEXT,
		info_url           TEXT,
		comment_url        TEXT,
		date_scraped       TEXT,
		date_received      TEXT,
		legal_description  TEXT
	);`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}

	index := "CREATE INDEX IF NOT EXISTS idx_applications_date_scraped ON applications(date_scraped);"
	_, err := s.db.ExecContext(ctx, index)
	return err
}

// SaveResult reports the outcome of persisting a batch of records.
type SaveResult struct {
	Inserted int
	Skipped  int
}

// SaveApplication inserts one record if its application number is absent.
// Returns true when the record was inserted, false when an existing record
// was kept.
func (s *Store) SaveApplication(ctx context.Context, app daregister.Application) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO applications (
			application_number, address, description, info_url,
			comment_url, date_scraped, date_received, legal_description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(application_number) DO NOTHING;`,
		app.ApplicationNumber, app.Address, app.Description, app.InformationURL,
		app.CommentURL, app.DateScraped, app.DateReceived, app.LegalDescription,
	)
	if err != nil {
		return false, errors.Wrapf(err, "failed to insert application %s", app.ApplicationNumber)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to read rows affected")
	}
	return inserted > 0, nil
}

// SaveAll persists a document's records inside one transaction and reports
// how many were inserted versus skipped as already present.
func (s *Store) SaveAll(ctx context.Context, apps []daregister.Application) (SaveResult, error) {
	var result SaveResult
	if len(apps) == 0 {
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := s.withTransaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO applications (
				application_number, address, description, info_url,
				comment_url, date_scraped, date_received, legal_description
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(application_number) DO NOTHING;`)
		if err != nil {
			return errors.Wrap(err, "failed to prepare insert")
		}
		defer stmt.Close()

		for _, app := range apps {
			res, err := stmt.ExecContext(ctx,
				app.ApplicationNumber, app.Address, app.Description, app.InformationURL,
				app.CommentURL, app.DateScraped, app.DateReceived, app.LegalDescription,
			)
			if err != nil {
				return errors.Wrapf(err, "failed to insert application %s", app.ApplicationNumber)
			}
			inserted, err := res.RowsAffected()
			if err != nil {
				return errors.Wrap(err, "failed to read rows affected")
			}
			if inserted > 0 {
				result.Inserted++
			} else {
				result.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return SaveResult{}, err
	}
	return result, nil
}

func (s *Store) withTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	var committed bool
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	committed = true
	return nil
}

// CountApplications returns the number of stored applications.
func (s *Store) CountApplications(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM applications").Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count applications")
	}
	return count, nil
}

// HealthCheck verifies the database connection is usable.
func (s *Store) HealthCheck(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("store is not open")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping failed")
	}
	return nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
