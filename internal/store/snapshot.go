package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/grounddb/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// WriteSnapshot persists a loaded store into a single SQLite file at
// path, creating or replacing its contents. The snapshot preserves
// storage order, so OpenSnapshot yields a store whose scans return
// records in the same order as the source dataset files.
func WriteSnapshot(s *Store, path string) error {
	db, err := openSnapshotDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	// Replace wholesale - snapshots are not incremental.
	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM taxi_options`); err != nil {
		return fmt.Errorf("clear taxi options: %w", err)
	}

	for _, d := range domain.All() {
		for pos, rec := range s.Records(d) {
			fields, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("marshal %s record %d: %w", d, pos, err)
			}
			if _, err := tx.Exec(
				`INSERT INTO records (domain, pos, fields) VALUES (?, ?, ?)`,
				d.String(), pos, string(fields),
			); err != nil {
				return fmt.Errorf("insert %s record %d: %w", d, pos, err)
			}
		}
	}

	taxi := s.Taxi()
	for pos, color := range taxi.Colors {
		if _, err := tx.Exec(
			`INSERT INTO taxi_options (kind, pos, value) VALUES ('color', ?, ?)`,
			pos, color,
		); err != nil {
			return fmt.Errorf("insert taxi color %d: %w", pos, err)
		}
	}
	for pos, typ := range taxi.Types {
		if _, err := tx.Exec(
			`INSERT INTO taxi_options (kind, pos, value) VALUES ('type', ?, ?)`,
			pos, typ,
		); err != nil {
			return fmt.Errorf("insert taxi type %d: %w", pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// OpenSnapshot rebuilds an in-memory store from a SQLite snapshot
// written by WriteSnapshot. Like Load, this is all-or-nothing.
func OpenSnapshot(path string) (*Store, error) {
	db, err := openSnapshotDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	records := make(map[domain.Domain][]domain.Record)

	// ORDER BY pos: scans must replay the source storage order.
	rows, err := db.Query(`SELECT domain, fields FROM records ORDER BY domain, pos`)
	if err != nil {
		return nil, fmt.Errorf("read snapshot records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, fields string
		if err := rows.Scan(&name, &fields); err != nil {
			return nil, fmt.Errorf("scan snapshot record: %w", err)
		}
		d, err := domain.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("snapshot record: %w", err)
		}
		var rec domain.Record
		if err := json.Unmarshal([]byte(fields), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot record for %s: %w", d, err)
		}
		records[d] = append(records[d], rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot records: %w", err)
	}

	taxi, err := readTaxiOptions(db)
	if err != nil {
		return nil, err
	}

	return New(records, taxi), nil
}

func readTaxiOptions(db *sql.DB) (domain.TaxiOptions, error) {
	var taxi domain.TaxiOptions

	rows, err := db.Query(`SELECT kind, value FROM taxi_options ORDER BY kind, pos`)
	if err != nil {
		return taxi, fmt.Errorf("read taxi options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, value string
		if err := rows.Scan(&kind, &value); err != nil {
			return taxi, fmt.Errorf("scan taxi option: %w", err)
		}
		switch kind {
		case "color":
			taxi.Colors = append(taxi.Colors, value)
		case "type":
			taxi.Types = append(taxi.Types, value)
		default:
			return taxi, fmt.Errorf("unknown taxi option kind %q", kind)
		}
	}
	return taxi, rows.Err()
}

// openSnapshotDB opens the SQLite file and applies pragmas and schema.
// Idempotent - safe for both writers and readers.
func openSnapshotDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect snapshot %s: %w", path, err)
	}

	// Single writer; snapshots are written once and read many times.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply snapshot schema: %w", err)
	}
	return db, nil
}
