// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a SQLite history of conversion outcomes, so a
// directory of pseudopotentials can be audited after a batch: which inputs
// converted, with which element, grid size, and XC code, and which failed.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/upf2psp8/pkg/types"
)

const defaultLimit = 50

// Store is the conversion catalog. Each Store belongs to one run; every
// outcome it records carries that run's ID. The run row is written with the
// first recorded outcome, so a Store opened only for listing leaves no trace.
type Store struct {
	db      *sql.DB
	runID   string
	started bool
}

// Open opens or creates the catalog database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := &Store{db: db, runID: uuid.NewString()}
	if err := s.createSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// RunID identifies the batch this store records into.
func (s *Store) RunID() string { return s.runID }

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			input TEXT NOT NULL,
			output TEXT,
			status TEXT NOT NULL,
			error TEXT,
			symbol TEXT,
			zatom REAL,
			zion REAL,
			pspxc INTEGER,
			mmax INTEGER,
			core_correction INTEGER,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_symbol ON conversions(symbol)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_input ON conversions(input)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one outcome under the current run.
func (s *Store) Record(ctx context.Context, o types.Outcome) error {
	if !s.started {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
			s.runID, time.Now().UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("starting run: %w", err)
		}
		s.started = true
	}

	at := o.ConvertedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions
			(run_id, input, output, status, error, symbol, zatom, zion, pspxc, mmax, core_correction, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.runID, o.Input, o.Output, string(o.Status), o.Error, o.Symbol,
		o.Zatom, o.Zion, o.PspXC, o.Mmax, o.CoreCorrection,
		at.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", o.Input, err)
	}
	return nil
}

// Query filters catalog listings. Zero fields do not filter.
type Query struct {
	Symbol string
	Status types.ConversionStatus
	RunID  string
	Limit  int
}

// Entry is one recorded outcome with the run it belongs to.
type Entry struct {
	RunID string `json:"run_id" yaml:"run_id"`
	types.Outcome
}

// List returns recorded outcomes, newest first.
func (s *Store) List(ctx context.Context, q Query) ([]Entry, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT run_id, input, output, status, error, symbol, zatom, zion,
			pspxc, mmax, core_correction, converted_at
		FROM conversions WHERE 1=1`)
	if q.Symbol != "" {
		qb.WriteString(` AND symbol = ?`)
		args = append(args, q.Symbol)
	}
	if q.Status != "" {
		qb.WriteString(` AND status = ?`)
		args = append(args, string(q.Status))
	}
	if q.RunID != "" {
		qb.WriteString(` AND run_id = ?`)
		args = append(args, q.RunID)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	qb.WriteString(` ORDER BY id DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                    Entry
			output, errText, sym sql.NullString
			zatom, zion          sql.NullFloat64
			pspxc, mmax, hasCore sql.NullInt64
			status, convertedAt  string
		)
		if err := rows.Scan(&e.RunID, &e.Input, &output, &status, &errText, &sym,
			&zatom, &zion, &pspxc, &mmax, &hasCore, &convertedAt); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		e.Output = output.String
		e.Status = types.ConversionStatus(status)
		e.Error = errText.String
		e.Symbol = sym.String
		e.Zatom = zatom.Float64
		e.Zion = zion.Float64
		e.PspXC = int(pspxc.Int64)
		e.Mmax = int(mmax.Int64)
		e.CoreCorrection = hasCore.Int64 != 0
		if t, err := time.Parse(time.RFC3339Nano, convertedAt); err == nil {
			e.ConvertedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
