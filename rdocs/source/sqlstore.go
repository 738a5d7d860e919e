package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/recent-documents/rdocs/documents"

	"github.com/rs/zerolog"
	_ "github.com/tursodatabase/go-libsql"
)

const recentDocumentsTable = `CREATE TABLE IF NOT EXISTS recent_documents (
	value TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	icon_name TEXT NOT NULL DEFAULT '',
	modified_ms INTEGER NOT NULL,
	size_kb INTEGER NOT NULL DEFAULT 0,
	link TEXT NOT NULL DEFAULT ''
)`

// DatabaseConfig configures a SQLSource.
type DatabaseConfig struct {
	DSN       string
	AuthToken string
	Limit     int
}

// SQLSource reads records from a libsql database.
type SQLSource struct {
	db     *sql.DB
	limit  int
	logger zerolog.Logger
}

// OpenSQLSource opens a local ("file:") or remote libsql database.
func OpenSQLSource(cfg DatabaseConfig, logger zerolog.Logger) (*SQLSource, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("%w: database DSN is empty", documents.ErrInvalidArgument)
	}

	if strings.HasPrefix(dsn, "file:") {
		dbPath := strings.TrimPrefix(dsn, "file:")
		if dir := filepath.Dir(dbPath); dir != "." && !strings.HasPrefix(dbPath, ":memory:") {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	} else if cfg.AuthToken != "" {
		u, err := url.Parse(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid database URL: %w", err)
		}
		q := u.Query()
		q.Set("authToken", cfg.AuthToken)
		u.RawQuery = q.Encode()
		dsn = u.String()
	}

	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger.Debug().Str("dsn", cfg.DSN).Msg("opened recent documents database")
	return NewSQLSource(db, cfg.Limit, logger), nil
}

// NewSQLSource wraps an open database. limit <= 0 reads every row.
func NewSQLSource(db *sql.DB, limit int, logger zerolog.Logger) *SQLSource {
	return &SQLSource{db: db, limit: limit, logger: logger}
}

// EnsureSchema creates the recent_documents table if needed.
func (s *SQLSource) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, recentDocumentsTable); err != nil {
		return fmt.Errorf("failed to create recent_documents table: %w", err)
	}
	return nil
}

// Insert stores records, replacing rows with the same value.
func (s *SQLSource) Insert(ctx context.Context, records ...documents.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO recent_documents
		(value, name, icon_name, modified_ms, size_kb, link) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Value, r.Name, r.IconName, r.DateModifiedValue, r.FileSizeRaw, r.Link); err != nil {
			return fmt.Errorf("failed to insert %q: %w", r.Value, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FetchRecords returns the most recently modified rows first.
func (s *SQLSource) FetchRecords(ctx context.Context) ([]documents.Record, error) {
	query := `SELECT value, name, icon_name, modified_ms, size_kb, link
		FROM recent_documents ORDER BY modified_ms DESC`
	args := []any{}
	if s.limit > 0 {
		query += " LIMIT ?"
		args = append(args, s.limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent documents: %w", err)
	}
	defer rows.Close()

	var records []documents.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recent documents: %w", err)
	}

	s.logger.Debug().Int("records", len(records)).Msg("loaded recent documents from database")
	return records, nil
}

// Close closes the database.
func (s *SQLSource) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (documents.Record, error) {
	var (
		r          documents.Record
		modifiedMs int64
		sizeKB     int64
	)
	if err := row.Scan(&r.Value, &r.Name, &r.IconName, &modifiedMs, &sizeKB, &r.Link); err != nil {
		return documents.Record{}, fmt.Errorf("failed to scan recent document: %w", err)
	}
	r.DateModifiedValue = modifiedMs
	r.DateModified = documents.FormatDate(r.ModifiedAt())
	r.FileSizeRaw = sizeKB
	r.FileSize = documents.FormatSize(sizeKB)
	return r, nil
}
