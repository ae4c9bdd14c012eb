package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Record is one build in the ledger.
type Record struct {
	ID          int64
	BuildID     string
	ProjectRoot string
	ProjectName string
	Version     string
	Strategy    string
	Artifacts   int
	FileCount   int
	SizeBytes   int64
	Verified    bool
	CreatedAt   time.Time
}

// Store persists build records in a local SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database at path and ensures
// the schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Append inserts a build record.
func (s *Store) Append(ctx context.Context, rec Record) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (
            build_id, project_root, project_name, version, strategy,
            artifacts, file_count, size_bytes, verified, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.BuildID,
		rec.ProjectRoot,
		rec.ProjectName,
		rec.Version,
		rec.Strategy,
		rec.Artifacts,
		rec.FileCount,
		rec.SizeBytes,
		rec.Verified,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append build record: %w", err)
	}
	return nil
}

// List returns up to limit records for the given project root, newest first.
// A zero limit means no cap; an empty root returns records for all projects.
func (s *Store) List(ctx context.Context, projectRoot string, limit int) ([]Record, error) {
	query := `SELECT id, build_id, project_root, project_name, version, strategy,
        artifacts, file_count, size_bytes, verified, created_at
        FROM builds`
	args := []any{}
	if projectRoot != "" {
		query += " WHERE project_root = ?"
		args = append(args, projectRoot)
	}
	query += " ORDER BY id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list build records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var createdAt string
		if err := rows.Scan(
			&rec.ID, &rec.BuildID, &rec.ProjectRoot, &rec.ProjectName, &rec.Version,
			&rec.Strategy, &rec.Artifacts, &rec.FileCount, &rec.SizeBytes,
			&rec.Verified, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan build record: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			rec.CreatedAt = parsed
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear removes records for the given project root, or every record when the
// root is empty. Returns the number of rows removed.
func (s *Store) Clear(ctx context.Context, projectRoot string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if projectRoot == "" {
		res, err = s.db.ExecContext(ctx, "DELETE FROM builds")
	} else {
		res, err = s.db.ExecContext(ctx, "DELETE FROM builds WHERE project_root = ?", projectRoot)
	}
	if err != nil {
		return 0, fmt.Errorf("clear build records: %w", err)
	}
	return res.RowsAffected()
}
