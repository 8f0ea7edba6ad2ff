// Package sqlite provides a SQLite-backed directory cache.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. Cached
// directory records expire after a configurable TTL; expired rows are
// reported as misses and overwritten on the next fetch.
//
// By default the database is stored at ~/.blastdiff/data/directory.db.
// All operations are thread-safe through SQLite's own locking in WAL
// mode.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
)

// dateLayout stores creation dates as a sortable day string.
const dateLayout = "2006-01-02"

// Ensure Cache implements the interface.
var _ driven.DirectoryCache = (*Cache)(nil)

// Cache is a SQLite-backed implementation of driven.DirectoryCache.
type Cache struct {
	db   *sql.DB
	path string
	ttl  time.Duration
}

// NewCache opens or creates the cache database under dataDir. If
// dataDir is empty, defaults to ~/.blastdiff/data. A non-positive ttl
// disables expiry.
func NewCache(dataDir string, ttl time.Duration) (*Cache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".blastdiff", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "directory.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	c := &Cache{
		db:   db,
		path: dbPath,
		ttl:  ttl,
	}

	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

func (c *Cache) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS directory_records (
		num         TEXT PRIMARY KEY,
		status      TEXT NOT NULL,
		replaced_by TEXT NOT NULL DEFAULT '',
		created     TEXT NOT NULL DEFAULT '',
		fetched_at  INTEGER NOT NULL,
		run_id      TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_directory_records_fetched
		ON directory_records(fetched_at);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("creating directory_records table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// Get returns cached records for the requested identifiers. Expired
// rows count as misses.
func (c *Cache) Get(ctx context.Context, ids []string) (map[string]domain.DirectoryRecord, []string, error) {
	found := make(map[string]domain.DirectoryRecord, len(ids))
	if len(ids) == 0 {
		return found, nil, nil
	}

	cutoff := int64(0)
	if c.ttl > 0 {
		cutoff = time.Now().Add(-c.ttl).Unix()
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`
		SELECT num, status, replaced_by, created
		FROM directory_records
		WHERE fetched_at >= ? AND num IN (%s)
	`, placeholders)

	args := make([]any, 0, len(ids)+1)
	args = append(args, cutoff)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("querying cached records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var num, status, replacedBy, created string
		if err := rows.Scan(&num, &status, &replacedBy, &created); err != nil {
			return nil, nil, fmt.Errorf("scanning cached record: %w", err)
		}

		rec := domain.DirectoryRecord{
			Status:     domain.RecordStatus(status),
			ReplacedBy: replacedBy,
		}
		if created != "" {
			day, err := time.Parse(dateLayout, created)
			if err != nil {
				return nil, nil, fmt.Errorf("parsing cached creation date %q: %w", created, err)
			}
			rec.Created = day
		}
		found[num] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading cached records: %w", err)
	}

	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return found, missing, nil
}

// Put stores freshly fetched records, replacing any stale rows.
func (c *Cache) Put(ctx context.Context, runID string, records map[string]domain.DirectoryRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO directory_records (num, status, replaced_by, created, fetched_at, run_id)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(num) DO UPDATE SET
			status = excluded.status,
			replaced_by = excluded.replaced_by,
			created = excluded.created,
			fetched_at = excluded.fetched_at,
			run_id = excluded.run_id
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for num, rec := range records {
		created := ""
		if !rec.Created.IsZero() {
			created = rec.Created.Format(dateLayout)
		}
		if _, err := stmt.ExecContext(ctx, num, string(rec.Status), rec.ReplacedBy, created, now, runID); err != nil {
			return fmt.Errorf("storing record %s: %w", num, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing records: %w", err)
	}
	return nil
}

// Prune deletes rows older than the TTL. A disabled TTL prunes nothing.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}

	cutoff := time.Now().Add(-c.ttl).Unix()
	res, err := c.db.ExecContext(ctx, "DELETE FROM directory_records WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning cached records: %w", err)
	}
	return res.RowsAffected()
}
