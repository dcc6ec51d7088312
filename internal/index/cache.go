package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const cacheSchemaSQL = `
CREATE TABLE IF NOT EXISTS files (
	path       TEXT PRIMARY KEY,
	checksum   TEXT NOT NULL,
	class      TEXT NOT NULL,
	id         TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Cache is a SQLite-backed parse cache keyed by (path, checksum). A hit
// returns the root class and id recorded by a previous run, so watch-mode
// re-validation skips re-parsing unchanged files. Only clean parses with a
// non-empty id are cached; broken files are re-parsed (and re-reported)
// every run.
type Cache struct {
	conn *sql.DB
}

// OpenCache opens (or creates) the cache database and applies the schema.
func OpenCache(dsn string) (*Cache, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("index: open cache: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping cache: %w", err)
	}
	if _, err := conn.Exec(cacheSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply cache schema: %w", err)
	}
	return &Cache{conn: conn}, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	return c.conn.Close()
}

// Get returns the cached root class and id for a path whose content still
// matches the given checksum.
func (c *Cache) Get(path, sum string) (class, id string, ok bool) {
	row := c.conn.QueryRow(
		`SELECT class, id FROM files WHERE path = ? AND checksum = ?`, path, sum)
	if err := row.Scan(&class, &id); err != nil {
		return "", "", false
	}
	return class, id, true
}

// Put records the parse outcome for a path at a given checksum.
func (c *Cache) Put(path, sum, class, id string) error {
	_, err := c.conn.Exec(`
		INSERT INTO files (path, checksum, class, id, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			checksum = excluded.checksum,
			class = excluded.class,
			id = excluded.id,
			updated_at = CURRENT_TIMESTAMP`,
		path, sum, class, id)
	if err != nil {
		return fmt.Errorf("index: cache put %s: %w", path, err)
	}
	return nil
}
