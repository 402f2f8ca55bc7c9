package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type Config struct {
	Path string
}

func NewDB(config Config) (*sql.DB, error) {
	// The volume backing the database path may not exist yet on first run.
	if dir := filepath.Dir(config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %v", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", config.Path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	return db, nil
}

// InitSchema creates the webhooks table if it does not exist. Safe to call
// on every startup.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS webhooks (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            received_at TIMESTAMP NOT NULL,
            method TEXT NOT NULL,
            path TEXT NOT NULL,
            headers TEXT NOT NULL,
            query_params TEXT NOT NULL,
            content_type TEXT NOT NULL DEFAULT '',
            body BLOB NOT NULL,
            source_ip TEXT NOT NULL DEFAULT '',
            event_type TEXT NOT NULL DEFAULT ''
        )
    `)
	if err != nil {
		return fmt.Errorf("error creating webhooks table: %v", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_webhooks_received_at ON webhooks (received_at)`)
	if err != nil {
		return fmt.Errorf("error creating webhooks index: %v", err)
	}

	return nil
}
