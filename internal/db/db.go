// Package db persists athletes, analyzed sessions, and training logs in
// SQLite. The schema is managed by versioned migrations embedded in the
// binary.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the SQL connection with the application's storage operations.
type DB struct {
	*sql.DB
}

// OpenDB opens (or creates) the SQLite database at path. The schema is not
// touched here; call MigrateUp to bring it current.
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// SQLite allows one writer; a larger pool just introduces lock errors.
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}

	return &DB{conn}, nil
}
