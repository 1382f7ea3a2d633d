package sqlite

import (
	"database/sql"

	"github.com/receiptwirehq/core/database"
	"github.com/receiptwirehq/core/logger"

	_ "modernc.org/sqlite"
)

type SQLite struct {
	DB  *sql.DB
	log *logger.Logger
}

func New(db *sql.DB, log *logger.Logger) (database.Persister, error) {
	if err := ensureTables(db); err != nil {
		return nil, err
	}

	return &SQLite{DB: db, log: log}, nil
}

// Open opens (and creates if needed) the sqlite database at path.
func Open(path string) (*sql.DB, error) {
	return sql.Open("sqlite", path)
}

func (sl *SQLite) Ping() error {
	return sl.DB.Ping()
}

func ensureTables(db *sql.DB) error {
	qry := `
		CREATE TABLE IF NOT EXISTS rw_files (
			id TEXT PRIMARY KEY,
			key TEXT NOT NULL,
			url TEXT NOT NULL,
			transformed_url TEXT NOT NULL,
			size INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			format TEXT NOT NULL,
			collection TEXT NOT NULL,
			display_name TEXT NOT NULL,
			owner_name TEXT NOT NULL,
			owner_contact TEXT NOT NULL,
			uploaded TIMESTAMP NOT NULL
		);
	`

	_, err := db.Exec(qry)
	return err
}
