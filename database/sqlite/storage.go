package sqlite

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/receiptwirehq/core/database"
	"github.com/receiptwirehq/core/model"
)

// Scanner is implemented by both *sql.Row and *sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

func (sl *SQLite) AddFile(f model.File) (id string, err error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	id = f.ID

	qry := `
		INSERT INTO rw_files(id, key, url, transformed_url, size, width, height,
			format, collection, display_name, owner_name, owner_contact, uploaded)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`

	_, err = sl.DB.Exec(
		qry,
		f.ID,
		f.Key,
		f.URL,
		f.TransformedURL,
		f.Size,
		f.Width,
		f.Height,
		f.Format,
		f.Collection,
		f.DisplayName,
		f.OwnerName,
		f.OwnerContact,
		f.Uploaded,
	)
	return
}

func (sl *SQLite) GetFileByID(fileID string) (f model.File, err error) {
	qry := `
		SELECT *
		FROM rw_files
		WHERE id = $1
	`

	row := sl.DB.QueryRow(qry, fileID)

	err = scanFile(row, &f)
	if err == sql.ErrNoRows {
		err = database.ErrFileNotFound
	}
	return
}

func (sl *SQLite) DeleteFile(fileID string) error {
	qry := `
		DELETE FROM rw_files
		WHERE id = $1;
	`

	if _, err := sl.DB.Exec(qry, fileID); err != nil {
		return err
	}
	return nil
}

func (sl *SQLite) ListFilesBefore(t time.Time) (results []model.File, err error) {
	qry := `
		SELECT *
		FROM rw_files
		WHERE uploaded < $1
	`

	rows, err := sl.DB.Query(qry, t)
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var f model.File
		if err = scanFile(rows, &f); err != nil {
			return
		}

		results = append(results, f)
	}

	err = rows.Err()
	return
}

func scanFile(rows Scanner, f *model.File) error {
	return rows.Scan(
		&f.ID,
		&f.Key,
		&f.URL,
		&f.TransformedURL,
		&f.Size,
		&f.Width,
		&f.Height,
		&f.Format,
		&f.Collection,
		&f.DisplayName,
		&f.OwnerName,
		&f.OwnerContact,
		&f.Uploaded,
	)
}
