package database

import (
	"errors"
	"time"

	"github.com/receiptwirehq/core/model"
)

const (
	DataStoreMemory = "mem"
	DataStoreSQLite = "sqlite"
)

// ErrFileNotFound is returned when no record matches the requested id.
var ErrFileNotFound = errors.New("file not found")

// Persister is the file record store behind the upload, delete and
// retention-sweep paths.
type Persister interface {
	Ping() error

	AddFile(f model.File) (string, error)
	GetFileByID(fileID string) (model.File, error)
	DeleteFile(fileID string) error
	// ListFilesBefore returns records uploaded before t, used by the
	// retention sweep.
	ListFilesBefore(t time.Time) ([]model.File, error)
}
