package sqlite

import (
	"path"
	"testing"
	"time"

	"github.com/receiptwirehq/core/database"
	"github.com/receiptwirehq/core/model"
)

func newTestStore(t *testing.T) database.Persister {
	t.Helper()

	db, err := Open(path.Join(t.TempDir(), "unittest.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := New(db, nil)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestSQLiteFileRoundTrip(t *testing.T) {
	store := newTestStore(t)

	f := model.File{
		Key:            "Kim_20250110/receipts/Kim_20250110_1.jpg",
		URL:            "http://localhost/raw.jpg",
		TransformedURL: "http://localhost/raw_t.jpg",
		Size:           2048,
		Width:          640,
		Height:         480,
		Format:         "jpeg",
		Collection:     "Kim_20250110",
		DisplayName:    "receipt",
		OwnerName:      "Kim",
		OwnerContact:   "kim@example.com",
		Uploaded:       time.Now(),
	}

	id, err := store.AddFile(f)
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.GetFileByID(id)
	if err != nil {
		t.Fatal(err)
	}

	if got.Key != f.Key || got.Width != 640 || got.OwnerContact != f.OwnerContact {
		t.Errorf("record mismatch: %+v", got)
	}

	if err := store.DeleteFile(id); err != nil {
		t.Fatal(err)
	}

	if _, err := store.GetFileByID(id); err != database.ErrFileNotFound {
		t.Errorf("expected ErrFileNotFound got %v", err)
	}
}

func TestSQLiteListFilesBefore(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.AddFile(model.File{Key: "old", Uploaded: time.Now().Add(-72 * time.Hour)}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.AddFile(model.File{Key: "new", Uploaded: time.Now()}); err != nil {
		t.Fatal(err)
	}

	old, err := store.ListFilesBefore(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	if len(old) != 1 || old[0].Key != "old" {
		t.Errorf("expected only the old record, got %+v", old)
	}
}
