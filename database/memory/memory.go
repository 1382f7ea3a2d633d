package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/receiptwirehq/core/database"
	"github.com/receiptwirehq/core/model"
)

// Memory keeps file records in a map, for development and unit tests.
type Memory struct {
	mu    sync.RWMutex
	files map[string]model.File
}

func New() database.Persister {
	return &Memory{files: make(map[string]model.File)}
}

func (m *Memory) Ping() error { return nil }

func (m *Memory) AddFile(f model.File) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	m.files[f.ID] = f
	return f.ID, nil
}

func (m *Memory) GetFileByID(fileID string) (model.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.files[fileID]
	if !ok {
		return model.File{}, database.ErrFileNotFound
	}
	return f, nil
}

func (m *Memory) DeleteFile(fileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.files, fileID)
	return nil
}

func (m *Memory) ListFilesBefore(t time.Time) ([]model.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []model.File
	for _, f := range m.files {
		if f.Uploaded.Before(t) {
			results = append(results, f)
		}
	}
	return results, nil
}
