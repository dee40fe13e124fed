package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// StorageKey is the logical name of the persisted widget document.
const StorageKey = "finboard-storage"

// StorageBackend persists the serialized widget collection. Load
// reports ok=false when no document has been stored yet.
type StorageBackend interface {
	Load() (data []byte, ok bool, err error)
	Save(data []byte) error
}

// FileStorage keeps the document as a JSON file, written atomically via
// a temp file and rename.
type FileStorage struct {
	path string
}

// NewFileStorage stores the widget document under dir.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{path: filepath.Join(dir, StorageKey+".json")}
}

// Path returns the backing file location.
func (f *FileStorage) Path() string { return f.path }

// Load reads the stored document, reporting ok=false when absent.
func (f *FileStorage) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("dashboard: read %s: %w", f.path, err)
	}
	return data, true, nil
}

// Save atomically replaces the stored document.
func (f *FileStorage) Save(data []byte) error {
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("dashboard: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("dashboard: replace %s: %w", f.path, err)
	}
	return nil
}

// MemoryStorage keeps the document in memory. It is the default backend
// and the one unit tests inject.
type MemoryStorage struct {
	mu    sync.Mutex
	data  []byte
	ok    bool
	saves int
}

// NewMemoryStorage builds an empty in-memory backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load returns the last saved document.
func (m *MemoryStorage) Load() ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ok {
		return nil, false, nil
	}
	return append([]byte(nil), m.data...), true, nil
}

// Save replaces the stored document.
func (m *MemoryStorage) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.ok = true
	m.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (m *MemoryStorage) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
