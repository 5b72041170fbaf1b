package cart

import (
	"encoding/json"
	"errors"
	"os"
)

// StorageKey is the fixed slot name the cart document lives under.
const StorageKey = "cart"

// Storage is the durable slot behind a cart store. Load reports ok=false
// when the slot is absent or does not parse; the store then falls back to
// the empty state rather than surfacing a parse error.
type Storage interface {
	Load() (*State, bool)
	Save(State) error
	Clear() error
}

// MemoryStorage keeps the serialized document in memory. Used by tests
// and as a fake for callers that do not need durability.
type MemoryStorage struct {
	data []byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Seed plants a raw document, bypassing Save. Lets tests hydrate from an
// arbitrary (including corrupted) slot.
func (m *MemoryStorage) Seed(raw []byte) {
	m.data = raw
}

func (m *MemoryStorage) Load() (*State, bool) {
	return decodeState(m.data)
}

func (m *MemoryStorage) Save(state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.data = nil
	return nil
}

// FileStorage keeps the cart document as one JSON file on disk.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Load() (*State, bool) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, false
	}
	return decodeState(data)
}

func (f *FileStorage) Save(state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0644)
}

func (f *FileStorage) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func decodeState(data []byte) (*State, bool) {
	if len(data) == 0 {
		return nil, false
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, false
	}
	return &state, true
}
