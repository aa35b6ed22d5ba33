package module

import (
	"slices"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps module data in process.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]stored
	closed bool
}

type stored struct {
	data     []byte
	revision int
	at       time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]stored)}
}

// Save implements Store.
func (m *MemoryStore) Save(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}
	m.data[name] = stored{
		data:     slices.Clone(data),
		revision: m.data[name].revision + 1,
		at:       time.Now().UTC(),
	}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrStoreClosed
	}
	s, ok := m.data[name]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(s.data), nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrStoreClosed
	}
	infos := make([]Info, 0, len(m.data))
	for name, s := range m.data {
		infos = append(infos, Info{Module: name, Revision: s.revision, Timestamp: s.at, Size: int64(len(s.data))})
	}
	slices.SortFunc(infos, func(a, b Info) int { return strings.Compare(a.Module, b.Module) })
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}
	delete(m.data, name)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored modules.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
