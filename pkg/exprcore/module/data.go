package module

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = 1

// Snapshot is the stored envelope around a module's data.
type Snapshot struct {
	Version int             `json:"version"`
	Module  string          `json:"module"`
	Library bool            `json:"library,omitempty"`
	SavedAt time.Time       `json:"saved_at"`
	State   json.RawMessage `json:"state"`
}

// Marshal encodes the snapshot.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSnapshot decodes a snapshot and checks its version.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	return &s, nil
}

// SaveData stores v as the data of m and returns the encoded size.
func SaveData(store Store, m Module, v value.Value) (int, error) {
	state, err := value.ToJSON(v)
	if err != nil {
		return 0, fmt.Errorf("encode %s data: %w", m.Name, err)
	}
	snap := &Snapshot{
		Version: SnapshotVersion,
		Module:  m.Name,
		Library: m.Library,
		SavedAt: time.Now().UTC(),
		State:   state,
	}
	data, err := snap.Marshal()
	if err != nil {
		return 0, err
	}
	if err := store.Save(m.Name, data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// LoadData returns the data stored for m. A module without data yields Null.
func LoadData(store Store, m Module) (value.Value, error) {
	data, err := store.Load(m.Name)
	if errors.Is(err, ErrNotFound) {
		return value.NullValue, nil
	}
	if err != nil {
		return nil, err
	}
	snap, err := UnmarshalSnapshot(data)
	if err != nil {
		return nil, err
	}
	return value.FromJSON(snap.State)
}
