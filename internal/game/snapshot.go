package game

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SnapshotVersion is the schema version written by EncodeSnapshot.
const SnapshotVersion = 1

var ErrUnsupportedSnapshot = errors.New("unsupported snapshot version")

// snapshot is the flat persisted layout of a BattleState.
type snapshot struct {
	SchemaVersion int `json:"schema_version"`
	BattleState
}

// EncodeSnapshot serializes the state into the versioned storage format.
func EncodeSnapshot(b *BattleState) ([]byte, error) {
	if b == nil {
		return nil, errors.New("nil battle state")
	}
	return json.Marshal(snapshot{SchemaVersion: SnapshotVersion, BattleState: *b})
}

// DecodeSnapshot restores a state written by EncodeSnapshot. It only checks
// the envelope; semantic validation is the engine's job.
func DecodeSnapshot(data []byte) (*BattleState, error) {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.SchemaVersion != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSnapshot, s.SchemaVersion)
	}
	b := s.BattleState
	if b.Log == nil {
		b.Log = []string{}
	}
	return &b, nil
}
