/*
Package persist keeps the Session Store and its durable snapshot in step.

At boot the Gate reads the snapshot once and rehydrates the store before anything is
rendered; afterwards the Persister writes the snapshot back after every mutation.
*/
package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"journal/internal/app/session"
)

// SnapshotVersion is bumped whenever the snapshot layout changes; older snapshots are ignored.
const SnapshotVersion = 1

// ErrCorruptSnapshot is returned by Decode for bytes that are not a usable snapshot.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// Snapshot is the persisted, whitelisted part of client state.
type Snapshot struct {
	Version int             `json:"version"`
	Auth    session.Session `json:"auth"`
}

// Empty reports whether the snapshot holds nothing worth keeping.
func (s Snapshot) Empty() bool {
	return s.Auth == (session.Session{})
}

// Encode serializes sess into snapshot bytes.
func Encode(sess session.Session) ([]byte, error) {
	return json.Marshal(Snapshot{Version: SnapshotVersion, Auth: sess})
}

// Decode parses snapshot bytes. Malformed JSON and foreign versions both yield ErrCorruptSnapshot.
func Decode(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if snap.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: version %d, want %d", ErrCorruptSnapshot, snap.Version, SnapshotVersion)
	}
	return snap, nil
}
