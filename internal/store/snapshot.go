package store

import (
	"encoding/json"
	"os"

	"github.com/kjk/common/atomicfile"

	"userbook/internal/types"
)

// DefaultSnapshotFile is the snapshot name used when no data file is
// configured.
const DefaultSnapshotFile = "users_data.txt"

// Snapshot persists the collection as one JSON object mapping id to record.
// Saves go through a temp file renamed over the target, so a crash mid-write
// leaves the previous snapshot intact.
type Snapshot struct {
	path string
}

func NewSnapshot(path string) *Snapshot {
	return &Snapshot{path: path}
}

// Path returns the snapshot file location.
func (s *Snapshot) Path() string {
	return s.path
}

// Load reads the snapshot. A missing file is an empty collection; a file
// that cannot be decoded is a *CorruptSnapshotError.
func (s *Snapshot) Load() (map[string]types.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]types.User), nil
		}
		return nil, err
	}

	var users map[string]types.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, &CorruptSnapshotError{Path: s.path, Err: err}
	}
	if users == nil {
		users = make(map[string]types.User)
	}
	return users, nil
}

// Save replaces the snapshot with the given collection.
func (s *Snapshot) Save(users map[string]types.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}

	f, err := atomicfile.New(s.path)
	if err != nil {
		return err
	}
	defer f.RemoveIfNotClosed()

	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Close()
}
