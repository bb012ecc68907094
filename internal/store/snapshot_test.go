package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userbook/internal/types"
)

func snapshotIn(t *testing.T) *Snapshot {
	t.Helper()
	return NewSnapshot(filepath.Join(t.TempDir(), DefaultSnapshotFile))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	snap := snapshotIn(t)

	users, err := snap.Load()
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestRoundTrip(t *testing.T) {
	birth1, _ := types.NewDate(1995, time.May, 15)
	birth2, _ := types.NewDate(1909, time.January, 1)
	birth3, _ := types.NewDate(2024, time.December, 31)

	cases := map[string]map[string]types.User{
		"empty": {},
		"single": {
			"12345678901": {
				ID:       "12345678901",
				FullName: "Test User Name",
				Email:    "person.one@example.com",
				Birth:    birth1,
				Role:     types.RoleUser,
			},
		},
		"many": {
			"11111111111": {
				ID:       "11111111111",
				FullName: "Earliest Possible Birth",
				Email:    "early.bird@example.br",
				Birth:    birth2,
				Role:     types.RoleAdmin,
			},
			"22222222222": {
				ID:       "22222222222",
				FullName: "Latest Possible Birth",
				Email:    "late.comer@example.com",
				Birth:    birth3,
				Role:     types.RoleGuest,
			},
			"33333333333": {
				ID:       "33333333333",
				FullName: "Middle Of The Road",
				Email:    "middle.road@example.com",
				Birth:    birth1,
				Role:     types.RoleUser,
			},
		},
	}

	for name, users := range cases {
		t.Run(name, func(t *testing.T) {
			snap := snapshotIn(t)
			require.NoError(t, snap.Save(users))

			loaded, err := snap.Load()
			require.NoError(t, err)
			assert.Equal(t, users, loaded)
		})
	}
}

func TestSaveOverwritesWholeFile(t *testing.T) {
	snap := snapshotIn(t)

	u := types.User{ID: "12345678901", FullName: "Test User Name",
		Email: "person.one@example.com", Role: types.RoleUser}
	u.Birth, _ = types.NewDate(1995, time.May, 15)

	require.NoError(t, snap.Save(map[string]types.User{u.ID: u}))
	require.NoError(t, snap.Save(map[string]types.User{}))

	loaded, err := snap.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded, "every save replaces the entire file content")
}

func TestLoadCorruptFile(t *testing.T) {
	snap := snapshotIn(t)
	require.NoError(t, os.WriteFile(snap.Path(), []byte("{not json"), 0o644))

	_, err := snap.Load()
	require.Error(t, err)

	var corrupt *CorruptSnapshotError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, snap.Path(), corrupt.Path)
}

func TestLoadRejectsBadRole(t *testing.T) {
	snap := snapshotIn(t)
	content := `{"12345678901":{"id":"12345678901","full_name":"Test User Name","email":"person.one@example.com","birth":"1995-05-15","role":"Superuser"}}`
	require.NoError(t, os.WriteFile(snap.Path(), []byte(content), 0o644))

	_, err := snap.Load()
	var corrupt *CorruptSnapshotError
	assert.ErrorAs(t, err, &corrupt, "an unknown role makes the snapshot corrupt, not empty")
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	snap := NewSnapshot(filepath.Join(dir, DefaultSnapshotFile))
	require.NoError(t, snap.Save(map[string]types.User{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultSnapshotFile, entries[0].Name())
}

// End to end: a store built on a real snapshot file sees its own writes
// after a restart.
func TestStoreSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultSnapshotFile)

	s, err := New(NewSnapshot(path))
	require.NoError(t, err)

	u := types.User{ID: "12345678901", FullName: "Test User Name",
		Email: "person.one@example.com", Role: types.RoleUser}
	u.Birth, _ = types.NewDate(1995, time.May, 15)
	_, err = s.Create(u)
	require.NoError(t, err)

	reopened, err := New(NewSnapshot(path))
	require.NoError(t, err)

	got, err := reopened.Get(u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}
