package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEvents(t *testing.T, path string) []Event {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		events = append(events, e)
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestRecordAppendsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	l, err := Open(path)
	require.NoError(t, err)
	defer l.Close()

	start := time.Now()
	l.Record(EventCreate, "12345678901", start, nil)
	l.Record(EventDelete, "12345678901", start, errors.New("user not found"))

	events := readEvents(t, path)
	require.Len(t, events, 2)

	assert.Equal(t, EventCreate, events[0].EventType)
	assert.Equal(t, "12345678901", events[0].UserID)
	assert.True(t, events[0].Success)
	assert.Empty(t, events[0].Error)
	assert.NotEmpty(t, events[0].ID)

	assert.Equal(t, EventDelete, events[1].EventType)
	assert.False(t, events[1].Success)
	assert.Equal(t, "user not found", events[1].Error)

	assert.Equal(t, l.SessionID(), events[0].SessionID)
	assert.Equal(t, events[0].SessionID, events[1].SessionID, "one session id per run")
	assert.NotEqual(t, events[0].ID, events[1].ID, "every event gets its own id")
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "audit.jsonl")
	l, err := Open(path)
	require.NoError(t, err)
	defer l.Close()

	l.Record(EventUpdate, "99999999999", time.Now(), nil)
	assert.Len(t, readEvents(t, path), 1)
}

func TestNilLoggerDiscards(t *testing.T) {
	var l *Logger
	l.Record(EventCreate, "12345678901", time.Now(), nil) // must not panic
	assert.Empty(t, l.SessionID())
	assert.NoError(t, l.Close())
}

func TestSessionsAreDistinct(t *testing.T) {
	dir := t.TempDir()
	a, err := Open(filepath.Join(dir, "audit.jsonl"))
	require.NoError(t, err)
	defer a.Close()
	b, err := Open(filepath.Join(dir, "audit.jsonl"))
	require.NoError(t, err)
	defer b.Close()

	assert.NotEqual(t, a.SessionID(), b.SessionID())
}
