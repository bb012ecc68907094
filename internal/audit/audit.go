// Package audit appends a JSON-lines trail of mutating store operations.
// Each line is one event: what was attempted, on which record, whether it
// succeeded, and how long it took. The trail is for after-the-fact review;
// it never influences the outcome of the operation it records.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType identifies the operation an audit event records.
type EventType string

const (
	EventCreate EventType = "user_create"
	EventUpdate EventType = "user_update"
	EventDelete EventType = "user_delete"
)

// Event is one audit line.
type Event struct {
	ID         string    `json:"id"`      // uuid, unique per event
	Timestamp  int64     `json:"ts"`      // Unix milliseconds
	SessionID  string    `json:"session"` // one id per process run
	EventType  EventType `json:"event"`
	UserID     string    `json:"user_id"` // primary key of the affected record
	Success    bool      `json:"success"`
	DurationMs int64     `json:"dur_ms"`
	Error      string    `json:"error,omitempty"`
}

// Logger appends events to a single file. Safe for concurrent use. The
// zero-value Logger (or a nil one) discards everything, so callers do not
// branch on whether auditing is enabled.
type Logger struct {
	mu        sync.Mutex
	file      *os.File
	sessionID string
}

// Open creates a Logger appending to path, creating parent directories as
// needed. Every Logger gets a fresh session id so events from different
// runs can be told apart.
func Open(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return &Logger{file: f, sessionID: uuid.NewString()}, nil
}

// SessionID returns the id stamped on every event of this Logger.
func (l *Logger) SessionID() string {
	if l == nil {
		return ""
	}
	return l.sessionID
}

// Record writes one event. Errors are swallowed: a full disk must not turn
// a successful delete into a failure after the fact.
func (l *Logger) Record(event EventType, userID string, start time.Time, opErr error) {
	if l == nil || l.file == nil {
		return
	}

	e := Event{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UnixMilli(),
		SessionID:  l.sessionID,
		EventType:  event,
		UserID:     userID,
		Success:    opErr == nil,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if opErr != nil {
		e.Error = opErr.Error()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.file.Write(append(data, '\n'))
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.file.Close()
	l.file = nil
	return err
}
