// Package store keeps the user collection in memory behind a single mutex
// and writes the whole collection back to its snapshot after every mutation.
package store

import (
	"sync"

	"go.uber.org/zap"

	"userbook/internal/types"
)

// Snapshotter loads and saves the full collection. Save always receives the
// complete state, never a delta.
type Snapshotter interface {
	Load() (map[string]types.User, error)
	Save(map[string]types.User) error
}

// Store is the mutex-guarded collection of user records.
type Store struct {
	mu    sync.Mutex
	users map[string]types.User
	snap  Snapshotter
	log   *zap.Logger
}

// Option configures a Store at construction.
type Option func(*Store)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New builds a Store over snap, loading whatever the snapshot holds. A
// snapshot that exists but cannot be decoded fails construction.
func New(snap Snapshotter, opts ...Option) (*Store, error) {
	users, err := snap.Load()
	if err != nil {
		return nil, err
	}
	s := &Store{
		users: users,
		snap:  snap,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log.Debug("store loaded", zap.Int("users", len(users)))
	return s, nil
}

// Create adds a new record. The id must not already be registered.
func (s *Store) Create(u types.User) (types.User, error) {
	s.mu.Lock()
	if _, exists := s.users[u.ID]; exists {
		s.mu.Unlock()
		return types.User{}, ErrDuplicateID
	}
	s.users[u.ID] = u
	clone := s.cloneLocked()
	s.mu.Unlock()

	if err := s.persist(clone); err != nil {
		return types.User{}, err
	}
	s.log.Info("user created", zap.String("id", u.ID))
	return u, nil
}

// Get returns the record under id.
func (s *Store) Get(id string) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return types.User{}, ErrNotFound
	}
	return u, nil
}

// List returns a copy of the whole collection. Mutating the returned map
// does not touch the store.
func (s *Store) List() map[string]types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneLocked()
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// Update replaces the record under id wholesale. The replacement must carry
// the same id; records cannot be re-keyed.
func (s *Store) Update(id string, u types.User) (types.User, error) {
	s.mu.Lock()
	if _, ok := s.users[id]; !ok {
		s.mu.Unlock()
		return types.User{}, ErrNotFound
	}
	if u.ID != id {
		s.mu.Unlock()
		return types.User{}, ErrIDImmutable
	}
	s.users[id] = u
	clone := s.cloneLocked()
	s.mu.Unlock()

	if err := s.persist(clone); err != nil {
		return types.User{}, err
	}
	s.log.Info("user updated", zap.String("id", id))
	return u, nil
}

// Delete removes the record under id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	if _, ok := s.users[id]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.users, id)
	clone := s.cloneLocked()
	s.mu.Unlock()

	if err := s.persist(clone); err != nil {
		return err
	}
	s.log.Info("user deleted", zap.String("id", id))
	return nil
}

// cloneLocked copies the collection. Callers must hold mu.
func (s *Store) cloneLocked() map[string]types.User {
	clone := make(map[string]types.User, len(s.users))
	for id, u := range s.users {
		clone[id] = u
	}
	return clone
}

// persist writes a clone of the collection outside the lock. On failure the
// in-memory state stays applied; the next successful save reconciles the
// file.
func (s *Store) persist(clone map[string]types.User) error {
	if err := s.snap.Save(clone); err != nil {
		s.log.Error("snapshot save failed", zap.Error(err))
		return err
	}
	return nil
}
