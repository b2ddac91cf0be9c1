// Package session maps opaque session keys to the character each session owns.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/cory-johannsen/swn-chargen/internal/game/character"
)

// ErrNoCharacter is returned when a session key has no stored character.
var ErrNoCharacter = errors.New("no character found")

// Manager stores one character per session key. Writes for the same key are
// last-writer-wins; entries are never evicted.
// All methods are safe for concurrent use.
type Manager struct {
	mu         sync.RWMutex
	characters map[string]*character.Character // key → character
}

// NewManager creates an empty session Manager.
func NewManager() *Manager {
	return &Manager{characters: make(map[string]*character.Character)}
}

// NewKey returns a fresh random session key.
func NewKey() string {
	return uuid.NewString()
}

// Put stores c under key, replacing any previous character.
//
// Precondition: key must be non-empty; c must be non-nil.
func (m *Manager) Put(key string, c *character.Character) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.characters[key] = c
}

// Has reports whether key has a stored character.
func (m *Manager) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.characters[key]
	return ok
}

// Update runs fn on the character stored under key while holding the store
// lock, so operations on one store never interleave.
//
// Postcondition: returns ErrNoCharacter if key has no character, otherwise
// whatever fn returns.
func (m *Manager) Update(key string, fn func(c *character.Character) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.characters[key]
	if !ok {
		return ErrNoCharacter
	}
	return fn(c)
}

// Upsert runs fn on the character under key, first storing newFn() if the key
// has none.
func (m *Manager) Upsert(key string, newFn func() *character.Character, fn func(c *character.Character) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.characters[key]
	if !ok {
		c = newFn()
		m.characters[key] = c
	}
	return fn(c)
}

// Len returns the number of stored characters.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.characters)
}
