// Package session manages the client-side session: the bearer token minted
// by register/verify plus the identity material that travels with it. There
// is exactly one session per store; reads always hit the backing storage so
// every read observes the most recent write.
package session

import (
	"fmt"
	"sync"
)

// Session holds the credential material persisted between requests. All
// three fields are written and cleared together.
type Session struct {
	Token               string
	DID                 string
	PrivateKeyMultibase string
}

// ErrNoSession is returned by GetSession when nothing is stored.
var ErrNoSession = fmt.Errorf("no session stored")

// Store persists the process-wide session. Clear removes the token and all
// cached identity material atomically; partial clears are not permitted.
type Store interface {
	GetSession() (*Session, error)
	SaveSession(session *Session) error
	Clear() error
}

// MemoryStore is a process-local Store for tests and short-lived tools.
type MemoryStore struct {
	mu      sync.Mutex
	session *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) GetSession() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, ErrNoSession
	}
	copied := *m.session
	return &copied, nil
}

func (m *MemoryStore) SaveSession(session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *session
	m.session = &copied
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
