package session

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager hands out sessions keyed by opaque IDs. Each session persists to
// its own subdirectory of the base directory and is serialized internally,
// preserving the single-actor contract even under a concurrent HTTP server.
type Manager struct {
	dir string
	lg  *zap.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu       sync.Mutex
	sess     *Session
	lastSeen time.Time
}

// NewManager creates a manager persisting sessions under dir.
func NewManager(dir string, lg *zap.Logger) *Manager {
	return &Manager{
		dir:     dir,
		lg:      lg,
		entries: make(map[string]*entry),
	}
}

// NewID mints a fresh session identifier.
func (m *Manager) NewID() string {
	return uuid.New().String()
}

// Update runs fn with exclusive access to the session identified by id,
// creating (and restoring from disk) the session on first contact. The
// *Session is only safe to use while fn is running.
func (m *Manager) Update(id string, fn func(*Session) error) error {
	e, err := m.entry(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.sess)
}

// StartCleanup evicts sessions idle for longer than ttl from memory.
// Persisted state is untouched; an evicted session restores from disk on
// next contact. The goroutine stops when ctx is cancelled.
func (m *Manager) StartCleanup(ctx context.Context, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(ttl)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				m.cleanup(now, ttl)
			}
		}
	}()
}

func (m *Manager) cleanup(now time.Time, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, e := range m.entries {
		if now.Sub(e.lastSeen) < ttl {
			continue
		}
		// Entries mid-update are skipped; lastSeen refreshes on every
		// entry fetch, so an idle entry has no request in flight.
		if !e.mu.TryLock() {
			continue
		}
		e.mu.Unlock()
		delete(m.entries, id)
	}
}

func (m *Manager) entry(id string) (*entry, error) {
	if !validID(id) {
		return nil, errors.Errorf("session: invalid id %q", id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[id]; ok {
		e.lastSeen = time.Now()
		return e, nil
	}

	store, err := NewFileStore(filepath.Join(m.dir, id))
	if err != nil {
		return nil, err
	}
	e := &entry{
		sess:     New(store, m.lg.With(zap.String("session_id", id))),
		lastSeen: time.Now(),
	}
	m.entries[id] = e
	return e, nil
}

// validID rejects identifiers that could name a path outside the session
// root. IDs are server-minted uuids; anything with a separator or a dot
// pair never came from NewID.
func validID(id string) bool {
	if id == "" || strings.Contains(id, "..") {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}
