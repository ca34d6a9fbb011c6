package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xenking/atlas-parfum/internal/i18n"
)

func TestFileStore_GetSet(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Get("cart")
	assert.True(t, IsNotFound(err))

	require.NoError(t, fs.Set("cart", []byte(`[]`)))

	raw, err := fs.Get("cart")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), raw)

	// Overwrite is last-writer-wins.
	require.NoError(t, fs.Set("cart", []byte(`[{"quantity":1}]`)))
	raw, err = fs.Get("cart")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"quantity":1}]`), raw)
}

func TestFileStore_KeysDoNotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Set("../escape", []byte("x")))

	raw, err := fs.Get("../escape")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), raw)
}

func TestFileStore_SessionRoundTrip(t *testing.T) {
	dir := t.TempDir()

	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	s := New(fs, zap.NewNop())
	s.SetLanguage(i18n.Arabic)
	s.AddToCart(testProduct("1", 899))

	fs2, err := NewFileStore(dir)
	require.NoError(t, err)

	restored := New(fs2, zap.NewNop())
	assert.Equal(t, i18n.Arabic, restored.Language())
	require.Len(t, restored.Items(), 1)
	assert.True(t, restored.Items()[0].Product.Price.Equal(s.Items()[0].Product.Price))
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := NewManager(t.TempDir(), zap.NewNop())

	idA, idB := m.NewID(), m.NewID()
	require.NotEqual(t, idA, idB)

	require.NoError(t, m.Update(idA, func(s *Session) error {
		s.AddToCart(testProduct("1", 899))
		return nil
	}))

	require.NoError(t, m.Update(idB, func(s *Session) error {
		assert.Empty(t, s.Items())
		return nil
	}))

	require.NoError(t, m.Update(idA, func(s *Session) error {
		assert.Equal(t, 1, s.ItemCount())
		return nil
	}))
}

func TestManager_RejectsIDsThatEscapeRoot(t *testing.T) {
	base := t.TempDir()
	m := NewManager(filepath.Join(base, "sessions"), zap.NewNop())

	for _, id := range []string{
		"../escaped",
		"..",
		"a/b",
		`a\b`,
		"",
	} {
		err := m.Update(id, func(s *Session) error {
			s.AddToCart(testProduct("1", 899))
			return nil
		})
		assert.Error(t, err, "id %q must be rejected", id)
	}

	// Nothing may have been written outside the session root.
	_, err := os.Stat(filepath.Join(base, "escaped"))
	assert.True(t, os.IsNotExist(err))
}

func TestManager_EvictedSessionRestoresFromDisk(t *testing.T) {
	m := NewManager(t.TempDir(), zap.NewNop())
	id := m.NewID()

	require.NoError(t, m.Update(id, func(s *Session) error {
		s.SetLanguage(i18n.Arabic)
		s.AddToCart(testProduct("1", 899))
		return nil
	}))

	ttl := time.Minute
	m.cleanup(time.Now().Add(2*ttl), ttl)

	m.mu.Lock()
	assert.Empty(t, m.entries)
	m.mu.Unlock()

	// Next contact rebuilds the session from its persisted files.
	require.NoError(t, m.Update(id, func(s *Session) error {
		assert.Equal(t, i18n.Arabic, s.Language())
		assert.Equal(t, 1, s.ItemCount())
		return nil
	}))
}

func TestManager_CleanupKeepsFreshEntries(t *testing.T) {
	m := NewManager(t.TempDir(), zap.NewNop())
	id := m.NewID()

	require.NoError(t, m.Update(id, func(*Session) error { return nil }))

	ttl := time.Minute
	m.cleanup(time.Now(), ttl)

	m.mu.Lock()
	assert.Len(t, m.entries, 1)
	m.mu.Unlock()
}
