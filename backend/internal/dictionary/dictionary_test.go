package dictionary

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"passforge/backend/internal/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	writeFile(t, path, "# weak passwords\nPassword\n\n  dragon  \npassword\nshadow\n")

	words, err := LoadWords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"password", "dragon", "shadow"}, words)
}

func TestLoadWords_Errors(t *testing.T) {
	_, err := LoadWords("")
	assert.ErrorIs(t, err, ErrNoPath)

	_, err = LoadWords(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewStore_FallsBackToBuiltIn(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.txt"), zap.NewNop().Sugar())
	assert.True(t, store.IsFallback())
	assert.Equal(t, password.DefaultWords, store.Words())

	checker := password.NewChecker(store)
	assert.True(t, checker.HasDictionaryWord("iloveyou!"))
}

func TestNewStore_NoPath(t *testing.T) {
	store := NewStore("", zap.NewNop().Sugar())
	assert.True(t, store.IsFallback())
	assert.Equal(t, len(password.DefaultWords), store.Len())
}

func TestStore_ReloadKeepsListOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	writeFile(t, path, "zebra\n")

	store := NewStore(path, zap.NewNop().Sugar())
	require.False(t, store.IsFallback())
	assert.Equal(t, []string{"zebra"}, store.Words())

	require.NoError(t, os.Remove(path))
	assert.Error(t, store.Reload())
	assert.Equal(t, []string{"zebra"}, store.Words())
}

func TestStore_OnReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	writeFile(t, path, "alpha\nbravo\n")
	store := NewStore(path, zap.NewNop().Sugar())

	var last atomic.Int64
	store.OnReload(func(n int) { last.Store(int64(n)) })
	assert.Equal(t, int64(2), last.Load())

	writeFile(t, path, "alpha\nbravo\ncharlie\n")
	require.NoError(t, store.Reload())
	assert.Equal(t, int64(3), last.Load())
}

func TestStore_WatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	writeFile(t, path, "alpha\n")
	store := NewStore(path, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx) }()

	// Keep rewriting until the watcher has been registered and picked it up.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("alpha\nbravo\n"), 0o600)
		return store.Len() == 2
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestStore_WatchWithoutPath(t *testing.T) {
	store := NewStore("", zap.NewNop().Sugar())
	assert.ErrorIs(t, store.Watch(context.Background()), ErrNoPath)
}
