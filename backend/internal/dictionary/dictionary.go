// Package dictionary loads the weak-password word list used by the compliance
// checker and keeps it current when the file changes.
package dictionary

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"passforge/backend/internal/password"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

var ErrNoPath = errors.New("no dictionary path configured")

var _ password.WordList = (*Store)(nil)

// LoadWords reads one word per line. Blank lines and lines starting with '#' are
// skipped; words are lowercased and deduplicated, keeping first-seen order.
func LoadWords(path string) ([]string, error) {
	if path == "" {
		return nil, ErrNoPath
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()

	seen := make(map[string]struct{})
	words := make([]string, 0, 1024)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	return words, nil
}

// Store is a word list that can be swapped while checkers are reading it.
type Store struct {
	path     string
	logger   *zap.SugaredLogger
	mu       sync.RWMutex
	words    []string
	fallback bool
	onReload func(count int)
}

// NewStore loads path, or falls back to password.DefaultWords when the file is
// missing or unreadable. It never fails.
func NewStore(path string, logger *zap.SugaredLogger) *Store {
	s := &Store{path: path, logger: logger}
	if err := s.Reload(); err != nil {
		log := s.logger.Warnw
		if errors.Is(err, ErrNoPath) {
			log = s.logger.Debugw
		}
		log("Using built-in dictionary",
			"path", path,
			"error", err,
			"words", len(password.DefaultWords),
		)
		s.setWords(password.DefaultWords, true)
	}
	return s
}

// OnReload registers fn to be called with the word count after every successful load.
func (s *Store) OnReload(fn func(count int)) {
	s.mu.Lock()
	s.onReload = fn
	count := len(s.words)
	s.mu.Unlock()
	fn(count)
}

// Words returns the current list. The returned slice must not be modified.
func (s *Store) Words() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.words
}

// Len is the number of words currently loaded.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// IsFallback reports whether the built-in list is in use.
func (s *Store) IsFallback() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fallback
}

// Path is the dictionary file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the file. On error the current list is kept.
func (s *Store) Reload() error {
	words, err := LoadWords(s.path)
	if err != nil {
		return err
	}
	s.setWords(words, false)
	s.logger.Infow("Dictionary loaded", "path", s.path, "words", len(words))
	return nil
}

func (s *Store) setWords(words []string, fallback bool) {
	s.mu.Lock()
	s.words = words
	s.fallback = fallback
	hook := s.onReload
	s.mu.Unlock()

	if hook != nil {
		hook(len(words))
	}
}

// Watch reloads the store whenever the dictionary file is written or replaced.
// It blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return ErrNoPath
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create dictionary watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file via rename are seen.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Warnw("Dictionary reload failed, keeping previous list", "path", s.path, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warnw("Dictionary watcher error", "error", err)
		}
	}
}
