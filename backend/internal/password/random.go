package password

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// SecureSource draws unbiased integers from a cryptographically secure byte stream.
// It keeps no state between calls apart from the reader, which is safe for
// concurrent use when it is crypto/rand.Reader.
type SecureSource struct {
	reader io.Reader
}

// NewSecureSource returns a source backed by crypto/rand.
func NewSecureSource() *SecureSource {
	return &SecureSource{reader: rand.Reader}
}

// newSourceFromReader is used by tests that need a predictable byte stream.
func newSourceFromReader(r io.Reader) *SecureSource {
	return &SecureSource{reader: r}
}

// Uniform returns a value in [0, bound) without modulo bias.
// Raw 32-bit draws at or above the largest multiple of bound are rejected and redrawn.
// A bound of 0 returns 0.
func (s *SecureSource) Uniform(bound uint32) (uint32, error) {
	if bound == 0 {
		return 0, nil
	}

	limit := (uint64(1) << 32) / uint64(bound) * uint64(bound)
	var buf [4]byte
	for {
		if _, err := io.ReadFull(s.reader, buf[:]); err != nil {
			return 0, fmt.Errorf("failed to read secure random bytes: %w", err)
		}
		raw := binary.BigEndian.Uint32(buf[:])
		if uint64(raw) < limit {
			return raw % bound, nil
		}
	}
}

// Select returns a uniformly chosen rune from alphabet.
func (s *SecureSource) Select(alphabet []rune) (rune, error) {
	if len(alphabet) == 0 {
		return 0, ErrEmptyAlphabet
	}
	idx, err := s.Uniform(uint32(len(alphabet)))
	if err != nil {
		return 0, err
	}
	return alphabet[idx], nil
}

// Shuffle permutes s in place (Fisher-Yates, front to back).
func (s *SecureSource) Shuffle(runes []rune) error {
	n := len(runes)
	for i := 0; i < n-1; i++ {
		off, err := s.Uniform(uint32(n - i))
		if err != nil {
			return err
		}
		j := i + int(off)
		runes[i], runes[j] = runes[j], runes[i]
	}
	return nil
}
