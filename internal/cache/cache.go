// Package cache is a small content-addressed store for encoded renders.
// The server uses it so repeated requests for the same notation and
// configuration skip synthesis and WAV encoding entirely.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
)

// Key derives the content address for a render request from its notation
// and every configuration value that influences the output.
func Key(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(h[:])
}

// Store holds encoded WAV payloads keyed by content address, bounded to a
// fixed number of entries with oldest-first eviction.
type Store struct {
	mu      sync.Mutex
	max     int
	entries map[string][]byte
	order   []string
}

// New creates a Store keeping at most max entries.
func New(max int) *Store {
	if max <= 0 {
		max = 1
	}
	return &Store{max: max, entries: make(map[string][]byte)}
}

// Get returns the cached payload for key, if present.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.entries[key]
	return data, ok
}

// Put stores a payload, evicting the oldest entries beyond the bound.
func (s *Store) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; ok {
		return
	}
	s.entries[key] = data
	s.order = append(s.order, key)
	for len(s.order) > s.max {
		delete(s.entries, s.order[0])
		s.order = s.order[1:]
	}
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
