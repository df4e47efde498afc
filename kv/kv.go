// Package kv reads and writes flat string maps as newline-separated
// key:value lines.
package kv

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ErrMalformedLine is returned for a non-blank line with no ':' separator.
var ErrMalformedLine = errors.New("kv: malformed line")

// Encode renders m as key:value lines sorted by key. Keys must not contain
// ':', '\n' or '\r' and values must not contain '\n' or '\r', so Decode
// recovers m exactly.
func Encode(m map[string]string) (string, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		if strings.ContainsAny(k, ":\n\r") {
			return "", fmt.Errorf("kv: key %q contains a separator", k)
		}
		if strings.ContainsAny(m[k], "\n\r") {
			return "", fmt.Errorf("kv: value of %q contains a line break", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(m[k])
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Decode parses key:value lines. The value runs from the first ':' to the
// end of the line, so values may contain ':'. Blank lines are skipped and a
// trailing '\r' is dropped. Later duplicates win.
func Decode(data string) (map[string]string, error) {
	m := make(map[string]string)
	for i, line := range strings.Split(data, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: %w", i+1, ErrMalformedLine)
		}
		m[k] = v
	}
	return m, nil
}

// Store is a key-value map persisted to a single file.
type Store struct {
	data map[string]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

// Get returns the value for key.
func (s *Store) Get(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

// Set stores value under key.
func (s *Store) Set(key, value string) { s.data[key] = value }

// Delete removes key.
func (s *Store) Delete(key string) { delete(s.data, key) }

// Len returns the number of keys.
func (s *Store) Len() int { return len(s.data) }

// Data returns a copy of the stored map.
func (s *Store) Data() map[string]string {
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// WriteFile saves the store to path.
func (s *Store) WriteFile(path string) error {
	text, err := Encode(s.data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("kv: write %s: %w", path, err)
	}
	return nil
}

// ReadFile replaces the store's contents with those of path.
func (s *Store) ReadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("kv: read %s: %w", path, err)
	}
	m, err := Decode(string(raw))
	if err != nil {
		return fmt.Errorf("kv: %s: %w", path, err)
	}
	s.data = m
	return nil
}
