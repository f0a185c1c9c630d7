package config

import (
	"context"
	"fmt"

	"github.com/ponyatov/kb/pkg/common/fileops"
)

// Store is one JSON configuration file at a fixed level
type Store struct {
	path    string
	level   ConfigLevel
	entries map[string]*ConfigEntry
	parser  *Parser
	loadErr error
}

// NewStore creates a new configuration store for a specific file and level
func NewStore(path string, level ConfigLevel) *Store {
	return &Store{
		path:    path,
		level:   level,
		entries: make(map[string]*ConfigEntry),
		parser:  &Parser{},
	}
}

// Load reads and parses the file. A missing file is an empty store. A file
// that cannot be read or parsed leaves the store empty, is returned, and
// blocks Save so the file is never overwritten blind.
func (s *Store) Load(ctx context.Context) error {
	s.entries = make(map[string]*ConfigEntry)
	s.loadErr = nil

	if err := ctx.Err(); err != nil {
		return err
	}

	content, found, err := fileops.ReadOptional(s.path)
	if err != nil {
		s.loadErr = NewConfigError("load", CodeIOErr, "", s.path, s.level.String(), err)
		return s.loadErr
	}
	if !found {
		return nil
	}

	entries, err := s.parser.Parse(string(content), ConfigSource(s.path), s.level)
	if err != nil {
		s.loadErr = err
		return err
	}

	s.entries = entries
	return nil
}

// Save writes the store to disk atomically
func (s *Store) Save() error {
	if s.loadErr != nil {
		return NewConfigError("save", CodeReadOnlyErr, "", s.path, s.level.String(),
			fmt.Errorf("%w: file failed to load: %w", ErrReadOnly, s.loadErr))
	}

	content, err := s.parser.Serialize(s.entries)
	if err != nil {
		return err
	}

	if err := fileops.AtomicWrite(s.path, []byte(content), 0644); err != nil {
		return NewConfigError("save", CodeIOErr, "", s.path, s.level.String(), err)
	}
	return nil
}

// Get returns a copy of the entry for key, or nil
func (s *Store) Get(key string) *ConfigEntry {
	entry, ok := s.entries[key]
	if !ok {
		return nil
	}
	return entry.Clone()
}

// Keys returns every key held by the store, unordered
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}

// Set replaces the value for key
func (s *Store) Set(key, value string) {
	s.entries[key] = NewEntry(key, value, s.level, ConfigSource(s.path))
}

// Unset removes key and reports whether it was present
func (s *Store) Unset(key string) bool {
	_, ok := s.entries[key]
	delete(s.entries, key)
	return ok
}

// Path returns the file path for this store
func (s *Store) Path() string {
	return s.path
}

// Level returns the configuration level for this store
func (s *Store) Level() ConfigLevel {
	return s.level
}
