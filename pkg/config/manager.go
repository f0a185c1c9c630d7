package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Default configuration locations
const (
	AppDirName     = "kb"
	ProjectDirName = ".kb"
	ConfigFileName = "config.json"
)

// Options locates the file-backed levels. An empty directory disables
// that level.
type Options struct {
	ProjectDir    string // directory holding .kb/config.json
	UserConfigDir string // directory holding kb/config.json
}

// DefaultOptions uses the working directory and os.UserConfigDir. Lookup
// failures disable the corresponding level.
func DefaultOptions() Options {
	var opts Options
	if cwd, err := os.Getwd(); err == nil {
		opts.ProjectDir = cwd
	}
	if dir, err := os.UserConfigDir(); err == nil {
		opts.UserConfigDir = dir
	}
	return opts
}

// Manager resolves configuration across command-line, project, user and
// builtin levels. It is safe for concurrent use.
type Manager struct {
	mu              sync.RWMutex
	stores          map[ConfigLevel]*Store
	commandLine     map[string]string
	builtinDefaults map[string]string
	validator       *Validator
}

// NewManager creates a manager; call Load before reading file levels.
func NewManager(opts Options) *Manager {
	m := &Manager{
		stores:          make(map[ConfigLevel]*Store),
		commandLine:     make(map[string]string),
		builtinDefaults: make(map[string]string),
		validator:       &Validator{},
	}

	if opts.ProjectDir != "" {
		m.stores[ProjectLevel] = NewStore(filepath.Join(opts.ProjectDir, ProjectDirName, ConfigFileName), ProjectLevel)
	}
	if opts.UserConfigDir != "" {
		m.stores[UserLevel] = NewStore(filepath.Join(opts.UserConfigDir, AppDirName, ConfigFileName), UserLevel)
	}
	m.loadBuiltinDefaults()

	return m
}

// fileLevels are the file-backed levels, highest precedence first
var fileLevels = []ConfigLevel{ProjectLevel, UserLevel}

// Load reads every file-backed store concurrently. A level whose file
// cannot be read or parsed stays empty; those failures come back joined
// and the manager remains usable.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	errs := make([]error, len(fileLevels))
	g, gctx := errgroup.WithContext(ctx)
	for i, level := range fileLevels {
		store, ok := m.stores[level]
		if !ok {
			continue
		}
		g.Go(func() error {
			errs[i] = store.Load(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return errors.Join(errs...)
}

// Problems lists file entries that fail validation, in level then key
// order. Resolution skips them and falls through to the next level.
func (m *Manager) Problems() []error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var problems []error
	for _, level := range fileLevels {
		store, ok := m.stores[level]
		if !ok {
			continue
		}

		keys := store.Keys()
		sort.Strings(keys)
		for _, key := range keys {
			entry := store.Get(key)
			if err := m.validator.ValidateKeyValue(key, entry.Value); err != nil {
				problems = append(problems, fmt.Errorf("%s: %w", store.Path(), err))
			}
		}
	}
	return problems
}

// Get returns the highest-precedence entry for key, or nil
func (m *Manager) Get(key string) *ConfigEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getUnsafe(key)
}

// Set validates value and persists it at a file-backed level
func (m *Manager) Set(key, value string, level ConfigLevel) error {
	if err := m.validator.ValidateKeyValue(key, value); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.validateStore("set", key, level)
	if err != nil {
		return err
	}

	store.Set(key, value)
	return store.Save()
}

// Unset removes key from a file-backed level
func (m *Manager) Unset(key string, level ConfigLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.validateStore("unset", key, level)
	if err != nil {
		return err
	}

	if !store.Unset(key) {
		return NewConfigError("unset", CodeNotFoundErr, key, store.Path(), level.String(), ErrNotFound)
	}
	return store.Save()
}

// SetCommandLine records a validated command-line override
func (m *Manager) SetCommandLine(key, value string) error {
	if err := m.validator.ValidateKeyValue(key, value); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandLine[key] = value
	return nil
}

// List returns every effective entry, sorted by key
func (m *Manager) List() []*ConfigEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make(map[string]struct{})
	for k := range m.commandLine {
		keys[k] = struct{}{}
	}
	for _, store := range m.stores {
		for _, k := range store.Keys() {
			keys[k] = struct{}{}
		}
	}
	for k := range m.builtinDefaults {
		keys[k] = struct{}{}
	}

	entries := make([]*ConfigEntry, 0, len(keys))
	for k := range keys {
		if e := m.getUnsafe(k); e != nil {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// StorePath returns the file behind a level, if that level is enabled
func (m *Manager) StorePath(level ConfigLevel) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	store, ok := m.stores[level]
	if !ok {
		return "", false
	}
	return store.Path(), true
}

func (m *Manager) validateStore(op, key string, level ConfigLevel) (*Store, error) {
	if !level.CanWrite() {
		return nil, NewConfigError(op, CodeReadOnlyErr, key, "", level.String(), ErrReadOnly)
	}

	store, exists := m.stores[level]
	if !exists {
		return nil, NewConfigError(op, CodeNotFoundErr, key, "", level.String(), fmt.Errorf("no store for level"))
	}
	return store, nil
}

func (m *Manager) loadBuiltinDefaults() {
	m.builtinDefaults[KeyDemoVariant] = "parity"
	m.builtinDefaults[KeyOutputFormat] = OutputPlain
	m.builtinDefaults[KeyLogLevel] = "info"
	m.builtinDefaults[KeyLogFormat] = "text"
}

// getUnsafe expects the caller to hold at least the read lock
func (m *Manager) getUnsafe(key string) *ConfigEntry {
	if value, exists := m.commandLine[key]; exists {
		return NewCommandLineEntry(key, value)
	}

	for _, level := range fileLevels {
		store, exists := m.stores[level]
		if !exists {
			continue
		}
		if e := store.Get(key); e != nil && m.validator.ValidateKeyValue(key, e.Value) == nil {
			return e
		}
	}

	if value, exists := m.builtinDefaults[key]; exists {
		return NewBuiltinEntry(key, value)
	}
	return nil
}
