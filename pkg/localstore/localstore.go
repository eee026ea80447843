package localstore

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Persisted keys, one per entity class.
const (
	KeyOrders        = "orders"
	KeyVisitors      = "visitors"
	KeyAgencyConfig  = "agency_config"
	KeyUsers         = "users"
	KeySessionUser   = "current_session_user"
	KeyBannerConfig  = "banner_config"
	KeyAppsConfig    = "apps_config"
	KeyContactConfig = "contact_config"
)

// Store is a synchronous key/value store whose writes are visible to the
// next read immediately. Reads and writes never fail from the caller's view.
type Store interface {
	// Read decodes the value under key into out. It reports false when the
	// key is absent or the stored value cannot be decoded.
	Read(key string, out any) bool
	// Write replaces the value under key.
	Write(key string, value any)
	// Delete removes key.
	Delete(key string)
}

// Get returns the value stored under key, or def when it is missing or malformed.
func Get[T any](s Store, key string, def T) T {
	var v T
	if !s.Read(key, &v) {
		return def
	}
	return v
}

// FileStore keeps every entry in memory and persists the whole set as one
// JSON document after each write.
type FileStore struct {
	mu      sync.RWMutex
	file    *os.File
	entries map[string]json.RawMessage
	logger  *zap.Logger
}

var _ Store = (*FileStore)(nil)

// Open loads (or creates) the store file at path. A file that cannot be
// parsed is logged and replaced by an empty store on the next write.
func Open(path string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local store directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	s := &FileStore{file: f, entries: map[string]json.RawMessage{}, logger: logger}
	if err := s.load(); err != nil {
		logger.Warn("local store is unreadable, starting empty", zap.String("path", path), zap.Error(err))
		s.entries = map[string]json.RawMessage{}
	}
	return s, nil
}

// NewMemory returns a store that is never written to disk.
func NewMemory() *FileStore {
	return &FileStore{entries: map[string]json.RawMessage{}, logger: zap.NewNop()}
}

// Close releases the backing file.
func (s *FileStore) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

func (s *FileStore) load() error {
	info, err := s.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return nil
	}
	if err := json.NewDecoder(s.file).Decode(&s.entries); err != nil {
		return err
	}
	if s.entries == nil {
		s.entries = map[string]json.RawMessage{}
	}
	return nil
}

func (s *FileStore) Read(key string, out any) bool {
	s.mu.RLock()
	raw, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn("discarding malformed local entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *FileStore) Write(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("failed to encode local entry", zap.String("key", key), zap.Error(err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = raw
	s.persistLocked(key)
}

func (s *FileStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return
	}
	delete(s.entries, key)
	s.persistLocked(key)
}

func (s *FileStore) persistLocked(key string) {
	if s.file == nil {
		return
	}
	if err := s.flushLocked(); err != nil {
		s.logger.Error("failed to persist local store", zap.String("key", key), zap.Error(err))
	}
}

func (s *FileStore) flushLocked() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	enc := json.NewEncoder(s.file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.entries); err != nil {
		return err
	}
	pos, err := s.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if err := s.file.Truncate(pos); err != nil {
		return err
	}
	return s.file.Sync()
}
