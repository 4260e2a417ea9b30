// ABOUTME: File-backed credential store writing a JSON token file
// ABOUTME: Uses atomic temp-file-and-rename writes under the XDG config dir

package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists the credential pair as a JSON file. Writes go through a
// temporary file and a rename so a crash mid-write never leaves a partial
// pair on disk.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// DefaultPath returns the default credential file location.
// Priority: XDG_CONFIG_HOME/botdeck/credentials.json > ~/.config/botdeck/credentials.json
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "credentials.json" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "botdeck", "credentials.json")
}

// NewFileStore creates a file store at the given path, creating parent
// directories as needed. An empty path uses DefaultPath.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating credential directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Save writes the pair to disk atomically with owner-only permissions.
func (s *FileStore) Save(pair Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(pair, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing credentials: %w", err)
	}
	return nil
}

// Load reads the pair from disk. A missing, unreadable, or corrupt file
// loads as absent rather than failing.
func (s *FileStore) Load() (Pair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Pair{}, false
	}

	var pair Pair
	if err := json.Unmarshal(data, &pair); err != nil {
		return Pair{}, false
	}
	if !pair.complete() {
		return Pair{}, false
	}
	return pair, true
}

// Clear removes the credential file. A file that does not exist is fine.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing credentials: %w", err)
	}
	return nil
}
