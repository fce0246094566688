// Package favorites persists the favorite-property set under a single key
// in a small JSON file, rewritten wholesale on every toggle.
package favorites

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// storeKey is the single key the favorite set lives under.
const storeKey = "inmolista_favorites"

type Store struct {
	path   string
	logger *logrus.Logger
	mu     sync.Mutex
}

func NewStore(path string, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Store{path: path, logger: logger}
}

// Get returns the favorite property ids. Corrupt or missing data is treated
// as an empty set; the failure never reaches the caller.
func (s *Store) Get() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

// Contains reports whether the property id is in the favorite set.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fav := range s.readLocked() {
		if fav == id {
			return true
		}
	}
	return false
}

// Toggle flips the membership of id and rewrites the whole set. It returns
// whether the id is a favorite after the call.
func (s *Store) Toggle(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.readLocked()
	out := make([]string, 0, len(set)+1)
	added := true
	for _, fav := range set {
		if fav == id {
			added = false
			continue
		}
		out = append(out, fav)
	}
	if added {
		out = append(out, id)
		sort.Strings(out)
	}

	if err := s.writeLocked(out); err != nil {
		return false, err
	}
	return added, nil
}

func (s *Store) readLocked() []string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).Warn("Failed to read favorites store, treating as empty")
		}
		return nil
	}

	var payload map[string][]string
	if err := json.Unmarshal(data, &payload); err != nil {
		s.logger.WithError(err).Warn("Corrupt favorites store, treating as empty")
		return nil
	}

	return payload[storeKey]
}

func (s *Store) writeLocked(set []string) error {
	payload := map[string][]string{storeKey: set}
	data, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create favorites directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write favorites store: %w", err)
	}

	return nil
}
