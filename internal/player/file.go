package player

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// File is the on-disk players database, a single JSON document keyed by
// username. The hero-card widget fetches it directly, so it is written
// pretty-printed and atomically.
type File struct {
	Players         map[string]*Record `json:"players"`
	LastUpdated     time.Time          `json:"last_updated"`
	PostsAnalyzedAt *time.Time         `json:"posts_analyzed_at,omitempty"`
	Version         string             `json:"version"`
}

// LoadFile reads the players file. A missing file yields an empty database.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &File{Players: make(map[string]*Record), Version: "1.0.0"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read players file %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse players file %s: %w", path, err)
	}
	if f.Players == nil {
		f.Players = make(map[string]*Record)
	}
	if f.Version == "" {
		f.Version = "1.0.0"
	}
	return &f, nil
}

// Save writes the players file atomically via a temp file and rename.
func (f *File) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode players file: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write players file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace players file: %w", err)
	}
	return nil
}

// Usernames returns the player names in a stable order.
func (f *File) Usernames() []string {
	names := make([]string, 0, len(f.Players))
	for name := range f.Players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
