package album

import (
	"fmt"
	"os"

	"github.com/pjmuller/photobook/internal/util"
)

// Store persists an album document as album.json. The on-disk shape is the
// one the print renderer and the editing frontend consume, so it must
// round-trip losslessly.
type Store struct {
	path string
}

// NewStore creates a store for the given album.json path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the album file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the album document.
func (s *Store) Load() (*Album, error) {
	var a Album
	if err := util.LoadJSON(s.path, &a); err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load album %s: %w", s.path, err)
	}
	return &a, nil
}

// Save writes the album document.
func (s *Store) Save(a *Album) error {
	if err := util.SaveJSON(s.path, a); err != nil {
		return fmt.Errorf("failed to save album %s: %w", s.path, err)
	}
	return nil
}
