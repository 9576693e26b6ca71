package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/eliezer-r/storefront-platform/internal/models"
)

// LocalStore persists the guest cart between runs: a whole-list snapshot
// under one well-known key, written on every guest mutation and removed once
// a login sync has folded it into the server cart.
type LocalStore interface {
	Load() ([]models.CartLine, error)
	Save(lines []models.CartLine) error
	Clear() error
}

const localCartFile = "cart.json"

type fileStore struct {
	path string
}

// NewFileStore keeps the snapshot at dir/cart.json. A missing file reads as
// an empty cart.
func NewFileStore(dir string) LocalStore {
	return &fileStore{path: filepath.Join(dir, localCartFile)}
}

func (s *fileStore) Load() ([]models.CartLine, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading guest cart: %w", err)
	}

	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("decoding guest cart: %w", err)
	}

	return lines, nil
}

func (s *fileStore) Save(lines []models.CartLine) error {
	if lines == nil {
		lines = []models.CartLine{}
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encoding guest cart: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing guest cart: %w", err)
	}

	return nil
}

func (s *fileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing guest cart: %w", err)
	}

	return nil
}
