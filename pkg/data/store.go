package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

const blobKey = "micropost.json"

// Store persists the blob under a diskv base path, one key holding the
// whole JSON document.
type Store struct {
	d *diskv.Diskv
}

func NewStore(basePath string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

// Load reads the blob, returning a fresh default one if nothing is
// persisted yet. Saved settings are layered over the defaults so options
// added after the blob was written still get their default values.
func (s *Store) Load() (*Data, error) {
	raw, err := s.d.Read(blobKey)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("data: read blob: %w", err)
	}

	d := New()
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, fmt.Errorf("data: decode blob: %w", err)
	}
	if d.Entries == nil {
		d.Entries = map[string]Meta{}
	}
	return d, nil
}

// Save rewrites the whole blob.
func (s *Store) Save(d *Data) error {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("data: encode blob: %w", err)
	}
	if err := s.d.Write(blobKey, raw); err != nil {
		return fmt.Errorf("data: write blob: %w", err)
	}
	return nil
}
