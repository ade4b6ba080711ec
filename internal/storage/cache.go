package storage

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// GobCache stores each artifact as a gob file under a single directory.
// Writes go through a temp file and rename so a crashed build never
// leaves a half-written artifact behind.
type GobCache struct {
	dir string
}

func NewGobCache(dir string) *GobCache {
	return &GobCache{dir: dir}
}

func (c *GobCache) Load(name string, v any) error {
	f, err := os.Open(c.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("artifact %q: %w", name, ErrCacheMiss)
		}
		return fmt.Errorf("error opening artifact %q: %w", name, err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("error decoding artifact %q: %w", name, err)
	}
	return nil
}

func (c *GobCache) Store(name string, v any) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("error creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp artifact %q: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("error encoding artifact %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing artifact %q: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), c.path(name)); err != nil {
		return fmt.Errorf("error replacing artifact %q: %w", name, err)
	}
	return nil
}

func (c *GobCache) path(name string) string {
	return filepath.Join(c.dir, name+".gob")
}
