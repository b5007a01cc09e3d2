package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// collection is a file-backed ordered sequence of records of one entity
// type. The whole file is read and rewritten on every mutation, which is
// only acceptable at proof-of-concept scale. All access goes through the
// mutex, so concurrent requests against the same collection serialize
// instead of racing on the file.
type collection[T any] struct {
	path string
	mu   sync.Mutex
}

func newCollection[T any](path string) *collection[T] {
	return &collection[T]{path: path}
}

// ensure idempotently creates the containing directory and an empty
// array file if either is absent. Callers must hold c.mu.
func (c *collection[T]) ensure() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	if _, err := os.Stat(c.path); os.IsNotExist(err) {
		if err := os.WriteFile(c.path, []byte("[]"), 0o644); err != nil {
			return fmt.Errorf("create %s: %w", c.path, err)
		}
	} else if err != nil {
		return fmt.Errorf("stat %s: %w", c.path, err)
	}
	return nil
}

// read loads every record in file order. Callers must hold c.mu.
func (c *collection[T]) read() ([]T, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.path, err)
	}
	return records, nil
}

// write replaces the backing file with the given records, pretty-printed.
// The write goes to a temp file first and is renamed into place so a crash
// mid-write leaves the previous contents intact. Callers must hold c.mu.
func (c *collection[T]) write(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}
	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", c.path, err)
	}
	return nil
}

// all returns every record in insertion order. An unreadable backing file
// is an error; callers are expected to fall back to an empty collection.
func (c *collection[T]) all() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

// update runs fn over the current records under the collection lock and
// persists whatever fn returns. An unreadable file is treated as empty so
// a damaged store recovers on the next write. Returning an error from fn
// aborts without touching the file.
func (c *collection[T]) update(fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.read()
	if err != nil {
		records = nil
	}
	updated, err := fn(records)
	if err != nil {
		return err
	}
	return c.write(updated)
}
