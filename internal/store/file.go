package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// stateFile is the on-disk layout of a File store.
type stateFile struct {
	Entries map[string]string `toml:"entries"`
}

// File is a KV persisted as a TOML document. Every Set or Delete rewrites the
// whole file through a temporary file and a rename.
type File struct {
	path string

	mu     sync.Mutex
	loaded bool
	values map[string]string
}

// NewFile returns a store backed by the TOML file at path. The file and its
// directory are created on the first write.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.load(); err != nil {
		return "", err
	}
	v, ok := f.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.load(); err != nil {
		return err
	}
	f.values[key] = value
	return f.flush()
}

func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.load(); err != nil {
		return err
	}
	if _, ok := f.values[key]; !ok {
		return nil
	}
	delete(f.values, key)
	return f.flush()
}

func (f *File) load() error {
	if f.loaded {
		return nil
	}

	var state stateFile
	if _, err := toml.DecodeFile(f.path, &state); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error decoding state file: %w", err)
	}
	f.values = state.Entries
	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.loaded = true
	return nil
}

func (f *File) flush() error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.toml")
	if err != nil {
		return fmt.Errorf("error creating state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(stateFile{Entries: f.values}); err != nil {
		tmp.Close()
		return fmt.Errorf("error encoding state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("error replacing state file: %w", err)
	}
	return nil
}
