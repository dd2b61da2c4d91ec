package tokenstore

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// File is a Store persisted as a YAML document of scope -> key -> value.
type File struct {
	path  string
	scope string
	mu    sync.Mutex
}

// NewFile creates a file-backed store for one scope.
func NewFile(path, scope string) *File {
	return &File{path: path, scope: scope}
}

func (f *File) Get(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		log.Printf("Warning: could not read token file %s: %v", f.path, err)
		return ""
	}
	return doc[f.scope][key]
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}
	if doc[f.scope] == nil {
		doc[f.scope] = make(map[string]string)
	}
	doc[f.scope][key] = value
	return f.write(doc)
}

func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := doc[f.scope][key]; !ok {
		return nil
	}
	delete(doc[f.scope], key)
	if len(doc[f.scope]) == 0 {
		delete(doc, f.scope)
	}
	return f.write(doc)
}

func (f *File) read() (map[string]map[string]string, error) {
	doc := make(map[string]map[string]string)
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.path, err)
	}
	if doc == nil {
		doc = make(map[string]map[string]string)
	}
	return doc, nil
}

// write replaces the file through a rename so readers never see a partial document.
func (f *File) write(doc map[string]map[string]string) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".tokens-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
