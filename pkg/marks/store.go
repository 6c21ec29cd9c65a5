// Package marks implements the project-scoped bookmark store: a table
// of integer slots per working directory, persisted as a single JSON
// file. Each operation works on a full snapshot: load the whole store,
// mutate it in memory, write the whole store back. The on-disk file is
// the only durable state; nothing is kept between invocations.
package marks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Project is one working directory's slot table. Keys are sparse,
// user-chosen indices with no contiguity requirement. JSON encodes them
// as decimal strings.
type Project struct {
	Files map[int]*Record `json:"files"`
}

// Store maps project roots (cleaned absolute working directories) to
// their slot tables. The zero value is not usable; obtain one via Open.
type Store struct {
	Projects map[string]*Project `json:"projects"`

	path string
}

// DefaultPath returns the default backing file location,
// ~/.grapnel/marks.json.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".grapnel", "marks.json"), nil
}

// Open reads the store from the backing file at path. A missing file is
// not an error and yields an empty store; an unreadable or malformed
// file is a hard error with no partial recovery.
func Open(path string) (*Store, error) {
	store := &Store{
		Projects: make(map[string]*Project),
		path:     path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("failed to read marks file: %w", err)
	}

	if err := json.Unmarshal(data, store); err != nil {
		return nil, fmt.Errorf("failed to decode marks file: %w", err)
	}
	if store.Projects == nil {
		store.Projects = make(map[string]*Project)
	}
	return store, nil
}

// Save serializes the entire store and overwrites the backing file.
// The write goes through a temp file and rename so a concurrent reader
// never observes a partially-written store.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create marks directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode marks: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp marks file: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp marks file: %w", err)
	}
	return nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Project returns the slot table for the given working directory,
// inserting an empty one if absent. The key is the cleaned cwd so the
// same project always maps to the same table across invocations.
func (s *Store) Project(cwd string) *Project {
	key := filepath.Clean(cwd)
	project, exists := s.Projects[key]
	if !exists {
		project = &Project{Files: make(map[int]*Record)}
		s.Projects[key] = project
	}
	if project.Files == nil {
		project.Files = make(map[int]*Record)
	}
	return project
}

// SetFile inserts or overwrites the record at index in cwd's table.
func (s *Store) SetFile(cwd string, index int, rec *Record) {
	s.Project(cwd).Files[index] = rec
}

// File looks up the record at index in cwd's table. A record whose path
// no longer exists on disk is filtered out (nil is returned); the
// pruning is a read-time liveness check only and is never persisted by
// this call.
func (s *Store) File(cwd string, index int) *Record {
	rec, exists := s.Project(cwd).Files[index]
	if !exists {
		return nil
	}
	if _, err := os.Stat(resolve(cwd, rec.Path)); err != nil {
		return nil
	}
	return rec
}

// RemoveFile removes and returns the record at index in cwd's table,
// or nil if the slot is empty.
func (s *Store) RemoveFile(cwd string, index int) *Record {
	project := s.Project(cwd)
	rec, exists := project.Files[index]
	if !exists {
		return nil
	}
	delete(project.Files, index)
	return rec
}

// resolve makes a stored (possibly root-relative) path absolute against
// the project root.
func resolve(cwd, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cwd, path)
}

// Resolve makes a stored record path absolute against the project root
// for host-facing actions such as opening the file.
func Resolve(cwd, path string) string {
	return resolve(cwd, path)
}
