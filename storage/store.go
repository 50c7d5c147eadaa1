package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Record is one flat id-keyed entry in a store: known field names mapped to
// primitive or list values. Typed validation lives in the repository layer.
type Record map[string]any

// MergeMode controls how Write combines a partial record with the stored one.
type MergeMode int

const (
	// Merge overwrites only the fields present in the partial record.
	Merge MergeMode = iota
	// Replace discards the stored record entirely.
	Replace
)

// Store is a durable mapping from an entity id to a flat record, backed by a
// single JSON file. There is no in-memory cache: every call reads and/or
// writes the full table.
//
// All writes on a store go through one mutex, so the read-modify-write cycle
// of Write/Update can never lose a concurrent update to the same table.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store backed by the JSON file at path. The file is not
// created until the first write.
func New(path string) *Store {
	return &Store{path: path}
}

// ReadAll returns the full table. A nonexistent or empty backing file yields
// an empty map; a corrupt file is treated as empty after logging its contents.
// It never fails.
func (s *Store) ReadAll() map[string]Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

// Read returns a single field of the record at id. The second return value is
// false if the record or the field is absent.
func (s *Store) Read(id, field string) (any, bool) {
	all := s.ReadAll()
	record, ok := all[id]
	if !ok {
		return nil, false
	}
	value, ok := record[field]
	return value, ok
}

// Write merges or replaces the record at id and persists the full table.
func (s *Store) Write(id string, partial Record, mode MergeMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.readAll()
	record := all[id]
	if record == nil || mode == Replace {
		record = Record{}
	}
	for field, value := range partial {
		record[field] = value
	}
	all[id] = record

	return s.persist(all)
}

// Update applies fn to the record at id (an empty record if absent) and
// persists the result. The whole read-modify-write runs under the store lock,
// so updates that depend on the current value (counters, set unions) cannot
// be overwritten by a concurrent writer.
func (s *Store) Update(id string, fn func(Record) Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.readAll()
	record := all[id]
	if record == nil {
		record = Record{}
	}
	all[id] = fn(record)

	return s.persist(all)
}

// readAll loads the table without locking; callers hold s.mu.
func (s *Store) readAll() map[string]Record {
	all := make(map[string]Record)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithFields(log.Fields{
				"path":  s.path,
				"error": err,
			}).Error("Failed to read store file, treating as empty")
		}
		return all
	}

	// UseNumber keeps ids exact: Discord snowflakes exceed 2^53, so
	// decoding them as float64 would silently round them.
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&all); err != nil {
		if strings.TrimSpace(string(data)) == "" {
			log.WithField("path", s.path).Warn("Store file is empty")
		} else {
			// Keep the corrupt contents in the log before they get
			// overwritten by the next write.
			log.WithFields(log.Fields{
				"path":     s.path,
				"contents": string(data),
				"error":    err,
			}).Error("Corrupted store file, resetting table to empty")
		}
		return make(map[string]Record)
	}

	return all
}

// persist writes the full table atomically via a temp file rename, sorted
// keys and 4-space indent matching the historical on-disk layout.
func (s *Store) persist(all map[string]Record) error {
	data, err := json.MarshalIndent(all, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode store %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", s.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file for %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace store file %s: %w", s.path, err)
	}

	return nil
}
