// Package pkg provides shared utilities for extract-infor.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Spill buffers records of type T in a temporary gob file so a corpus run can
// collect per-field audit detail without holding it all in memory. Append is
// safe for concurrent use; Range must not run concurrently with Append.
type Spill[T any] struct {
	mu      sync.Mutex
	file    *os.File
	encoder *gob.Encoder
	length  int
	closed  bool
}

// NewSpill creates a Spill backed by a temp file with the given name pattern.
func NewSpill[T any](pattern string) (*Spill[T], error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return nil, fmt.Errorf("create spill file: %w", err)
	}

	return &Spill[T]{file: file, encoder: gob.NewEncoder(file)}, nil
}

// Append writes one record to the spill.
func (s *Spill[T]) Append(record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("spill is closed")
	}

	if err := s.encoder.Encode(record); err != nil {
		return fmt.Errorf("encode spill record: %w", err)
	}

	s.length++

	return nil
}

// Len returns the number of records appended so far.
func (s *Spill[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.length
}

// Range re-reads the spill from the start and calls fn for every record in
// append order, stopping at the first error.
func (s *Spill[T]) Range(fn func(record T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reader, err := os.Open(s.file.Name())
	if err != nil {
		return fmt.Errorf("open spill for read: %w", err)
	}

	defer func() {
		_ = reader.Close()
	}()

	decoder := gob.NewDecoder(reader)

	for {
		var record T

		err := decoder.Decode(&record)
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("decode spill record: %w", err)
		}

		if err := fn(record); err != nil {
			return err
		}
	}
}

// Close removes the backing file. The spill is unusable afterwards.
func (s *Spill[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	if err := s.file.Close(); err != nil {
		return err
	}

	return os.Remove(s.file.Name())
}
