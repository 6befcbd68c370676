// Package memory is an in-process storage.Storage used by tests and by the
// "memory" storage driver. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/aanand-mishra/student-registry/internal/types"
)

type Store struct {
	mu       sync.RWMutex
	students []types.Student
	written  bool

	// Writes counts successful WriteAll calls.
	Writes int

	// ReadErr and WriteErr, when set, are returned by the next calls.
	ReadErr  error
	WriteErr error
}

func New(seed ...types.Student) *Store {
	return &Store{students: clone(seed), written: len(seed) > 0}
}

func (s *Store) ReadAll(ctx context.Context) ([]types.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	return clone(s.students), nil
}

func (s *Store) WriteAll(ctx context.Context, students []types.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.students = clone(students)
	s.written = true
	s.Writes++
	return nil
}

func (s *Store) Seed(ctx context.Context, students []types.Student) (bool, error) {
	s.mu.RLock()
	written := s.written
	s.mu.RUnlock()

	if written {
		return false, nil
	}
	if err := s.WriteAll(ctx, students); err != nil {
		return false, err
	}
	return true, nil
}

func clone(in []types.Student) []types.Student {
	out := make([]types.Student, len(in))
	copy(out, in)
	return out
}
