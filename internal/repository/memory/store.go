package memory

import (
	"context"
	"sync"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository"
)

// Store keeps records in insertion order behind a RWMutex.
type Store[T model.Entity[T]] struct {
	mu    sync.RWMutex
	items []T
}

func NewStore[T model.Entity[T]]() *Store[T] {
	return &Store[T]{}
}

func (s *Store[T]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out, nil
}

func (s *Store[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i].Clone(), nil
	}
	var zero T
	return zero, repository.ErrNotFound
}

func (s *Store[T]) Add(_ context.Context, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(item.GetID()) >= 0 {
		return repository.ErrDuplicate
	}
	s.items = append(s.items, item.Clone())
	return nil
}

func (s *Store[T]) Update(_ context.Context, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(item.GetID())
	if i < 0 {
		return repository.ErrNotFound
	}
	s.items[i] = item.Clone()
	return nil
}

func (s *Store[T]) Remove(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true, nil
}

func (s *Store[T]) indexOf(id string) int {
	for i, item := range s.items {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}

// NewRepositories returns empty in-memory repositories for every kind.
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		Appointments:  NewStore[*model.Appointment](),
		Patients:      NewStore[*model.Patient](),
		Facilities:    NewStore[*model.Facility](),
		Organizations: NewStore[*model.Organization](),
		Roles:         NewStore[*model.Role](),
		Users:         NewStore[*model.User](),
		Specialities:  NewStore[*model.Speciality](),
	}
}
