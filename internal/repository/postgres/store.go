package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository"
)

// Store keeps one kind as JSONB documents in the shared records table,
// ordered by insertion sequence.
type Store[T model.Entity[T]] struct {
	db    *sqlx.DB
	kind  string
	newFn func() T
}

func NewStore[T model.Entity[T]](db *sqlx.DB, kind string, newFn func() T) *Store[T] {
	return &Store[T]{db: db, kind: kind, newFn: newFn}
}

func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	query := `SELECT doc FROM records WHERE kind = $1 ORDER BY seq`

	var docs [][]byte
	if err := s.db.SelectContext(ctx, &docs, query, s.kind); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.kind, err)
	}

	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, err := s.decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *Store[T]) Get(ctx context.Context, id string) (T, error) {
	query := `SELECT doc FROM records WHERE kind = $1 AND id = $2`

	var zero T
	var doc []byte
	if err := s.db.GetContext(ctx, &doc, query, s.kind, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, repository.ErrNotFound
		}
		return zero, fmt.Errorf("failed to get %s: %w", s.kind, err)
	}
	return s.decode(doc)
}

func (s *Store[T]) Add(ctx context.Context, item T) error {
	query := `INSERT INTO records (kind, id, doc) VALUES ($1, $2, $3)`

	doc, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", s.kind, err)
	}
	if _, err := s.db.ExecContext(ctx, query, s.kind, item.GetID(), doc); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert %s: %w", s.kind, err)
	}
	return nil
}

func (s *Store[T]) Update(ctx context.Context, item T) error {
	query := `UPDATE records SET doc = $3 WHERE kind = $1 AND id = $2`

	doc, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", s.kind, err)
	}
	result, err := s.db.ExecContext(ctx, query, s.kind, item.GetID(), doc)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", s.kind, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store[T]) Remove(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM records WHERE kind = $1 AND id = $2`

	result, err := s.db.ExecContext(ctx, query, s.kind, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", s.kind, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (s *Store[T]) decode(doc []byte) (T, error) {
	item := s.newFn()
	if err := json.Unmarshal(doc, item); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to decode %s: %w", s.kind, err)
	}
	return item, nil
}

// NewRepositories returns postgres backed repositories for every kind.
func NewRepositories(db *sqlx.DB) *repository.Repositories {
	return &repository.Repositories{
		Appointments:  NewStore(db, repository.KindAppointment, alloc[model.Appointment]),
		Patients:      NewStore(db, repository.KindPatient, alloc[model.Patient]),
		Facilities:    NewStore(db, repository.KindFacility, alloc[model.Facility]),
		Organizations: NewStore(db, repository.KindOrganization, alloc[model.Organization]),
		Roles:         NewStore(db, repository.KindRole, alloc[model.Role]),
		Users:         NewStore(db, repository.KindUser, alloc[model.User]),
		Specialities:  NewStore(db, repository.KindSpeciality, alloc[model.Speciality]),
	}
}

func alloc[E any]() *E { return new(E) }
