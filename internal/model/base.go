package model

import (
	"strings"
	"time"
)

// Entity is implemented by every record the admin screens list and edit.
// T is the pointer type of the record itself.
type Entity[T any] interface {
	GetID() string
	SetID(id string)
	Meta() *Base
	Clone() T
	SearchFields() []string
}

// Base contains common fields for all models
type Base struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (b *Base) GetID() string { return b.ID }

func (b *Base) SetID(id string) { b.ID = id }

func (b *Base) Meta() *Base { return b }

// Stamp sets CreatedAt on first write and UpdatedAt on every write.
func (b *Base) Stamp(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Matches reports whether any field contains filter, ignoring case.
// An empty filter matches everything.
func Matches(fields []string, filter string) bool {
	if filter == "" {
		return true
	}
	needle := strings.ToLower(filter)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
