// Package entity implements the list and editor behaviour shared by every
// admin screen: filtered listing, create and edit sessions over a private
// draft, submit and delete.
package entity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository"
	"github.com/jwalitptl/medclinic-admin/internal/service/audit"
	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
	"github.com/jwalitptl/medclinic-admin/pkg/logger"
	"github.com/jwalitptl/medclinic-admin/pkg/validator"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Session is an open editor. Draft is a private copy; nothing reaches the
// repository until Submit.
type Session[T model.Entity[T]] struct {
	Mode     Mode
	Draft    T
	original T
	closed   bool
}

// Original returns a copy of the record the edit session was opened on.
// It is the zero value for create sessions.
func (s *Session[T]) Original() T {
	var zero T
	if s.Mode != ModeEdit {
		return zero
	}
	return s.original.Clone()
}

// Hook runs inside Submit after required-field validation and before the
// write. It may normalise the draft or reject it.
type Hook[T model.Entity[T]] func(ctx context.Context, s *Session[T]) error

// Deps are the collaborators shared by every controller.
type Deps struct {
	Validator validator.Validator
	Auditor   audit.Recorder
	Logger    *logger.Logger
	Now       func() time.Time
	NewID     func() string
}

type Config[T model.Entity[T]] struct {
	Deps
	// EntityType names the records in errors and the audit trail.
	EntityType string
	Template   func() T
	BeforeSave Hook[T]
}

type Controller[T model.Entity[T]] struct {
	repo repository.Repository[T]
	cfg  Config[T]
}

func NewController[T model.Entity[T]](repo repository.Repository[T], cfg Config[T]) *Controller[T] {
	cfg.Deps = cfg.Deps.withDefaults()
	return &Controller[T]{repo: repo, cfg: cfg}
}

func (d Deps) withDefaults() Deps {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = func() string { return uuid.New().String() }
	}
	if d.Validator == nil {
		d.Validator = validator.New()
	}
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	return d
}

// Repository exposes the underlying store to services built on the controller.
func (c *Controller[T]) Repository() repository.Repository[T] {
	return c.repo
}

// Deps returns the collaborators the controller was built with.
func (c *Controller[T]) Deps() Deps {
	return c.cfg.Deps
}

// List returns records whose search fields contain filter, ignoring case,
// in insertion order. An empty filter returns everything.
func (c *Controller[T]) List(ctx context.Context, filter string) ([]T, error) {
	items, err := c.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.cfg.EntityType, err)
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if model.Matches(item.SearchFields(), filter) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (c *Controller[T]) Get(ctx context.Context, id string) (T, error) {
	item, err := c.repo.Get(ctx, id)
	if err != nil {
		var zero T
		if errors.Is(err, repository.ErrNotFound) {
			return zero, apperrors.NotFound(c.cfg.EntityType, err)
		}
		return zero, fmt.Errorf("failed to get %s: %w", c.cfg.EntityType, err)
	}
	return item, nil
}

// OpenCreate starts a session on a fresh copy of the empty template.
func (c *Controller[T]) OpenCreate() *Session[T] {
	return &Session[T]{Mode: ModeCreate, Draft: c.cfg.Template()}
}

// OpenEdit loads id and starts a session on a copy of it.
func (c *Controller[T]) OpenEdit(ctx context.Context, id string) (*Session[T], error) {
	item, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.OpenEditRecord(item), nil
}

// OpenEditRecord starts a session on a copy of record.
func (c *Controller[T]) OpenEditRecord(record T) *Session[T] {
	return &Session[T]{Mode: ModeEdit, Draft: record.Clone(), original: record.Clone()}
}

// Submit commits the draft. Edit sessions replace the record under the
// original id whatever the draft id says; create sessions get a new id and
// are appended. The session is closed afterwards.
func (c *Controller[T]) Submit(ctx context.Context, s *Session[T]) (T, error) {
	var zero T
	if s.closed {
		return zero, apperrors.Conflict("editor session already closed")
	}

	draft := s.Draft
	if s.Mode == ModeEdit {
		orig := s.original.Meta()
		meta := draft.Meta()
		meta.ID = orig.ID
		meta.CreatedAt = orig.CreatedAt
	} else {
		*draft.Meta() = model.Base{}
	}

	if err := c.cfg.Validator.Validate(draft); err != nil {
		return zero, err
	}
	if c.cfg.BeforeSave != nil {
		if err := c.cfg.BeforeSave(ctx, s); err != nil {
			return zero, err
		}
	}

	now := c.cfg.Now()
	action := model.AuditActionUpdate
	if s.Mode == ModeEdit {
		draft.Meta().Stamp(now)
		if err := c.repo.Update(ctx, draft); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return zero, apperrors.NotFound(c.cfg.EntityType, err)
			}
			return zero, fmt.Errorf("failed to update %s: %w", c.cfg.EntityType, err)
		}
	} else {
		action = model.AuditActionCreate
		draft.SetID(c.cfg.NewID())
		draft.Meta().Stamp(now)
		if err := c.repo.Add(ctx, draft); err != nil {
			return zero, fmt.Errorf("failed to create %s: %w", c.cfg.EntityType, err)
		}
	}

	s.closed = true
	c.record(ctx, action, draft.GetID())
	return draft.Clone(), nil
}

// Delete removes id. Deleting a missing record succeeds and leaves no
// audit entry.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	removed, err := c.repo.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", c.cfg.EntityType, err)
	}
	if removed {
		c.record(ctx, model.AuditActionDelete, id)
	}
	return nil
}

func (c *Controller[T]) record(ctx context.Context, action, id string) {
	c.cfg.Logger.Debug("entity changed", "entity", c.cfg.EntityType, "action", action, "id", id)
	if c.cfg.Auditor != nil {
		c.cfg.Auditor.Record(ctx, action, c.cfg.EntityType, id)
	}
}
