package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/pkg/reqctx"
)

// Recorder is what mutating services depend on.
type Recorder interface {
	Record(ctx context.Context, action, entityType, entityID string)
}

// Service writes the audit trail through zap and keeps the most recent
// entries in memory for the audit screen.
type Service struct {
	log      *zap.Logger
	now      func() time.Time
	mu       sync.Mutex
	recent   []model.AuditEntry
	capacity int
}

func NewService(log *zap.Logger, capacity int) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if capacity <= 0 {
		capacity = 500
	}
	return &Service{log: log, now: time.Now, capacity: capacity}
}

// NewZapLogger builds a JSON production logger writing to paths.
func NewZapLogger(paths []string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if len(paths) > 0 {
		cfg.OutputPaths = paths
	}
	cfg.Sampling = nil
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build audit logger: %w", err)
	}
	return log.Named("audit"), nil
}

func (s *Service) Record(ctx context.Context, action, entityType, entityID string) {
	entry := model.AuditEntry{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    reqctx.Actor(ctx),
		RequestID:  reqctx.RequestID(ctx),
		At:         s.now(),
	}

	s.log.Info("entity changed",
		zap.String("action", entry.Action),
		zap.String("entity_type", entry.EntityType),
		zap.String("entity_id", entry.EntityID),
		zap.String("actor_id", entry.ActorID),
		zap.String("request_id", entry.RequestID),
		zap.Time("at", entry.At),
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = append(s.recent, entry)
	if over := len(s.recent) - s.capacity; over > 0 {
		s.recent = append([]model.AuditEntry(nil), s.recent[over:]...)
	}
}

// Recent returns retained entries newest first, optionally narrowed to
// one entity type and id.
func (s *Service) Recent(entityType, entityID string) []model.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.AuditEntry, 0, len(s.recent))
	for i := len(s.recent) - 1; i >= 0; i-- {
		e := s.recent[i]
		if entityType != "" && e.EntityType != entityType {
			continue
		}
		if entityID != "" && e.EntityID != entityID {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *Service) Sync() error {
	return s.log.Sync()
}
