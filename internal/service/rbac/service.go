package rbac

import (
	"context"
	"fmt"
	"sync"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository"
	"github.com/jwalitptl/medclinic-admin/internal/service/entity"
	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
)

// Service manages roles and their permission grids.
type Service struct {
	*entity.Controller[*model.Role]

	// toggleMu serialises the read-modify-write in TogglePermission within
	// this process. Replicas sharing a store can still race.
	toggleMu sync.Mutex
}

func NewService(repo repository.RoleRepository, deps entity.Deps) *Service {
	s := &Service{}
	s.Controller = entity.NewController(repo, entity.Config[*model.Role]{
		Deps:       deps,
		EntityType: model.AuditEntityRole,
		Template:   model.NewRole,
		BeforeSave: s.beforeSave,
	})
	return s
}

func (s *Service) Screens() []model.Screen {
	return append([]model.Screen(nil), model.Screens...)
}

// TogglePermission flips one cell of a role's grid and saves the role.
func (s *Service) TogglePermission(ctx context.Context, roleID, screenID string, action model.Action) (*model.Role, error) {
	if !KnownScreen(screenID) {
		return nil, apperrors.BadRequest(fmt.Sprintf("unknown screen %q", screenID), nil)
	}
	if !action.Valid() {
		return nil, apperrors.BadRequest(fmt.Sprintf("unknown action %q", action), nil)
	}

	s.toggleMu.Lock()
	defer s.toggleMu.Unlock()

	session, err := s.OpenEdit(ctx, roleID)
	if err != nil {
		return nil, err
	}
	session.Draft.Permissions = Toggle(session.Draft.Permissions, screenID, action)
	return s.Submit(ctx, session)
}

func (s *Service) beforeSave(_ context.Context, session *entity.Session[*model.Role]) error {
	for _, p := range session.Draft.Permissions {
		if !KnownScreen(p.ScreenID) {
			return apperrors.Validation(map[string]string{"permissions": fmt.Sprintf("unknown screen %q", p.ScreenID)})
		}
	}
	session.Draft.Permissions = Normalize(session.Draft.Permissions)
	return nil
}
