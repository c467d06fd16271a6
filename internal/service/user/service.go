package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository"
	"github.com/jwalitptl/medclinic-admin/internal/service/entity"
	"github.com/jwalitptl/medclinic-admin/internal/service/lookup"
	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
	"github.com/jwalitptl/medclinic-admin/pkg/security"
)

// View is a user as the list screen shows it.
type View struct {
	*model.User
	RoleName      string   `json:"role_name"`
	FacilityNames []string `json:"facility_names"`
}

type Service struct {
	*entity.Controller[*model.User]
	lookup *lookup.Service
	hasher security.PasswordHasher
}

func NewService(repo repository.UserRepository, lookup *lookup.Service, hasher security.PasswordHasher, deps entity.Deps) *Service {
	s := &Service{lookup: lookup, hasher: hasher}
	s.Controller = entity.NewController(repo, entity.Config[*model.User]{
		Deps:       deps,
		EntityType: model.AuditEntityUser,
		Template:   model.NewUser,
		BeforeSave: s.beforeSave,
	})
	return s
}

// ListViews lists users without credentials, with role and facility
// names resolved.
func (s *Service) ListViews(ctx context.Context, filter string) ([]View, error) {
	users, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]View, 0, len(users))
	for _, u := range users {
		v, err := s.view(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *Service) GetView(ctx context.Context, id string) (View, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(ctx, u)
}

func (s *Service) view(ctx context.Context, u *model.User) (View, error) {
	roleName, err := s.lookup.RoleName(ctx, u.RoleID)
	if err != nil {
		return View{}, err
	}
	names, err := s.lookup.FacilityNames(ctx, u.FacilityIDs)
	if err != nil {
		return View{}, err
	}
	return View{User: u.Public(), RoleName: roleName, FacilityNames: names}, nil
}

// FindByUsername returns the user with username, ignoring case.
func (s *Service) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	users, err := s.Repository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user", repository.ErrNotFound)
}

func (s *Service) beforeSave(ctx context.Context, session *entity.Session[*model.User]) error {
	draft := session.Draft
	fields := map[string]string{}

	requires, err := s.lookup.RequiresSpeciality(ctx, draft.RoleID)
	if err != nil {
		return err
	}
	if !requires {
		draft.Speciality = ""
	} else if draft.Speciality == "" {
		fields["speciality"] = "is required"
	}

	if err := s.checkUsername(ctx, draft); err != nil {
		if !apperrors.Is(err, apperrors.ErrConflict) {
			return err
		}
		fields["username"] = "is already taken"
	}

	for _, ds := range draft.WorkingHours {
		if err := ds.Check(); err != nil {
			fields["working_hours."+string(ds.Day)] = err.Error()
		}
	}

	for i := range draft.Leaves {
		leave := &draft.Leaves[i]
		if leave.ID == "" {
			leave.ID = s.Deps().NewID()
		}
		if leave.EndDate < leave.StartDate {
			fields[fmt.Sprintf("leaves[%d].end_date", i)] = "must not be before start_date"
		}
	}

	if err := s.applyPassword(session); err != nil {
		if !errors.Is(err, security.ErrPasswordTooShort) {
			return err
		}
		fields["password"] = fmt.Sprintf("must be at least %d characters", security.MinPasswordLen)
	}
	if session.Mode == entity.ModeCreate && draft.PasswordHash == "" && fields["password"] == "" {
		fields["password"] = "is required"
	}

	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}

// applyPassword hashes a new password onto the draft. Without one, an
// edit keeps the stored hash and a create keeps none.
func (s *Service) applyPassword(session *entity.Session[*model.User]) error {
	draft := session.Draft
	plain := draft.Password
	draft.Password = ""
	draft.PasswordHash = ""
	if session.Mode == entity.ModeEdit {
		draft.PasswordHash = session.Original().PasswordHash
	}
	if plain == "" {
		return nil
	}
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return err
	}
	draft.PasswordHash = hash
	return nil
}

func (s *Service) checkUsername(ctx context.Context, draft *model.User) error {
	existing, err := s.FindByUsername(ctx, draft.Username)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != draft.ID {
		return apperrors.Conflict("username already taken")
	}
	return nil
}
