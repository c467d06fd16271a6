package speciality

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository"
	"github.com/jwalitptl/medclinic-admin/internal/service/entity"
	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
)

type Service struct {
	*entity.Controller[*model.Speciality]
}

func NewService(repo repository.SpecialityRepository, deps entity.Deps) *Service {
	s := &Service{}
	s.Controller = entity.NewController(repo, entity.Config[*model.Speciality]{
		Deps:       deps,
		EntityType: model.AuditEntitySpeciality,
		Template:   model.NewSpeciality,
		BeforeSave: s.beforeSave,
	})
	return s
}

// Names returns every speciality name in list order.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	items, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names, nil
}

func (s *Service) beforeSave(ctx context.Context, session *entity.Session[*model.Speciality]) error {
	draft := session.Draft
	draft.Code = strings.ToUpper(strings.TrimSpace(draft.Code))
	draft.Name = strings.TrimSpace(draft.Name)

	items, err := s.Repository().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list specialities: %w", err)
	}
	for _, item := range items {
		if item.ID != draft.ID && item.Code == draft.Code {
			return apperrors.Validation(map[string]string{"code": "is already in use"})
		}
	}
	return nil
}
