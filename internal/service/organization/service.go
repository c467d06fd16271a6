package organization

import (
	"context"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository"
	"github.com/jwalitptl/medclinic-admin/internal/service/entity"
	"github.com/jwalitptl/medclinic-admin/internal/service/lookup"
)

// View is an organization with its facility names resolved.
type View struct {
	*model.Organization
	FacilityNames []string `json:"facility_names"`
}

type Service struct {
	*entity.Controller[*model.Organization]
	lookup *lookup.Service
}

func NewService(repo repository.OrganizationRepository, lookup *lookup.Service, deps entity.Deps) *Service {
	s := &Service{lookup: lookup}
	s.Controller = entity.NewController(repo, entity.Config[*model.Organization]{
		Deps:       deps,
		EntityType: model.AuditEntityOrganization,
		Template:   model.NewOrganization,
		BeforeSave: s.beforeSave,
	})
	return s
}

func (s *Service) ListViews(ctx context.Context, filter string) ([]View, error) {
	orgs, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]View, 0, len(orgs))
	for _, o := range orgs {
		names, err := s.lookup.FacilityNames(ctx, o.FacilityIDs)
		if err != nil {
			return nil, err
		}
		out = append(out, View{Organization: o, FacilityNames: names})
	}
	return out, nil
}

func (s *Service) GetView(ctx context.Context, id string) (View, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	names, err := s.lookup.FacilityNames(ctx, o.FacilityIDs)
	if err != nil {
		return View{}, err
	}
	return View{Organization: o, FacilityNames: names}, nil
}

// beforeSave drops blank and repeated facility ids, keeping first-seen order.
func (s *Service) beforeSave(_ context.Context, session *entity.Session[*model.Organization]) error {
	ids := session.Draft.FacilityIDs
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	session.Draft.FacilityIDs = out
	return nil
}
