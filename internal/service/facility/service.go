package facility

import (
	"context"
	"fmt"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository"
	"github.com/jwalitptl/medclinic-admin/internal/service/entity"
	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
)

type Service struct {
	*entity.Controller[*model.Facility]
}

func NewService(repo repository.FacilityRepository, deps entity.Deps) *Service {
	s := &Service{}
	s.Controller = entity.NewController(repo, entity.Config[*model.Facility]{
		Deps:       deps,
		EntityType: model.AuditEntityFacility,
		Template:   model.NewFacility,
		BeforeSave: s.beforeSave,
	})
	return s
}

func (s *Service) beforeSave(_ context.Context, session *entity.Session[*model.Facility]) error {
	draft := session.Draft
	fields := map[string]string{}

	seen := make(map[model.Weekday]bool, len(draft.WorkingHours))
	for _, h := range draft.WorkingHours {
		if seen[h.Day] {
			fields["working_hours."+string(h.Day)] = "listed more than once"
			continue
		}
		seen[h.Day] = true
		if err := h.Check(); err != nil {
			fields["working_hours."+string(h.Day)] = err.Error()
		}
	}

	dates := make(map[string]bool, len(draft.Holidays))
	for i := range draft.Holidays {
		holiday := &draft.Holidays[i]
		if holiday.ID == "" {
			holiday.ID = s.Deps().NewID()
		}
		if dates[holiday.Date] {
			fields[fmt.Sprintf("holidays[%d].date", i)] = "duplicates another holiday"
		}
		dates[holiday.Date] = true
	}

	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}

// IsOpen reports whether the facility accepts visitors on date, taking
// holidays and the weekly hours into account.
func (s *Service) IsOpen(ctx context.Context, facilityID, date string) (bool, error) {
	f, err := s.Get(ctx, facilityID)
	if err != nil {
		return false, err
	}
	day, err := model.ParseDate(date)
	if err != nil {
		return false, apperrors.BadRequest("invalid date", err)
	}
	for _, h := range f.Holidays {
		if h.Date == date {
			return false, nil
		}
	}
	weekday := model.WeekdayOf(day)
	for _, h := range f.WorkingHours {
		if h.Day == weekday {
			return h.IsOpen, nil
		}
	}
	return false, nil
}
