package patient

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
	*entity.Controller[*model.Patient]
}

func NewService(repo repository.PatientRepository, deps entity.Deps) *Service {
	s := &Service{}
	s.Controller = entity.NewController(repo, entity.Config[*model.Patient]{
		Deps:       deps,
		EntityType: model.AuditEntityPatient,
		Template:   model.NewPatient,
		BeforeSave: s.beforeSave,
	})
	return s
}

// beforeSave issues an MRN to patients that have none and keeps MRNs unique.
func (s *Service) beforeSave(ctx context.Context, session *entity.Session[*model.Patient]) error {
	draft := session.Draft
	patients, err := s.Repository().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list patients: %w", err)
	}

	taken := make(map[string]bool, len(patients))
	for _, p := range patients {
		if p.ID != draft.ID && p.MRN != "" {
			taken[strings.ToUpper(p.MRN)] = true
		}
	}

	draft.MRN = strings.TrimSpace(draft.MRN)
	if draft.MRN == "" {
		draft.MRN = nextMRN(len(patients), taken)
		return nil
	}
	if taken[strings.ToUpper(draft.MRN)] {
		return apperrors.Validation(map[string]string{"mrn": "is already assigned to another patient"})
	}
	return nil
}

func nextMRN(count int, taken map[string]bool) string {
	for n := count + 1; ; n++ {
		mrn := fmt.Sprintf("MRN%06d", n)
		if !taken[mrn] {
			return mrn
		}
	}
}
