package appointment

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository"
	"github.com/jwalitptl/medclinic-admin/internal/service/entity"
	"github.com/jwalitptl/medclinic-admin/internal/service/scheduling"
	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
)

const numberPrefix = "APT"

// Service stores appointments. Submit checks the doctor and slot against
// the scheduling resolver and flags, but does not refuse, a slot that is
// already taken.
type Service struct {
	*entity.Controller[*model.Appointment]
	resolver *scheduling.Resolver
}

func NewService(repo repository.AppointmentRepository, resolver *scheduling.Resolver, deps entity.Deps) *Service {
	s := &Service{resolver: resolver}
	s.Controller = entity.NewController(repo, entity.Config[*model.Appointment]{
		Deps:       deps,
		EntityType: model.AuditEntityAppointment,
		Template:   model.NewAppointment,
		BeforeSave: s.beforeSave,
	})
	return s
}

// NewNumber returns an appointment number derived from the current time.
func (s *Service) NewNumber() string {
	return numberPrefix + strconv.FormatInt(s.Deps().Now().UnixMilli(), 10)
}

// Today is the current calendar date in YYYY-MM-DD form.
func (s *Service) Today() string {
	return s.Deps().Now().Format(model.DateLayout)
}

func (s *Service) beforeSave(ctx context.Context, session *entity.Session[*model.Appointment]) error {
	draft := session.Draft
	if draft.Insurance != nil && *draft.Insurance == (model.Insurance{}) {
		draft.Insurance = nil
	}

	if s.scheduleChanged(session) {
		if err := s.checkSchedule(ctx, draft); err != nil {
			return err
		}
	}

	existing, err := s.Repository().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list appointments: %w", err)
	}
	s.assignNumber(draft, existing)

	draft.DoubleBooked = false
	if draft.Status == model.AppointmentStatusCancelled {
		return nil
	}
	for _, other := range existing {
		if other.ID != draft.ID && other.Occupies(draft.DoctorID, draft.Date, draft.Time) {
			draft.DoubleBooked = true
			s.Deps().Logger.Warn("appointment double booked",
				"doctor_id", draft.DoctorID,
				"date", draft.Date,
				"time", draft.Time,
				"conflicts_with", other.ID,
			)
			break
		}
	}
	return nil
}

// scheduleChanged is true for new appointments and for edits that move the
// appointment to another doctor, speciality, date or time.
func (s *Service) scheduleChanged(session *entity.Session[*model.Appointment]) bool {
	if session.Mode == entity.ModeCreate {
		return true
	}
	orig, draft := session.Original(), session.Draft
	return orig.DoctorID != draft.DoctorID ||
		orig.Speciality != draft.Speciality ||
		orig.Date != draft.Date ||
		orig.Time != draft.Time
}

func (s *Service) checkSchedule(ctx context.Context, a *model.Appointment) error {
	fields := map[string]string{}
	if a.Date < s.Today() {
		fields["date"] = "must not be in the past"
	}

	doctors, err := s.resolver.DoctorsFor(ctx, a.Speciality)
	if err != nil {
		return err
	}
	if !containsDoctor(doctors, a.DoctorID) {
		fields["doctor_id"] = fmt.Sprintf("is not a %s doctor", a.Speciality)
	} else {
		slots, err := s.resolver.SlotsFor(ctx, a.DoctorID, a.Date)
		if err != nil {
			return err
		}
		if !contains(slots, a.Time) {
			fields["time"] = "is not one of the doctor's slots on that date"
		}
	}

	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}

// assignNumber keeps appointment numbers unique, issuing a fresh one when
// the draft has none or its number is already used by another record.
func (s *Service) assignNumber(a *model.Appointment, existing []*model.Appointment) {
	taken := make(map[string]bool, len(existing))
	for _, other := range existing {
		if other.ID != a.ID {
			taken[other.AppointmentNumber] = true
		}
	}
	if a.AppointmentNumber != "" && !taken[a.AppointmentNumber] {
		return
	}
	millis := s.Deps().Now().UnixMilli()
	for {
		n := numberPrefix + strconv.FormatInt(millis, 10)
		if !taken[n] {
			a.AppointmentNumber = n
			return
		}
		millis++
	}
}

func containsDoctor(doctors []model.Doctor, id string) bool {
	for _, d := range doctors {
		if d.ID == id {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// Upcoming lists active appointments of a doctor from date onwards,
// ordered by date and time.
func (s *Service) Upcoming(ctx context.Context, doctorID, date string) ([]*model.Appointment, error) {
	if _, err := model.ParseDate(date); err != nil {
		return nil, apperrors.BadRequest("date must be YYYY-MM-DD", err)
	}
	all, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	out := []*model.Appointment{}
	for _, a := range all {
		if a.DoctorID == doctorID && a.Date >= date && a.Status != model.AppointmentStatusCancelled {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}
