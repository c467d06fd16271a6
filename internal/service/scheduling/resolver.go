// Package scheduling narrows the doctor choice by speciality and resolves a
// doctor's bookable slots for a date from their weekly schedule.
package scheduling

import (
	"context"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
)

// Resolver has no view of booked appointments; it never removes taken slots.
type Resolver struct {
	source DoctorSource
}

func NewResolver(source DoctorSource) *Resolver {
	return &Resolver{source: source}
}

// DoctorsFor returns doctors whose speciality equals speciality exactly.
// An empty speciality matches nobody.
func (r *Resolver) DoctorsFor(ctx context.Context, speciality string) ([]model.Doctor, error) {
	out := []model.Doctor{}
	if speciality == "" {
		return out, nil
	}
	doctors, err := r.source.Doctors(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range doctors {
		if d.Speciality == speciality {
			out = append(out, d)
		}
	}
	return out, nil
}

// Doctor returns the doctor with id.
func (r *Resolver) Doctor(ctx context.Context, id string) (model.Doctor, bool, error) {
	doctors, err := r.source.Doctors(ctx)
	if err != nil {
		return model.Doctor{}, false, err
	}
	for _, d := range doctors {
		if d.ID == id {
			return d, true, nil
		}
	}
	return model.Doctor{}, false, nil
}

// SlotsFor returns the slot list stored for the weekday of date, or an
// empty list when the doctor is unknown or does not work that day. date
// must be YYYY-MM-DD.
func (r *Resolver) SlotsFor(ctx context.Context, doctorID, date string) ([]string, error) {
	day, err := model.ParseDate(date)
	if err != nil {
		return nil, apperrors.BadRequest("date must be YYYY-MM-DD", err)
	}
	doc, ok, err := r.Doctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}
	slots := doc.SlotsOn(model.WeekdayOf(day))
	if slots == nil {
		return []string{}, nil
	}
	return slots, nil
}
