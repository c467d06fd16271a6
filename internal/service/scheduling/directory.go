package scheduling

import (
	"context"
	"fmt"
	"sort"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository"
	"github.com/jwalitptl/medclinic-admin/internal/service/lookup"
)

// DoctorSource supplies the doctors the resolver schedules against.
type DoctorSource interface {
	Doctors(ctx context.Context) ([]model.Doctor, error)
}

// StaticDirectory serves a fixed doctor list.
type StaticDirectory struct {
	doctors []model.Doctor
}

func NewStaticDirectory(doctors []model.Doctor) *StaticDirectory {
	return &StaticDirectory{doctors: cloneDoctors(doctors)}
}

func (d *StaticDirectory) Doctors(context.Context) ([]model.Doctor, error) {
	return cloneDoctors(d.doctors), nil
}

func cloneDoctors(in []model.Doctor) []model.Doctor {
	out := make([]model.Doctor, len(in))
	for i, doc := range in {
		out[i] = doc.Clone()
	}
	return out
}

// UserDirectory derives doctors from active users whose role requires a
// speciality. Each working day's slots start at every shift boundary and
// step by the user's appointment duration; slots that would run past the
// shift end or into a break are skipped.
type UserDirectory struct {
	users  repository.UserRepository
	lookup *lookup.Service
}

func NewUserDirectory(users repository.UserRepository, lookup *lookup.Service) *UserDirectory {
	return &UserDirectory{users: users, lookup: lookup}
}

func (d *UserDirectory) Doctors(ctx context.Context) ([]model.Doctor, error) {
	users, err := d.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	clinical := map[string]bool{}
	out := []model.Doctor{}
	for _, u := range users {
		if u.Status != model.StatusActive {
			continue
		}
		requires, ok := clinical[u.RoleID]
		if !ok {
			requires, err = d.lookup.RequiresSpeciality(ctx, u.RoleID)
			if err != nil {
				return nil, err
			}
			clinical[u.RoleID] = requires
		}
		if !requires || u.Speciality == "" {
			continue
		}
		out = append(out, DoctorFromUser(u))
	}
	return out, nil
}

// DoctorFromUser builds the scheduling view of u.
func DoctorFromUser(u *model.User) model.Doctor {
	doc := model.Doctor{
		ID:           u.ID,
		Code:         u.Code,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Speciality:   u.Speciality,
		WorkingHours: []model.DoctorSlots{},
	}
	for _, ds := range u.WorkingHours {
		if !ds.IsWorking {
			continue
		}
		slots := GenerateSlots(ds, u.AppointmentDuration)
		if len(slots) == 0 {
			continue
		}
		doc.WorkingHours = append(doc.WorkingHours, model.DoctorSlots{Day: ds.Day, Slots: slots})
	}
	return doc
}

// GenerateSlots lists the HH:MM start times that fit inside a shift of ds
// without touching a break, in ascending order. Malformed ranges are
// ignored.
func GenerateSlots(ds model.DaySchedule, duration int) []string {
	if duration <= 0 {
		duration = model.DefaultAppointmentDuration
	}

	type span struct{ start, end int }
	var breaks []span
	for _, b := range ds.Breaks {
		start, end, err := b.Minutes()
		if err != nil || start >= end {
			continue
		}
		breaks = append(breaks, span{start, end})
	}

	seen := map[int]bool{}
	var starts []int
	for _, shift := range ds.Shifts {
		start, end, err := shift.Minutes()
		if err != nil {
			continue
		}
	slot:
		for t := start; t+duration <= end; t += duration {
			for _, b := range breaks {
				if t < b.end && b.start < t+duration {
					continue slot
				}
			}
			if !seen[t] {
				seen[t] = true
				starts = append(starts, t)
			}
		}
	}

	sort.Ints(starts)
	out := make([]string, len(starts))
	for i, t := range starts {
		out[i] = model.FormatClock(t)
	}
	return out
}
