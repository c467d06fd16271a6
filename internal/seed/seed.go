package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository"
	"github.com/jwalitptl/medclinic-admin/pkg/logger"
	"github.com/jwalitptl/medclinic-admin/pkg/security"
)

func base(id string) model.Base {
	return model.Base{ID: id}
}

func Facilities() []*model.Facility {
	central := model.NewFacility()
	central.Base = base("1")
	central.Code = "MCC001"
	central.Name = "MedClinic Central"
	central.Email = "central@medclinic.com"
	central.Phone = "+1 (555) 123-4567"
	central.Address = "123 Healthcare Ave, Medical District, MD 12345"
	central.Holidays = []model.Holiday{
		{ID: "1", Name: "Christmas", Date: "2024-12-25", Description: "Christmas Day"},
		{ID: "2", Name: "New Year", Date: "2024-01-01", Description: "New Year's Day"},
	}

	north := model.NewFacility()
	north.Base = base("2")
	north.Code = "MCN001"
	north.Name = "MedClinic North"
	north.Email = "north@medclinic.com"
	north.Phone = "+1 (555) 234-5678"
	north.Address = "456 Medical Plaza, North District, MD 23456"

	return []*model.Facility{central, north}
}

func Organizations() []*model.Organization {
	return []*model.Organization{
		{Base: base("1"), Code: "ORG001", Name: "Healthcare Group A", FacilityIDs: []string{"1", "2"}, Status: model.StatusActive},
		{Base: base("2"), Code: "ORG002", Name: "Medical Centers Inc", FacilityIDs: []string{"1"}, Status: model.StatusActive},
	}
}

func Roles() []*model.Role {
	all := []model.Action{model.ActionView, model.ActionCreate, model.ActionEdit, model.ActionDelete}
	return []*model.Role{
		{
			Base:        base("1"),
			Code:        "ADMIN",
			Name:        "Administrator",
			Description: "Full system access",
			Status:      model.StatusActive,
			Permissions: []model.Permission{
				{ScreenID: "dashboard", Actions: []model.Action{model.ActionView}},
				{ScreenID: "facility", Actions: all},
			},
		},
		{
			Base:        base("2"),
			Code:        "DOCTOR",
			Name:        "Doctor",
			Description: "Medical staff access",
			Status:      model.StatusActive,
			Permissions: []model.Permission{
				{ScreenID: "dashboard", Actions: []model.Action{model.ActionView}},
				{ScreenID: "patients", Actions: []model.Action{model.ActionView, model.ActionCreate, model.ActionEdit}},
			},
			RequiresSpeciality: true,
		},
	}
}

func Users() []*model.User {
	john := model.NewUser()
	john.Base = base("1")
	john.Code = "USR001"
	john.Username = "johndoe"
	john.FirstName = "John"
	john.LastName = "Doe"
	john.Email = "john.doe@medclinic.com"
	john.RoleID = "1"
	john.FacilityIDs = []string{"1"}

	jane := model.NewUser()
	jane.Base = base("2")
	jane.Code = "USR002"
	jane.Username = "janesmith"
	jane.FirstName = "Jane"
	jane.LastName = "Smith"
	jane.Email = "jane.smith@medclinic.com"
	jane.RoleID = "2"
	jane.Speciality = "Cardiology"
	jane.FacilityIDs = []string{"1", "2"}

	return []*model.User{john, jane}
}

func Specialities() []*model.Speciality {
	rows := [][2]string{
		{"CARD", "Cardiology"},
		{"DERM", "Dermatology"},
		{"NEUR", "Neurology"},
		{"ORTH", "Orthopedics"},
		{"PEDI", "Pediatrics"},
	}
	out := make([]*model.Speciality, len(rows))
	for i, r := range rows {
		out[i] = &model.Speciality{Base: base(fmt.Sprint(i + 1)), Code: r[0], Name: r[1]}
	}
	return out
}

// Doctors is the fixed directory used when scheduling runs off static data.
func Doctors() []model.Doctor {
	return []model.Doctor{
		{
			ID:         "1",
			Code:       "DOC001",
			FirstName:  "John",
			LastName:   "Smith",
			Speciality: "Cardiology",
			WorkingHours: []model.DoctorSlots{
				{Day: model.Monday, Slots: []string{"09:00", "09:30", "10:00", "10:30", "11:00"}},
			},
		},
	}
}

type Options struct {
	// BootstrapPassword is hashed onto seeded users; empty leaves them
	// without credentials.
	BootstrapPassword string
	Hasher            security.PasswordHasher
	Now               func() time.Time
}

// Load fills every empty repository with the seed records.
func Load(ctx context.Context, repos *repository.Repositories, opts Options, log *logger.Logger) error {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	now := opts.Now()

	hash := ""
	if opts.BootstrapPassword != "" && opts.Hasher != nil {
		h, err := opts.Hasher.Hash(opts.BootstrapPassword)
		if err != nil {
			return fmt.Errorf("failed to hash bootstrap password: %w", err)
		}
		hash = h
	}
	users := Users()
	for _, u := range users {
		u.PasswordHash = hash
	}

	steps := []struct {
		kind string
		fn   func() (int, error)
	}{
		{repository.KindFacility, func() (int, error) { return fill(ctx, repos.Facilities, Facilities(), now) }},
		{repository.KindOrganization, func() (int, error) { return fill(ctx, repos.Organizations, Organizations(), now) }},
		{repository.KindRole, func() (int, error) { return fill(ctx, repos.Roles, Roles(), now) }},
		{repository.KindUser, func() (int, error) { return fill(ctx, repos.Users, users, now) }},
		{repository.KindSpeciality, func() (int, error) { return fill(ctx, repos.Specialities, Specialities(), now) }},
	}
	for _, step := range steps {
		n, err := step.fn()
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", step.kind, err)
		}
		if n > 0 {
			log.Info("seeded records", "kind", step.kind, "count", n)
		}
	}
	return nil
}

func fill[T model.Entity[T]](ctx context.Context, repo repository.Repository[T], items []T, now time.Time) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, item := range items {
		item.Meta().Stamp(now)
		if err := repo.Add(ctx, item); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}
