package repository

import (
	"context"
	"errors"

	"github.com/jwalitptl/medclinic-admin/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Repository stores one entity kind in insertion order. Implementations
// copy values in and out, so callers never share state with the store.
// Remove of an unknown id is a no-op and reports false.
type Repository[T model.Entity[T]] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Add(ctx context.Context, item T) error
	Update(ctx context.Context, item T) error
	Remove(ctx context.Context, id string) (bool, error)
}

// All repository interfaces in one file
type (
	AppointmentRepository  = Repository[*model.Appointment]
	PatientRepository      = Repository[*model.Patient]
	FacilityRepository     = Repository[*model.Facility]
	OrganizationRepository = Repository[*model.Organization]
	RoleRepository         = Repository[*model.Role]
	UserRepository         = Repository[*model.User]
	SpecialityRepository   = Repository[*model.Speciality]
)

// Repositories groups one repository per entity kind.
type Repositories struct {
	Appointments  AppointmentRepository
	Patients      PatientRepository
	Facilities    FacilityRepository
	Organizations OrganizationRepository
	Roles         RoleRepository
	Users         UserRepository
	Specialities  SpecialityRepository
}

// Kinds used as storage namespaces.
const (
	KindAppointment  = "appointment"
	KindPatient      = "patient"
	KindFacility     = "facility"
	KindOrganization = "organization"
	KindRole         = "role"
	KindUser         = "user"
	KindSpeciality   = "speciality"
)
