package appointment

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/service/masters"
	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
	"github.com/jwalitptl/medclinic-admin/pkg/logger"
	"github.com/jwalitptl/medclinic-admin/pkg/messaging"
	"github.com/jwalitptl/medclinic-admin/pkg/metrics"
	"github.com/jwalitptl/medclinic-admin/pkg/validator"
)

// Stage is how far a booking draft has been filled in.
type Stage string

const (
	StageEmpty   Stage = "empty"
	StagePatient Stage = "patient"
	StageDetails Stage = "details"
)

// Details is the appointment section of a draft.
type Details struct {
	Date       string `json:"date" validate:"required,date"`
	Time       string `json:"time" validate:"required,hhmm"`
	Speciality string `json:"speciality" validate:"required"`
	DoctorID   string `json:"doctor_id" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
}

// Draft is a booking in progress. It never reaches the appointment store
// until Submit.
type Draft struct {
	ID                string               `json:"id"`
	AppointmentNumber string               `json:"appointment_number"`
	Patient           model.PatientDetails `json:"patient"`
	Details           Details              `json:"appointment"`
	Insurance         model.Insurance      `json:"insurance"`
	Stage             Stage                `json:"stage"`
	// Missing lists the fields still needed before the draft can advance.
	Missing   map[string]string `json:"missing,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
}

type PatientPatch struct {
	MRN             *string       `json:"mrn"`
	ReferenceNumber *string       `json:"reference_number"`
	FirstName       *string       `json:"first_name"`
	LastName        *string       `json:"last_name"`
	DateOfBirth     *string       `json:"date_of_birth"`
	Gender          *model.Gender `json:"gender"`
	Nationality     *string       `json:"nationality"`
	BloodGroup      *string       `json:"blood_group"`
	Email           *string       `json:"email"`
}

type AddressPatch struct {
	Street   *string `json:"street"`
	Country  *string `json:"country"`
	State    *string `json:"state"`
	City     *string `json:"city"`
	PostCode *string `json:"post_code"`
}

type ContactPatch struct {
	Mobile *string `json:"mobile"`
	Home   *string `json:"home"`
	Office *string `json:"office"`
}

type IdentificationPatch struct {
	Type           *string `json:"type"`
	Number         *string `json:"number"`
	IssuingCountry *string `json:"issuing_country"`
	ExpiryDate     *string `json:"expiry_date"`
}

type DetailsPatch struct {
	Date       *string `json:"date"`
	Time       *string `json:"time"`
	Speciality *string `json:"speciality"`
	DoctorID   *string `json:"doctor_id"`
	Reason     *string `json:"reason"`
}

type InsurancePatch struct {
	InsurerName  *string `json:"insurer_name"`
	PolicyNumber *string `json:"policy_number"`
}

// Notifier confirms booked appointments.
type Notifier interface {
	AppointmentBooked(ctx context.Context, a *model.Appointment) model.Notification
}

// Booked is the outcome of submitting a draft.
type Booked struct {
	Appointment  *model.Appointment  `json:"appointment"`
	Notification *model.Notification `json:"notification,omitempty"`
}

// EventAppointmentBooked is published after every successful submit.
const EventAppointmentBooked = "appointment.booked"

// BookedEvent is the payload of EventAppointmentBooked. Patient details
// stay out of it.
type BookedEvent struct {
	AppointmentID     string `json:"appointment_id"`
	AppointmentNumber string `json:"appointment_number"`
	DoctorID          string `json:"doctor_id"`
	Speciality        string `json:"speciality"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	DoubleBooked      bool   `json:"double_booked"`
}

type BookingConfig struct {
	// TTL is how long an untouched draft survives.
	TTL             time.Duration
	CleanupInterval time.Duration
	// Events receives EventAppointmentBooked when set.
	Events messaging.Publisher
}

// Booking runs the appointment creation flow over drafts held in a TTL
// cache. Every update refreshes the draft's expiry.
type Booking struct {
	appointments *Service
	masters      *masters.Service
	notifier     Notifier
	events       messaging.Publisher
	validator    validator.Validator
	metrics      *metrics.Metrics
	log          *logger.Logger
	ttl          time.Duration

	mu     sync.Mutex
	drafts *cache.Cache
}

func NewBooking(cfg BookingConfig, appointments *Service, masters *masters.Service, notifier Notifier, m *metrics.Metrics, log *logger.Logger) *Booking {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	b := &Booking{
		appointments: appointments,
		masters:      masters,
		notifier:     notifier,
		events:       cfg.Events,
		validator:    appointments.Deps().Validator,
		metrics:      m,
		log:          log.With("booking"),
		ttl:          cfg.TTL,
		drafts:       cache.New(cfg.TTL, cfg.CleanupInterval),
	}
	b.drafts.OnEvicted(func(id string, _ interface{}) {
		b.log.Debug("draft dropped", "draft_id", id)
		b.observe()
	})
	return b
}

func (b *Booking) observe() {
	if b.metrics != nil {
		b.metrics.DraftsOpen.Set(float64(b.drafts.ItemCount()))
	}
}

// NewDraft opens an empty booking.
func (b *Booking) NewDraft() Draft {
	d := Draft{
		ID:                uuid.New().String(),
		AppointmentNumber: b.appointments.NewNumber(),
	}
	b.mu.Lock()
	d = b.store(d)
	b.mu.Unlock()
	b.observe()
	return d
}

func (b *Booking) Get(id string) (Draft, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, err := b.load(id)
	if err != nil {
		return Draft{}, err
	}
	return b.view(d), nil
}

// Discard drops the draft. Discarding an unknown draft is a no-op.
func (b *Booking) Discard(id string) {
	b.drafts.Delete(id)
}

func (b *Booking) UpdatePatient(id string, p PatientPatch) (Draft, error) {
	return b.update(id, func(d *Draft) error {
		pt := &d.Patient
		set(&pt.MRN, p.MRN)
		set(&pt.ReferenceNumber, p.ReferenceNumber)
		set(&pt.FirstName, p.FirstName)
		set(&pt.LastName, p.LastName)
		set(&pt.DateOfBirth, p.DateOfBirth)
		if p.Gender != nil {
			pt.Gender = *p.Gender
		}
		set(&pt.Nationality, p.Nationality)
		set(&pt.BloodGroup, p.BloodGroup)
		set(&pt.Email, p.Email)
		return nil
	})
}

// UpdateAddress applies p with cascading selection: a new country clears
// state and city, a new state clears city, unless p sets them too.
func (b *Booking) UpdateAddress(id string, p AddressPatch) (Draft, error) {
	return b.update(id, func(d *Draft) error {
		addr := &d.Patient.Address
		set(&addr.Street, p.Street)
		set(&addr.PostCode, p.PostCode)
		if p.Country != nil && *p.Country != addr.Country {
			addr.Country = *p.Country
			addr.State = ""
			addr.City = ""
		}
		if p.State != nil && *p.State != addr.State {
			addr.State = *p.State
			addr.City = ""
		}
		set(&addr.City, p.City)

		fields := map[string]string{}
		if addr.State != "" && !b.masters.StateInCountry(addr.State, addr.Country) {
			fields["address.state"] = "does not belong to the selected country"
		}
		if addr.City != "" && !b.masters.CityInState(addr.City, addr.State) {
			fields["address.city"] = "does not belong to the selected state"
		}
		if len(fields) > 0 {
			return apperrors.Validation(fields)
		}
		return nil
	})
}

func (b *Booking) UpdateContact(id string, p ContactPatch) (Draft, error) {
	return b.update(id, func(d *Draft) error {
		c := &d.Patient.Contact
		set(&c.Mobile, p.Mobile)
		set(&c.Home, p.Home)
		set(&c.Office, p.Office)
		return nil
	})
}

func (b *Booking) UpdateIdentification(id string, p IdentificationPatch) (Draft, error) {
	return b.update(id, func(d *Draft) error {
		ident := &d.Patient.Identification
		set(&ident.Type, p.Type)
		set(&ident.Number, p.Number)
		set(&ident.IssuingCountry, p.IssuingCountry)
		set(&ident.ExpiryDate, p.ExpiryDate)
		return nil
	})
}

// UpdateDetails fills the appointment section. The patient section must be
// complete. A new speciality clears doctor and time; the doctor must belong
// to the speciality; a time needs a doctor and date and must be one of the
// doctor's slots that day. Changing doctor or date clears the time.
func (b *Booking) UpdateDetails(ctx context.Context, id string, p DetailsPatch) (Draft, error) {
	return b.update(id, func(d *Draft) error {
		if missing := b.patientMissing(d); len(missing) > 0 {
			return apperrors.Validation(map[string]string{"patient": "must be completed first"})
		}

		det := &d.Details
		fields := map[string]string{}

		if p.Speciality != nil && *p.Speciality != det.Speciality {
			det.Speciality = *p.Speciality
			det.DoctorID = ""
			det.Time = ""
		}

		if p.DoctorID != nil && *p.DoctorID != det.DoctorID {
			det.DoctorID = *p.DoctorID
			det.Time = ""
			if det.DoctorID != "" {
				if det.Speciality == "" {
					fields["doctor_id"] = "requires speciality"
				} else {
					doctors, err := b.appointments.resolver.DoctorsFor(ctx, det.Speciality)
					if err != nil {
						return err
					}
					if !containsDoctor(doctors, det.DoctorID) {
						fields["doctor_id"] = "is not available for " + det.Speciality
					}
				}
			}
		}

		if p.Date != nil && *p.Date != det.Date {
			det.Date = *p.Date
			det.Time = ""
			if det.Date != "" {
				if _, err := model.ParseDate(det.Date); err != nil {
					fields["date"] = "must be a date in YYYY-MM-DD format"
				} else if det.Date < b.appointments.Today() {
					fields["date"] = "must not be in the past"
				}
			}
		}

		if p.Time != nil {
			det.Time = *p.Time
			if det.Time != "" {
				switch {
				case det.DoctorID == "" || det.Date == "":
					fields["time"] = "requires doctor_id and date"
				case fields["doctor_id"] != "" || fields["date"] != "":
				default:
					slots, err := b.appointments.resolver.SlotsFor(ctx, det.DoctorID, det.Date)
					if err != nil {
						return err
					}
					if !contains(slots, det.Time) {
						fields["time"] = "is not an available slot"
					}
				}
			}
		}

		set(&det.Reason, p.Reason)

		if len(fields) > 0 {
			return apperrors.Validation(fields)
		}
		return nil
	})
}

// UpdateInsurance belongs to the appointment section and needs the patient
// section first, like UpdateDetails.
func (b *Booking) UpdateInsurance(id string, p InsurancePatch) (Draft, error) {
	return b.update(id, func(d *Draft) error {
		if missing := b.patientMissing(d); len(missing) > 0 {
			return apperrors.Validation(map[string]string{"patient": "must be completed first"})
		}
		set(&d.Insurance.InsurerName, p.InsurerName)
		set(&d.Insurance.PolicyNumber, p.PolicyNumber)
		return nil
	})
}

// Submit books the draft once both sections are complete. The draft is
// removed on success and kept on failure. The event and the confirmation
// e-mail go out after the draft lock is released.
func (b *Booking) Submit(ctx context.Context, id string) (*Booked, error) {
	booked, err := b.commit(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.metrics != nil {
		b.metrics.AppointmentsBooked.WithLabelValues(strconv.FormatBool(booked.DoubleBooked)).Inc()
	}
	b.log.Info("appointment booked",
		"appointment_id", booked.ID,
		"appointment_number", booked.AppointmentNumber,
		"double_booked", booked.DoubleBooked,
	)

	b.publish(ctx, booked)

	out := &Booked{Appointment: booked}
	if b.notifier != nil {
		n := b.notifier.AppointmentBooked(ctx, booked)
		out.Notification = &n
	}
	return out, nil
}

func (b *Booking) commit(ctx context.Context, id string) (*model.Appointment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, err := b.load(id)
	if err != nil {
		return nil, err
	}
	if v := b.view(d); v.Stage != StageDetails {
		return nil, apperrors.Validation(v.Missing)
	}

	session := b.appointments.OpenCreate()
	a := session.Draft
	a.AppointmentNumber = d.AppointmentNumber
	a.Patient = d.Patient
	a.Date = d.Details.Date
	a.Time = d.Details.Time
	a.Speciality = d.Details.Speciality
	a.DoctorID = d.Details.DoctorID
	a.Reason = d.Details.Reason
	if d.Insurance != (model.Insurance{}) {
		ins := d.Insurance
		a.Insurance = &ins
	}

	booked, err := b.appointments.Submit(ctx, session)
	if err != nil {
		return nil, err
	}
	b.drafts.Delete(id)
	return booked, nil
}

// publish failures are logged only; the appointment is already stored.
func (b *Booking) publish(ctx context.Context, a *model.Appointment) {
	if b.events == nil {
		return
	}
	err := b.events.Publish(ctx, EventAppointmentBooked, BookedEvent{
		AppointmentID:     a.ID,
		AppointmentNumber: a.AppointmentNumber,
		DoctorID:          a.DoctorID,
		Speciality:        a.Speciality,
		Date:              a.Date,
		Time:              a.Time,
		DoubleBooked:      a.DoubleBooked,
	})
	if err != nil {
		b.log.Error(err, "failed to publish booking event", "appointment_id", a.ID)
	}
}

func (b *Booking) update(id string, apply func(d *Draft) error) (Draft, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, err := b.load(id)
	if err != nil {
		return Draft{}, err
	}
	if err := apply(&d); err != nil {
		return Draft{}, err
	}
	return b.store(d), nil
}

func (b *Booking) load(id string) (Draft, error) {
	v, ok := b.drafts.Get(id)
	if !ok {
		return Draft{}, apperrors.NotFound("appointment draft", nil)
	}
	return v.(Draft), nil
}

func (b *Booking) store(d Draft) Draft {
	d.Stage = ""
	d.Missing = nil
	d.ExpiresAt = b.appointments.Deps().Now().Add(b.ttl)
	b.drafts.Set(d.ID, d, cache.DefaultExpiration)
	return b.view(d)
}

// view fills the computed stage and missing fields.
func (b *Booking) view(d Draft) Draft {
	if missing := b.patientMissing(&d); len(missing) > 0 {
		d.Stage = StageEmpty
		d.Missing = missing
		return d
	}
	missing := map[string]string{}
	if err := b.validator.Validate(d.Details); err != nil {
		missing = fieldsOf(err)
	}
	if d.Insurance.InsurerName != "" && d.Insurance.PolicyNumber == "" {
		missing["insurance.policy_number"] = "is required"
	}
	if len(missing) > 0 {
		d.Stage = StagePatient
		d.Missing = missing
		return d
	}
	d.Stage = StageDetails
	return d
}

func (b *Booking) patientMissing(d *Draft) map[string]string {
	missing := map[string]string{}
	if err := b.validator.Validate(d.Patient); err != nil {
		for k, v := range fieldsOf(err) {
			missing["patient."+k] = v
		}
	}
	return missing
}

func fieldsOf(err error) map[string]string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Fields != nil {
		out := make(map[string]string, len(appErr.Fields))
		for k, v := range appErr.Fields {
			out[k] = v
		}
		return out
	}
	return map[string]string{"": err.Error()}
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
