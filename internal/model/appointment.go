package model

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

type Insurance struct {
	InsurerName  string `json:"insurer_name"`
	PolicyNumber string `json:"policy_number" validate:"required_with=InsurerName"`
}

type Appointment struct {
	Base
	AppointmentNumber string            `json:"appointment_number"`
	Patient           PatientDetails    `json:"patient"`
	Date              string            `json:"date" validate:"required,date"`
	Time              string            `json:"time" validate:"required,hhmm"`
	Status            AppointmentStatus `json:"status" validate:"required,oneof=scheduled confirmed cancelled completed"`
	DoctorID          string            `json:"doctor_id" validate:"required"`
	Speciality        string            `json:"speciality" validate:"required"`
	Reason            string            `json:"reason" validate:"required"`
	Insurance         *Insurance        `json:"insurance,omitempty"`
	// DoubleBooked is set when another active appointment already held the
	// same doctor, date and time at submit.
	DoubleBooked bool `json:"double_booked"`
}

func NewAppointment() *Appointment {
	return &Appointment{Status: AppointmentStatusScheduled}
}

func (a *Appointment) Clone() *Appointment {
	out := *a
	if a.Insurance != nil {
		ins := *a.Insurance
		out.Insurance = &ins
	}
	return &out
}

func (a *Appointment) SearchFields() []string {
	return []string{a.Patient.FirstName, a.Patient.LastName, a.AppointmentNumber}
}

// Occupies reports whether a holds the doctor's slot at date and time.
func (a *Appointment) Occupies(doctorID, date, time string) bool {
	if a.Status == AppointmentStatusCancelled {
		return false
	}
	return a.DoctorID == doctorID && a.Date == date && a.Time == time
}
