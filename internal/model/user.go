package model

type LeaveType string

const (
	LeaveAnnual   LeaveType = "annual"
	LeaveSick     LeaveType = "sick"
	LeavePersonal LeaveType = "personal"
	LeaveOther    LeaveType = "other"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

type Leave struct {
	ID          string      `json:"id"`
	Type        LeaveType   `json:"type" validate:"required,oneof=annual sick personal other"`
	StartDate   string      `json:"start_date" validate:"required,date"`
	EndDate     string      `json:"end_date" validate:"required,date"`
	Status      LeaveStatus `json:"status" validate:"required,oneof=pending approved rejected"`
	Description string      `json:"description,omitempty"`
}

const DefaultAppointmentDuration = 30

type User struct {
	Base
	Code     string `json:"code" validate:"required"`
	Username string `json:"username" validate:"required"`
	// Password is accepted on input only and replaced by PasswordHash on submit.
	Password     string `json:"password,omitempty"`
	PasswordHash string `json:"password_hash,omitempty"`
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	RoleID       string `json:"role_id" validate:"required"`
	// Speciality is only kept for roles that require one.
	Speciality          string        `json:"speciality,omitempty"`
	FacilityIDs         []string      `json:"facility_ids"`
	Status              Status        `json:"status" validate:"required,oneof=active inactive"`
	Image               string        `json:"image"`
	WorkingHours        []DaySchedule `json:"working_hours" validate:"dive"`
	AppointmentDuration int           `json:"appointment_duration" validate:"min=5,max=240"`
	Leaves              []Leave       `json:"leaves" validate:"dive"`
}

func NewUser() *User {
	return &User{
		Status:              StatusActive,
		FacilityIDs:         []string{},
		WorkingHours:        DefaultWeek(),
		AppointmentDuration: DefaultAppointmentDuration,
		Leaves:              []Leave{},
	}
}

func (u *User) Clone() *User {
	out := *u
	out.FacilityIDs = cloneStrings(u.FacilityIDs)
	if u.WorkingHours != nil {
		out.WorkingHours = make([]DaySchedule, len(u.WorkingHours))
		for i, ds := range u.WorkingHours {
			out.WorkingHours[i] = ds.clone()
		}
	}
	out.Leaves = append([]Leave(nil), u.Leaves...)
	return &out
}

func (u *User) SearchFields() []string {
	return []string{u.FirstName, u.LastName, u.Email, u.Code}
}

// Public strips credentials before a user leaves the service.
func (u *User) Public() *User {
	out := u.Clone()
	out.Password = ""
	out.PasswordHash = ""
	return out
}

// Schedule returns the stored schedule for day.
func (u *User) Schedule(day Weekday) (DaySchedule, bool) {
	for _, ds := range u.WorkingHours {
		if ds.Day == day {
			return ds, true
		}
	}
	return DaySchedule{}, false
}
