package model

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Identification struct {
	Type           string `json:"type" validate:"required"`
	Number         string `json:"number" validate:"required"`
	IssuingCountry string `json:"issuing_country" validate:"required"`
	ExpiryDate     string `json:"expiry_date" validate:"required,date"`
}

type Address struct {
	Street   string `json:"street"`
	Country  string `json:"country" validate:"required"`
	State    string `json:"state" validate:"required"`
	City     string `json:"city" validate:"required"`
	PostCode string `json:"post_code"`
}

type Contact struct {
	Mobile string `json:"mobile" validate:"required"`
	Home   string `json:"home,omitempty"`
	Office string `json:"office,omitempty"`
}

// PatientDetails is the demographic block shared by patient records and
// the patient section of an appointment.
type PatientDetails struct {
	MRN             string         `json:"mrn"`
	ReferenceNumber string         `json:"reference_number"`
	FirstName       string         `json:"first_name" validate:"required"`
	LastName        string         `json:"last_name" validate:"required"`
	DateOfBirth     string         `json:"date_of_birth" validate:"required,date"`
	Gender          Gender         `json:"gender" validate:"required,oneof=male female other"`
	Nationality     string         `json:"nationality"`
	BloodGroup      string         `json:"blood_group"`
	Email           string         `json:"email" validate:"omitempty,email"`
	Identification  Identification `json:"identification"`
	Address         Address        `json:"address"`
	Contact         Contact        `json:"contact"`
}

type Patient struct {
	Base
	PatientDetails
}

func NewPatient() *Patient {
	return &Patient{}
}

func (p *Patient) Clone() *Patient {
	out := *p
	return &out
}

func (p *Patient) SearchFields() []string {
	return []string{p.FirstName, p.LastName, p.MRN, p.Email}
}
