package model

type Speciality struct {
	Base
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

func NewSpeciality() *Speciality {
	return &Speciality{}
}

func (s *Speciality) Clone() *Speciality {
	out := *s
	return &out
}

func (s *Speciality) SearchFields() []string {
	return []string{s.Name, s.Code}
}

// Reference is a read-only lookup row.
type Reference struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type State struct {
	Reference
	CountryID string `json:"country_id"`
}

type City struct {
	Reference
	StateID string `json:"state_id"`
}
