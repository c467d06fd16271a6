package model

type Organization struct {
	Base
	Code        string   `json:"code" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	FacilityIDs []string `json:"facility_ids"`
	Status      Status   `json:"status" validate:"required,oneof=active inactive"`
}

func NewOrganization() *Organization {
	return &Organization{Status: StatusActive, FacilityIDs: []string{}}
}

func (o *Organization) Clone() *Organization {
	out := *o
	out.FacilityIDs = cloneStrings(o.FacilityIDs)
	return &out
}

func (o *Organization) SearchFields() []string {
	return []string{o.Name, o.Code}
}
