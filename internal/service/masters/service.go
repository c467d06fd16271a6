// Package masters serves the read-only reference lists behind the admin
// forms' select boxes.
package masters

import (
	"strconv"

	"github.com/jwalitptl/medclinic-admin/internal/model"
)

type Service struct {
	countries     []model.Reference
	states        []model.State
	cities        []model.City
	bloodGroups   []model.Reference
	idTypes       []model.Reference
	insurers      []model.Reference
	nationalities []model.Reference
}

func NewService() *Service {
	return &Service{
		countries: []model.Reference{
			{ID: "1", Code: "US", Name: "United States"},
			{ID: "2", Code: "UK", Name: "United Kingdom"},
			{ID: "3", Code: "CA", Name: "Canada"},
		},
		states: []model.State{
			{Reference: model.Reference{ID: "1", Code: "NY", Name: "New York"}, CountryID: "1"},
			{Reference: model.Reference{ID: "2", Code: "CA", Name: "California"}, CountryID: "1"},
			{Reference: model.Reference{ID: "3", Code: "TX", Name: "Texas"}, CountryID: "1"},
			{Reference: model.Reference{ID: "4", Code: "ENG", Name: "England"}, CountryID: "2"},
			{Reference: model.Reference{ID: "5", Code: "SCT", Name: "Scotland"}, CountryID: "2"},
			{Reference: model.Reference{ID: "6", Code: "WLS", Name: "Wales"}, CountryID: "2"},
			{Reference: model.Reference{ID: "7", Code: "ON", Name: "Ontario"}, CountryID: "3"},
			{Reference: model.Reference{ID: "8", Code: "BC", Name: "British Columbia"}, CountryID: "3"},
			{Reference: model.Reference{ID: "9", Code: "QC", Name: "Quebec"}, CountryID: "3"},
		},
		cities: []model.City{
			{Reference: model.Reference{ID: "1", Code: "NYC", Name: "New York City"}, StateID: "1"},
			{Reference: model.Reference{ID: "2", Code: "BUF", Name: "Buffalo"}, StateID: "1"},
			{Reference: model.Reference{ID: "3", Code: "LA", Name: "Los Angeles"}, StateID: "2"},
			{Reference: model.Reference{ID: "4", Code: "SF", Name: "San Francisco"}, StateID: "2"},
			{Reference: model.Reference{ID: "5", Code: "HOU", Name: "Houston"}, StateID: "3"},
			{Reference: model.Reference{ID: "6", Code: "DAL", Name: "Dallas"}, StateID: "3"},
			{Reference: model.Reference{ID: "7", Code: "LON", Name: "London"}, StateID: "4"},
			{Reference: model.Reference{ID: "8", Code: "MAN", Name: "Manchester"}, StateID: "4"},
		},
		bloodGroups: refs("A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"),
		idTypes: []model.Reference{
			{ID: "1", Code: "PASSPORT", Name: "Passport"},
			{ID: "2", Code: "NATIONAL_ID", Name: "National ID"},
			{ID: "3", Code: "DRIVER_LICENSE", Name: "Driver License"},
		},
		insurers: []model.Reference{
			{ID: "1", Code: "HIC", Name: "Health Insurance Co."},
			{ID: "2", Code: "MIL", Name: "Medical Insurance Ltd."},
			{ID: "3", Code: "HII", Name: "Healthcare Insurance Inc."},
		},
		nationalities: []model.Reference{
			{ID: "1", Code: "US", Name: "American"},
			{ID: "2", Code: "UK", Name: "British"},
			{ID: "3", Code: "CA", Name: "Canadian"},
		},
	}
}

// refs builds references whose code and name are the same value.
func refs(values ...string) []model.Reference {
	out := make([]model.Reference, len(values))
	for i, v := range values {
		out[i] = model.Reference{ID: strconv.Itoa(i + 1), Code: v, Name: v}
	}
	return out
}

func (s *Service) Countries() []model.Reference { return clone(s.countries) }

// States returns the states of countryID; an empty id has no states.
func (s *Service) States(countryID string) []model.State {
	out := []model.State{}
	if countryID == "" {
		return out
	}
	for _, st := range s.states {
		if st.CountryID == countryID {
			out = append(out, st)
		}
	}
	return out
}

// Cities returns the cities of stateID; an empty id has no cities.
func (s *Service) Cities(stateID string) []model.City {
	out := []model.City{}
	if stateID == "" {
		return out
	}
	for _, c := range s.cities {
		if c.StateID == stateID {
			out = append(out, c)
		}
	}
	return out
}

func (s *Service) BloodGroups() []model.Reference         { return clone(s.bloodGroups) }
func (s *Service) IdentificationTypes() []model.Reference { return clone(s.idTypes) }
func (s *Service) Insurers() []model.Reference            { return clone(s.insurers) }
func (s *Service) Nationalities() []model.Reference       { return clone(s.nationalities) }

// StateInCountry reports whether stateID belongs to countryID.
func (s *Service) StateInCountry(stateID, countryID string) bool {
	for _, st := range s.states {
		if st.ID == stateID {
			return st.CountryID == countryID
		}
	}
	return false
}

// CityInState reports whether cityID belongs to stateID.
func (s *Service) CityInState(cityID, stateID string) bool {
	for _, c := range s.cities {
		if c.ID == cityID {
			return c.StateID == stateID
		}
	}
	return false
}

func clone(in []model.Reference) []model.Reference {
	return append([]model.Reference{}, in...)
}
