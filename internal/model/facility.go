package model

import (
	"fmt"
)

type FacilityHours struct {
	Day       Weekday `json:"day" validate:"required"`
	IsOpen    bool    `json:"is_open"`
	OpenTime  string  `json:"open_time" validate:"omitempty,hhmm"`
	CloseTime string  `json:"close_time" validate:"omitempty,hhmm"`
}

// Check requires an open day to close after it opens.
func (h FacilityHours) Check() error {
	if !h.Day.Valid() {
		return fmt.Errorf("unknown day %q", h.Day)
	}
	if !h.IsOpen {
		return nil
	}
	open, err := ClockMinutes(h.OpenTime)
	if err != nil {
		return err
	}
	closing, err := ClockMinutes(h.CloseTime)
	if err != nil {
		return err
	}
	if open >= closing {
		return fmt.Errorf("%s closes at %s before opening at %s", h.Day, h.CloseTime, h.OpenTime)
	}
	return nil
}

type Holiday struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Date        string `json:"date" validate:"required,date"`
	Description string `json:"description,omitempty"`
}

type Facility struct {
	Base
	Code         string          `json:"code" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	Email        string          `json:"email" validate:"omitempty,email"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	Status       Status          `json:"status" validate:"required,oneof=active inactive"`
	WorkingHours []FacilityHours `json:"working_hours" validate:"dive"`
	Holidays     []Holiday       `json:"holidays" validate:"dive"`
}

// NewFacility returns the editor template: open weekdays 09:00-17:00,
// closed weekends.
func NewFacility() *Facility {
	hours := make([]FacilityHours, 0, len(Week))
	for _, day := range Week {
		h := FacilityHours{Day: day, IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"}
		if day == Saturday || day == Sunday {
			h.IsOpen = false
			h.CloseTime = "13:00"
		}
		hours = append(hours, h)
	}
	return &Facility{Status: StatusActive, WorkingHours: hours, Holidays: []Holiday{}}
}

func (f *Facility) Clone() *Facility {
	out := *f
	out.WorkingHours = append([]FacilityHours(nil), f.WorkingHours...)
	out.Holidays = append([]Holiday(nil), f.Holidays...)
	return &out
}

func (f *Facility) SearchFields() []string {
	return []string{f.Name, f.Code, f.Email}
}
