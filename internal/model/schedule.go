package model

import (
	"fmt"
	"sort"
	"time"
)

// Weekday is the lowercase english day name used as a schedule key.
type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// indexed by time.Weekday, 0=Sunday..6=Saturday
var weekdayTokens = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Week lists the days in the order the schedule editors show them.
var Week = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf returns the schedule key for the calendar day of t.
func WeekdayOf(t time.Time) Weekday {
	return weekdayTokens[t.Weekday()]
}

func (d Weekday) Valid() bool {
	for _, w := range weekdayTokens {
		if w == d {
			return true
		}
	}
	return false
}

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ClockMinutes converts HH:MM into minutes since midnight.
func ClockMinutes(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes since midnight into HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

type TimeRange struct {
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
}

// Minutes returns the range bounds in minutes since midnight.
func (r TimeRange) Minutes() (int, int, error) {
	start, err := ClockMinutes(r.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err := ClockMinutes(r.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// DaySchedule is one day of a staff member's working week.
type DaySchedule struct {
	Day       Weekday     `json:"day" validate:"required"`
	IsWorking bool        `json:"is_working"`
	Shifts    []TimeRange `json:"shifts" validate:"dive"`
	Breaks    []TimeRange `json:"breaks" validate:"dive"`
}

func (d DaySchedule) clone() DaySchedule {
	out := d
	out.Shifts = append([]TimeRange(nil), d.Shifts...)
	out.Breaks = append([]TimeRange(nil), d.Breaks...)
	return out
}

// Check verifies the day key, that every range ends after it starts, and
// that shifts do not overlap each other, nor breaks each other.
func (d DaySchedule) Check() error {
	if !d.Day.Valid() {
		return fmt.Errorf("unknown day %q", d.Day)
	}
	if err := checkRanges(d.Shifts); err != nil {
		return fmt.Errorf("%s shifts: %w", d.Day, err)
	}
	if err := checkRanges(d.Breaks); err != nil {
		return fmt.Errorf("%s breaks: %w", d.Day, err)
	}
	return nil
}

func checkRanges(ranges []TimeRange) error {
	type span struct{ start, end int }
	spans := make([]span, 0, len(ranges))
	for _, r := range ranges {
		start, end, err := r.Minutes()
		if err != nil {
			return err
		}
		if start >= end {
			return fmt.Errorf("%s-%s ends before it starts", r.StartTime, r.EndTime)
		}
		spans = append(spans, span{start, end})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return fmt.Errorf("%s overlaps %s", FormatClock(spans[i].start), FormatClock(spans[i-1].start))
		}
	}
	return nil
}

// DefaultWeek is Monday to Friday 09:00-17:00 with a 12:00-13:00 break.
func DefaultWeek() []DaySchedule {
	week := make([]DaySchedule, 0, len(Week))
	for _, day := range Week {
		working := day != Saturday && day != Sunday
		ds := DaySchedule{Day: day, IsWorking: working, Shifts: []TimeRange{}, Breaks: []TimeRange{}}
		if working {
			ds.Shifts = []TimeRange{{StartTime: "09:00", EndTime: "17:00"}}
			ds.Breaks = []TimeRange{{StartTime: "12:00", EndTime: "13:00"}}
		}
		week = append(week, ds)
	}
	return week
}

// DoctorSlots is the bookable slot list for one day of the week.
type DoctorSlots struct {
	Day   Weekday  `json:"day"`
	Slots []string `json:"slots"`
}

// Doctor is the read-only view the booking flow schedules against.
type Doctor struct {
	ID           string        `json:"id"`
	Code         string        `json:"code"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Speciality   string        `json:"speciality"`
	WorkingHours []DoctorSlots `json:"working_hours"`
}

func (d Doctor) Clone() Doctor {
	out := d
	out.WorkingHours = make([]DoctorSlots, len(d.WorkingHours))
	for i, wh := range d.WorkingHours {
		out.WorkingHours[i] = DoctorSlots{Day: wh.Day, Slots: cloneStrings(wh.Slots)}
	}
	return out
}

// SlotsOn returns the stored slots for day, nil when the day is absent.
func (d Doctor) SlotsOn(day Weekday) []string {
	for _, wh := range d.WorkingHours {
		if wh.Day == day {
			return cloneStrings(wh.Slots)
		}
	}
	return nil
}
