package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mentorgrid/MG-SessionService/pkg/types"
)

// Weekday identifies a day of the week in the availability map
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists all seven weekday keys in calendar order.
// A WeeklyAvailability must contain exactly these keys.
var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayFromTime maps a calendar date to its availability key
func WeekdayFromTime(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// Validation errors for weekly availability
var (
	ErrMissingWeekday    = errors.New("availability: missing weekday")
	ErrEmptyDaySlots     = errors.New("availability: available day has no time slots")
	ErrInvalidSlotTime   = errors.New("availability: invalid slot time")
	ErrSlotRangeInverted = errors.New("availability: slot end must be after start")
)

// TimeSlot is a bounded, labeled time range within a day
type TimeSlot struct {
	ID     string
	Start  types.TimeString
	End    types.TimeString
	Active bool
}

// Span returns the slot length in minutes
func (s TimeSlot) Span() (int, error) {
	start, err := s.Start.TotalMinutes()
	if err != nil {
		return 0, err
	}
	end, err := s.End.TotalMinutes()
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

// DayAvailability is one weekday's availability record
type DayAvailability struct {
	Available bool
	Slots     []TimeSlot
}

// WeeklyAvailability maps every weekday to its availability record.
// The map is always dense: all seven keys are present.
type WeeklyAvailability map[Weekday]DayAvailability

// NewWeeklyAvailability returns a week with every day unavailable.
// Used as the lazily-created default for a mentor without stored availability.
func NewWeeklyAvailability() WeeklyAvailability {
	week := make(WeeklyAvailability, len(Weekdays))
	for _, day := range Weekdays {
		week[day] = DayAvailability{Available: false, Slots: []TimeSlot{}}
	}
	return week
}

// Validate checks the structural invariants of a weekly availability:
// all seven weekdays present, available days have at least one slot,
// every slot has valid HH:MM bounds with end strictly after start.
// Pure: no mutation, safe to call repeatedly.
func (w WeeklyAvailability) Validate() error {
	for _, key := range Weekdays {
		day, ok := w[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingWeekday, key)
		}

		if day.Available && len(day.Slots) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyDaySlots, key)
		}

		for _, slot := range day.Slots {
			if err := slot.Start.Validate(); err != nil {
				return fmt.Errorf("%w: %s start %q", ErrInvalidSlotTime, key, slot.Start)
			}
			if err := slot.End.Validate(); err != nil {
				return fmt.Errorf("%w: %s end %q", ErrInvalidSlotTime, key, slot.End)
			}
			if !slot.End.IsAfter(slot.Start) {
				return fmt.Errorf("%w: %s %s-%s", ErrSlotRangeInverted, key, slot.Start, slot.End)
			}
		}
	}
	return nil
}

// Normalize prepares a weekly availability for persistence:
// unavailable days get their slot list cleared, and slots without an
// id are assigned a fresh one. Mutates the receiver.
func (w WeeklyAvailability) Normalize() {
	for _, key := range Weekdays {
		day, ok := w[key]
		if !ok {
			continue
		}

		if !day.Available {
			day.Slots = []TimeSlot{}
			w[key] = day
			continue
		}

		for i := range day.Slots {
			if day.Slots[i].ID == "" {
				day.Slots[i].ID = uuid.NewString()
			}
		}
		w[key] = day
	}
}
