package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorgrid/MG-SessionService/pkg/types"
)

func validWeek() WeeklyAvailability {
	week := NewWeeklyAvailability()
	week[Monday] = DayAvailability{
		Available: true,
		Slots: []TimeSlot{
			{ID: "slot-1", Start: "09:00", End: "11:00", Active: true},
		},
	}
	return week
}

func TestWeeklyAvailability_Validate(t *testing.T) {
	t.Run("valid week passes", func(t *testing.T) {
		require.NoError(t, validWeek().Validate())
	})

	t.Run("validation is idempotent", func(t *testing.T) {
		week := validWeek()
		require.NoError(t, week.Validate())
		require.NoError(t, week.Validate())
	})

	t.Run("missing weekday rejected", func(t *testing.T) {
		week := validWeek()
		delete(week, Wednesday)

		err := week.Validate()
		assert.ErrorIs(t, err, ErrMissingWeekday)
	})

	t.Run("available day without slots rejected", func(t *testing.T) {
		week := validWeek()
		week[Friday] = DayAvailability{Available: true, Slots: []TimeSlot{}}

		err := week.Validate()
		assert.ErrorIs(t, err, ErrEmptyDaySlots)
	})

	t.Run("malformed start time rejected", func(t *testing.T) {
		week := validWeek()
		week[Monday] = DayAvailability{
			Available: true,
			Slots:     []TimeSlot{{Start: "9am", End: "11:00", Active: true}},
		}

		err := week.Validate()
		assert.ErrorIs(t, err, ErrInvalidSlotTime)
	})

	t.Run("unpadded hour rejected", func(t *testing.T) {
		week := validWeek()
		week[Monday] = DayAvailability{
			Available: true,
			Slots:     []TimeSlot{{Start: "9:00", End: "11:00", Active: true}},
		}

		err := week.Validate()
		assert.ErrorIs(t, err, ErrInvalidSlotTime)
	})

	t.Run("end equal to start rejected", func(t *testing.T) {
		week := validWeek()
		week[Monday] = DayAvailability{
			Available: true,
			Slots:     []TimeSlot{{Start: "09:00", End: "09:00", Active: true}},
		}

		err := week.Validate()
		assert.ErrorIs(t, err, ErrSlotRangeInverted)
	})

	t.Run("end before start rejected", func(t *testing.T) {
		week := validWeek()
		week[Monday] = DayAvailability{
			Available: true,
			Slots:     []TimeSlot{{Start: "11:00", End: "09:00", Active: true}},
		}

		err := week.Validate()
		assert.ErrorIs(t, err, ErrSlotRangeInverted)
	})

	t.Run("unavailable day keeps stored slots out of validation", func(t *testing.T) {
		week := validWeek()
		week[Sunday] = DayAvailability{Available: false, Slots: []TimeSlot{}}
		require.NoError(t, week.Validate())
	})
}

func TestWeeklyAvailability_Normalize(t *testing.T) {
	t.Run("clears slots on unavailable day", func(t *testing.T) {
		week := validWeek()
		week[Tuesday] = DayAvailability{
			Available: false,
			Slots:     []TimeSlot{{ID: "stale", Start: "09:00", End: "10:00", Active: true}},
		}

		week.Normalize()
		assert.Empty(t, week[Tuesday].Slots)
	})

	t.Run("assigns ids to new slots", func(t *testing.T) {
		week := validWeek()
		week[Monday] = DayAvailability{
			Available: true,
			Slots:     []TimeSlot{{Start: "09:00", End: "10:00", Active: true}},
		}

		week.Normalize()
		assert.NotEmpty(t, week[Monday].Slots[0].ID)
	})

	t.Run("keeps existing ids", func(t *testing.T) {
		week := validWeek()
		week.Normalize()
		assert.Equal(t, "slot-1", week[Monday].Slots[0].ID)
	})
}

func TestNewWeeklyAvailability(t *testing.T) {
	week := NewWeeklyAvailability()

	require.Len(t, week, 7)
	for _, day := range Weekdays {
		record, ok := week[day]
		require.True(t, ok, "weekday %s must be present", day)
		assert.False(t, record.Available)
		assert.Empty(t, record.Slots)
	}

	require.NoError(t, week.Validate())
}

func TestTimeSlot_Span(t *testing.T) {
	slot := TimeSlot{Start: types.TimeString("09:00"), End: types.TimeString("10:30")}

	span, err := slot.Span()
	require.NoError(t, err)
	assert.Equal(t, 90, span)
}
