package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorgrid/MG-SessionService/pkg/types"
)

// 2026-09-07 is a Monday
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func weekWithMonday(slots ...TimeSlot) WeeklyAvailability {
	week := NewWeeklyAvailability()
	week[Monday] = DayAvailability{Available: true, Slots: slots}
	return week
}

func TestResolveBookableTimes(t *testing.T) {
	t.Run("two hour slot yields two starts", func(t *testing.T) {
		week := weekWithMonday(TimeSlot{ID: "a", Start: "09:00", End: "11:00", Active: true})

		got := ResolveBookableTimes(week, monday, SlotGranularityMinutes)
		assert.Equal(t, []types.TimeString{"09:00", "10:00"}, got)
	})

	t.Run("partial remainder dropped", func(t *testing.T) {
		week := weekWithMonday(TimeSlot{ID: "a", Start: "09:00", End: "10:30", Active: true})

		got := ResolveBookableTimes(week, monday, SlotGranularityMinutes)
		assert.Equal(t, []types.TimeString{"09:00"}, got)
	})

	t.Run("slot shorter than granularity yields nothing", func(t *testing.T) {
		week := weekWithMonday(TimeSlot{ID: "a", Start: "09:00", End: "09:45", Active: true})

		got := ResolveBookableTimes(week, monday, SlotGranularityMinutes)
		assert.Empty(t, got)
	})

	t.Run("unavailable day yields nothing", func(t *testing.T) {
		week := NewWeeklyAvailability()

		got := ResolveBookableTimes(week, monday, SlotGranularityMinutes)
		assert.Empty(t, got)
	})

	t.Run("inactive slots are skipped", func(t *testing.T) {
		week := weekWithMonday(
			TimeSlot{ID: "a", Start: "09:00", End: "11:00", Active: false},
			TimeSlot{ID: "b", Start: "14:00", End: "15:00", Active: true},
		)

		got := ResolveBookableTimes(week, monday, SlotGranularityMinutes)
		assert.Equal(t, []types.TimeString{"14:00"}, got)
	})

	t.Run("starts sorted across out-of-order slots", func(t *testing.T) {
		week := weekWithMonday(
			TimeSlot{ID: "b", Start: "14:00", End: "16:00", Active: true},
			TimeSlot{ID: "a", Start: "09:00", End: "10:00", Active: true},
		)

		got := ResolveBookableTimes(week, monday, SlotGranularityMinutes)
		assert.Equal(t, []types.TimeString{"09:00", "14:00", "15:00"}, got)
	})

	t.Run("overlapping slots deduplicated", func(t *testing.T) {
		week := weekWithMonday(
			TimeSlot{ID: "a", Start: "09:00", End: "11:00", Active: true},
			TimeSlot{ID: "b", Start: "10:00", End: "12:00", Active: true},
		)

		got := ResolveBookableTimes(week, monday, SlotGranularityMinutes)
		assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, got)
	})

	t.Run("restartable", func(t *testing.T) {
		week := weekWithMonday(TimeSlot{ID: "a", Start: "09:00", End: "11:00", Active: true})

		first := ResolveBookableTimes(week, monday, SlotGranularityMinutes)
		second := ResolveBookableTimes(week, monday, SlotGranularityMinutes)
		assert.Equal(t, first, second)
	})

	t.Run("slot ending at midnight boundary", func(t *testing.T) {
		week := weekWithMonday(TimeSlot{ID: "a", Start: "22:30", End: "23:59", Active: true})

		got := ResolveBookableTimes(week, monday, SlotGranularityMinutes)
		assert.Equal(t, []types.TimeString{"22:30"}, got)
	})
}

func TestResolveBookableInstants(t *testing.T) {
	week := weekWithMonday(TimeSlot{ID: "a", Start: "09:00", End: "11:00", Active: true})

	got := ResolveBookableInstants(week, monday, SlotGranularityMinutes)

	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC), got[0])
	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), got[1])
}
