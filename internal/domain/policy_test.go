package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

func TestCanCancel_Student(t *testing.T) {
	t.Run("allowed just outside 24h window", func(t *testing.T) {
		now := start.Add(-24*time.Hour - time.Second)
		assert.NoError(t, CanCancel(start, now, RoleStudent, StatusScheduled))
	})

	t.Run("rejected exactly at 24h boundary", func(t *testing.T) {
		now := start.Add(-24 * time.Hour)
		assert.ErrorIs(t, CanCancel(start, now, RoleStudent, StatusScheduled), ErrCancelWindowPassed)
	})

	t.Run("rejected inside 24h window", func(t *testing.T) {
		now := start.Add(-23*time.Hour - 59*time.Minute)
		assert.ErrorIs(t, CanCancel(start, now, RoleStudent, StatusScheduled), ErrCancelWindowPassed)
	})
}

func TestCanCancel_Mentor(t *testing.T) {
	t.Run("allowed one second before start", func(t *testing.T) {
		now := start.Add(-time.Second)
		assert.NoError(t, CanCancel(start, now, RoleMentor, StatusScheduled))
	})

	t.Run("rejected at start", func(t *testing.T) {
		assert.ErrorIs(t, CanCancel(start, start, RoleMentor, StatusScheduled), ErrCancelWindowPassed)
	})

	t.Run("rejected after start", func(t *testing.T) {
		now := start.Add(time.Second)
		assert.ErrorIs(t, CanCancel(start, now, RoleMentor, StatusScheduled), ErrCancelWindowPassed)
	})
}

func TestCanCancel_Status(t *testing.T) {
	now := start.Add(-48 * time.Hour)

	cases := []struct {
		status SessionStatus
		want   error
	}{
		{StatusScheduled, nil},
		{StatusInProgress, ErrNotCancellable},
		{StatusCompleted, ErrNotCancellable},
		{StatusCancelled, ErrNotCancellable},
		{StatusNoShow, ErrNotCancellable},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			err := CanCancel(start, now, RoleMentor, tc.status)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestCanCancel_WrongStatusWinsOverWindow(t *testing.T) {
	// оба нарушения сразу: статус терминальный и окно прошло
	now := start.Add(time.Hour)
	assert.ErrorIs(t, CanCancel(start, now, RoleStudent, StatusCompleted), ErrNotCancellable)
}

func TestCanStart(t *testing.T) {
	t.Run("allowed inside early-join window", func(t *testing.T) {
		now := start.Add(-EarlyJoinWindowMinutes * time.Minute)
		assert.NoError(t, CanStart(start, now, StatusScheduled))
	})

	t.Run("allowed after start", func(t *testing.T) {
		now := start.Add(5 * time.Minute)
		assert.NoError(t, CanStart(start, now, StatusScheduled))
	})

	t.Run("rejected before window opens", func(t *testing.T) {
		now := start.Add(-EarlyJoinWindowMinutes*time.Minute - time.Second)
		assert.ErrorIs(t, CanStart(start, now, StatusScheduled), ErrTooEarlyToStart)
	})

	t.Run("rejected for non-scheduled status", func(t *testing.T) {
		assert.ErrorIs(t, CanStart(start, start, StatusInProgress), ErrNotStartable)
		assert.ErrorIs(t, CanStart(start, start, StatusCompleted), ErrNotStartable)
	})
}

func TestCancelActorForRole(t *testing.T) {
	assert.Equal(t, CancelledByStudent, CancelActorForRole(RoleStudent))
	assert.Equal(t, CancelledByMentor, CancelActorForRole(RoleMentor))
	assert.Equal(t, CancelledBySystem, CancelActorForRole(RoleAdmin))
}

func TestParseSessionStatus(t *testing.T) {
	t.Run("upcoming normalised to scheduled", func(t *testing.T) {
		got, err := ParseSessionStatus("upcoming")
		require.NoError(t, err)
		assert.Equal(t, StatusScheduled, got)
	})

	t.Run("known statuses parse", func(t *testing.T) {
		for _, s := range []string{"scheduled", "in_progress", "completed", "cancelled", "no_show"} {
			got, err := ParseSessionStatus(s)
			require.NoError(t, err)
			assert.Equal(t, SessionStatus(s), got)
		}
	})

	t.Run("unknown rejected", func(t *testing.T) {
		_, err := ParseSessionStatus("paused")
		assert.ErrorIs(t, err, ErrUnknownStatus)
	})
}

func TestSession_AutoCompleteAt(t *testing.T) {
	s := &Session{ScheduledStart: start, DurationMinutes: 60, Status: StatusScheduled}

	assert.Equal(t, start.Add(60*time.Minute), s.EndTime())
	assert.Equal(t, start.Add(70*time.Minute), s.AutoCompleteAt())

	t.Run("not due before buffer elapses", func(t *testing.T) {
		assert.False(t, s.IsDueForCompletion(start.Add(69*time.Minute)))
	})

	t.Run("due at buffer boundary", func(t *testing.T) {
		assert.True(t, s.IsDueForCompletion(start.Add(70*time.Minute)))
	})

	t.Run("cancelled session never due", func(t *testing.T) {
		cancelled := &Session{ScheduledStart: start, DurationMinutes: 60, Status: StatusCancelled}
		assert.False(t, cancelled.IsDueForCompletion(start.Add(time.Hour*24)))
	})
}
