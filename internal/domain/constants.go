package domain

import "time"

// Scheduling constants
const (
	// SlotGranularityMinutes is the fixed step between bookable start times
	// generated inside an availability window.
	SlotGranularityMinutes = 60

	// AutoCompleteBufferMinutes is the delay after a session's nominal end
	// before the sweep marks it completed.
	AutoCompleteBufferMinutes = 10

	// EarlyJoinWindowMinutes is how early the assigned mentor may start a
	// scheduled session.
	EarlyJoinWindowMinutes = 10

	// StudentCancelNotice is the minimum lead time a student must leave
	// when cancelling a session.
	StudentCancelNotice = 24 * time.Hour
)

// Business validation constants
const (
	MinDurationMinutes          = 15
	MaxDurationMinutes          = 480 // 8 hours
	MinRating                   = 1
	MaxRating                   = 5
	MaxTitleLength              = 200
	MaxNotesLength              = 500
	MaxFeedbackLength           = 2000
	MaxCancellationReasonLength = 500
)

// DefaultCancellationReason is stored when a cancellation request carries no reason.
const DefaultCancellationReason = "no reason provided"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AutoCompletableStatuses are the statuses the auto-completion sweep may
// transition into completed. Used for the conditional status update.
var AutoCompletableStatuses = []SessionStatus{
	StatusScheduled,
	StatusInProgress,
}

// CancellableStatuses are the statuses a cancellation request may act on.
var CancellableStatuses = []SessionStatus{
	StatusScheduled,
}

// TerminalStatuses are statuses that admit no further status transitions.
var TerminalStatuses = []SessionStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
