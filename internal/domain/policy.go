package domain

import (
	"errors"
	"time"
)

// Policy violation errors. Each carries a distinct, machine-checkable reason
// so callers can tell "wrong status" apart from "window exceeded".
var (
	// ErrNotCancellable: the session status does not allow cancellation
	ErrNotCancellable = errors.New("policy: session status does not allow cancellation")

	// ErrCancelWindowPassed: the actor's cancellation window has closed
	ErrCancelWindowPassed = errors.New("policy: cancellation window has passed")

	// ErrNotStartable: the session status does not allow the start action
	ErrNotStartable = errors.New("policy: session status does not allow start")

	// ErrTooEarlyToStart: the early-join window has not opened yet
	ErrTooEarlyToStart = errors.New("policy: too early to start the session")

	// ErrNotCompleted: outcome can only be attached to a completed session
	ErrNotCompleted = errors.New("policy: session is not completed")
)

// CanCancel decides whether an actor may cancel a session scheduled for
// scheduledStart, given the current instant and the session's status.
// Pure and side-effect free; the caller applies the transition.
//
// Mentors may cancel any time strictly before the start. Students must
// cancel at least StudentCancelNotice ahead. Admins cancel on behalf of the
// system and follow the mentor window.
//
// Both instants must be in the same zone; all callers pass UTC.
func CanCancel(scheduledStart, now time.Time, role ActorRole, status SessionStatus) error {
	cancellable := false
	for _, s := range CancellableStatuses {
		if status == s {
			cancellable = true
			break
		}
	}
	if !cancellable {
		return ErrNotCancellable
	}

	switch role {
	case RoleStudent:
		if !now.Before(scheduledStart.Add(-StudentCancelNotice)) {
			return ErrCancelWindowPassed
		}
	case RoleMentor, RoleAdmin:
		if !now.Before(scheduledStart) {
			return ErrCancelWindowPassed
		}
	default:
		return ErrNotCancellable
	}

	return nil
}

// CanStart decides whether the assigned mentor may move a session from
// scheduled to in_progress at now. The early-join window opens
// EarlyJoinWindowMinutes before the scheduled start.
func CanStart(scheduledStart, now time.Time, status SessionStatus) error {
	if status != StatusScheduled {
		return ErrNotStartable
	}

	if now.Before(scheduledStart.Add(-EarlyJoinWindowMinutes * time.Minute)) {
		return ErrTooEarlyToStart
	}

	return nil
}

// CancelActorForRole maps the acting role to the recorded cancellation actor.
// Administrative cancellations are recorded as system.
func CancelActorForRole(role ActorRole) CancelActor {
	switch role {
	case RoleStudent:
		return CancelledByStudent
	case RoleMentor:
		return CancelledByMentor
	default:
		return CancelledBySystem
	}
}
