package domain

import (
	"errors"
	"time"
)

// SessionStatus represents the status of a mentoring session
type SessionStatus string

const (
	StatusScheduled  SessionStatus = "scheduled"
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusCancelled  SessionStatus = "cancelled"
	StatusNoShow     SessionStatus = "no_show"

	// statusUpcomingAlias is a legacy spelling of "scheduled" still produced
	// by older clients. Accepted on input, never stored.
	statusUpcomingAlias = "upcoming"
)

// ErrUnknownStatus is returned when a status string cannot be parsed
var ErrUnknownStatus = errors.New("unknown session status")

// ParseSessionStatus parses a status string, normalising the legacy
// "upcoming" alias to StatusScheduled.
func ParseSessionStatus(s string) (SessionStatus, error) {
	if s == statusUpcomingAlias {
		return StatusScheduled, nil
	}

	status := SessionStatus(s)
	switch status {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return status, nil
	}
	return "", ErrUnknownStatus
}

// ActorRole identifies who is performing an operation
type ActorRole string

const (
	RoleStudent ActorRole = "student"
	RoleMentor  ActorRole = "mentor"
	RoleAdmin   ActorRole = "admin"
)

// ParseActorRole parses a role string
func ParseActorRole(s string) (ActorRole, error) {
	role := ActorRole(s)
	switch role {
	case RoleStudent, RoleMentor, RoleAdmin:
		return role, nil
	}
	return "", errors.New("unknown actor role")
}

// CancelActor identifies who cancelled a session
type CancelActor string

const (
	CancelledByStudent CancelActor = "student"
	CancelledByMentor  CancelActor = "mentor"
	CancelledBySystem  CancelActor = "system"
)

// Session represents a mentoring session between a student and a mentor
type Session struct {
	ID        int64
	StudentID int64
	MentorID  int64
	Title     string

	// ScheduledStart is an absolute instant, always stored in UTC
	ScheduledStart  time.Time
	DurationMinutes int
	Status          SessionStatus

	MeetingLink *string
	Notes       *string

	// Outcome fields, attachable only once the session is completed
	Rating   *int
	Feedback *string

	// Cancellation fields, populated only when Status is cancelled
	CancelledBy        *CancelActor
	CancellationReason *string
	CancelledAt        *time.Time

	// CompletedAt is stamped on transition into completed
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the nominal end of the session
func (s *Session) EndTime() time.Time {
	return s.ScheduledStart.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// AutoCompleteAt returns the instant at which the sweep may mark the session completed
func (s *Session) AutoCompleteAt() time.Time {
	return s.EndTime().Add(AutoCompleteBufferMinutes * time.Minute)
}

// IsDueForCompletion returns true if the sweep should complete the session at now
func (s *Session) IsDueForCompletion(now time.Time) bool {
	return s.IsAutoCompletable() && !now.Before(s.AutoCompleteAt())
}

// IsTerminal returns true if the session admits no further status transitions
func (s *Session) IsTerminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusCancelled || s.Status == StatusNoShow
}

// CanBeCancelled returns true if the session status allows cancellation
func (s *Session) CanBeCancelled() bool {
	return s.Status == StatusScheduled
}

// CanBeStarted returns true if the session status allows the mentor start action
func (s *Session) CanBeStarted() bool {
	return s.Status == StatusScheduled
}

// IsAutoCompletable returns true if the session status allows auto-completion
func (s *Session) IsAutoCompletable() bool {
	return s.Status == StatusScheduled || s.Status == StatusInProgress
}

// IsCompleted returns true if the session reached completed
func (s *Session) IsCompleted() bool {
	return s.Status == StatusCompleted
}

// IsParticipant returns true if userID is the student or the mentor of the session
func (s *Session) IsParticipant(userID int64) bool {
	return s.StudentID == userID || s.MentorID == userID
}

// ParticipantSessionsFilter фильтр для выборки сессий участника
type ParticipantSessionsFilter struct {
	UserID          int64          // Обязательный параметр, студент или ментор
	Status          *SessionStatus // Фильтр по статусу (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	IncludeInactive bool           // Включать ли отменённые и no-show сессии
}
