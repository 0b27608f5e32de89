package models

import (
	"time"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
)

// Request модели

// CancelSessionRequest запрос на отмену сессии
type CancelSessionRequest struct {
	ActorID int64
	Role    domain.ActorRole
	Reason  string
}

// AttachOutcomeRequest запрос на прикрепление оценки и отзыва
type AttachOutcomeRequest struct {
	ActorID  int64
	Role     domain.ActorRole
	Rating   int
	Feedback *string
}

// UpdateMetaRequest запрос на обновление ссылки на встречу и заметок
type UpdateMetaRequest struct {
	ActorID     int64
	Role        domain.ActorRole
	MeetingLink *string
	Notes       *string
}

// GetUserSessionsRequest запрос на получение сессий пользователя
type GetUserSessionsRequest struct {
	UserID          int64
	ActorID         int64
	Role            domain.ActorRole
	Status          *string    // Фильтр по статусу (опционально, принимает alias "upcoming")
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	IncludeInactive bool       // Включать ли отменённые и no-show сессии
}

// Response модели

// SessionResponse ответ с данными сессии
type SessionResponse struct {
	ID              int64  `json:"id"`
	StudentID       int64  `json:"studentId"`
	MentorID        int64  `json:"mentorId"`
	Title           string `json:"title"`
	ScheduledStart  string `json:"scheduledStart"` // ISO 8601, UTC
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	MeetingLink *string `json:"meetingLink,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Rating      *int    `json:"rating,omitempty"`
	Feedback    *string `json:"feedback,omitempty"`

	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601
	CompletedAt        *string `json:"completedAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionListResponse ответ со списком сессий
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}

	resp := &SessionResponse{
		ID:                 s.ID,
		StudentID:          s.StudentID,
		MentorID:           s.MentorID,
		Title:              s.Title,
		ScheduledStart:     s.ScheduledStart.UTC().Format(time.RFC3339),
		DurationMinutes:    s.DurationMinutes,
		Status:             string(s.Status),
		MeetingLink:        s.MeetingLink,
		Notes:              s.Notes,
		Rating:             s.Rating,
		Feedback:           s.Feedback,
		CancellationReason: s.CancellationReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}

	if s.CancelledBy != nil {
		by := string(*s.CancelledBy)
		resp.CancelledBy = &by
	}
	if s.CancelledAt != nil {
		at := s.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &at
	}
	if s.CompletedAt != nil {
		at := s.CompletedAt.UTC().Format(time.RFC3339)
		resp.CompletedAt = &at
	}

	return resp
}

// FromDomainSessionList конвертирует список domain моделей в DTO
func FromDomainSessionList(sessions []*domain.Session) *SessionListResponse {
	if sessions == nil {
		return &SessionListResponse{
			Sessions: []SessionResponse{},
		}
	}

	resp := &SessionListResponse{
		Sessions: make([]SessionResponse, len(sessions)),
	}

	for i, s := range sessions {
		if sessionResp := FromDomainSession(s); sessionResp != nil {
			resp.Sessions[i] = *sessionResp
		}
	}

	return resp
}
