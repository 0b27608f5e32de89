package book_session

import (
	"time"

	bookSession "github.com/mentorgrid/MG-SessionService/internal/usecase/book_session"
)

// BookSessionRequest HTTP request model
type BookSessionRequest struct {
	MentorID        int64   `json:"mentorId"`
	Title           string  `json:"title"`
	ScheduledStart  string  `json:"scheduledStart"` // ISO 8601
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	MeetingLink     *string `json:"meetingLink,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
// Студентом становится аутентифицированный пользователь
func (r *BookSessionRequest) ToUseCaseRequest(studentID int64) (*bookSession.Request, error) {
	start, err := time.Parse(time.RFC3339, r.ScheduledStart)
	if err != nil {
		return nil, err
	}

	return &bookSession.Request{
		StudentID:       studentID,
		MentorID:        r.MentorID,
		Title:           r.Title,
		ScheduledStart:  start,
		DurationMinutes: r.DurationMinutes,
		MeetingLink:     r.MeetingLink,
		Notes:           r.Notes,
	}, nil
}

// BookSessionResponse HTTP response model
type BookSessionResponse struct {
	ID              int64   `json:"id"`
	StudentID       int64   `json:"studentId"`
	MentorID        int64   `json:"mentorId"`
	Title           string  `json:"title"`
	ScheduledStart  string  `json:"scheduledStart"` // ISO 8601, UTC
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	MeetingLink     *string `json:"meetingLink,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *bookSession.Response) *BookSessionResponse {
	return &BookSessionResponse{
		ID:              resp.ID,
		StudentID:       resp.StudentID,
		MentorID:        resp.MentorID,
		Title:           resp.Title,
		ScheduledStart:  resp.ScheduledStart.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		MeetingLink:     resp.MeetingLink,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
