package get_bookable_slots

import (
	"time"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/internal/usecase/resolve_slots"
)

// SlotResponse доступный слот в HTTP ответе
type SlotResponse struct {
	StartTime string `json:"startTime"` // "HH:MM"
	Start     string `json:"start"`     // ISO 8601, UTC
}

// GetBookableSlotsResponse HTTP response model
type GetBookableSlotsResponse struct {
	MentorID int64          `json:"mentorId"`
	Date     string         `json:"date"` // YYYY-MM-DD
	Slots    []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *resolve_slots.Response) *GetBookableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: slot.StartTime,
			Start:     slot.Start.Format(time.RFC3339),
		})
	}
	return &GetBookableSlotsResponse{
		MentorID: resp.MentorID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    slots,
	}
}
