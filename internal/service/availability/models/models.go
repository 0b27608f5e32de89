package models

import (
	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/pkg/types"
)

// TimeSlotPayload слот времени в wire-формате
type TimeSlotPayload struct {
	ID        string `json:"id,omitempty"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
}

// DayAvailabilityPayload доступность одного дня недели в wire-формате
type DayAvailabilityPayload struct {
	IsAvailable bool              `json:"isAvailable"`
	TimeSlots   []TimeSlotPayload `json:"timeSlots"`
}

// WeeklyAvailabilityPayload недельное расписание: ключи - дни недели в нижнем регистре
type WeeklyAvailabilityPayload map[string]DayAvailabilityPayload

// PublicTimeSlotPayload слот публичного расписания: только границы интервала,
// внутренние идентификаторы и флаг активности не раскрываются
type PublicTimeSlotPayload struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// PublicDayAvailabilityPayload доступность одного дня в публичном представлении
type PublicDayAvailabilityPayload struct {
	IsAvailable bool                    `json:"isAvailable"`
	TimeSlots   []PublicTimeSlotPayload `json:"timeSlots"`
}

// PublicWeeklyAvailabilityPayload публичное недельное расписание
type PublicWeeklyAvailabilityPayload map[string]PublicDayAvailabilityPayload

// PutAvailabilityRequest запрос на замену недельной доступности
type PutAvailabilityRequest struct {
	MentorID int64
	ActorID  int64
	Role     domain.ActorRole
	Week     WeeklyAvailabilityPayload
}

// AvailabilityResponse ответ с недельной доступностью ментора
type AvailabilityResponse struct {
	MentorID     int64                     `json:"mentorId"`
	Availability WeeklyAvailabilityPayload `json:"availability"`
}

// PublicAvailabilityResponse ответ с публичной доступностью ментора
type PublicAvailabilityResponse struct {
	MentorID     int64                           `json:"mentorId"`
	Availability PublicWeeklyAvailabilityPayload `json:"availability"`
}

// ToDomain конвертирует wire-формат в domain модель
// Дни, отсутствующие в запросе, остаются незаполненными: валидация в domain
// требует все семь ключей и отклонит такой запрос
func (p WeeklyAvailabilityPayload) ToDomain() domain.WeeklyAvailability {
	week := make(domain.WeeklyAvailability, len(p))
	for day, payload := range p {
		slots := make([]domain.TimeSlot, 0, len(payload.TimeSlots))
		for _, slot := range payload.TimeSlots {
			slots = append(slots, domain.TimeSlot{
				ID:     slot.ID,
				Start:  types.TimeString(slot.StartTime),
				End:    types.TimeString(slot.EndTime),
				Active: slot.IsActive,
			})
		}
		week[domain.Weekday(day)] = domain.DayAvailability{
			Available: payload.IsAvailable,
			Slots:     slots,
		}
	}
	return week
}

// FromDomainWeek конвертирует domain модель в wire-формат
func FromDomainWeek(mentorID int64, week domain.WeeklyAvailability) *AvailabilityResponse {
	payload := make(WeeklyAvailabilityPayload, len(week))
	for day, dayAvail := range week {
		slots := make([]TimeSlotPayload, 0, len(dayAvail.Slots))
		for _, slot := range dayAvail.Slots {
			slots = append(slots, TimeSlotPayload{
				ID:        slot.ID,
				StartTime: slot.Start.String(),
				EndTime:   slot.End.String(),
				IsActive:  slot.Active,
			})
		}
		payload[string(day)] = DayAvailabilityPayload{
			IsAvailable: dayAvail.Available,
			TimeSlots:   slots,
		}
	}
	return &AvailabilityResponse{
		MentorID:     mentorID,
		Availability: payload,
	}
}

// FromDomainWeekPublic конвертирует domain модель в публичный wire-формат:
// выключенные слоты скрыты, внутренние идентификаторы слотов не раскрываются
func FromDomainWeekPublic(mentorID int64, week domain.WeeklyAvailability) *PublicAvailabilityResponse {
	payload := make(PublicWeeklyAvailabilityPayload, len(week))
	for day, dayAvail := range week {
		slots := make([]PublicTimeSlotPayload, 0, len(dayAvail.Slots))
		if dayAvail.Available {
			for _, slot := range dayAvail.Slots {
				if !slot.Active {
					continue
				}
				slots = append(slots, PublicTimeSlotPayload{
					StartTime: slot.Start.String(),
					EndTime:   slot.End.String(),
				})
			}
		}
		payload[string(day)] = PublicDayAvailabilityPayload{
			IsAvailable: dayAvail.Available && len(slots) > 0,
			TimeSlots:   slots,
		}
	}
	return &PublicAvailabilityResponse{
		MentorID:     mentorID,
		Availability: payload,
	}
}
