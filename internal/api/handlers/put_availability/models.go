package put_availability

import (
	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/internal/service/availability/models"
)

// PutAvailabilityRequest HTTP request model: недельное расписание,
// ключи - дни недели в нижнем регистре
type PutAvailabilityRequest map[string]models.DayAvailabilityPayload

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r PutAvailabilityRequest) ToServiceRequest(mentorID, actorID int64, role domain.ActorRole) *models.PutAvailabilityRequest {
	return &models.PutAvailabilityRequest{
		MentorID: mentorID,
		ActorID:  actorID,
		Role:     role,
		Week:     models.WeeklyAvailabilityPayload(r),
	}
}
