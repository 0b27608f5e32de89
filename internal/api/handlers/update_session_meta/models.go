package update_session_meta

import (
	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/internal/service/sessions/models"
)

// UpdateSessionMetaRequest HTTP request model
// Отсутствующее поле не меняет хранимое значение
type UpdateSessionMetaRequest struct {
	MeetingLink *string `json:"meetingLink,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSessionMetaRequest) ToServiceRequest(actorID int64, role domain.ActorRole) *models.UpdateMetaRequest {
	return &models.UpdateMetaRequest{
		ActorID:     actorID,
		Role:        role,
		MeetingLink: r.MeetingLink,
		Notes:       r.Notes,
	}
}
