package attach_outcome

import (
	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/internal/service/sessions/models"
)

// AttachOutcomeRequest HTTP request model
type AttachOutcomeRequest struct {
	Rating   int     `json:"rating"`
	Feedback *string `json:"feedback,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AttachOutcomeRequest) ToServiceRequest(actorID int64, role domain.ActorRole) *models.AttachOutcomeRequest {
	return &models.AttachOutcomeRequest{
		ActorID:  actorID,
		Role:     role,
		Rating:   r.Rating,
		Feedback: r.Feedback,
	}
}
