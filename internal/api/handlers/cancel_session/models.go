package cancel_session

import (
	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/internal/service/sessions/models"
)

// CancelSessionRequest HTTP request model
type CancelSessionRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelSessionRequest) ToServiceRequest(actorID int64, role domain.ActorRole) *models.CancelSessionRequest {
	reason := ""
	if r.Reason != nil {
		reason = *r.Reason
	}

	return &models.CancelSessionRequest{
		ActorID: actorID,
		Role:    role,
		Reason:  reason,
	}
}
