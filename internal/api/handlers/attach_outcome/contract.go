package attach_outcome

import (
	"context"

	"github.com/mentorgrid/MG-SessionService/internal/service/sessions/models"
)

type SessionService interface {
	AttachOutcome(ctx context.Context, sessionID int64, req *models.AttachOutcomeRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
