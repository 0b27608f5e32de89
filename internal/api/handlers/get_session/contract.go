package get_session

import (
	"context"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/internal/service/sessions/models"
)

type SessionService interface {
	GetByID(ctx context.Context, id int64, actorID int64, role domain.ActorRole) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
