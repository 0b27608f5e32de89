package get_full_availability

import (
	"context"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/internal/service/availability/models"
)

type AvailabilityService interface {
	Get(ctx context.Context, mentorID int64, actorID int64, role domain.ActorRole) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
