package get_availability

import (
	"context"

	"github.com/mentorgrid/MG-SessionService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetPublic(ctx context.Context, mentorID int64) (*models.PublicAvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
