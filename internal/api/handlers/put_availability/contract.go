package put_availability

import (
	"context"

	"github.com/mentorgrid/MG-SessionService/internal/service/availability/models"
)

type AvailabilityService interface {
	Put(ctx context.Context, req *models.PutAvailabilityRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
