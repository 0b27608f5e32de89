package resolve_slots

import (
	"context"
	"time"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/internal/integrations/profileservice"
)

// AvailabilityRepository интерфейс репозитория недельной доступности
type AvailabilityRepository interface {
	GetByMentor(ctx context.Context, mentorID int64) (domain.WeeklyAvailability, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetActiveByMentorAndStart(ctx context.Context, mentorID int64, start time.Time) ([]*domain.Session, error)
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*profileservice.User, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
