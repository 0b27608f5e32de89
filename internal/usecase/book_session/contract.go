package book_session

import (
	"context"
	"time"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/internal/integrations/profileservice"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	GetActiveByMentorAndStart(ctx context.Context, mentorID int64, start time.Time) ([]*domain.Session, error)
}

// AvailabilityRepository интерфейс репозитория недельной доступности
type AvailabilityRepository interface {
	GetByMentor(ctx context.Context, mentorID int64) (domain.WeeklyAvailability, error)
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*profileservice.User, error)
}

// Notifier fire-and-forget отправка событий жизненного цикла
type Notifier interface {
	SessionEvent(event string, session *domain.Session)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
