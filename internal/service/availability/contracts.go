package availability

import (
	"context"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/internal/integrations/profileservice"
)

// AvailabilityRepository интерфейс репозитория недельной доступности
type AvailabilityRepository interface {
	GetByMentor(ctx context.Context, mentorID int64) (domain.WeeklyAvailability, error)
	Replace(ctx context.Context, mentorID int64, week domain.WeeklyAvailability) error
}

// UserProvider интерфейс для получения данных пользователей из ProfileService
type UserProvider interface {
	GetUser(ctx context.Context, userID int64) (*profileservice.User, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
