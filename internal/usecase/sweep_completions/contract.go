package sweep_completions

import (
	"context"
	"time"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	SweepDueCompletions(ctx context.Context, now time.Time) ([]*domain.Session, error)
}

// Notifier fire-and-forget отправка событий жизненного цикла
type Notifier interface {
	SessionEvent(event string, session *domain.Session)
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
