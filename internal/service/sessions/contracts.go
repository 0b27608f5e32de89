package sessions

import (
	"context"
	"time"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	GetByParticipant(ctx context.Context, filter domain.ParticipantSessionsFilter) ([]*domain.Session, error)
	Start(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64, actor domain.CancelActor, reason string, now time.Time) error
	UpdateStatusConditional(ctx context.Context, id int64, from []domain.SessionStatus, to domain.SessionStatus) error
	AttachOutcome(ctx context.Context, id int64, rating int, feedback *string) error
	UpdateMeta(ctx context.Context, id int64, meetingLink, notes *string) error
}

// Notifier fire-and-forget отправка событий жизненного цикла
// Ошибки доставки не влияют на результат операций
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
// Отдает время в UTC: все сравнения в ядре выполняются в одной зоне
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
