package sweep_completions

import (
	"context"
	"fmt"

	"github.com/mentorgrid/MG-SessionService/internal/integrations/notifier"
)

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = fmt.Errorf("sweep_completions: internal error")

// Response результат прохода автозавершения
type Response struct {
	Completed int // Количество завершенных сессий
}

// UseCase use case автозавершения просроченных сессий
//
// Сессии в статусах scheduled и in_progress переводятся в completed,
// когда прошло scheduled_start + duration + буфер. Проход идемпотентен:
// повторный запуск не находит уже завершенные сессии
type UseCase struct {
	sessionRepo  SessionRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sessionRepo SessionRepository, notif Notifier, logger Logger) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		notifier:     notif,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет один проход автозавершения
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()

	completed, err := uc.sessionRepo.SweepDueCompletions(ctx, now)
	if err != nil {
		uc.logger.Error("SweepCompletions: sweep failed: %v", err)
		return nil, fmt.Errorf("%w: sweep failed: %v", ErrInternal, err)
	}

	for _, session := range completed {
		uc.notifier.SessionEvent(notifier.EventSessionCompleted, session)
	}

	if len(completed) > 0 {
		uc.logger.Info("SweepCompletions: completed %d sessions", len(completed))
	}

	return &Response{Completed: len(completed)}, nil
}
