package book_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
	sessionRepo "github.com/mentorgrid/MG-SessionService/internal/infra/storage/session"
	"github.com/mentorgrid/MG-SessionService/internal/integrations/notifier"
	profileClient "github.com/mentorgrid/MG-SessionService/internal/integrations/profileservice"
)

// UseCase use case для бронирования сессии
type UseCase struct {
	sessionRepo      SessionRepository
	availabilityRepo AvailabilityRepository
	profileClient    ProfileServiceClient
	notifier         Notifier
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	availabilityRepo AvailabilityRepository,
	profileClient ProfileServiceClient,
	notif Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:      sessionRepo,
		availabilityRepo: availabilityRepo,
		profileClient:    profileClient,
		notifier:         notif,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case бронирования сессии
// Проверка доступности и создание выполняются в сериализуемой транзакции;
// частичный уникальный индекс по (mentor_id, scheduled_start) страхует
// от двойного бронирования при конкурентных запросах
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSession: student=%d, mentor=%d, start=%s",
		req.StudentID, req.MentorID, req.ScheduledStart.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSession: validation failed: %v", err)
		return nil, err
	}

	// 2. Приводим запрошенное время к UTC - все сравнения в одной зоне
	start := req.ScheduledStart.UTC()
	now := uc.timeProvider.Now()

	if !start.After(now) {
		uc.logger.Warn("BookSession: start %s is in the past", start.Format(time.RFC3339))
		return nil, ErrStartInPast
	}

	// 3. Проверяем студента в ProfileService
	if _, err := uc.profileClient.GetUser(ctx, req.StudentID); err != nil {
		if errors.Is(err, profileClient.ErrUserNotFound) {
			uc.logger.Warn("BookSession: student id=%d not found", req.StudentID)
			return nil, ErrStudentNotFound
		}
		uc.logger.Error("BookSession: failed to get student id=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
	}

	// 4. Проверяем ментора и его роль
	mentor, err := uc.profileClient.GetUser(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, profileClient.ErrUserNotFound) {
			uc.logger.Warn("BookSession: mentor id=%d not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("BookSession: failed to get mentor id=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}
	if !mentor.IsMentor() {
		uc.logger.Warn("BookSession: user id=%d is not a mentor", req.MentorID)
		return nil, ErrNotAMentor
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.SlotGranularityMinutes
	}

	var result *domain.Session

	// 5. Проверка доступности и создание в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Недельное расписание ментора
		week, err := uc.availabilityRepo.GetByMentor(txCtx, req.MentorID)
		if err != nil {
			uc.logger.Error("BookSession: failed to get availability for mentor=%d: %v", req.MentorID, err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		// 5.2. Запрошенный старт должен входить в разрешённые слоты на эту дату
		instants := domain.ResolveBookableInstants(week, start, domain.SlotGranularityMinutes)
		if !isBookableInstant(start, instants) {
			uc.logger.Warn("BookSession: start %s is not bookable for mentor=%d",
				start.Format(time.RFC3339), req.MentorID)
			return ErrStartNotBookable
		}

		// 5.3. Проверяем занятость слота (FOR UPDATE внутри транзакции)
		existing, err := uc.sessionRepo.GetActiveByMentorAndStart(txCtx, req.MentorID, start)
		if err != nil {
			uc.logger.Error("BookSession: failed to check slot occupancy: %v", err)
			return fmt.Errorf("%w: failed to check slot occupancy: %v", ErrInternal, err)
		}
		if len(existing) > 0 {
			uc.logger.Warn("BookSession: slot %s already taken for mentor=%d",
				start.Format(time.RFC3339), req.MentorID)
			return ErrSlotTaken
		}

		// 5.4. Создаем сессию
		session := &domain.Session{
			StudentID:       req.StudentID,
			MentorID:        req.MentorID,
			Title:           req.Title,
			ScheduledStart:  start,
			DurationMinutes: duration,
			Status:          domain.StatusScheduled,
			MeetingLink:     req.MeetingLink,
			Notes:           req.Notes,
		}

		created, err := uc.sessionRepo.Create(txCtx, session)
		if err != nil {
			// Проигрыш гонки на уникальном индексе
			if errors.Is(err, sessionRepo.ErrSlotTaken) {
				uc.logger.Warn("BookSession: lost booking race for mentor=%d start=%s",
					req.MentorID, start.Format(time.RFC3339))
				return ErrSlotTaken
			}
			uc.logger.Error("BookSession: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.notifier.SessionEvent(notifier.EventSessionBooked, result)

	uc.logger.Info("BookSession: successfully created session id=%d", result.ID)
	return toResponse(result), nil
}

func toResponse(s *domain.Session) *Response {
	return &Response{
		ID:              s.ID,
		StudentID:       s.StudentID,
		MentorID:        s.MentorID,
		Title:           s.Title,
		ScheduledStart:  s.ScheduledStart,
		DurationMinutes: s.DurationMinutes,
		Status:          string(s.Status),
		MeetingLink:     s.MeetingLink,
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
