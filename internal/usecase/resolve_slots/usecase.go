package resolve_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
	profileClient "github.com/mentorgrid/MG-SessionService/internal/integrations/profileservice"
)

// UseCase use case для получения доступных слотов ментора на дату
type UseCase struct {
	availabilityRepo AvailabilityRepository
	sessionRepo      SessionRepository
	profileClient    ProfileServiceClient
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	sessionRepo SessionRepository,
	profileClient ProfileServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		sessionRepo:      sessionRepo,
		profileClient:    profileClient,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
// Слоты раскрываются из недельного расписания с шагом
// domain.SlotGranularityMinutes; прошедшие и занятые старты скрываются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveSlots: mentor=%d, date=%s",
		req.MentorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. На прошедшие даты слотов нет
	if isDateInPast(req.Date, now) {
		uc.logger.Info("ResolveSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return &Response{MentorID: req.MentorID, Date: req.Date, Slots: []Slot{}}, nil
	}

	// 3. Проверяем ментора в ProfileService
	mentor, err := uc.profileClient.GetUser(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, profileClient.ErrUserNotFound) {
			uc.logger.Warn("ResolveSlots: mentor id=%d not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("ResolveSlots: failed to get mentor id=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}
	if !mentor.IsMentor() {
		uc.logger.Warn("ResolveSlots: user id=%d is not a mentor", req.MentorID)
		return nil, ErrNotAMentor
	}

	// 4. Недельное расписание ментора
	week, err := uc.availabilityRepo.GetByMentor(ctx, req.MentorID)
	if err != nil {
		uc.logger.Error("ResolveSlots: failed to get availability for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 5. Раскрываем расписание в конкретные старты
	instants := domain.ResolveBookableInstants(week, req.Date, domain.SlotGranularityMinutes)

	slots := make([]Slot, 0, len(instants))
	for _, instant := range instants {
		// 5.1. Прошедшие старты скрываем (актуально для сегодняшней даты)
		if !instant.After(now) {
			continue
		}

		// 5.2. Занятые старты скрываем
		existing, err := uc.sessionRepo.GetActiveByMentorAndStart(ctx, req.MentorID, instant)
		if err != nil {
			uc.logger.Error("ResolveSlots: failed to check slot occupancy: %v", err)
			return nil, fmt.Errorf("%w: failed to check slot occupancy: %v", ErrInternal, err)
		}
		if len(existing) > 0 {
			continue
		}

		slots = append(slots, Slot{
			StartTime: instant.Format(domain.TimeFormat),
			Start:     instant,
		})
	}

	uc.logger.Info("ResolveSlots: %d slots available for mentor=%d on %s",
		len(slots), req.MentorID, req.Date.Format(domain.DateFormat))

	return &Response{
		MentorID: req.MentorID,
		Date:     req.Date,
		Slots:    slots,
	}, nil
}
