package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/internal/integrations/profileservice"
	"github.com/mentorgrid/MG-SessionService/internal/service/availability/models"
)

// Service сервис управления недельной доступностью менторов
type Service struct {
	availabilityRepo AvailabilityRepository
	profileClient    UserProvider
	txManager        TxManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	profileClient UserProvider,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		profileClient:    profileClient,
		txManager:        txManager,
		logger:           logger,
	}
}

// Get получает полное недельное расписание ментора, включая выключенные слоты
// Доступ: сам ментор и администраторы
func (s *Service) Get(ctx context.Context, mentorID int64, actorID int64, role domain.ActorRole) (*models.AvailabilityResponse, error) {
	s.logger.Info("Get: fetching availability for mentor=%d by user=%d", mentorID, actorID)

	if actorID != mentorID && role != domain.RoleAdmin {
		s.logger.Warn("Get: access denied for user=%d to availability of mentor=%d", actorID, mentorID)
		return nil, ErrAccessDenied
	}

	week, err := s.availabilityRepo.GetByMentor(ctx, mentorID)
	if err != nil {
		s.logger.Error("Get: repository error for mentor=%d: %v", mentorID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(mentorID, week), nil
}

// GetPublic получает публичное расписание ментора: только доступные дни
// и активные слоты, без внутренних идентификаторов
func (s *Service) GetPublic(ctx context.Context, mentorID int64) (*models.PublicAvailabilityResponse, error) {
	s.logger.Info("GetPublic: fetching public availability for mentor=%d", mentorID)

	if err := s.checkMentor(ctx, mentorID); err != nil {
		return nil, err
	}

	week, err := s.availabilityRepo.GetByMentor(ctx, mentorID)
	if err != nil {
		s.logger.Error("GetPublic: repository error for mentor=%d: %v", mentorID, err)
		return nil, fmt.Errorf("%w: GetPublic - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeekPublic(mentorID, week), nil
}

// Put полностью заменяет недельное расписание ментора
// Доступ: сам ментор и администраторы. Расписание нормализуется
// (недоступные дни теряют слоты, слоты без id получают новый),
// затем валидируется; невалидное расписание ничего не меняет
func (s *Service) Put(ctx context.Context, req *models.PutAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Put: replacing availability for mentor=%d by user=%d", req.MentorID, req.ActorID)

	if req.ActorID != req.MentorID && req.Role != domain.RoleAdmin {
		s.logger.Warn("Put: access denied for user=%d to availability of mentor=%d", req.ActorID, req.MentorID)
		return nil, ErrAccessDenied
	}

	if err := s.checkMentor(ctx, req.MentorID); err != nil {
		return nil, err
	}

	week := req.Week.ToDomain()
	week.Normalize()

	if err := week.Validate(); err != nil {
		s.logger.Warn("Put: invalid availability for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidAvailability, err)
	}

	// Замена атомарна: delete+insert в одной транзакции
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.availabilityRepo.Replace(ctx, req.MentorID, week)
	})
	if err != nil {
		s.logger.Error("Put: failed to replace availability for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: Put - replace error: %v", ErrInternal, err)
	}

	s.logger.Info("Put: successfully replaced availability for mentor=%d", req.MentorID)
	return models.FromDomainWeek(req.MentorID, week), nil
}

// checkMentor проверяет через ProfileService, что пользователь существует
// и имеет роль ментора
func (s *Service) checkMentor(ctx context.Context, mentorID int64) error {
	user, err := s.profileClient.GetUser(ctx, mentorID)
	if err != nil {
		if errors.Is(err, profileservice.ErrUserNotFound) {
			s.logger.Warn("checkMentor: mentor=%d not found", mentorID)
			return ErrMentorNotFound
		}
		s.logger.Error("checkMentor: profile service error for mentor=%d: %v", mentorID, err)
		return fmt.Errorf("%w: checkMentor - profile service error: %v", ErrInternal, err)
	}

	if !user.IsMentor() {
		s.logger.Warn("checkMentor: user=%d is not a mentor", mentorID)
		return ErrNotAMentor
	}

	return nil
}
