package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
	sessionRepo "github.com/mentorgrid/MG-SessionService/internal/infra/storage/session"
	"github.com/mentorgrid/MG-SessionService/internal/integrations/notifier"
	"github.com/mentorgrid/MG-SessionService/internal/service/sessions/models"
)

// Service сервис для работы с жизненным циклом сессий
type Service struct {
	sessionRepo  SessionRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	sessionRepo SessionRepository,
	notif Notifier,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:  sessionRepo,
		notifier:     notif,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает сессию по ID
// Доступ: участники сессии и администраторы
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64, role domain.ActorRole) (*models.SessionResponse, error) {
	s.logger.Info("GetByID: fetching session id=%d for user=%d", id, actorID)

	session, err := s.loadSession(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !session.IsParticipant(actorID) && role != domain.RoleAdmin {
		s.logger.Warn("GetByID: access denied for user=%d to session id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainSession(session), nil
}

// GetUserSessions получает историю сессий пользователя (как студента и как ментора)
// Доступ: сам пользователь и администраторы
func (s *Service) GetUserSessions(ctx context.Context, req *models.GetUserSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("GetUserSessions: fetching sessions for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID != req.ActorID && req.Role != domain.RoleAdmin {
		s.logger.Warn("GetUserSessions: access denied for user=%d to sessions of user=%d", req.ActorID, req.UserID)
		return nil, ErrAccessDenied
	}

	filter := domain.ParticipantSessionsFilter{
		UserID:          req.UserID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IncludeInactive: req.IncludeInactive,
	}

	if req.Status != nil {
		status, err := domain.ParseSessionStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserSessions: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	list, err := s.sessionRepo.GetByParticipant(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserSessions: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserSessions: successfully fetched %d sessions for user=%d", len(list), req.UserID)
	return models.FromDomainSessionList(list), nil
}

// Cancel отменяет сессию по запросу студента, ментора или администратора
// Решение принимает чистая политика отмены; отклонённый запрос не меняет сессию
func (s *Service) Cancel(ctx context.Context, sessionID int64, req *models.CancelSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("Cancel: cancelling session id=%d by user=%d role=%s", sessionID, req.ActorID, req.Role)

	session, err := s.loadSession(ctx, "Cancel", sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.checkCancelAccess(session, req.ActorID, req.Role); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel session id=%d", req.ActorID, sessionID)
		return nil, err
	}

	now := s.timeProvider.Now()

	// Политика отмены: различаем "неверный статус" и "окно закрыто"
	if err := domain.CanCancel(session.ScheduledStart, now, req.Role, session.Status); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotCancellable):
			s.logger.Warn("Cancel: session id=%d not cancellable, status=%s", sessionID, session.Status)
			return nil, ErrNotCancellable
		case errors.Is(err, domain.ErrCancelWindowPassed):
			s.logger.Warn("Cancel: window passed for session id=%d, role=%s", sessionID, req.Role)
			return nil, ErrCancelWindowPassed
		default:
			return nil, fmt.Errorf("%w: Cancel - policy error: %v", ErrInternal, err)
		}
	}

	reason := req.Reason
	if reason == "" {
		reason = domain.DefaultCancellationReason
	}
	if len(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	actor := domain.CancelActorForRole(req.Role)

	// Условное обновление: проигрыш гонки со sweep'ом или другой отменой -> Conflict
	if err := s.sessionRepo.Cancel(ctx, sessionID, actor, reason, now); err != nil {
		switch {
		case errors.Is(err, sessionRepo.ErrSessionNotFound):
			return nil, ErrSessionNotFound
		case errors.Is(err, sessionRepo.ErrStatusConflict):
			s.logger.Warn("Cancel: lost concurrent transition race for session id=%d", sessionID)
			return nil, ErrConflict
		default:
			s.logger.Error("Cancel: repository error for session id=%d: %v", sessionID, err)
			return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	updated, err := s.loadSession(ctx, "Cancel", sessionID)
	if err != nil {
		return nil, err
	}

	s.notifier.SessionEvent(notifier.EventSessionCancelled, updated)

	s.logger.Info("Cancel: successfully cancelled session id=%d by %s", sessionID, actor)
	return models.FromDomainSession(updated), nil
}

// Start переводит сессию scheduled -> in_progress
// Доступно только назначенному ментору, не раньше чем за
// domain.EarlyJoinWindowMinutes до начала
func (s *Service) Start(ctx context.Context, sessionID int64, actorID int64) (*models.SessionResponse, error) {
	s.logger.Info("Start: starting session id=%d by user=%d", sessionID, actorID)

	session, err := s.loadSession(ctx, "Start", sessionID)
	if err != nil {
		return nil, err
	}

	if session.MentorID != actorID {
		s.logger.Warn("Start: user=%d is not the assigned mentor of session id=%d", actorID, sessionID)
		return nil, ErrAccessDenied
	}

	now := s.timeProvider.Now()

	if err := domain.CanStart(session.ScheduledStart, now, session.Status); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotStartable):
			s.logger.Warn("Start: session id=%d not startable, status=%s", sessionID, session.Status)
			return nil, ErrNotStartable
		case errors.Is(err, domain.ErrTooEarlyToStart):
			s.logger.Warn("Start: too early to start session id=%d", sessionID)
			return nil, ErrTooEarlyToStart
		default:
			return nil, fmt.Errorf("%w: Start - policy error: %v", ErrInternal, err)
		}
	}

	if err := s.sessionRepo.Start(ctx, sessionID); err != nil {
		switch {
		case errors.Is(err, sessionRepo.ErrSessionNotFound):
			return nil, ErrSessionNotFound
		case errors.Is(err, sessionRepo.ErrStatusConflict):
			s.logger.Warn("Start: lost concurrent transition race for session id=%d", sessionID)
			return nil, ErrConflict
		default:
			s.logger.Error("Start: repository error for session id=%d: %v", sessionID, err)
			return nil, fmt.Errorf("%w: Start - repository error: %v", ErrInternal, err)
		}
	}

	updated, err := s.loadSession(ctx, "Start", sessionID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Start: successfully started session id=%d", sessionID)
	return models.FromDomainSession(updated), nil
}

// AttachOutcome прикрепляет оценку и отзыв к завершенной сессии
// Доступно студенту сессии и администраторам; повторное прикрепление
// разрешено и перезаписывает предыдущее
func (s *Service) AttachOutcome(ctx context.Context, sessionID int64, req *models.AttachOutcomeRequest) (*models.SessionResponse, error) {
	s.logger.Info("AttachOutcome: attaching outcome to session id=%d by user=%d", sessionID, req.ActorID)

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if req.Feedback != nil && len(*req.Feedback) > domain.MaxFeedbackLength {
		return nil, fmt.Errorf("%w: feedback too long", ErrInvalidInput)
	}

	session, err := s.loadSession(ctx, "AttachOutcome", sessionID)
	if err != nil {
		return nil, err
	}

	if session.StudentID != req.ActorID && req.Role != domain.RoleAdmin {
		s.logger.Warn("AttachOutcome: access denied for user=%d to session id=%d", req.ActorID, sessionID)
		return nil, ErrAccessDenied
	}

	if !session.IsCompleted() {
		s.logger.Warn("AttachOutcome: session id=%d is not completed, status=%s", sessionID, session.Status)
		return nil, ErrNotCompleted
	}

	if err := s.sessionRepo.AttachOutcome(ctx, sessionID, req.Rating, req.Feedback); err != nil {
		switch {
		case errors.Is(err, sessionRepo.ErrSessionNotFound):
			return nil, ErrSessionNotFound
		case errors.Is(err, sessionRepo.ErrStatusConflict):
			// Статус сменился между чтением и записью
			return nil, ErrNotCompleted
		default:
			s.logger.Error("AttachOutcome: repository error for session id=%d: %v", sessionID, err)
			return nil, fmt.Errorf("%w: AttachOutcome - repository error: %v", ErrInternal, err)
		}
	}

	updated, err := s.loadSession(ctx, "AttachOutcome", sessionID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AttachOutcome: successfully attached outcome to session id=%d", sessionID)
	return models.FromDomainSession(updated), nil
}

// MarkNoShow административный перевод сессии в no_show
// Доступно только администраторам
func (s *Service) MarkNoShow(ctx context.Context, sessionID int64, actorID int64, role domain.ActorRole) (*models.SessionResponse, error) {
	s.logger.Info("MarkNoShow: marking session id=%d as no-show by user=%d", sessionID, actorID)

	if role != domain.RoleAdmin {
		s.logger.Warn("MarkNoShow: access denied for user=%d", actorID)
		return nil, ErrAccessDenied
	}

	err := s.sessionRepo.UpdateStatusConditional(ctx, sessionID, domain.AutoCompletableStatuses, domain.StatusNoShow)
	if err != nil {
		switch {
		case errors.Is(err, sessionRepo.ErrSessionNotFound):
			return nil, ErrSessionNotFound
		case errors.Is(err, sessionRepo.ErrStatusConflict):
			s.logger.Warn("MarkNoShow: session id=%d already in terminal status", sessionID)
			return nil, ErrConflict
		default:
			s.logger.Error("MarkNoShow: repository error for session id=%d: %v", sessionID, err)
			return nil, fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
		}
	}

	updated, err := s.loadSession(ctx, "MarkNoShow", sessionID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("MarkNoShow: successfully marked session id=%d as no-show", sessionID)
	return models.FromDomainSession(updated), nil
}

// UpdateMeta обновляет ссылку на встречу и заметки
// Поля изменяемы независимо от статуса; доступно участникам и администраторам
func (s *Service) UpdateMeta(ctx context.Context, sessionID int64, req *models.UpdateMetaRequest) (*models.SessionResponse, error) {
	s.logger.Info("UpdateMeta: updating session id=%d by user=%d", sessionID, req.ActorID)

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	session, err := s.loadSession(ctx, "UpdateMeta", sessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsParticipant(req.ActorID) && req.Role != domain.RoleAdmin {
		s.logger.Warn("UpdateMeta: access denied for user=%d to session id=%d", req.ActorID, sessionID)
		return nil, ErrAccessDenied
	}

	if err := s.sessionRepo.UpdateMeta(ctx, sessionID, req.MeetingLink, req.Notes); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("UpdateMeta: repository error for session id=%d: %v", sessionID, err)
		return nil, fmt.Errorf("%w: UpdateMeta - repository error: %v", ErrInternal, err)
	}

	updated, err := s.loadSession(ctx, "UpdateMeta", sessionID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateMeta: successfully updated session id=%d", sessionID)
	return models.FromDomainSession(updated), nil
}

// Вспомогательные методы

func (s *Service) loadSession(ctx context.Context, op string, id int64) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("%s: session id=%d not found", op, id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("%s: repository error for session id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return session, nil
}

// checkCancelAccess проверяет, что инициатор отмены имеет право действовать
// от заявленной роли в этой сессии
func (s *Service) checkCancelAccess(session *domain.Session, actorID int64, role domain.ActorRole) error {
	switch role {
	case domain.RoleStudent:
		if session.StudentID != actorID {
			return ErrAccessDenied
		}
	case domain.RoleMentor:
		if session.MentorID != actorID {
			return ErrAccessDenied
		}
	case domain.RoleAdmin:
		// Администратор отменяет от имени системы
	default:
		return ErrAccessDenied
	}
	return nil
}
