package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/pkg/dbmetrics"
	"github.com/mentorgrid/MG-SessionService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки postgres при нарушении unique-индекса
const uniqueViolation = "23505"

var sessionColumns = []string{
	"id",
	"student_id",
	"mentor_id",
	"title",
	"scheduled_start",
	"duration_minutes",
	"status",
	"meeting_link",
	"notes",
	"rating",
	"feedback",
	"cancelled_by",
	"cancellation_reason",
	"cancelled_at",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сессиями
//
// Все переходы статусов выполняются условными обновлениями
// (WHERE status IN <ожидаемые>), поэтому конкурентные переходы
// безопасны: проигравший получает ErrStatusConflict или no-op
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую сессию со статусом scheduled
// Нарушение частичного unique-индекса (mentor_id, scheduled_start)
// среди неотменённых сессий возвращается как ErrSlotTaken
func (r *Repository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"student_id",
			"mentor_id",
			"title",
			"scheduled_start",
			"duration_minutes",
			"status",
			"meeting_link",
			"notes",
		).
		Values(
			s.StudentID,
			s.MentorID,
			s.Title,
			s.ScheduledStart,
			s.DurationMinutes,
			s.Status,
			s.MeetingLink,
			s.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает сессию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSession(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetByParticipant получает сессии, в которых пользователь является
// студентом или ментором, с гибкой фильтрацией по статусу и периоду
func (r *Repository) GetByParticipant(ctx context.Context, filter domain.ParticipantSessionsFilter) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Or{
			squirrel.Eq{"student_id": filter.UserID},
			squirrel.Eq{"mentor_id": filter.UserID},
		}).
		OrderBy("scheduled_start DESC")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_start": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"scheduled_start": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Без явного статуса скрываем отменённые и no-show
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": []string{
			string(domain.StatusCancelled),
			string(domain.StatusNoShow),
		}})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParticipant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParticipant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// GetActiveByMentorAndStart получает неотменённые сессии ментора на конкретный
// момент начала. Внутри транзакции блокирует строки (FOR UPDATE) — используется
// usecase'ом бронирования для защиты от двойного бронирования
func (r *Repository) GetActiveByMentorAndStart(ctx context.Context, mentorID int64, start time.Time) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		Where(squirrel.Eq{"scheduled_start": start}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByMentorAndStart - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByMentorAndStart - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// Start переводит сессию scheduled -> in_progress
// Условное обновление: ErrStatusConflict, если статус уже не scheduled
func (r *Repository) Start(ctx context.Context, id int64) error {
	return r.conditionalUpdate(ctx, "Start",
		psqlbuilder.Update("sessions").
			Set("status", domain.StatusInProgress).
			Where(squirrel.Eq{"id": id}).
			Where(squirrel.Eq{"status": string(domain.StatusScheduled)}),
		id,
	)
}

// Cancel переводит сессию в cancelled с фиксацией момента, инициатора и причины
// Условное обновление по отменяемым статусам
func (r *Repository) Cancel(ctx context.Context, id int64, actor domain.CancelActor, reason string, now time.Time) error {
	cancellable := make([]string, len(domain.CancellableStatuses))
	for i, s := range domain.CancellableStatuses {
		cancellable[i] = string(s)
	}

	return r.conditionalUpdate(ctx, "Cancel",
		psqlbuilder.Update("sessions").
			Set("status", domain.StatusCancelled).
			Set("cancelled_by", actor).
			Set("cancellation_reason", reason).
			Set("cancelled_at", now).
			Where(squirrel.Eq{"id": id}).
			Where(squirrel.Eq{"status": cancellable}),
		id,
	)
}

// UpdateStatusConditional переводит сессию в to, только если текущий статус в from
// Используется для административного перевода в no_show
func (r *Repository) UpdateStatusConditional(ctx context.Context, id int64, from []domain.SessionStatus, to domain.SessionStatus) error {
	fromStrings := make([]string, len(from))
	for i, s := range from {
		fromStrings[i] = string(s)
	}

	return r.conditionalUpdate(ctx, "UpdateStatusConditional",
		psqlbuilder.Update("sessions").
			Set("status", to).
			Where(squirrel.Eq{"id": id}).
			Where(squirrel.Eq{"status": fromStrings}),
		id,
	)
}

// AttachOutcome записывает оценку и отзыв завершённой сессии
// Повторная запись разрешена (идемпотентное перезаписывание)
// ErrStatusConflict, если сессия не в статусе completed
func (r *Repository) AttachOutcome(ctx context.Context, id int64, rating int, feedback *string) error {
	return r.conditionalUpdate(ctx, "AttachOutcome",
		psqlbuilder.Update("sessions").
			Set("rating", rating).
			Set("feedback", feedback).
			Where(squirrel.Eq{"id": id}).
			Where(squirrel.Eq{"status": string(domain.StatusCompleted)}),
		id,
	)
}

// UpdateMeta обновляет ссылку на встречу и/или заметки
// Поля независимы от статуса; nil означает "не менять"
func (r *Repository) UpdateMeta(ctx context.Context, id int64, meetingLink, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("sessions").
		Where(squirrel.Eq{"id": id})

	if meetingLink != nil {
		updateBuilder = updateBuilder.Set("meeting_link", *meetingLink)
	}
	if notes != nil {
		updateBuilder = updateBuilder.Set("notes", *notes)
	}
	if meetingLink == nil && notes == nil {
		return nil
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateMeta - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateMeta - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateMeta - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// SweepDueCompletions переводит в completed все сессии, у которых
// scheduled_start + duration + буфер <= now и статус всё ещё допускает
// автозавершение. Одно условное обновление на весь набор: повторный или
// конкурентный вызов для уже завершённых сессий затрагивает ноль строк
// Возвращает завершённые этим вызовом сессии
func (r *Repository) SweepDueCompletions(ctx context.Context, now time.Time) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	autoCompletable := make([]string, len(domain.AutoCompletableStatuses))
	for i, s := range domain.AutoCompletableStatuses {
		autoCompletable[i] = string(s)
	}

	query, args, err := psqlbuilder.Update("sessions").
		Set("status", domain.StatusCompleted).
		Set("completed_at", now).
		Where(squirrel.Eq{"status": autoCompletable}).
		Where(squirrel.Expr(
			"scheduled_start + make_interval(mins => duration_minutes + ?) <= ?",
			domain.AutoCompleteBufferMinutes, now,
		)).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SweepDueCompletions - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SweepDueCompletions - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// conditionalUpdate выполняет условное обновление и различает
// "сессии нет" и "статус изменился конкурентно"
func (r *Repository) conditionalUpdate(ctx context.Context, op string, builder squirrel.UpdateBuilder, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		// Условие по статусу не прошло либо сессии нет — проверяем существование
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrStatusConflict
	}

	return nil
}

func columnList() string {
	list := sessionColumns[0]
	for _, c := range sessionColumns[1:] {
		list += ", " + c
	}
	return list
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSession(row rowScanner) (*domain.Session, error) {
	var s domain.Session
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.StudentID,
		&s.MentorID,
		&s.Title,
		&s.ScheduledStart,
		&s.DurationMinutes,
		&s.Status,
		&s.MeetingLink,
		&s.Notes,
		&s.Rating,
		&s.Feedback,
		&s.CancelledBy,
		&s.CancellationReason,
		&s.CancelledAt,
		&s.CompletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Все моменты времени храним и отдаем в UTC
	s.ScheduledStart = s.ScheduledStart.UTC()
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func (r *Repository) scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	sessions := make([]*domain.Session, 0)

	for rows.Next() {
		s, err := r.scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSessions - scan row: %v", ErrScanRow, err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSessions - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}
