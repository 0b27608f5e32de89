package availability

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/pkg/dbmetrics"
	"github.com/mentorgrid/MG-SessionService/pkg/psqlbuilder"
)

// Repository репозиторий недельной доступности менторов
//
// Хранение: mentor_availability — по строке на (mentor_id, weekday) с флагом
// доступности; availability_slots — слоты дня с сохранением порядка (position)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByMentor получает недельную доступность ментора
// Отсутствующие в БД дни возвращаются с дефолтом "недоступен",
// поэтому результат всегда плотный (все семь дней)
func (r *Repository) GetByMentor(ctx context.Context, mentorID int64) (domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	week := domain.NewWeeklyAvailability()

	query, args, err := psqlbuilder.Select("weekday", "is_available").
		From("mentor_availability").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentor - build days query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentor - execute days query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday string
		var available bool
		if err := rows.Scan(&weekday, &available); err != nil {
			return nil, fmt.Errorf("%w: GetByMentor - scan day: %v", ErrScanRow, err)
		}
		week[domain.Weekday(weekday)] = domain.DayAvailability{
			Available: available,
			Slots:     []domain.TimeSlot{},
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByMentor - days rows error: %v", ErrScanRow, err)
	}

	if err := r.loadSlots(ctx, executor, mentorID, week); err != nil {
		return nil, err
	}

	return week, nil
}

func (r *Repository) loadSlots(ctx context.Context, executor dbmetrics.DBExecutor, mentorID int64, week domain.WeeklyAvailability) error {
	query, args, err := psqlbuilder.Select("id", "weekday", "start_time", "end_time", "is_active").
		From("availability_slots").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		OrderBy("weekday", "position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadSlots - build slots query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadSlots - execute slots query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday string
		var slot domain.TimeSlot
		if err := rows.Scan(&slot.ID, &weekday, &slot.Start, &slot.End, &slot.Active); err != nil {
			return fmt.Errorf("%w: loadSlots - scan slot: %v", ErrScanRow, err)
		}

		day := week[domain.Weekday(weekday)]
		day.Slots = append(day.Slots, slot)
		week[domain.Weekday(weekday)] = day
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadSlots - slots rows error: %v", ErrScanRow, err)
	}

	return nil
}

// Replace полностью заменяет недельную доступность ментора
// Рассчитан на вызов внутри транзакции (txmanager кладет её в контекст):
// удаление и вставка либо применяются целиком, либо не применяются вовсе,
// поэтому неуспешная валидация или сбой не оставляют частичной записи
func (r *Repository) Replace(ctx context.Context, mentorID int64, week domain.WeeklyAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, table := range []string{"availability_slots", "mentor_availability"} {
		query, args, err := psqlbuilder.Delete(table).
			Where(squirrel.Eq{"mentor_id": mentorID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Replace - build delete query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Replace - execute delete: %v", ErrExecQuery, err)
		}
	}

	daysBuilder := psqlbuilder.Insert("mentor_availability").
		Columns("mentor_id", "weekday", "is_available")
	for _, weekday := range domain.Weekdays {
		daysBuilder = daysBuilder.Values(mentorID, string(weekday), week[weekday].Available)
	}

	query, args, err := daysBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build days insert: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Replace - execute days insert: %v", ErrExecQuery, err)
	}

	slotsBuilder := psqlbuilder.Insert("availability_slots").
		Columns("id", "mentor_id", "weekday", "start_time", "end_time", "is_active", "position")
	haveSlots := false
	for _, weekday := range domain.Weekdays {
		for position, slot := range week[weekday].Slots {
			slotsBuilder = slotsBuilder.Values(
				slot.ID, mentorID, string(weekday), slot.Start, slot.End, slot.Active, position,
			)
			haveSlots = true
		}
	}

	if !haveSlots {
		return nil
	}

	query, args, err = slotsBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build slots insert: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Replace - execute slots insert: %v", ErrExecQuery, err)
	}

	return nil
}
