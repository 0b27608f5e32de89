package availability

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/internal/integrations/profileservice"
	"github.com/mentorgrid/MG-SessionService/internal/service/availability/models"
	"github.com/mentorgrid/MG-SessionService/pkg/types"
)

type fakeAvailabilityRepo struct {
	weeks map[int64]domain.WeeklyAvailability
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{weeks: make(map[int64]domain.WeeklyAvailability)}
}

func (r *fakeAvailabilityRepo) GetByMentor(_ context.Context, mentorID int64) (domain.WeeklyAvailability, error) {
	week, ok := r.weeks[mentorID]
	if !ok {
		return domain.NewWeeklyAvailability(), nil
	}
	return week, nil
}

func (r *fakeAvailabilityRepo) Replace(_ context.Context, mentorID int64, week domain.WeeklyAvailability) error {
	r.weeks[mentorID] = week
	return nil
}

type fakeUserProvider struct {
	users map[int64]*profileservice.User
}

func (p *fakeUserProvider) GetUser(_ context.Context, userID int64) (*profileservice.User, error) {
	user, ok := p.users[userID]
	if !ok {
		return nil, profileservice.ErrUserNotFound
	}
	return user, nil
}

// fakeTxManager выполняет функцию без транзакции
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const mentorID int64 = 200

func newTestService(repo *fakeAvailabilityRepo) *Service {
	users := &fakeUserProvider{users: map[int64]*profileservice.User{
		mentorID: {ID: mentorID, Role: "mentor", IsActive: true},
		100:      {ID: 100, Role: "student", IsActive: true},
	}}
	return NewService(repo, users, fakeTxManager{}, nopLogger{})
}

// fullWeekPayload собирает запрос со всеми семью днями: понедельник по
// заданному шаблону, остальные дни недоступны
func fullWeekPayload(monday models.DayAvailabilityPayload) models.WeeklyAvailabilityPayload {
	week := make(models.WeeklyAvailabilityPayload, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		week[string(day)] = models.DayAvailabilityPayload{IsAvailable: false, TimeSlots: []models.TimeSlotPayload{}}
	}
	week[string(domain.Monday)] = monday
	return week
}

func TestService_Put(t *testing.T) {
	t.Run("mentor replaces own schedule", func(t *testing.T) {
		repo := newFakeAvailabilityRepo()
		svc := newTestService(repo)

		resp, err := svc.Put(context.Background(), &models.PutAvailabilityRequest{
			MentorID: mentorID, ActorID: mentorID, Role: domain.RoleMentor,
			Week: fullWeekPayload(models.DayAvailabilityPayload{
				IsAvailable: true,
				TimeSlots: []models.TimeSlotPayload{
					{StartTime: "09:00", EndTime: "12:00", IsActive: true},
				},
			}),
		})
		require.NoError(t, err)

		monday := resp.Availability[string(domain.Monday)]
		assert.True(t, monday.IsAvailable)
		require.Len(t, monday.TimeSlots, 1)
		// Нормализация выдала слоту идентификатор
		assert.NotEmpty(t, monday.TimeSlots[0].ID)

		stored := repo.weeks[mentorID]
		assert.True(t, stored[domain.Monday].Available)
	})

	t.Run("unavailable day loses slots on normalize", func(t *testing.T) {
		repo := newFakeAvailabilityRepo()
		svc := newTestService(repo)

		resp, err := svc.Put(context.Background(), &models.PutAvailabilityRequest{
			MentorID: mentorID, ActorID: mentorID, Role: domain.RoleMentor,
			Week: fullWeekPayload(models.DayAvailabilityPayload{
				IsAvailable: false,
				TimeSlots: []models.TimeSlotPayload{
					{StartTime: "09:00", EndTime: "12:00", IsActive: true},
				},
			}),
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Availability[string(domain.Monday)].TimeSlots)
	})

	t.Run("invalid schedule leaves storage untouched", func(t *testing.T) {
		repo := newFakeAvailabilityRepo()
		svc := newTestService(repo)

		tests := []struct {
			name   string
			monday models.DayAvailabilityPayload
		}{
			{
				name:   "available day without slots",
				monday: models.DayAvailabilityPayload{IsAvailable: true, TimeSlots: []models.TimeSlotPayload{}},
			},
			{
				name: "inverted slot range",
				monday: models.DayAvailabilityPayload{
					IsAvailable: true,
					TimeSlots:   []models.TimeSlotPayload{{StartTime: "12:00", EndTime: "09:00", IsActive: true}},
				},
			},
			{
				name: "unpadded time rejected",
				monday: models.DayAvailabilityPayload{
					IsAvailable: true,
					TimeSlots:   []models.TimeSlotPayload{{StartTime: "9:00", EndTime: "12:00", IsActive: true}},
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Put(context.Background(), &models.PutAvailabilityRequest{
					MentorID: mentorID, ActorID: mentorID, Role: domain.RoleMentor,
					Week: fullWeekPayload(tt.monday),
				})
				assert.ErrorIs(t, err, ErrInvalidAvailability)
				assert.Empty(t, repo.weeks)
			})
		}
	})

	t.Run("missing weekday rejected", func(t *testing.T) {
		repo := newFakeAvailabilityRepo()
		svc := newTestService(repo)

		week := fullWeekPayload(models.DayAvailabilityPayload{IsAvailable: false})
		delete(week, string(domain.Sunday))

		_, err := svc.Put(context.Background(), &models.PutAvailabilityRequest{
			MentorID: mentorID, ActorID: mentorID, Role: domain.RoleMentor,
			Week: week,
		})
		assert.ErrorIs(t, err, ErrInvalidAvailability)
	})

	t.Run("foreign mentor denied", func(t *testing.T) {
		svc := newTestService(newFakeAvailabilityRepo())

		_, err := svc.Put(context.Background(), &models.PutAvailabilityRequest{
			MentorID: mentorID, ActorID: 777, Role: domain.RoleMentor,
			Week: fullWeekPayload(models.DayAvailabilityPayload{IsAvailable: false}),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin may edit any mentor", func(t *testing.T) {
		svc := newTestService(newFakeAvailabilityRepo())

		_, err := svc.Put(context.Background(), &models.PutAvailabilityRequest{
			MentorID: mentorID, ActorID: 1, Role: domain.RoleAdmin,
			Week: fullWeekPayload(models.DayAvailabilityPayload{IsAvailable: false}),
		})
		assert.NoError(t, err)
	})

	t.Run("student target is not a mentor", func(t *testing.T) {
		svc := newTestService(newFakeAvailabilityRepo())

		_, err := svc.Put(context.Background(), &models.PutAvailabilityRequest{
			MentorID: 100, ActorID: 100, Role: domain.RoleMentor,
			Week: fullWeekPayload(models.DayAvailabilityPayload{IsAvailable: false}),
		})
		assert.ErrorIs(t, err, ErrNotAMentor)
	})

	t.Run("unknown mentor", func(t *testing.T) {
		svc := newTestService(newFakeAvailabilityRepo())

		_, err := svc.Put(context.Background(), &models.PutAvailabilityRequest{
			MentorID: 404, ActorID: 404, Role: domain.RoleMentor,
			Week: fullWeekPayload(models.DayAvailabilityPayload{IsAvailable: false}),
		})
		assert.ErrorIs(t, err, ErrMentorNotFound)
	})
}

func TestService_Get(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	week := domain.NewWeeklyAvailability()
	week[domain.Monday] = domain.DayAvailability{
		Available: true,
		Slots: []domain.TimeSlot{
			{ID: "slot-1", Start: types.TimeString("09:00"), End: types.TimeString("12:00"), Active: true},
			{ID: "slot-2", Start: types.TimeString("14:00"), End: types.TimeString("16:00"), Active: false},
		},
	}
	repo.weeks[mentorID] = week
	svc := newTestService(repo)

	t.Run("owner sees inactive slots and ids", func(t *testing.T) {
		resp, err := svc.Get(context.Background(), mentorID, mentorID, domain.RoleMentor)
		require.NoError(t, err)

		monday := resp.Availability[string(domain.Monday)]
		require.Len(t, monday.TimeSlots, 2)
		assert.Equal(t, "slot-1", monday.TimeSlots[0].ID)
		assert.False(t, monday.TimeSlots[1].IsActive)
	})

	t.Run("stranger denied", func(t *testing.T) {
		_, err := svc.Get(context.Background(), mentorID, 777, domain.RoleStudent)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("empty schedule is dense week of unavailable days", func(t *testing.T) {
		resp, err := svc.Get(context.Background(), mentorID, 1, domain.RoleAdmin)
		require.NoError(t, err)
		assert.Len(t, resp.Availability, len(domain.Weekdays))
	})
}

func TestService_GetPublic(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	week := domain.NewWeeklyAvailability()
	week[domain.Monday] = domain.DayAvailability{
		Available: true,
		Slots: []domain.TimeSlot{
			{ID: "slot-1", Start: types.TimeString("09:00"), End: types.TimeString("12:00"), Active: true},
			{ID: "slot-2", Start: types.TimeString("14:00"), End: types.TimeString("16:00"), Active: false},
		},
	}
	week[domain.Tuesday] = domain.DayAvailability{
		Available: true,
		Slots: []domain.TimeSlot{
			{ID: "slot-3", Start: types.TimeString("10:00"), End: types.TimeString("11:00"), Active: false},
		},
	}
	repo.weeks[mentorID] = week
	svc := newTestService(repo)

	resp, err := svc.GetPublic(context.Background(), mentorID)
	require.NoError(t, err)

	monday := resp.Availability[string(domain.Monday)]
	require.Len(t, monday.TimeSlots, 1)
	assert.Equal(t, "09:00", monday.TimeSlots[0].StartTime)

	// Публичный слот сводится к границам интервала: без id и флага активности
	raw, err := json.Marshal(monday.TimeSlots[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"startTime":"09:00","endTime":"12:00"}`, string(raw))

	// День только с выключенными слотами публично недоступен
	tuesday := resp.Availability[string(domain.Tuesday)]
	assert.False(t, tuesday.IsAvailable)
	assert.Empty(t, tuesday.TimeSlots)

	t.Run("non-mentor rejected", func(t *testing.T) {
		_, err := svc.GetPublic(context.Background(), 100)
		assert.ErrorIs(t, err, ErrNotAMentor)
	})
}
