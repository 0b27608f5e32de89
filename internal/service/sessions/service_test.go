package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
	sessionRepo "github.com/mentorgrid/MG-SessionService/internal/infra/storage/session"
	"github.com/mentorgrid/MG-SessionService/internal/service/sessions/models"
	"github.com/mentorgrid/MG-SessionService/pkg/ptr"
)

// fakeSessionRepo реализует SessionRepository в памяти с семантикой
// условных обновлений, как у SQL-репозитория
type fakeSessionRepo struct {
	sessions map[int64]*domain.Session
}

func newFakeSessionRepo(sessions ...*domain.Session) *fakeSessionRepo {
	repo := &fakeSessionRepo{sessions: make(map[int64]*domain.Session)}
	for _, s := range sessions {
		copied := *s
		repo.sessions[s.ID] = &copied
	}
	return repo
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id int64) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, sessionRepo.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSessionRepo) GetByParticipant(_ context.Context, filter domain.ParticipantSessionsFilter) ([]*domain.Session, error) {
	var result []*domain.Session
	for _, s := range r.sessions {
		if !s.IsParticipant(filter.UserID) {
			continue
		}
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		if filter.Status == nil && !filter.IncludeInactive &&
			(s.Status == domain.StatusCancelled || s.Status == domain.StatusNoShow) {
			continue
		}
		copied := *s
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeSessionRepo) Start(_ context.Context, id int64) error {
	s, ok := r.sessions[id]
	if !ok {
		return sessionRepo.ErrSessionNotFound
	}
	if s.Status != domain.StatusScheduled {
		return sessionRepo.ErrStatusConflict
	}
	s.Status = domain.StatusInProgress
	return nil
}

func (r *fakeSessionRepo) Cancel(_ context.Context, id int64, actor domain.CancelActor, reason string, now time.Time) error {
	s, ok := r.sessions[id]
	if !ok {
		return sessionRepo.ErrSessionNotFound
	}
	cancellable := false
	for _, st := range domain.CancellableStatuses {
		if s.Status == st {
			cancellable = true
		}
	}
	if !cancellable {
		return sessionRepo.ErrStatusConflict
	}
	s.Status = domain.StatusCancelled
	s.CancelledBy = &actor
	s.CancellationReason = &reason
	s.CancelledAt = &now
	return nil
}

func (r *fakeSessionRepo) UpdateStatusConditional(_ context.Context, id int64, from []domain.SessionStatus, to domain.SessionStatus) error {
	s, ok := r.sessions[id]
	if !ok {
		return sessionRepo.ErrSessionNotFound
	}
	for _, st := range from {
		if s.Status == st {
			s.Status = to
			return nil
		}
	}
	return sessionRepo.ErrStatusConflict
}

func (r *fakeSessionRepo) AttachOutcome(_ context.Context, id int64, rating int, feedback *string) error {
	s, ok := r.sessions[id]
	if !ok {
		return sessionRepo.ErrSessionNotFound
	}
	if s.Status != domain.StatusCompleted {
		return sessionRepo.ErrStatusConflict
	}
	s.Rating = &rating
	s.Feedback = feedback
	return nil
}

func (r *fakeSessionRepo) UpdateMeta(_ context.Context, id int64, meetingLink, notes *string) error {
	s, ok := r.sessions[id]
	if !ok {
		return sessionRepo.ErrSessionNotFound
	}
	if meetingLink != nil {
		s.MeetingLink = meetingLink
	}
	if notes != nil {
		s.Notes = notes
	}
	return nil
}

// fakeNotifier запоминает отправленные события
type fakeNotifier struct {
	events []string
}

func (n *fakeNotifier) SessionEvent(event string, _ *domain.Session) {
	n.events = append(n.events, event)
}

// fixedTimeProvider отдает заранее заданное время
type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testStart = time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC)

func testSession(status domain.SessionStatus) *domain.Session {
	return &domain.Session{
		ID:              1,
		StudentID:       100,
		MentorID:        200,
		Title:           "Введение в Go",
		ScheduledStart:  testStart,
		DurationMinutes: 60,
		Status:          status,
	}
}

func newTestService(repo *fakeSessionRepo, notif *fakeNotifier, now time.Time) *Service {
	return NewService(repo, notif, nopLogger{}).WithTimeProvider(&fixedTimeProvider{now: now})
}

func TestService_GetByID(t *testing.T) {
	repo := newFakeSessionRepo(testSession(domain.StatusScheduled))

	tests := []struct {
		name    string
		id      int64
		actorID int64
		role    domain.ActorRole
		wantErr error
	}{
		{name: "student participant", id: 1, actorID: 100, role: domain.RoleStudent},
		{name: "mentor participant", id: 1, actorID: 200, role: domain.RoleMentor},
		{name: "admin non-participant", id: 1, actorID: 999, role: domain.RoleAdmin},
		{name: "foreign user denied", id: 1, actorID: 999, role: domain.RoleStudent, wantErr: ErrAccessDenied},
		{name: "missing session", id: 42, actorID: 100, role: domain.RoleStudent, wantErr: ErrSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(repo, &fakeNotifier{}, testStart)
			resp, err := svc.GetByID(context.Background(), tt.id, tt.actorID, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), resp.ID)
			assert.Equal(t, "scheduled", resp.Status)
		})
	}
}

func TestService_GetUserSessions(t *testing.T) {
	completed := testSession(domain.StatusCompleted)
	cancelled := testSession(domain.StatusCancelled)
	cancelled.ID = 2
	other := testSession(domain.StatusScheduled)
	other.ID = 3
	other.StudentID = 555
	other.MentorID = 556
	repo := newFakeSessionRepo(completed, cancelled, other)
	svc := newTestService(repo, &fakeNotifier{}, testStart)

	t.Run("own sessions exclude cancelled by default", func(t *testing.T) {
		resp, err := svc.GetUserSessions(context.Background(), &models.GetUserSessionsRequest{
			UserID: 100, ActorID: 100, Role: domain.RoleStudent,
		})
		require.NoError(t, err)
		require.Len(t, resp.Sessions, 1)
		assert.Equal(t, "completed", resp.Sessions[0].Status)
	})

	t.Run("include inactive returns cancelled too", func(t *testing.T) {
		resp, err := svc.GetUserSessions(context.Background(), &models.GetUserSessionsRequest{
			UserID: 100, ActorID: 100, Role: domain.RoleStudent, IncludeInactive: true,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Sessions, 2)
	})

	t.Run("upcoming alias filters to scheduled", func(t *testing.T) {
		resp, err := svc.GetUserSessions(context.Background(), &models.GetUserSessionsRequest{
			UserID: 555, ActorID: 555, Role: domain.RoleStudent, Status: ptr.Ptr("upcoming"),
		})
		require.NoError(t, err)
		require.Len(t, resp.Sessions, 1)
		assert.Equal(t, "scheduled", resp.Sessions[0].Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := svc.GetUserSessions(context.Background(), &models.GetUserSessionsRequest{
			UserID: 100, ActorID: 100, Role: domain.RoleStudent, Status: ptr.Ptr("paused"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("foreign history denied for non-admin", func(t *testing.T) {
		_, err := svc.GetUserSessions(context.Background(), &models.GetUserSessionsRequest{
			UserID: 100, ActorID: 555, Role: domain.RoleStudent,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin sees foreign history", func(t *testing.T) {
		resp, err := svc.GetUserSessions(context.Background(), &models.GetUserSessionsRequest{
			UserID: 100, ActorID: 1, Role: domain.RoleAdmin,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Sessions, 1)
	})
}

func TestService_Cancel(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.SessionStatus
		actorID int64
		role    domain.ActorRole
		now     time.Time
		wantErr error
		wantBy  domain.CancelActor
	}{
		{
			name:    "student within notice window",
			status:  domain.StatusScheduled,
			actorID: 100, role: domain.RoleStudent,
			now:     testStart.Add(-domain.StudentCancelNotice - time.Second),
			wantBy:  domain.CancelledByStudent,
		},
		{
			name:    "student past notice window",
			status:  domain.StatusScheduled,
			actorID: 100, role: domain.RoleStudent,
			now:     testStart.Add(-domain.StudentCancelNotice),
			wantErr: ErrCancelWindowPassed,
		},
		{
			name:    "mentor up to start",
			status:  domain.StatusScheduled,
			actorID: 200, role: domain.RoleMentor,
			now:     testStart.Add(-time.Second),
			wantBy:  domain.CancelledByMentor,
		},
		{
			name:    "mentor after start",
			status:  domain.StatusScheduled,
			actorID: 200, role: domain.RoleMentor,
			now:     testStart,
			wantErr: ErrCancelWindowPassed,
		},
		{
			name:    "admin cancels as system",
			status:  domain.StatusScheduled,
			actorID: 999, role: domain.RoleAdmin,
			now:     testStart.Add(-time.Minute),
			wantBy:  domain.CancelledBySystem,
		},
		{
			name:    "in_progress not cancellable",
			status:  domain.StatusInProgress,
			actorID: 200, role: domain.RoleMentor,
			now:     testStart.Add(time.Minute),
			wantErr: ErrNotCancellable,
		},
		{
			name:    "completed not cancellable",
			status:  domain.StatusCompleted,
			actorID: 100, role: domain.RoleStudent,
			now:     testStart.Add(-48 * time.Hour),
			wantErr: ErrNotCancellable,
		},
		{
			name:    "foreign student denied",
			status:  domain.StatusScheduled,
			actorID: 555, role: domain.RoleStudent,
			now:     testStart.Add(-48 * time.Hour),
			wantErr: ErrAccessDenied,
		},
		{
			name:    "mentor claiming someone else's session denied",
			status:  domain.StatusScheduled,
			actorID: 100, role: domain.RoleMentor,
			now:     testStart.Add(-48 * time.Hour),
			wantErr: ErrAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSessionRepo(testSession(tt.status))
			notif := &fakeNotifier{}
			svc := newTestService(repo, notif, tt.now)

			resp, err := svc.Cancel(context.Background(), 1, &models.CancelSessionRequest{
				ActorID: tt.actorID,
				Role:    tt.role,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				// Отклонённая отмена не меняет сессию
				stored, _ := repo.GetByID(context.Background(), 1)
				assert.Equal(t, tt.status, stored.Status)
				assert.Empty(t, notif.events)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "cancelled", resp.Status)
			require.NotNil(t, resp.CancelledBy)
			assert.Equal(t, string(tt.wantBy), *resp.CancelledBy)
			require.NotNil(t, resp.CancellationReason)
			assert.Equal(t, domain.DefaultCancellationReason, *resp.CancellationReason)
			assert.Equal(t, []string{"session.cancelled"}, notif.events)
		})
	}
}

func TestService_Cancel_KeepsProvidedReason(t *testing.T) {
	repo := newFakeSessionRepo(testSession(domain.StatusScheduled))
	svc := newTestService(repo, &fakeNotifier{}, testStart.Add(-48*time.Hour))

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelSessionRequest{
		ActorID: 100,
		Role:    domain.RoleStudent,
		Reason:  "заболел",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "заболел", *resp.CancellationReason)
}

func TestService_Start(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.SessionStatus
		actorID int64
		now     time.Time
		wantErr error
	}{
		{
			name:   "mentor at window open",
			status: domain.StatusScheduled, actorID: 200,
			now:    testStart.Add(-time.Duration(domain.EarlyJoinWindowMinutes) * time.Minute),
		},
		{
			name:   "mentor after start",
			status: domain.StatusScheduled, actorID: 200,
			now:    testStart.Add(5 * time.Minute),
		},
		{
			name:    "too early",
			status:  domain.StatusScheduled, actorID: 200,
			now:     testStart.Add(-time.Duration(domain.EarlyJoinWindowMinutes)*time.Minute - time.Second),
			wantErr: ErrTooEarlyToStart,
		},
		{
			name:    "student cannot start",
			status:  domain.StatusScheduled, actorID: 100,
			now:     testStart,
			wantErr: ErrAccessDenied,
		},
		{
			name:    "already in progress",
			status:  domain.StatusInProgress, actorID: 200,
			now:     testStart,
			wantErr: ErrNotStartable,
		},
		{
			name:    "cancelled not startable",
			status:  domain.StatusCancelled, actorID: 200,
			now:     testStart,
			wantErr: ErrNotStartable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSessionRepo(testSession(tt.status))
			svc := newTestService(repo, &fakeNotifier{}, tt.now)

			resp, err := svc.Start(context.Background(), 1, tt.actorID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "in_progress", resp.Status)
		})
	}
}

func TestService_AttachOutcome(t *testing.T) {
	feedback := "отличная сессия"

	tests := []struct {
		name    string
		status  domain.SessionStatus
		actorID int64
		role    domain.ActorRole
		rating  int
		wantErr error
	}{
		{name: "student attaches to completed", status: domain.StatusCompleted, actorID: 100, role: domain.RoleStudent, rating: 5},
		{name: "admin attaches to completed", status: domain.StatusCompleted, actorID: 999, role: domain.RoleAdmin, rating: 3},
		{name: "mentor denied", status: domain.StatusCompleted, actorID: 200, role: domain.RoleMentor, rating: 5, wantErr: ErrAccessDenied},
		{name: "scheduled not completed", status: domain.StatusScheduled, actorID: 100, role: domain.RoleStudent, rating: 5, wantErr: ErrNotCompleted},
		{name: "rating below range", status: domain.StatusCompleted, actorID: 100, role: domain.RoleStudent, rating: 0, wantErr: ErrInvalidInput},
		{name: "rating above range", status: domain.StatusCompleted, actorID: 100, role: domain.RoleStudent, rating: 6, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSessionRepo(testSession(tt.status))
			svc := newTestService(repo, &fakeNotifier{}, testStart)

			resp, err := svc.AttachOutcome(context.Background(), 1, &models.AttachOutcomeRequest{
				ActorID:  tt.actorID,
				Role:     tt.role,
				Rating:   tt.rating,
				Feedback: &feedback,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, resp.Rating)
			assert.Equal(t, tt.rating, *resp.Rating)
			require.NotNil(t, resp.Feedback)
			assert.Equal(t, feedback, *resp.Feedback)
		})
	}
}

func TestService_AttachOutcome_Overwrite(t *testing.T) {
	repo := newFakeSessionRepo(testSession(domain.StatusCompleted))
	svc := newTestService(repo, &fakeNotifier{}, testStart)

	_, err := svc.AttachOutcome(context.Background(), 1, &models.AttachOutcomeRequest{
		ActorID: 100, Role: domain.RoleStudent, Rating: 2,
	})
	require.NoError(t, err)

	resp, err := svc.AttachOutcome(context.Background(), 1, &models.AttachOutcomeRequest{
		ActorID: 100, Role: domain.RoleStudent, Rating: 5,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Rating)
	assert.Equal(t, 5, *resp.Rating)
}

func TestService_MarkNoShow(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.SessionStatus
		role    domain.ActorRole
		wantErr error
	}{
		{name: "admin marks scheduled", status: domain.StatusScheduled, role: domain.RoleAdmin},
		{name: "admin marks in_progress", status: domain.StatusInProgress, role: domain.RoleAdmin},
		{name: "completed is terminal", status: domain.StatusCompleted, role: domain.RoleAdmin, wantErr: ErrConflict},
		{name: "cancelled is terminal", status: domain.StatusCancelled, role: domain.RoleAdmin, wantErr: ErrConflict},
		{name: "mentor denied", status: domain.StatusScheduled, role: domain.RoleMentor, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSessionRepo(testSession(tt.status))
			svc := newTestService(repo, &fakeNotifier{}, testStart)

			resp, err := svc.MarkNoShow(context.Background(), 1, 999, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "no_show", resp.Status)
		})
	}
}

func TestService_UpdateMeta(t *testing.T) {
	link := "https://meet.example.com/abc"
	notes := "подготовить вопросы"

	t.Run("mentor sets link and notes", func(t *testing.T) {
		repo := newFakeSessionRepo(testSession(domain.StatusScheduled))
		svc := newTestService(repo, &fakeNotifier{}, testStart)

		resp, err := svc.UpdateMeta(context.Background(), 1, &models.UpdateMetaRequest{
			ActorID: 200, Role: domain.RoleMentor, MeetingLink: &link, Notes: &notes,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.MeetingLink)
		assert.Equal(t, link, *resp.MeetingLink)
		require.NotNil(t, resp.Notes)
		assert.Equal(t, notes, *resp.Notes)
	})

	t.Run("nil fields keep previous values", func(t *testing.T) {
		session := testSession(domain.StatusScheduled)
		session.MeetingLink = &link
		repo := newFakeSessionRepo(session)
		svc := newTestService(repo, &fakeNotifier{}, testStart)

		resp, err := svc.UpdateMeta(context.Background(), 1, &models.UpdateMetaRequest{
			ActorID: 100, Role: domain.RoleStudent, Notes: &notes,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.MeetingLink)
		assert.Equal(t, link, *resp.MeetingLink)
	})

	t.Run("outsider denied", func(t *testing.T) {
		repo := newFakeSessionRepo(testSession(domain.StatusScheduled))
		svc := newTestService(repo, &fakeNotifier{}, testStart)

		_, err := svc.UpdateMeta(context.Background(), 1, &models.UpdateMetaRequest{
			ActorID: 555, Role: domain.RoleStudent, Notes: &notes,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
