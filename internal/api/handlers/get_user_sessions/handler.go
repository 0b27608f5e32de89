package get_user_sessions

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mentorgrid/MG-SessionService/internal/api/handlers"
	"github.com/mentorgrid/MG-SessionService/internal/api/middleware"
	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/internal/service/sessions"
	"github.com/mentorgrid/MG-SessionService/internal/service/sessions/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidQuery  = "некорректные параметры запроса"
	msgUnauthorized  = "пользователь не аутентифицирован"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/sessions?status=&startDate=&endDate=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/sessions - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	req := &models.GetUserSessionsRequest{
		UserID:  userID,
		ActorID: actorID,
		Role:    role,
	}

	query := r.URL.Query()

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if rawDate := query.Get("startDate"); rawDate != "" {
		date, err := time.ParseInLocation(domain.DateFormat, rawDate, time.UTC)
		if err != nil {
			h.logger.Warn("GET /users/{id}/sessions - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.StartDate = &date
	}

	if rawDate := query.Get("endDate"); rawDate != "" {
		date, err := time.ParseInLocation(domain.DateFormat, rawDate, time.UTC)
		if err != nil {
			h.logger.Warn("GET /users/{id}/sessions - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.EndDate = &date
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	resp, err := h.service.GetUserSessions(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("GET /users/{id}/sessions - Access denied: user_id=%d, actor_id=%d", userID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/sessions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /users/{id}/sessions - Failed to get sessions: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
