package start_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorgrid/MG-SessionService/internal/api/handlers"
	"github.com/mentorgrid/MG-SessionService/internal/api/middleware"
	"github.com/mentorgrid/MG-SessionService/internal/service/sessions"
)

const (
	msgInvalidSessionID = "некорректный ID сессии"
	msgUnauthorized     = "пользователь не аутентифицирован"
	msgNotFound         = "сессия не найдена"
	msgForbidden        = "начать сессию может только назначенный ментор"
	msgNotStartable     = "сессия в этом статусе не может быть начата"
	msgTooEarly         = "слишком рано для начала сессии"
	msgConflict         = "сессия была изменена параллельно, повторите запрос"
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

// Handle PATCH /api/v1/sessions/{sessionId}/start
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/start - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	resp, err := h.service.Start(r.Context(), sessionID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id}/start - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("PATCH /sessions/{id}/start - Access denied: session_id=%d, user_id=%d",
				sessionID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrNotStartable):
			h.logger.Warn("PATCH /sessions/{id}/start - Not startable: session_id=%d", sessionID)
			handlers.RespondPolicyViolation(w, handlers.ReasonWrongStatus, msgNotStartable)

		case errors.Is(err, sessions.ErrTooEarlyToStart):
			h.logger.Warn("PATCH /sessions/{id}/start - Too early: session_id=%d", sessionID)
			handlers.RespondPolicyViolation(w, handlers.ReasonTooEarlyToStart, msgTooEarly)

		case errors.Is(err, sessions.ErrConflict):
			h.logger.Warn("PATCH /sessions/{id}/start - Concurrent modification: session_id=%d", sessionID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /sessions/{id}/start - Failed to start session: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id}/start - Session started: session_id=%d, mentor_id=%d",
		sessionID, actorID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
