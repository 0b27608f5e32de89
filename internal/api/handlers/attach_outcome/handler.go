package attach_outcome

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
	msgInvalidSessionID   = "некорректный ID сессии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgNotFound           = "сессия не найдена"
	msgForbidden          = "оценку может оставить только студент сессии"
	msgNotCompleted       = "оценку можно оставить только для завершенной сессии"
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

// Handle PATCH /api/v1/sessions/{sessionId}/outcome
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/outcome - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	var req AttachOutcomeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{id}/outcome - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.AttachOutcome(r.Context(), sessionID, req.ToServiceRequest(actorID, role))
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id}/outcome - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("PATCH /sessions/{id}/outcome - Access denied: session_id=%d, user_id=%d",
				sessionID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrNotCompleted):
			h.logger.Warn("PATCH /sessions/{id}/outcome - Not completed: session_id=%d", sessionID)
			handlers.RespondPolicyViolation(w, handlers.ReasonNotCompleted, msgNotCompleted)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("PATCH /sessions/{id}/outcome - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /sessions/{id}/outcome - Failed to attach outcome: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id}/outcome - Outcome attached: session_id=%d, user_id=%d",
		sessionID, actorID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
