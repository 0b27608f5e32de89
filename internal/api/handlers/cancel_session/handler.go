package cancel_session

import (
	"errors"
	"io"
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
	msgForbidden          = "доступ запрещен"
	msgNotCancellable     = "сессия в этом статусе не может быть отменена"
	msgWindowPassed       = "окно отмены закрыто"
	msgConflict           = "сессия была изменена параллельно, повторите запрос"
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

// Handle PATCH /api/v1/sessions/{sessionId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/cancel - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	// Тело опционально: отмена без причины допустима
	var req CancelSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /sessions/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Cancel(r.Context(), sessionID, req.ToServiceRequest(actorID, role))
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Access denied: session_id=%d, user_id=%d",
				sessionID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrNotCancellable):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Not cancellable: session_id=%d", sessionID)
			handlers.RespondPolicyViolation(w, handlers.ReasonWrongStatus, msgNotCancellable)

		case errors.Is(err, sessions.ErrCancelWindowPassed):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Window passed: session_id=%d, user_id=%d",
				sessionID, actorID)
			handlers.RespondPolicyViolation(w, handlers.ReasonTooLateToCancel, msgWindowPassed)

		case errors.Is(err, sessions.ErrConflict):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Concurrent modification: session_id=%d", sessionID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /sessions/{id}/cancel - Failed to cancel session: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id}/cancel - Session cancelled: session_id=%d, user_id=%d",
		sessionID, actorID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
