package mark_no_show

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
	msgForbidden        = "отметить неявку может только администратор"
	msgConflict         = "сессия уже в терминальном статусе"
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

// Handle PATCH /api/v1/sessions/{sessionId}/no-show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/no-show - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	resp, err := h.service.MarkNoShow(r.Context(), sessionID, actorID, role)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id}/no-show - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("PATCH /sessions/{id}/no-show - Access denied: session_id=%d, user_id=%d",
				sessionID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrConflict):
			h.logger.Warn("PATCH /sessions/{id}/no-show - Terminal status: session_id=%d", sessionID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /sessions/{id}/no-show - Failed to mark no-show: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id}/no-show - Session marked as no-show: session_id=%d, admin_id=%d",
		sessionID, actorID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
