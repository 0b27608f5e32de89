package put_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorgrid/MG-SessionService/internal/api/handlers"
	"github.com/mentorgrid/MG-SessionService/internal/api/middleware"
	"github.com/mentorgrid/MG-SessionService/internal/service/availability"
)

const (
	msgInvalidMentorID     = "некорректный ID ментора"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgUnauthorized        = "пользователь не аутентифицирован"
	msgForbidden           = "доступ запрещен"
	msgMentorNotFound      = "ментор не найден"
	msgNotAMentor          = "пользователь не является ментором"
	msgInvalidAvailability = "некорректное недельное расписание"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/mentors/{mentorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /mentors/{id}/availability - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	var req PutAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /mentors/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Put(r.Context(), req.ToServiceRequest(mentorID, actorID, role))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /mentors/{id}/availability - Access denied: mentor_id=%d, user_id=%d",
				mentorID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrMentorNotFound):
			h.logger.Warn("PUT /mentors/{id}/availability - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, availability.ErrNotAMentor):
			h.logger.Warn("PUT /mentors/{id}/availability - Not a mentor: mentor_id=%d", mentorID)
			handlers.RespondBadRequest(w, msgNotAMentor)

		case errors.Is(err, availability.ErrInvalidAvailability):
			h.logger.Warn("PUT /mentors/{id}/availability - Invalid availability: mentor_id=%d, error=%v",
				mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidAvailability)

		default:
			h.logger.Error("PUT /mentors/{id}/availability - Failed to put availability: mentor_id=%d, error=%v",
				mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /mentors/{id}/availability - Availability replaced: mentor_id=%d, user_id=%d",
		mentorID, actorID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
