package get_bookable_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mentorgrid/MG-SessionService/internal/api/handlers"
	"github.com/mentorgrid/MG-SessionService/internal/domain"
	"github.com/mentorgrid/MG-SessionService/internal/usecase/resolve_slots"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
	msgInvalidDate     = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgMentorNotFound  = "ментор не найден"
)

type Handler struct {
	useCase ResolveSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ResolveSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/bookable-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/bookable-slots - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, r.URL.Query().Get("date"), time.UTC)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/bookable-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &resolve_slots.Request{
		MentorID: mentorID,
		Date:     date,
	})
	if err != nil {
		switch {
		case errors.Is(err, resolve_slots.ErrMentorNotFound), errors.Is(err, resolve_slots.ErrNotAMentor):
			h.logger.Warn("GET /mentors/{id}/bookable-slots - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, resolve_slots.ErrInvalidInput):
			h.logger.Warn("GET /mentors/{id}/bookable-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /mentors/{id}/bookable-slots - Failed to resolve slots: mentor_id=%d, error=%v",
				mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
