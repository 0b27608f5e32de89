package book_session

import (
	"errors"
	"net/http"

	"github.com/mentorgrid/MG-SessionService/internal/api/handlers"
	"github.com/mentorgrid/MG-SessionService/internal/api/middleware"
	bookSession "github.com/mentorgrid/MG-SessionService/internal/usecase/book_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStart       = "некорректное время начала, ожидается формат ISO 8601"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgStudentNotFound    = "студент не найден"
	msgMentorNotFound     = "ментор не найден"
	msgNotAMentor         = "пользователь не является ментором"
	msgStartInPast        = "время начала уже прошло"
	msgStartNotBookable   = "выбранное время недоступно для бронирования"
	msgSlotTaken          = "слот уже занят"
)

type Handler struct {
	useCase BookSessionUseCase
	logger  Logger
}

func NewHandler(useCase BookSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req BookSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(studentID)
	if err != nil {
		h.logger.Warn("POST /sessions - Invalid scheduledStart: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookSession.ErrStudentNotFound):
			h.logger.Warn("POST /sessions - Student not found: user_id=%d", studentID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		case errors.Is(err, bookSession.ErrMentorNotFound):
			h.logger.Warn("POST /sessions - Mentor not found: mentor_id=%d", req.MentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, bookSession.ErrNotAMentor):
			h.logger.Warn("POST /sessions - Not a mentor: mentor_id=%d", req.MentorID)
			handlers.RespondBadRequest(w, msgNotAMentor)

		case errors.Is(err, bookSession.ErrStartInPast):
			h.logger.Warn("POST /sessions - Start in past: user_id=%d", studentID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, bookSession.ErrStartNotBookable):
			h.logger.Warn("POST /sessions - Start not bookable: mentor_id=%d", req.MentorID)
			handlers.RespondBadRequest(w, msgStartNotBookable)

		case errors.Is(err, bookSession.ErrSlotTaken):
			h.logger.Warn("POST /sessions - Slot taken: mentor_id=%d", req.MentorID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, bookSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /sessions - Failed to book session: user_id=%d, error=%v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session booked: session_id=%d, student_id=%d, mentor_id=%d",
		resp.ID, resp.StudentID, resp.MentorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
