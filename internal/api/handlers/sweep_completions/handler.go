package sweep_completions

import (
	"net/http"

	"github.com/mentorgrid/MG-SessionService/internal/api/handlers"
)

// SweepResponse HTTP response model
type SweepResponse struct {
	Completed int `json:"completed"`
}

type Handler struct {
	useCase SweepCompletionsUseCase
	logger  Logger
}

func NewHandler(useCase SweepCompletionsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/sweep-completions
// Ручной запуск прохода автозавершения; идемпотентен
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/sweep-completions - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/sweep-completions - Sweep finished: completed=%d", resp.Completed)
	handlers.RespondJSON(w, http.StatusOK, SweepResponse{Completed: resp.Completed})
}
