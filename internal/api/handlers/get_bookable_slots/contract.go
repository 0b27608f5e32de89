package get_bookable_slots

import (
	"context"

	"github.com/mentorgrid/MG-SessionService/internal/usecase/resolve_slots"
)

type ResolveSlotsUseCase interface {
	Execute(ctx context.Context, req *resolve_slots.Request) (*resolve_slots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
