package sweep_completions

import (
	"context"

	sweepCompletions "github.com/mentorgrid/MG-SessionService/internal/usecase/sweep_completions"
)

type SweepCompletionsUseCase interface {
	Execute(ctx context.Context) (*sweepCompletions.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
