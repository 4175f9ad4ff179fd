package ports

import (
	"context"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
)

// OutcomeRecorder записывает результат завершения чужих сессий для номера.
type OutcomeRecorder interface {
	Record(ctx context.Context, phone string, outcome domain.TerminationOutcome) error
}
