package outcomelog

import (
	"context"
	"errors"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
	"github.com/larriantoniy/tg_session_keeper/internal/ports"
)

// Multi пишет в каждый recorder по очереди; ошибка одного не мешает остальным.
type Multi []ports.OutcomeRecorder

func (m Multi) Record(ctx context.Context, phone string, outcome domain.TerminationOutcome) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, phone, outcome); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
