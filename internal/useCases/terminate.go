package useCases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
	"github.com/larriantoniy/tg_session_keeper/internal/ports"
)

// Terminator завершает все авторизации аккаунта, кроме текущей.
// На каждую попытку номер пишется ровно один раз: в лог успеха или в лог неудачи.
type Terminator struct {
	recorder ports.OutcomeRecorder
	out      io.Writer
	log      *slog.Logger
}

func NewTerminator(recorder ports.OutcomeRecorder, out io.Writer, log *slog.Logger) *Terminator {
	return &Terminator{recorder: recorder, out: out, log: log}
}

func (t *Terminator) Run(ctx context.Context, cli ports.AccountClient, phone string) domain.TerminationOutcome {
	outcome, err := t.terminate(ctx, cli)
	if err != nil {
		t.log.Warn("terminate other sessions failed", "phone", phone, "outcome", outcome, "error", err)
		// про отсутствие текущей сессии оператору уже сказано
		if !errors.Is(err, domain.ErrCurrentSessionNotFound) {
			fmt.Fprintf(t.out, "Failed to terminate other sessions: %v\n", err)
		}
	} else {
		t.log.Info("other sessions terminated", "phone", phone)
		fmt.Fprintln(t.out, "Terminated all other sessions successfully!")
	}

	// запись результата не должна теряться из-за отмены контекста
	if err := t.recorder.Record(context.WithoutCancel(ctx), phone, outcome); err != nil {
		t.log.Error("record termination outcome", "phone", phone, "outcome", outcome, "error", err)
	}
	return outcome
}

func (t *Terminator) terminate(ctx context.Context, cli ports.AccountClient) (domain.TerminationOutcome, error) {
	sessions, err := cli.ActiveSessions(ctx)
	if err != nil {
		return domain.TerminationFailed, err
	}

	currentID, ok := currentSessionID(sessions)
	if !ok {
		fmt.Fprintln(t.out, "Current session not found in authorizations.")
		return domain.TerminationFailed, domain.ErrCurrentSessionNotFound
	}

	for _, s := range sessions {
		if s.ID == currentID {
			continue
		}
		if err := ctx.Err(); err != nil {
			return domain.TerminationFailed, err
		}
		fmt.Fprintf(t.out, "Terminating session: %d\n", s.ID)
		t.log.Debug("terminating session", "session_id", s.ID, "device", s.DeviceModel, "app", s.Application, "country", s.Country)
		if err := cli.TerminateSession(ctx, s.ID); err != nil {
			if errors.Is(err, domain.ErrSessionTooNew) {
				return domain.TerminationTooNew, err
			}
			return domain.TerminationFailed, err
		}
	}
	return domain.TerminationSucceeded, nil
}

func currentSessionID(sessions []domain.ActiveSession) (int64, bool) {
	for _, s := range sessions {
		if s.Current {
			return s.ID, true
		}
	}
	return 0, false
}
