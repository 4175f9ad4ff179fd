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

// SessionOp — одна операция над авторизованной сессией
type SessionOp func(ctx context.Context, cli ports.AccountClient, sess *domain.Session) error

type Runner struct {
	repo        ports.SessionRepo
	opener      ports.ClientOpener
	sessionsDir string
	out         io.Writer
	log         *slog.Logger
}

func NewRunner(
	repo ports.SessionRepo,
	opener ports.ClientOpener,
	sessionsDir string,
	out io.Writer,
	log *slog.Logger,
) *Runner {
	return &Runner{repo: repo, opener: opener, sessionsDir: sessionsDir, out: out, log: log}
}

// WithClient поднимает клиента без интерактива, выполняет op и закрывает клиента
// на любом пути выхода, включая панику внутри op.
func (r *Runner) WithClient(ctx context.Context, sess *domain.Session, op SessionOp) error {
	cli, err := r.opener.Open(ctx, sess, ports.ClientModeRuntime)
	if err != nil {
		return err
	}
	defer func() {
		cli.Close()
		r.log.Debug("client released", "session", sess.SessionName)
	}()

	return op(ctx, cli, sess)
}

// RunAll последовательно выполняет op для каждой сессии из папки sessions.
// Ошибка одной сессии не останавливает обход.
func (r *Runner) RunAll(ctx context.Context, op SessionOp) error {
	names, err := r.repo.ListSessions(ctx)
	if errors.Is(err, domain.ErrNoSession) {
		fmt.Fprintf(r.out, "No sessions found in the folder %q.\n", r.sessionsDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	for _, sName := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		sess, err := r.repo.GetSession(ctx, sName)
		if err != nil {
			r.log.Error("GetSession failed", "session", sName, "error", err)
			fmt.Fprintf(r.out, "Failed to access session %s: %v\n", sName, err)
			continue
		}

		err = r.WithClient(ctx, sess, op)
		switch {
		case err == nil:
			r.log.Info("session processed", "session", sName)
		case errors.Is(err, domain.ErrNotAuthorized):
			fmt.Fprintf(r.out, "Session %s is not authorized.\n", sName)
		case errors.Is(err, errOpReported):
			r.log.Warn("session operation failed", "session", sName, "error", err)
		default:
			r.log.Error("session failed", "session", sName, "error", err)
			fmt.Fprintf(r.out, "Failed to access session %s: %v\n", sName, err)
		}
	}
	return nil
}

// errOpReported помечает ошибку, о которой операция уже сообщила оператору
var errOpReported = errors.New("reported")

func reported(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", errOpReported, err)
}
