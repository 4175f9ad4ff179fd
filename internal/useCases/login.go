package useCases

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
	"github.com/larriantoniy/tg_session_keeper/internal/ports"
)

// Login — интерактивный вход и сохранение сессии.
// Неудача сообщается оператору и дальше не пробрасывается.
type Login struct {
	opener ports.ClientOpener
	out    io.Writer
	log    *slog.Logger
}

func NewLogin(opener ports.ClientOpener, out io.Writer, log *slog.Logger) *Login {
	return &Login{opener: opener, out: out, log: log}
}

// Run возвращает авторизованного клиента; закрыть его должен вызывающий.
func (l *Login) Run(ctx context.Context, sess *domain.Session) (ports.AccountClient, bool) {
	cli, err := l.opener.Open(ctx, sess, ports.ClientModeAuth)
	if err != nil {
		l.log.Warn("login failed",
			"session", sess.SessionName,
			"phone", sess.Phone,
			"error", err,
		)
		fmt.Fprintln(l.out, "Login failed! Please check your phone number and try again.")
		return nil, false
	}

	selfID, err := cli.Me(ctx)
	if err != nil {
		// вход уже прошёл, id нужен только для лога
		l.log.Warn("get self id", "session", sess.SessionName, "error", err)
	}
	l.log.Info("login succeeded", "session", sess.SessionName, "phone", sess.Phone, "self_id", selfID)
	fmt.Fprintln(l.out, "Login successful!")
	return cli, true
}
