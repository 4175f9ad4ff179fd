package useCases

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/larriantoniy/tg_session_keeper/internal/ports"
)

// Sender отправляет проверочное сообщение боту из сохранённой сессии
type Sender struct {
	log *slog.Logger
	out io.Writer

	username string // "@FastReciver_bot"
	text     string
}

func NewSender(log *slog.Logger, out io.Writer, username, text string) *Sender {
	return &Sender{
		log:      log,
		out:      out,
		username: username,
		text:     text,
	}
}

func (s *Sender) Send(ctx context.Context, cli ports.AccountClient) error {
	if err := cli.SendText(ctx, s.username, s.text); err != nil {
		s.log.Error("SendText", "username", s.username, "error", err)
		fmt.Fprintf(s.out, "Failed to send message: %v\n", err)
		return err
	}

	s.log.Info("probe message sent", "username", s.username)
	fmt.Fprintln(s.out, "Message sent successfully!")
	return nil
}
