package useCases

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/larriantoniy/tg_session_keeper/internal/ports"
)

// Cleanup выходит из всех групп/каналов, удаляет историю всех диалогов
// (с отзывом у собеседника) и удаляет все контакты одним запросом.
// Первая ошибка прерывает остаток для этой сессии.
type Cleanup struct {
	out   io.Writer
	log   *slog.Logger
	limit int32
}

func NewCleanup(out io.Writer, log *slog.Logger, limit int32) *Cleanup {
	return &Cleanup{out: out, log: log, limit: limit}
}

func (c *Cleanup) Run(ctx context.Context, cli ports.AccountClient) error {
	if err := c.run(ctx, cli); err != nil {
		c.log.Error("cleanup aborted", "error", err)
		fmt.Fprintf(c.out, "Failed to clean up: %v\n", err)
		return err
	}
	fmt.Fprintln(c.out, "Clean up successful!")
	return nil
}

func (c *Cleanup) run(ctx context.Context, cli ports.AccountClient) error {
	dialogs, err := cli.Dialogs(ctx, c.limit)
	if err != nil {
		return err
	}
	c.log.Info("dialogs fetched", "count", len(dialogs), "limit", c.limit)

	for _, d := range dialogs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsGroupOrChannel() {
			fmt.Fprintf(c.out, "Leaving channel/group: %s\n", d.Title)
			if err := cli.LeaveChat(ctx, d.ChatID); err != nil {
				return err
			}
		}
		fmt.Fprintf(c.out, "Deleting history: %s\n", d.DisplayName())
		if err := cli.DeleteHistory(ctx, d.ChatID, true); err != nil {
			return err
		}
	}

	contacts, err := cli.Contacts(ctx)
	if err != nil {
		return err
	}
	if len(contacts) > 0 {
		if err := cli.RemoveContacts(ctx, contacts); err != nil {
			return err
		}
		c.log.Info("contacts removed", "count", len(contacts))
	}
	return nil
}
