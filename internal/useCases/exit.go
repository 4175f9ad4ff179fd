package useCases

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
	"github.com/larriantoniy/tg_session_keeper/internal/ports"
)

// SelectiveExit действует только если среди диалогов есть группа или канал:
// выходит из них и удаляет историю личных чатов без отзыва.
// Без групп ничего не удаляется.
type SelectiveExit struct {
	out   io.Writer
	log   *slog.Logger
	limit int32
}

func NewSelectiveExit(out io.Writer, log *slog.Logger, limit int32) *SelectiveExit {
	return &SelectiveExit{out: out, log: log, limit: limit}
}

func (e *SelectiveExit) Run(ctx context.Context, cli ports.AccountClient) error {
	if err := e.run(ctx, cli); err != nil {
		e.log.Error("selective exit aborted", "error", err)
		fmt.Fprintf(e.out, "Failed to check and delete: %v\n", err)
		return err
	}
	return nil
}

func (e *SelectiveExit) run(ctx context.Context, cli ports.AccountClient) error {
	dialogs, err := cli.Dialogs(ctx, e.limit)
	if err != nil {
		return err
	}

	if !slices.ContainsFunc(dialogs, domain.Dialog.IsGroupOrChannel) {
		e.log.Info("no groups or channels, nothing to do", "dialogs", len(dialogs))
		fmt.Fprintln(e.out, "No channels, groups, or chats found.")
		return nil
	}

	for _, d := range dialogs {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch {
		case d.IsGroupOrChannel():
			fmt.Fprintf(e.out, "Exiting channel/group: %s\n", d.Title)
			if err := cli.LeaveChat(ctx, d.ChatID); err != nil {
				return err
			}
		case d.Kind == domain.PeerUser:
			fmt.Fprintf(e.out, "Deleting chat: %s\n", d.DisplayName())
			// ошибка по одному чату не прерывает обход
			if err := cli.DeleteHistory(ctx, d.ChatID, false); err != nil {
				e.log.Warn("DeleteHistory failed", "chat_id", d.ChatID, "error", err)
				fmt.Fprintf(e.out, "Failed to delete history for %s: %v\n", d.DisplayName(), err)
			}
		}
	}

	fmt.Fprintln(e.out, "Exited all channels and groups and deleted all chats.")
	return nil
}
