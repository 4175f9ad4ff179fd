package tg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
	"github.com/larriantoniy/tg_session_keeper/internal/ports"
	"github.com/zelenin/go-tdlib/client"
)

// Opener реализует ports.ClientOpener через go-tdlib
type Opener struct {
	apiID   int32
	apiHash string
	prompt  ports.Prompter
	out     io.Writer
	logger  *slog.Logger

	verbosity    int32
	checkNetwork bool
}

type OpenerOptions struct {
	Verbosity    int32 // уровень логов самого TDLib
	CheckNetwork bool  // проверять IPv4/IPv6 перед подключением
}

func NewOpener(
	apiID int32,
	apiHash string,
	prompt ports.Prompter,
	out io.Writer,
	log *slog.Logger,
	opts OpenerOptions,
) *Opener {
	return &Opener{
		apiID:        apiID,
		apiHash:      apiHash,
		prompt:       prompt,
		out:          out,
		logger:       log,
		verbosity:    opts.Verbosity,
		checkNetwork: opts.CheckNetwork,
	}
}

func (o *Opener) Open(ctx context.Context, sess *domain.Session, mode ports.ClientMode) (ports.AccountClient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := o.logger.With("session", sess.SessionName)

	dbDir := filepath.Join(sess.Dir, "database")
	filesDir := filepath.Join(sess.Dir, "files")

	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := os.MkdirAll(filesDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir files dir: %w", err)
	}

	if _, err := client.SetLogVerbosityLevel(&client.SetLogVerbosityLevelRequest{
		NewVerbosityLevel: o.verbosity,
	}); err != nil {
		log.Error("TDLib SetLogVerbosityLevel", "error", err)
	}

	if o.checkNetwork {
		checkNetwork(log)
	}

	var opts []client.Option
	if sess.Proxy != nil {
		if _, err := checkProxy(log, sess.Proxy); err != nil {
			log.Warn("continuing with unreachable proxy", "error", err)
		}
		opts = append(opts, client.WithProxy(&client.AddProxyRequest{
			Server: sess.Proxy.Server,
			Port:   sess.Proxy.Port,
			Enable: true,
			Type: &client.ProxyTypeSocks5{
				Username: sess.Proxy.Username,
				Password: sess.Proxy.Password,
			},
		}))
	}

	params := tdParams(sess, o.apiID, o.apiHash, dbDir, filesDir)
	authorizer := newAuthorizer(ctx, params, sess.Phone, mode, o.prompt, o.out, log)

	// NewClient блокируется до Ready или до закрытия клиента из-за ошибки авторизации
	tdCli, err := client.NewClient(authorizer, opts...)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthorized) {
			log.Info("session is not authorized", "phone", sess.Phone)
		} else {
			log.Error("TDLib NewClient error", "phone", sess.Phone, "error", err)
		}
		return nil, err
	}
	authorizer.setState(domain.LoginAuthenticated)

	cli := &TelegramClient{
		client: tdCli,
		logger: log,
	}

	me, err := tdCli.GetMe()
	if err != nil {
		log.Error("GetMe failed", "error", err)
		cli.Close()
		return nil, err
	}
	cli.selfId = me.Id

	log.Info("TDLib client initialized and authorized",
		"self_id", me.Id,
		"phone", sess.Phone,
	)
	return cli, nil
}

// TelegramClient реализует ports.AccountClient через go-tdlib
type TelegramClient struct {
	client *client.Client
	logger *slog.Logger
	selfId int64

	closeOnce sync.Once
}

func (t *TelegramClient) Me(ctx context.Context) (int64, error) {
	if t.selfId != 0 {
		return t.selfId, nil
	}
	me, err := t.client.GetMe()
	if err != nil {
		return 0, err
	}
	t.selfId = me.Id
	return me.Id, nil
}

func (t *TelegramClient) Close() {
	t.closeOnce.Do(func() {
		t.client.Close()
		t.logger.Debug("TDLib client closed")
	})
}

// Dialogs возвращает первые limit чатов основного списка
func (t *TelegramClient) Dialogs(ctx context.Context, limit int32) ([]domain.Dialog, error) {
	chatsResp, err := t.client.GetChats(&client.GetChatsRequest{
		ChatList: &client.ChatListMain{},
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("GetChats failed: %w", err)
	}

	dialogs := make([]domain.Dialog, 0, len(chatsResp.ChatIds))
	for _, chatID := range chatsResp.ChatIds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chat, err := t.client.GetChat(&client.GetChatRequest{ChatId: chatID})
		if err != nil {
			return nil, fmt.Errorf("GetChat %d: %w", chatID, err)
		}

		d := dialogFromChat(chat)
		if userID, ok := privateUserID(chat.Type); ok {
			d.Username = t.username(userID)
		}
		dialogs = append(dialogs, d)
	}
	return dialogs, nil
}

func dialogFromChat(chat *client.Chat) domain.Dialog {
	d := domain.Dialog{
		ChatID: chat.Id,
		Title:  chat.Title,
		Kind:   domain.PeerUser,
	}
	switch ct := chat.Type.(type) {
	case *client.ChatTypeBasicGroup:
		d.Kind = domain.PeerGroup
	case *client.ChatTypeSupergroup:
		// супергруппа без IsChannel — обычная группа
		if ct.IsChannel {
			d.Kind = domain.PeerChannel
		} else {
			d.Kind = domain.PeerGroup
		}
	}
	return d
}

func privateUserID(t client.ChatType) (int64, bool) {
	switch ct := t.(type) {
	case *client.ChatTypePrivate:
		return ct.UserId, true
	case *client.ChatTypeSecret:
		return ct.UserId, true
	default:
		return 0, false
	}
}

// username — только для вывода, ошибка не критична
func (t *TelegramClient) username(userID int64) string {
	usr, err := t.client.GetUser(&client.GetUserRequest{
		UserId: userID,
	})
	if err != nil {
		t.logger.Debug("GetUser failed", "user_id", userID, "error", err)
		return ""
	}
	if usr != nil && usr.Usernames != nil && len(usr.Usernames.ActiveUsernames) > 0 {
		return "@" + usr.Usernames.ActiveUsernames[0]
	}
	return ""
}

func (t *TelegramClient) LeaveChat(ctx context.Context, chatID int64) error {
	if _, err := t.client.LeaveChat(&client.LeaveChatRequest{ChatId: chatID}); err != nil {
		return fmt.Errorf("LeaveChat %d: %w", chatID, err)
	}
	return nil
}

func (t *TelegramClient) DeleteHistory(ctx context.Context, chatID int64, revoke bool) error {
	_, err := t.client.DeleteChatHistory(&client.DeleteChatHistoryRequest{
		ChatId:             chatID,
		RemoveFromChatList: true,
		Revoke:             revoke,
	})
	if err != nil {
		return fmt.Errorf("DeleteChatHistory %d: %w", chatID, err)
	}
	return nil
}

func (t *TelegramClient) Contacts(ctx context.Context) ([]int64, error) {
	users, err := t.client.GetContacts()
	if err != nil {
		return nil, fmt.Errorf("GetContacts: %w", err)
	}
	return users.UserIds, nil
}

func (t *TelegramClient) RemoveContacts(ctx context.Context, userIDs []int64) error {
	if _, err := t.client.RemoveContacts(&client.RemoveContactsRequest{UserIds: userIDs}); err != nil {
		return fmt.Errorf("RemoveContacts: %w", err)
	}
	return nil
}

func (t *TelegramClient) ActiveSessions(ctx context.Context) ([]domain.ActiveSession, error) {
	resp, err := t.client.GetActiveSessions()
	if err != nil {
		return nil, fmt.Errorf("GetActiveSessions: %w", err)
	}
	out := make([]domain.ActiveSession, 0, len(resp.Sessions))
	for _, s := range resp.Sessions {
		if s == nil {
			continue
		}
		out = append(out, domain.ActiveSession{
			ID:          int64(s.Id),
			Current:     s.IsCurrent,
			DeviceModel: s.DeviceModel,
			Application: s.ApplicationName,
			Country:     s.Country,
		})
	}
	return out, nil
}

func (t *TelegramClient) TerminateSession(ctx context.Context, sessionID int64) error {
	_, err := t.client.TerminateSession(&client.TerminateSessionRequest{
		SessionId: client.JsonInt64(sessionID),
	})
	if err != nil {
		return fmt.Errorf("TerminateSession %d: %w", sessionID, classify(err))
	}
	return nil
}

// SendText находит публичный чат по @username и отправляет в него текст
func (t *TelegramClient) SendText(ctx context.Context, username, text string) error {
	chatID, err := t.ResolveUsername(username)
	if err != nil {
		t.logger.Error("SearchPublicChat failed", "username", username, "error", err)
		return err
	}

	_, err = t.client.SendMessage(&client.SendMessageRequest{
		ChatId: chatID,
		InputMessageContent: &client.InputMessageText{
			Text: &client.FormattedText{
				Text: text,
			},
			ClearDraft: true,
		},
	})
	if err != nil {
		// 🔍 проверяем, не словили ли лимит
		if isTooManyRequests(err) {
			t.logger.Error("SendMessage rate-limited: too many requests",
				"chat_id", chatID,
				"error", err,
			)
			return ErrRateLimited
		}
		t.logger.Error("SendMessage failed", "chat_id", chatID, "error", err)
		return err
	}
	return nil
}

func (t *TelegramClient) ResolveUsername(username string) (int64, error) {
	res, err := t.client.SearchPublicChat(&client.SearchPublicChatRequest{
		Username: strings.TrimPrefix(username, "@"),
	})
	if err != nil {
		return 0, err
	}

	return res.Id, nil
}
