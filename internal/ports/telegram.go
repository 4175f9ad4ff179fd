package ports

import (
	"context"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
)

// AccountClient определяет операции над аккаунтом, которые нужны сценариям.
// Реализуется адаптером TDLib, в тестах — фейком.
type AccountClient interface {
	// Me возвращает id текущего пользователя
	Me(ctx context.Context) (int64, error)
	// Dialogs возвращает первые limit чатов основного списка, без пагинации
	Dialogs(ctx context.Context, limit int32) ([]domain.Dialog, error)
	LeaveChat(ctx context.Context, chatID int64) error
	// DeleteHistory удаляет историю и убирает чат из списка; revoke — удалить и у собеседника
	DeleteHistory(ctx context.Context, chatID int64, revoke bool) error
	Contacts(ctx context.Context) ([]int64, error)
	RemoveContacts(ctx context.Context, userIDs []int64) error
	ActiveSessions(ctx context.Context) ([]domain.ActiveSession, error)
	TerminateSession(ctx context.Context, sessionID int64) error
	// SendText отправляет текст в публичный чат/бота по @username
	SendText(ctx context.Context, username, text string) error
	Close()
}

type ClientMode int

const (
	ClientModeRuntime ClientMode = iota // сессия уже авторизована, никаких промптов
	ClientModeAuth                      // интерактивный вход: телефон, код, пароль
)

// ClientOpener поднимает клиента для сессии. В режиме ClientModeRuntime
// неавторизованная сессия даёт domain.ErrNotAuthorized.
type ClientOpener interface {
	Open(ctx context.Context, sess *domain.Session, mode ClientMode) (AccountClient, error)
}
