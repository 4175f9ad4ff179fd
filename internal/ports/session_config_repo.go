package ports

import (
	"context"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
)

type SessionRepo interface {
	// Возвращает список сессий в папке sessions (по именам каталогов)
	ListSessions(ctx context.Context) ([]string, error)

	// Загружает сессию из папки sessions по имени каталога
	GetSession(ctx context.Context, sessionName string) (*domain.Session, error)

	// DefaultSession — уже сохранённая сессия по фиксированному пути,
	// domain.ErrNoSession если её нет
	DefaultSession(ctx context.Context) (*domain.Session, error)

	// NewDefaultSession готовит сессию по фиксированному пути для входа
	NewDefaultSession(ctx context.Context, phone string) (*domain.Session, error)

	// NewSession создаёт (если нужно) каталог sessions/session_<phone>
	NewSession(ctx context.Context, phone string) (*domain.Session, error)
}
