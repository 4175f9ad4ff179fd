package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
)

// dbDirName — каталог базы TDLib внутри сессии, его наличие = сессия сохранена
const dbDirName = "database"

type FSSessionRepo struct {
	sessionsDir    string // "./sessions"
	defaultDir     string // "./session"
	defaultSession string
}

func NewFSSessionRepo(cfg *AppConfig) *FSSessionRepo {
	return &FSSessionRepo{
		sessionsDir:    cfg.Path(cfg.SessionsDir),
		defaultDir:     cfg.Path(cfg.DefaultSession),
		defaultSession: cfg.DefaultSession,
	}
}

func (r *FSSessionRepo) ListSessions(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.sessionsDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoSession, r.sessionsDir)
	}
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), domain.SessionPrefix) {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func (r *FSSessionRepo) GetSession(ctx context.Context, sessionName string) (*domain.Session, error) {
	dir := filepath.Join(r.sessionsDir, sessionName)
	if err := requireDir(dir); err != nil {
		return nil, err
	}

	phone, _ := domain.PhoneFromSessionName(sessionName)
	return loadSession(sessionName, phone, dir)
}

func (r *FSSessionRepo) DefaultSession(ctx context.Context) (*domain.Session, error) {
	if err := requireDir(filepath.Join(r.defaultDir, dbDirName)); err != nil {
		return nil, err
	}
	return loadSession(r.defaultSession, "", r.defaultDir)
}

func (r *FSSessionRepo) NewDefaultSession(ctx context.Context, phone string) (*domain.Session, error) {
	if err := os.MkdirAll(r.defaultDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir session dir: %w", err)
	}
	return loadSession(r.defaultSession, strings.TrimSpace(phone), r.defaultDir)
}

func (r *FSSessionRepo) NewSession(ctx context.Context, phone string) (*domain.Session, error) {
	phone = strings.TrimSpace(phone)
	if err := checkPhone(phone); err != nil {
		return nil, err
	}
	name := domain.SessionNameForPhone(phone)
	dir := filepath.Join(r.sessionsDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir session dir: %w", err)
	}
	return loadSession(name, phone, dir)
}

// checkPhone не пускает номер, из которого получится путь вне папки сессий
func checkPhone(phone string) error {
	switch {
	case phone == "":
		return fmt.Errorf("%w: empty", domain.ErrInvalidPhone)
	case strings.ContainsAny(phone, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", domain.ErrInvalidPhone, phone)
	case strings.Contains(phone, ".."):
		return fmt.Errorf("%w: %q", domain.ErrInvalidPhone, phone)
	}
	return nil
}

func loadSession(name, phone, dir string) (*domain.Session, error) {
	sess := &domain.Session{
		SessionName: name,
		Phone:       phone,
		Dir:         dir,
	}

	raw, err := LoadRawSessionConfig(dir)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		if err := raw.Apply(sess); err != nil {
			return nil, fmt.Errorf("session %s: %w", name, err)
		}
	}
	return sess, nil
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrNoSession, dir)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrNoSession, dir)
	}
	return nil
}
