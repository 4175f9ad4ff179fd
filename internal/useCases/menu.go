package useCases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
	"github.com/larriantoniy/tg_session_keeper/internal/ports"
)

var ErrCredentialsNotLoaded = errors.New("API ID and Hash not loaded")

var menuLines = []string{
	"Enter 1 to start the login process and save session file:",
	"Enter 2 to start the login process and save session in new folder:",
	"Enter 3 to send a message to %s using the session from choice 1:",
	`Enter 4 to clean up sessions in the "%s" folder:`,
	"Enter 5 to check if the number has joined any channels and exit them if found:",
	"Enter 6 to start the login process, save session, and terminate all other sessions except the current one (repeatable):",
}

type MenuDeps struct {
	Prompt      ports.Prompter
	Out         io.Writer
	Log         *slog.Logger
	Repo        ports.SessionRepo
	Opener      ports.ClientOpener // nil пока не загружены api_id/api_hash
	Recorder    ports.OutcomeRecorder
	SessionsDir string

	ProbeUsername string
	ProbeText     string
	DialogLimit   int32
}

// Menu — текстовое меню оператора, по одному выбору за раз.
type Menu struct {
	prompt      ports.Prompter
	out         io.Writer
	log         *slog.Logger
	repo        ports.SessionRepo
	opener      ports.ClientOpener
	sessionsDir string
	probeUser   string

	runner     *Runner
	login      *Login
	sender     *Sender
	cleanup    *Cleanup
	exit       *SelectiveExit
	terminator *Terminator
}

func NewMenu(d MenuDeps) *Menu {
	return &Menu{
		prompt:      d.Prompt,
		out:         d.Out,
		log:         d.Log,
		repo:        d.Repo,
		opener:      d.Opener,
		sessionsDir: d.SessionsDir,
		probeUser:   d.ProbeUsername,

		runner:     NewRunner(d.Repo, d.Opener, d.SessionsDir, d.Out, d.Log),
		login:      NewLogin(d.Opener, d.Out, d.Log),
		sender:     NewSender(d.Log, d.Out, d.ProbeUsername, d.ProbeText),
		cleanup:    NewCleanup(d.Out, d.Log, d.DialogLimit),
		exit:       NewSelectiveExit(d.Out, d.Log, d.DialogLimit),
		terminator: NewTerminator(d.Recorder, d.Out, d.Log),
	}
}

// Run крутит меню до "q", конца ввода или отмены контекста.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(m.out, "Exiting...")
			return nil
		}

		m.printMenu()
		choice, err := m.prompt.Ask(ctx, "Enter your choice (or q to quit): ")
		// выбор, введённый уже после Ctrl-C, не выполняем
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			fmt.Fprintln(m.out, "Exiting...")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read choice: %w", err)
		}

		if choice == "q" {
			fmt.Fprintln(m.out, "Exiting...")
			return nil
		}

		_ = m.Dispatch(ctx, choice)
	}
}

func (m *Menu) printMenu() {
	for i, line := range menuLines {
		switch i {
		case 2:
			line = fmt.Sprintf(line, m.probeUser)
		case 3:
			line = fmt.Sprintf(line, m.sessionsDir)
		}
		fmt.Fprintln(m.out, line)
	}
}

// Dispatch выполняет один пункт меню. Любая ошибка, включая панику,
// сообщается оператору текстом и возвращается для логов/тестов.
// Прерывание по Ctrl-C ошибкой не считается.
func (m *Menu) Dispatch(ctx context.Context, choice string) (err error) {
	log := m.log.With("run_id", uuid.NewString(), "choice", choice)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		switch {
		case err == nil:
			log.Info("operation finished", "took", time.Since(start))
		case ctx.Err() != nil && errors.Is(err, ctx.Err()):
			log.Info("operation interrupted", "took", time.Since(start))
		case errors.Is(err, ErrCredentialsNotLoaded):
			fmt.Fprintln(m.out, "API ID and Hash not loaded. Please create the credentials file first.")
			log.Error("operation refused", "error", err)
		default:
			fmt.Fprintf(m.out, "Error: %v\n", err)
			log.Error("operation failed", "error", err, "took", time.Since(start))
		}
	}()

	switch choice {
	case "1", "2", "3", "4", "5", "6":
		if m.opener == nil {
			return ErrCredentialsNotLoaded
		}
	default:
		fmt.Fprintln(m.out, "Invalid choice!")
		return nil
	}

	log.Info("operation started")

	switch choice {
	case "1":
		return m.loginOnce(ctx, m.repo.NewDefaultSession)
	case "2":
		return m.loginOnce(ctx, m.repo.NewSession)
	case "3":
		return m.sendProbe(ctx)
	case "4":
		return m.runner.RunAll(ctx, func(ctx context.Context, cli ports.AccountClient, _ *domain.Session) error {
			return reported(m.cleanup.Run(ctx, cli))
		})
	case "5":
		return m.runner.RunAll(ctx, func(ctx context.Context, cli ports.AccountClient, _ *domain.Session) error {
			return reported(m.exit.Run(ctx, cli))
		})
	default:
		return m.loginAndTerminate(ctx)
	}
}

type sessionFactory func(ctx context.Context, phone string) (*domain.Session, error)

func (m *Menu) loginOnce(ctx context.Context, newSession sessionFactory) error {
	phone, err := m.prompt.Ask(ctx, "Enter your phone number (with country code): ")
	if err != nil {
		return err
	}
	sess, err := newSession(ctx, phone)
	if err != nil {
		return err
	}

	cli, ok := m.login.Run(ctx, sess)
	if ok {
		cli.Close()
	}
	return nil
}

func (m *Menu) sendProbe(ctx context.Context) error {
	sess, err := m.repo.DefaultSession(ctx)
	if errors.Is(err, domain.ErrNoSession) {
		fmt.Fprintln(m.out, "No session found. Please login using choice 1 first.")
		return nil
	}
	if err != nil {
		return err
	}

	err = m.runner.WithClient(ctx, sess, func(ctx context.Context, cli ports.AccountClient, _ *domain.Session) error {
		return reported(m.sender.Send(ctx, cli))
	})
	switch {
	case errors.Is(err, domain.ErrNotAuthorized):
		fmt.Fprintln(m.out, "Client is not authorized. Please login using choice 1 first.")
		return nil
	case errors.Is(err, errOpReported):
		return nil
	default:
		return err
	}
}

// loginAndTerminate повторяется, пока оператор не введёт q
func (m *Menu) loginAndTerminate(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		phone, err := m.prompt.Ask(ctx, "Enter your phone number (with country code) (or q to quit): ")
		if err != nil {
			return err
		}
		if phone == "q" {
			return nil
		}

		sess, err := m.repo.NewSession(ctx, phone)
		if err != nil {
			return err
		}
		m.loginTerminateOne(ctx, sess)
	}
}

func (m *Menu) loginTerminateOne(ctx context.Context, sess *domain.Session) {
	cli, ok := m.login.Run(ctx, sess)
	if !ok {
		return
	}
	defer cli.Close()

	m.terminator.Run(ctx, cli, sess.Phone)
}
