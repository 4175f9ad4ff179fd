package useCases

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
	"github.com/larriantoniy/tg_session_keeper/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeClient записывает вызовы в calls в виде коротких строк
type fakeClient struct {
	dialogs      []domain.Dialog
	dialogsErr   error
	contacts     []int64
	sessions     []domain.ActiveSession
	sessionsErr  error
	leaveErr     map[int64]error
	deleteErr    map[int64]error
	terminateErr map[int64]error
	sendErr      error
	panicOn      string

	calls  []string
	closed int
	meHits int
}

func (f *fakeClient) call(c string) {
	f.calls = append(f.calls, c)
	if f.panicOn != "" && f.panicOn == c {
		panic("boom: " + c)
	}
}

func (f *fakeClient) Me(ctx context.Context) (int64, error) {
	f.meHits++
	return 1, nil
}

func (f *fakeClient) Dialogs(ctx context.Context, limit int32) ([]domain.Dialog, error) {
	f.call(fmt.Sprintf("dialogs:%d", limit))
	return f.dialogs, f.dialogsErr
}

func (f *fakeClient) LeaveChat(ctx context.Context, chatID int64) error {
	f.call(fmt.Sprintf("leave:%d", chatID))
	return f.leaveErr[chatID]
}

func (f *fakeClient) DeleteHistory(ctx context.Context, chatID int64, revoke bool) error {
	mode := "keep"
	if revoke {
		mode = "revoke"
	}
	f.call(fmt.Sprintf("delete:%d:%s", chatID, mode))
	return f.deleteErr[chatID]
}

func (f *fakeClient) Contacts(ctx context.Context) ([]int64, error) {
	f.call("contacts")
	return f.contacts, nil
}

func (f *fakeClient) RemoveContacts(ctx context.Context, userIDs []int64) error {
	f.call(fmt.Sprintf("remove_contacts:%v", userIDs))
	return nil
}

func (f *fakeClient) ActiveSessions(ctx context.Context) ([]domain.ActiveSession, error) {
	f.call("sessions")
	return f.sessions, f.sessionsErr
}

func (f *fakeClient) TerminateSession(ctx context.Context, sessionID int64) error {
	f.call(fmt.Sprintf("terminate:%d", sessionID))
	return f.terminateErr[sessionID]
}

func (f *fakeClient) SendText(ctx context.Context, username, text string) error {
	f.call(fmt.Sprintf("send:%s:%s", username, text))
	return f.sendErr
}

func (f *fakeClient) Close() {
	f.closed++
}

type openCall struct {
	session string
	mode    ports.ClientMode
}

// fakeOpener отдаёт клиента или ошибку по имени сессии
type fakeOpener struct {
	clients map[string]*fakeClient
	errs    map[string]error
	opened  []openCall
}

func (o *fakeOpener) Open(ctx context.Context, sess *domain.Session, mode ports.ClientMode) (ports.AccountClient, error) {
	o.opened = append(o.opened, openCall{session: sess.SessionName, mode: mode})
	if err := o.errs[sess.SessionName]; err != nil {
		return nil, err
	}
	cli, ok := o.clients[sess.SessionName]
	if !ok {
		return nil, domain.ErrNotAuthorized
	}
	return cli, nil
}

type fakeRepo struct {
	names      []string
	listErr    error
	getErr     map[string]error
	hasDefault bool
	created    []string
}

func (r *fakeRepo) ListSessions(ctx context.Context) ([]string, error) {
	return r.names, r.listErr
}

func (r *fakeRepo) GetSession(ctx context.Context, name string) (*domain.Session, error) {
	if err := r.getErr[name]; err != nil {
		return nil, err
	}
	phone, _ := domain.PhoneFromSessionName(name)
	return &domain.Session{SessionName: name, Phone: phone, Dir: "/sessions/" + name}, nil
}

func (r *fakeRepo) DefaultSession(ctx context.Context) (*domain.Session, error) {
	if !r.hasDefault {
		return nil, domain.ErrNoSession
	}
	return &domain.Session{SessionName: "session", Dir: "/session"}, nil
}

func (r *fakeRepo) NewDefaultSession(ctx context.Context, phone string) (*domain.Session, error) {
	r.created = append(r.created, "session")
	return &domain.Session{SessionName: "session", Phone: phone, Dir: "/session"}, nil
}

func (r *fakeRepo) NewSession(ctx context.Context, phone string) (*domain.Session, error) {
	name := domain.SessionNameForPhone(phone)
	r.created = append(r.created, name)
	return &domain.Session{SessionName: name, Phone: phone, Dir: "/sessions/" + name}, nil
}

// fakePrompter отвечает по очереди, потом io.EOF.
// onAsk вызывается перед ответом, например чтобы отменить контекст.
type fakePrompter struct {
	answers []string
	asked   []string
	onAsk   func(question string)
}

func (p *fakePrompter) Ask(ctx context.Context, question string) (string, error) {
	p.asked = append(p.asked, question)
	if p.onAsk != nil {
		p.onAsk(question)
	}
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *fakePrompter) AskSecret(ctx context.Context, question string) (string, error) {
	return p.Ask(ctx, question)
}

type recorded struct {
	phone   string
	outcome domain.TerminationOutcome
}

type fakeRecorder struct {
	records []recorded
}

func (r *fakeRecorder) Record(ctx context.Context, phone string, outcome domain.TerminationOutcome) error {
	r.records = append(r.records, recorded{phone: phone, outcome: outcome})
	return nil
}
