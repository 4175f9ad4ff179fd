package useCases

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
	"github.com/larriantoniy/tg_session_keeper/internal/ports"
)

func TestWithClientReleasesOnEveryPath(t *testing.T) {
	sess := &domain.Session{SessionName: "session_1"}

	tests := []struct {
		name    string
		op      SessionOp
		wantErr bool
		panics  bool
	}{
		{
			name: "ok",
			op:   func(context.Context, ports.AccountClient, *domain.Session) error { return nil },
		},
		{
			name:    "error",
			op:      func(context.Context, ports.AccountClient, *domain.Session) error { return errors.New("fail") },
			wantErr: true,
		},
		{
			name:   "panic",
			op:     func(context.Context, ports.AccountClient, *domain.Session) error { panic("boom") },
			panics: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := &fakeClient{}
			opener := &fakeOpener{clients: map[string]*fakeClient{"session_1": cli}}
			r := NewRunner(&fakeRepo{}, opener, "sessions", &bytes.Buffer{}, discardLogger())

			var err error
			func() {
				defer func() {
					if rec := recover(); rec != nil && !tt.panics {
						t.Fatalf("unexpected panic: %v", rec)
					}
				}()
				err = r.WithClient(context.Background(), sess, tt.op)
			}()

			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if cli.closed != 1 {
				t.Fatalf("client closed %d times, want 1", cli.closed)
			}
			if diff := cmp.Diff([]openCall{{"session_1", ports.ClientModeRuntime}}, opener.opened, cmp.AllowUnexported(openCall{})); diff != "" {
				t.Errorf("open calls (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunAllContinuesPastBadSessions(t *testing.T) {
	good := &fakeClient{}
	other := &fakeClient{}
	repo := &fakeRepo{
		names:  []string{"session_1", "session_2", "session_3", "session_4"},
		getErr: map[string]error{"session_3": errors.New("permission denied")},
	}
	opener := &fakeOpener{
		clients: map[string]*fakeClient{"session_1": good, "session_4": other},
		errs:    map[string]error{},
	}
	var out bytes.Buffer
	r := NewRunner(repo, opener, "sessions", &out, discardLogger())

	var visited []string
	err := r.RunAll(context.Background(), func(ctx context.Context, cli ports.AccountClient, sess *domain.Session) error {
		visited = append(visited, sess.SessionName)
		if sess.SessionName == "session_4" {
			return reported(fmt.Errorf("cleanup failed"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	if diff := cmp.Diff([]string{"session_1", "session_4"}, visited); diff != "" {
		t.Errorf("visited (-want +got):\n%s", diff)
	}
	if good.closed != 1 || other.closed != 1 {
		t.Errorf("closed good=%d other=%d, want 1 each", good.closed, other.closed)
	}

	text := out.String()
	for _, want := range []string{
		"Session session_2 is not authorized.",
		"Failed to access session session_3: permission denied",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "session_4") {
		t.Errorf("reported op error must not be printed twice:\n%s", text)
	}
}

func TestRunAllWithoutSessionsFolder(t *testing.T) {
	repo := &fakeRepo{listErr: fmt.Errorf("%w: ./sessions", domain.ErrNoSession)}
	var out bytes.Buffer
	r := NewRunner(repo, &fakeOpener{}, "sessions", &out, discardLogger())

	if err := r.RunAll(context.Background(), nil); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if got, want := out.String(), "No sessions found in the folder \"sessions\".\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
