package useCases

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
)

func TestSelectiveExitWithoutGroupsIsNotDestructive(t *testing.T) {
	cli := &fakeClient{
		dialogs: []domain.Dialog{
			{ChatID: 1, Kind: domain.PeerUser, Title: "Alice"},
			{ChatID: 2, Kind: domain.PeerUser, Title: "Bob"},
		},
	}
	var out bytes.Buffer

	if err := NewSelectiveExit(&out, discardLogger(), 100).Run(context.Background(), cli); err != nil {
		t.Fatalf("exit: %v", err)
	}

	if diff := cmp.Diff([]string{"dialogs:100"}, cli.calls); diff != "" {
		t.Fatalf("only the listing call is allowed (-want +got):\n%s", diff)
	}
	if got, want := out.String(), "No channels, groups, or chats found.\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSelectiveExitLeavesGroupsAndClearsUsersWithoutRevoke(t *testing.T) {
	cli := &fakeClient{
		dialogs: []domain.Dialog{
			{ChatID: 1, Kind: domain.PeerUser, Title: "Alice"},
			{ChatID: 2, Kind: domain.PeerGroup, Title: "Friends"},
			{ChatID: 3, Kind: domain.PeerUser, Title: "Bob"},
		},
		deleteErr: map[int64]error{1: errors.New("400 PEER_ID_INVALID")},
	}
	var out bytes.Buffer

	if err := NewSelectiveExit(&out, discardLogger(), 100).Run(context.Background(), cli); err != nil {
		t.Fatalf("exit: %v", err)
	}

	want := []string{
		"dialogs:100",
		"delete:1:keep",
		"leave:2",
		"delete:3:keep",
	}
	if diff := cmp.Diff(want, cli.calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "Failed to delete history for Alice") {
		t.Errorf("per-chat failure not reported, got:\n%s", out.String())
	}
	if !strings.HasSuffix(out.String(), "Exited all channels and groups and deleted all chats.\n") {
		t.Errorf("missing summary line, got:\n%s", out.String())
	}
}

func TestSelectiveExitLeaveFailureAborts(t *testing.T) {
	cli := &fakeClient{
		dialogs: []domain.Dialog{
			{ChatID: 2, Kind: domain.PeerChannel, Title: "News"},
			{ChatID: 3, Kind: domain.PeerUser, Title: "Bob"},
		},
		leaveErr: map[int64]error{2: errors.New("500 INTERNAL")},
	}
	var out bytes.Buffer

	if err := NewSelectiveExit(&out, discardLogger(), 100).Run(context.Background(), cli); err == nil {
		t.Fatal("expected error")
	}

	if diff := cmp.Diff([]string{"dialogs:100", "leave:2"}, cli.calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "Failed to check and delete: 500 INTERNAL") {
		t.Errorf("failure not reported, got:\n%s", out.String())
	}
}
