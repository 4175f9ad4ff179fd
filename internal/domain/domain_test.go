package domain

import "testing"

func TestSessionNameRoundTrip(t *testing.T) {
	name := SessionNameForPhone(" +15550001111 ")
	if name != "session_+15550001111" {
		t.Fatalf("got %q", name)
	}
	phone, ok := PhoneFromSessionName(name)
	if !ok || phone != "+15550001111" {
		t.Fatalf("got %q %v", phone, ok)
	}

	for _, bad := range []string{"session_", "session", "other_+1"} {
		if _, ok := PhoneFromSessionName(bad); ok {
			t.Errorf("%q must not parse", bad)
		}
	}
}

func TestDialogDisplayName(t *testing.T) {
	user := Dialog{Kind: PeerUser, Title: "Alice Smith", Username: "@alice"}
	if got := user.DisplayName(); got != "@alice" {
		t.Errorf("got %q", got)
	}
	user.Username = ""
	if got := user.DisplayName(); got != "Alice Smith" {
		t.Errorf("got %q", got)
	}
	group := Dialog{Kind: PeerGroup, Title: "Friends", Username: "@friends"}
	if got := group.DisplayName(); got != "Friends" {
		t.Errorf("got %q", got)
	}
	if !group.IsGroupOrChannel() || user.IsGroupOrChannel() {
		t.Error("IsGroupOrChannel mismatch")
	}
}
