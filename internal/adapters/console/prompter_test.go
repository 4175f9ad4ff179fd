package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestAskTrimsLine(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  +15550001111 \r\n12345\n"), &out)

	got, err := p.Ask(ctx, "phone: ")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if want := "+15550001111"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	got, err = p.Ask(ctx, "code: ")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if want := "12345"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if got, want := out.String(), "phone: code: "; got != want {
		t.Fatalf("prompt output %q, want %q", got, want)
	}
}

func TestAskLastLineWithoutNewline(t *testing.T) {
	ctx := context.Background()
	p := NewPrompter(strings.NewReader("q"), io.Discard)

	got, err := p.Ask(ctx, "> ")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != "q" {
		t.Fatalf("got %q, want %q", got, "q")
	}

	if _, err := p.Ask(ctx, "> "); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF on exhausted input, got %v", err)
	}
}

func TestAskSecretFallsBackWhenNotTerminal(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("hunter2\n"), &out)

	got, err := p.AskSecret(ctx, "password: ")
	if err != nil {
		t.Fatalf("ask secret: %v", err)
	}
	if got != "hunter2" {
		t.Fatalf("got %q, want %q", got, "hunter2")
	}
	if !strings.Contains(out.String(), "password: ") {
		t.Fatalf("prompt not printed: %q", out.String())
	}
}

func TestAskReturnsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	p := NewPrompter(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := p.Ask(ctx, "> ")
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("got %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Ask still blocked after cancel")
	}

	// строка, набранная после отмены, не теряется
	go func() { _, _ = pw.Write([]byte("4\n")) }()
	got, err := p.Ask(context.Background(), "> ")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != "4" {
		t.Fatalf("got %q, want %q", got, "4")
	}
}

func TestAskCancelledBeforePrompt(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("1\n"), &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Ask(ctx, "> "); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Fatalf("prompt printed after cancel: %q", out.String())
	}
}
