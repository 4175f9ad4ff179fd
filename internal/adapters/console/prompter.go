package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type answer struct {
	text string
	err  error
}

// Prompter читает ответы оператора построчно.
// Пароль читается без эха, если вход — терминал.
// Чтение идёт в отдельной горутине, поэтому Ctrl-C (отмена ctx) не ждёт Enter.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // -1, если вход не терминал

	// чтение, брошенное из-за отмены; его ответ достанется следующему вопросу
	pending <-chan answer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
		fd:  fd,
	}
}

func (p *Prompter) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, question)
	return p.wait(ctx, p.readLine)
}

func (p *Prompter) AskSecret(ctx context.Context, question string) (string, error) {
	if p.fd < 0 {
		return p.Ask(ctx, question)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	state, err := term.GetState(p.fd)
	if err != nil {
		return "", fmt.Errorf("reading terminal state: %w", err)
	}

	fmt.Fprint(p.out, question)
	secret, err := p.wait(ctx, func() (string, error) {
		b, err := term.ReadPassword(p.fd)
		return string(b), err
	})
	fmt.Fprintln(p.out)
	if ctx.Err() != nil {
		// ReadPassword не вернулся и эхо не восстановил
		_ = term.Restore(p.fd, state)
		return "", ctx.Err()
	}
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return secret, nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		// последняя строка без перевода строки — тоже ответ
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) wait(ctx context.Context, read func() (string, error)) (string, error) {
	ch := p.pending
	p.pending = nil
	if ch == nil {
		c := make(chan answer, 1)
		go func() {
			text, err := read()
			c <- answer{text: text, err: err}
		}()
		ch = c
	}

	select {
	case a := <-ch:
		return a.text, a.err
	case <-ctx.Done():
		p.pending = ch
		return "", ctx.Err()
	}
}
