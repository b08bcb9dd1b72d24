package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/inventory-app/gqlclient/action"
)

// prompter asks confirmation questions on a line-oriented terminal. Prompts
// from concurrent removals are serialized.
type prompter struct {
	mu        sync.Mutex
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func newPrompter(in io.Reader, out io.Writer, assumeYes bool) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out, assumeYes: assumeYes}
}

// forID returns a Confirmer that names id in the question.
func (p *prompter) forID(id string) action.Confirmer {
	return action.ConfirmFunc(func(ctx context.Context, prompt action.Prompt) (bool, error) {
		return p.confirm(ctx, prompt, id)
	})
}

func (p *prompter) confirm(ctx context.Context, prompt action.Prompt, id string) (bool, error) {
	if p.assumeYes {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s (%s) [y/N] ", prompt.Message, id)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch answer := strings.ToLower(strings.TrimSpace(line)); answer {
	case "y", "yes":
		return true, nil
	default:
		return answer != "" && answer == strings.ToLower(prompt.ConfirmLabel), nil
	}
}

// alertSink writes alerts to stderr and counts them.
type alertSink struct {
	mu    sync.Mutex
	out   io.Writer
	count int
}

func (s *alertSink) Alert(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	fmt.Fprintln(s.out, "error:", message)
}

func (s *alertSink) failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
