package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"
)

// LinePrompter asks for the instruction on a single editable line. It is used
// when a full-screen editor is not wanted (--plain).
type LinePrompter struct {
	Stdin  io.ReadCloser
	Stdout io.Writer
}

func (p *LinePrompter) Capture(ctx context.Context, initial string) (string, bool, error) {
	cfg := &readline.Config{Prompt: "prompt> "}
	if p.Stdin != nil {
		cfg.Stdin = p.Stdin
	}
	if p.Stdout != nil {
		cfg.Stdout = p.Stdout
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return "", false, fmt.Errorf("readline init: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stderr(), promptTitle+" (enter to run, ctrl+c to cancel)")

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := rl.ReadlineWithDefault(initial)
		done <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case r := <-done:
		if r.err != nil {
			if errors.Is(r.err, readline.ErrInterrupt) || errors.Is(r.err, io.EOF) {
				return "", false, nil
			}
			return "", false, fmt.Errorf("read input: %w", r.err)
		}
		return r.line, true, nil
	}
}
