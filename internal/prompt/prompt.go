package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"apollo/internal/faults"
)

const maxAttempts = 3

// Chooser presents options and returns the index of the chosen one.
type Chooser interface {
	Choose(ctx context.Context, prompt string, options []string) (int, error)
}

// Terminal renders a numbered menu and reads the answer from In.
type Terminal struct {
	In          io.Reader
	Out         io.Writer
	Interactive bool

	reader *bufio.Reader
}

// NewTerminal binds a menu to in and out. Prompts cancel immediately when in
// is not a terminal.
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{In: in, Out: out, Interactive: isTerminal(in)}
}

func (t *Terminal) Choose(ctx context.Context, prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, faults.Wrap(faults.ErrCancelled, "prompt", "choose", "no options", nil)
	}
	if !t.Interactive {
		return -1, faults.Wrap(faults.ErrCancelled, "prompt", "choose", "not a terminal", nil)
	}
	if t.reader == nil {
		t.reader = bufio.NewReader(t.In)
	}

	heading := color.New(color.Bold)
	accent := color.New(color.FgCyan)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return -1, err
			}
		}

		heading.Fprintln(t.Out, prompt)
		for i, option := range options {
			fmt.Fprintf(t.Out, "  [%d] %s\n", i+1, option)
		}
		accent.Fprint(t.Out, "Enter your choice: ")

		line, err := t.reader.ReadString('\n')
		input := strings.TrimSpace(line)
		if input == "" {
			if err != nil {
				fmt.Fprintln(t.Out)
			}
			return -1, faults.Wrap(faults.ErrCancelled, "prompt", "choose", "no answer", nil)
		}

		num, convErr := strconv.Atoi(input)
		if convErr == nil && num >= 1 && num <= len(options) {
			return num - 1, nil
		}
		fmt.Fprintf(t.Out, "Invalid option: %s\n", input)
		if err != nil {
			break
		}
	}
	return -1, faults.Wrap(faults.ErrCancelled, "prompt", "choose", "too many invalid answers", nil)
}

func isTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Default never asks; every prompt resolves to cancellation.
type Default struct{}

func (Default) Choose(context.Context, string, []string) (int, error) {
	return -1, faults.Wrap(faults.ErrCancelled, "prompt", "choose", "headless", nil)
}

// Scripted answers prompts from a fixed list of option labels. A label that
// is not offered, or an exhausted script, cancels.
type Scripted struct {
	Answers []string
	Prompts []string
}

func (s *Scripted) Choose(_ context.Context, prompt string, options []string) (int, error) {
	s.Prompts = append(s.Prompts, prompt)
	if len(s.Answers) == 0 {
		return -1, faults.Wrap(faults.ErrCancelled, "prompt", "choose", "script exhausted", nil)
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	for i, option := range options {
		if option == answer || strings.HasSuffix(option, " "+answer) {
			return i, nil
		}
	}
	return -1, faults.Wrap(faults.ErrCancelled, "prompt", "choose", "scripted answer not offered: "+answer, nil)
}
