package prompt_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"apollo/internal/faults"
	"apollo/internal/prompt"
)

func TestTerminalReturnsChosenIndex(t *testing.T) {
	var out bytes.Buffer
	term := &prompt.Terminal{In: strings.NewReader("2\n"), Out: &out, Interactive: true}

	idx, err := term.Choose(context.Background(), "Pick one", []string{"Skip", "/a.flac", "/a.mp3"})
	if err != nil {
		t.Fatalf("Choose failed: %v", err)
	}
	if idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if !strings.Contains(out.String(), "[3] /a.mp3") {
		t.Fatalf("expected numbered menu, got %q", out.String())
	}
}

func TestTerminalRepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	term := &prompt.Terminal{In: strings.NewReader("9\nabc\n1\n"), Out: &out, Interactive: true}

	idx, err := term.Choose(context.Background(), "Pick one", []string{"Skip", "/a.flac"})
	if err != nil {
		t.Fatalf("Choose failed: %v", err)
	}
	if idx != 0 {
		t.Fatalf("expected index 0, got %d", idx)
	}
	if strings.Count(out.String(), "Invalid option") != 2 {
		t.Fatalf("expected two invalid notices, got %q", out.String())
	}
}

func TestTerminalCancels(t *testing.T) {
	cases := []struct {
		name string
		term *prompt.Terminal
	}{
		{"eof", &prompt.Terminal{In: strings.NewReader(""), Out: &bytes.Buffer{}, Interactive: true}},
		{"blank", &prompt.Terminal{In: strings.NewReader("\n"), Out: &bytes.Buffer{}, Interactive: true}},
		{"not a tty", &prompt.Terminal{In: strings.NewReader("1\n"), Out: &bytes.Buffer{}}},
		{"invalid", &prompt.Terminal{In: strings.NewReader("7\n8\n9\n"), Out: &bytes.Buffer{}, Interactive: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.term.Choose(context.Background(), "Pick", []string{"Skip", "x"})
			if !faults.IsCancelled(err) {
				t.Fatalf("expected cancellation, got %v", err)
			}
		})
	}
}

func TestDefaultAlwaysCancels(t *testing.T) {
	_, err := prompt.Default{}.Choose(context.Background(), "Pick", []string{"Skip"})
	if !faults.IsCancelled(err) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestScriptedMatchesLabelsAndSuffixes(t *testing.T) {
	s := &prompt.Scripted{Answers: []string{"/b.mp3", "Remove", "missing"}}
	ctx := context.Background()

	idx, err := s.Choose(ctx, "first", []string{"(0.812) /a.mp3", "(0.700) /b.mp3", "Remove", "Skip"})
	if err != nil || idx != 1 {
		t.Fatalf("expected suffix match at 1, got %d %v", idx, err)
	}
	idx, err = s.Choose(ctx, "second", []string{"(0.812) /a.mp3", "Remove", "Skip"})
	if err != nil || idx != 1 {
		t.Fatalf("expected Remove at 1, got %d %v", idx, err)
	}
	if _, err := s.Choose(ctx, "third", []string{"Skip"}); !faults.IsCancelled(err) {
		t.Fatalf("expected cancellation for unknown answer, got %v", err)
	}
	if _, err := s.Choose(ctx, "fourth", []string{"Skip"}); !faults.IsCancelled(err) {
		t.Fatalf("expected cancellation when exhausted, got %v", err)
	}
	if len(s.Prompts) != 4 || s.Prompts[0] != "first" {
		t.Fatalf("unexpected prompt log: %v", s.Prompts)
	}
}
