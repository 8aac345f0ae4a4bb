package prompt_test

import (
	"bytes"
	"strings"
	"testing"

	"mcbulk/internal/prompt"
)

func TestAskTrimsAnswer(t *testing.T) {
	var out bytes.Buffer
	terminal := prompt.New(strings.NewReader("  hello world  \n"), &out)

	answer, err := terminal.Ask("Say something: ")
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if answer != "hello world" {
		t.Fatalf("unexpected answer: %q", answer)
	}
	if out.String() != "Say something: " {
		t.Fatalf("prompt not written: %q", out.String())
	}
}

func TestAskLastLineWithoutNewline(t *testing.T) {
	terminal := prompt.New(strings.NewReader("final"), &bytes.Buffer{})

	answer, err := terminal.Ask("? ")
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if answer != "final" {
		t.Fatalf("unexpected answer: %q", answer)
	}
}

func TestConfirmAnswers(t *testing.T) {
	cases := map[string]bool{
		"y\n":     true,
		"Y\n":     true,
		"yes\n":   true,
		"n\n":     false,
		"no\n":    false,
		"maybe\n": false,
		"\n":      false,
	}
	for input, want := range cases {
		terminal := prompt.New(strings.NewReader(input), &bytes.Buffer{})
		got, err := terminal.Confirm("Proceed?")
		if err != nil {
			t.Fatalf("confirm %q failed: %v", input, err)
		}
		if got != want {
			t.Fatalf("confirm %q: expected %v, got %v", input, want, got)
		}
	}
}

func TestAskEmptyInputErrors(t *testing.T) {
	terminal := prompt.New(strings.NewReader(""), &bytes.Buffer{})
	if _, err := terminal.Ask("? "); err == nil {
		t.Fatalf("expected error on exhausted input")
	}
}
