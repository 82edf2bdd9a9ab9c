package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func askPrompt() (string, error) {
	p := promptui.Prompt{
		Label: "Prompt",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("prompt must not be empty")
			}
			return nil
		},
	}
	value, err := p.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func askToken() (string, error) {
	p := promptui.Prompt{
		Label: "Session token",
		Mask:  '*',
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("token must not be empty")
			}
			return nil
		},
	}
	value, err := p.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// isCanceled reports whether the user backed out of a prompt. Cancellation is
// not an error worth printing.
func isCanceled(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) ||
		errors.Is(err, promptui.ErrAbort) ||
		errors.Is(err, promptui.ErrEOF) ||
		errors.Is(err, io.EOF)
}
