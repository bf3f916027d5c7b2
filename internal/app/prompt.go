// Package app drives the interactive session and ties the resolved
// settings, archive store and download engine together.
package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

// Prompter gathers interactive input. The readline implementation backs
// real sessions; tests script their own.
type Prompter interface {
	Line(prompt, def string) (string, error)
	Confirm(prompt string, def bool) (bool, error)
	Int(prompt string, def, min, max int) (int, error)
	Close() error
}

type readlinePrompter struct {
	rl *readline.Instance
}

// NewPrompter opens a readline-backed prompter on the controlling
// terminal.
func NewPrompter() (Prompter, error) {
	rl, err := readline.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize input reader: %w", err)
	}
	return &readlinePrompter{rl: rl}, nil
}

func (p *readlinePrompter) Close() error {
	return p.rl.Close()
}

// Line reads one trimmed line, returning def on empty input.
func (p *readlinePrompter) Line(prompt, def string) (string, error) {
	if def != "" {
		p.rl.SetPrompt(fmt.Sprintf("%s [%s]: ", prompt, def))
	} else {
		p.rl.SetPrompt(prompt + ": ")
	}

	line, err := p.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return "", io.EOF
		}
		return "", err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Confirm reads a yes/no answer.
func (p *readlinePrompter) Confirm(prompt string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		line, err := p.Line(fmt.Sprintf("%s (%s)", prompt, hint), "")
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// Int reads an integer within [min, max], re-prompting on bad input.
func (p *readlinePrompter) Int(prompt string, def, min, max int) (int, error) {
	for {
		line, err := p.Line(prompt, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < min || n > max {
			fmt.Printf("Enter a number between %d and %d\n", min, max)
			continue
		}
		return n, nil
	}
}
