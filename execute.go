package vsh

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/mwantia/vsh/cmd"
)

// Execute resolves the arguments of a single command and runs it. The first
// token names the command or an alias. Parse failures are returned as
// *cmd.ParseError without running the command.
func (s *Shell) Execute(ctx context.Context, args ...string) error {
	if len(args) == 0 {
		return ErrNoCommand
	}

	tokens := s.expand(args)

	command, err := s.Command(tokens[0])
	if err != nil {
		return err
	}

	s.log.Debug("Dispatching '%s' with %d token(s)", command.Name(), len(tokens)-1)

	parser := cmd.NewParser(command.Spec(), s.cursor)
	parsed, err := parser.Parse(ctx, tokens[1:])
	if errors.Is(err, cmd.ErrHelp) {
		_, err = fmt.Fprint(s.options.Output, command.Spec().Help())
		return err
	}
	if err != nil {
		s.log.Warn("Unable to parse '%s': %v", command.Name(), err)
		return err
	}

	if err := command.Execute(ctx, s.newSession(command), parsed); err != nil {
		s.log.Warn("Command '%s' failed: %v", command.Name(), err)
		return fmt.Errorf("%s: %w", command.Name(), err)
	}

	return nil
}

// ExecuteLine splits line into tokens the way a POSIX shell would and
// executes the result. Blank lines and comments are ignored.
func (s *Shell) ExecuteLine(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	tokens, err := shellwords.Parse(line)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnterminatedLine, err)
	}
	if len(tokens) == 0 {
		return nil
	}

	return s.Execute(ctx, tokens...)
}

// Run reads command lines from in until it is exhausted, "exit" or "quit"
// is entered or ctx is done. A failing line prints its error and does not
// end the loop.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.prompt()
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			return nil
		}

		if err := s.ExecuteLine(ctx, line); err != nil {
			fmt.Fprintln(s.options.Output, err)
		}
	}
}

func (s *Shell) prompt() {
	if s.options.Prompt == "" {
		return
	}

	prompt := strings.ReplaceAll(s.options.Prompt, "{cwd}", "/"+s.cursor.Cwd())
	fmt.Fprint(s.options.Output, prompt)
}
