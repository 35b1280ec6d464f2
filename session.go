package vsh

import (
	"io"

	"github.com/mwantia/vsh/cmd"
	"github.com/mwantia/vsh/log"
)

// session is handed to a single command invocation.
type session struct {
	output io.Writer
	logger *log.Logger
	lookup cmd.Lookup
}

func (s *Shell) newSession(command cmd.Command) *session {
	return &session{
		output: s.options.Output,
		logger: s.log.Named(command.Name()),
		lookup: s.cursor,
	}
}

func (s *session) Output() io.Writer {
	return s.output
}

func (s *session) Logger() *log.Logger {
	return s.logger
}

func (s *session) Lookup() cmd.Lookup {
	return s.lookup
}
