package cmd

import (
	"context"
	"io"

	"github.com/mwantia/vsh/data"
	"github.com/mwantia/vsh/log"
)

// Lookup is the naming service used to resolve lookup-bound values.
type Lookup interface {
	// Resolve returns every object of the given kinds matching path.
	// An empty result is not an error; a glob may match many objects.
	Resolve(ctx context.Context, path string, kinds []data.Kind) ([]*data.Object, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, path string, kinds []data.Kind) ([]*data.Object, error)

func (f LookupFunc) Resolve(ctx context.Context, path string, kinds []data.Kind) ([]*data.Object, error) {
	return f(ctx, path, kinds)
}

// Session is the part of the invoking shell a command can use.
type Session interface {
	// Output is where command output should be written
	Output() io.Writer

	// Logger returns the logger scoped to the running command
	Logger() *log.Logger

	// Lookup returns the naming service bound to the current directory
	Lookup() Lookup
}

// Command represents an executable shell command.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Spec returns the option and argument schema of the command
	Spec() *Spec

	// Execute runs the command with resolved arguments
	Execute(ctx context.Context, session Session, args *CommandArgs) error
}

// Handler is the body of a command built with NewCommand.
type Handler func(ctx context.Context, session Session, args *CommandArgs) error

type handlerCommand struct {
	spec    *Spec
	handler Handler
}

// NewCommand binds a handler to a spec.
func NewCommand(spec *Spec, handler Handler) Command {
	return &handlerCommand{
		spec:    spec,
		handler: handler,
	}
}

func (c *handlerCommand) Name() string {
	return c.spec.Name()
}

func (c *handlerCommand) Spec() *Spec {
	return c.spec
}

func (c *handlerCommand) Execute(ctx context.Context, session Session, args *CommandArgs) error {
	return c.handler(ctx, session, args)
}
