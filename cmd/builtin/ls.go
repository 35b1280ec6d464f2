package builtin

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/mwantia/vsh/cmd"
	"github.com/mwantia/vsh/data"
)

type LsCommand struct {
	shell Shell
	spec  *cmd.Spec
}

func NewLsCommand(shell Shell) *LsCommand {
	return &LsCommand{
		shell: shell,
		spec: cmd.MustSpec("ls", "List objects",
			cmd.WithOption("long", "Show kind and identifier", cmd.OptionConfig{
				Short:   "l",
				Default: false,
			}),
			cmd.WithArgument("path", "Paths to list", cmd.ArgumentConfig{
				Optional: true,
				Multi:    true,
				Default:  []string{"."},
				Lookup:   data.AllKinds(),
			}),
		),
	}
}

// Name returns the command identifier
func (ls *LsCommand) Name() string {
	return ls.spec.Name()
}

// Spec returns the option and argument schema of the command
func (ls *LsCommand) Spec() *cmd.Spec {
	return ls.spec
}

// Execute lists the children of every container and the object itself
// for everything else.
func (ls *LsCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs) error {
	objects := make([]*data.Object, 0)
	for _, value := range args.Args("path") {
		switch v := value.(type) {
		case *data.Object:
			objects = append(objects, v)
		case string:
			// Defaults are never resolved by the parser
			resolved, err := session.Lookup().Resolve(ctx, v, nil)
			if err != nil {
				return err
			}
			objects = append(objects, resolved...)
		}
	}

	w := tabwriter.NewWriter(session.Output(), 0, 4, 2, ' ', 0)
	defer w.Flush()

	for _, obj := range objects {
		entries := []*data.Object{obj}
		if obj.Kind.IsContainer() {
			children, err := ls.shell.Cursor().Inventory().List(ctx, obj.Path)
			if err != nil {
				return err
			}
			entries = children

			if len(objects) > 1 {
				fmt.Fprintf(w, "%s:\n", obj)
			}
		}

		for _, entry := range entries {
			name := entry.Name
			if entry.Kind.IsContainer() {
				name += "/"
			}

			if args.OptionBool("long") {
				fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Kind, entry.ID, name)
			} else {
				fmt.Fprintln(w, name)
			}
		}
	}

	return nil
}
