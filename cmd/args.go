package cmd

import (
	"slices"
	"time"

	"github.com/mwantia/vsh/data"
)

// CommandArgs contains the resolved values of a single invocation.
type CommandArgs struct {
	// Raw unparsed tokens
	Raw []string

	args    map[string]any
	multi   map[string][]any
	options map[string]any
	changed map[string]bool
}

func newCommandArgs(raw []string) *CommandArgs {
	return &CommandArgs{
		Raw:     raw,
		args:    make(map[string]any),
		multi:   make(map[string][]any),
		options: make(map[string]any),
		changed: make(map[string]bool),
	}
}

// Arg returns the value of a single-valued argument: the raw token, a
// *data.Object, a data.ParentLeaf, its default or nil.
func (a *CommandArgs) Arg(name string) any {
	return a.args[name]
}

// Args returns the values of a multi argument in resolution order.
func (a *CommandArgs) Args(name string) []any {
	return slices.Clone(a.multi[name])
}

// String returns a single-valued argument as string.
func (a *CommandArgs) String(name string) string {
	s, _ := a.args[name].(string)
	return s
}

// Object returns a lookup-bound single-valued argument.
func (a *CommandArgs) Object(name string) *data.Object {
	obj, _ := a.args[name].(*data.Object)
	return obj
}

// Objects returns the objects of a lookup-bound multi argument.
func (a *CommandArgs) Objects(name string) []*data.Object {
	values := a.multi[name]
	objects := make([]*data.Object, 0, len(values))
	for _, value := range values {
		if obj, ok := value.(*data.Object); ok {
			objects = append(objects, obj)
		}
	}

	return objects
}

// ParentLeaf returns a lookup_parent single-valued argument.
func (a *CommandArgs) ParentLeaf(name string) (data.ParentLeaf, bool) {
	pl, ok := a.args[name].(data.ParentLeaf)
	return pl, ok
}

// Option returns the resolved value of an option.
func (a *CommandArgs) Option(name string) any {
	return a.options[name]
}

// Changed reports whether the option was given explicitly.
func (a *CommandArgs) Changed(name string) bool {
	return a.changed[name]
}

func (a *CommandArgs) OptionBool(name string) bool {
	v, _ := a.options[name].(bool)
	return v
}

func (a *CommandArgs) OptionInt(name string) int {
	v, _ := a.options[name].(int)
	return v
}

func (a *CommandArgs) OptionFloat(name string) float64 {
	v, _ := a.options[name].(float64)
	return v
}

func (a *CommandArgs) OptionString(name string) string {
	v, _ := a.options[name].(string)
	return v
}

func (a *CommandArgs) OptionDuration(name string) time.Duration {
	v, _ := a.options[name].(time.Duration)
	return v
}

// OptionObject returns the object a lookup-bound option resolved to.
func (a *CommandArgs) OptionObject(name string) *data.Object {
	obj, _ := a.options[name].(*data.Object)
	return obj
}
