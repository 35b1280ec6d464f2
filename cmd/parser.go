package cmd

import (
	"context"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/mwantia/vsh/data"
	"github.com/spf13/pflag"
)

// Parser resolves raw tokens against a Spec. All per-invocation state lives
// inside Parse, so a Parser may be shared between goroutines.
type Parser struct {
	spec   *Spec
	lookup Lookup
}

func NewParser(spec *Spec, lookup Lookup) *Parser {
	return &Parser{
		spec:   spec,
		lookup: lookup,
	}
}

// Parse resolves options first, then positional arguments in declaration
// order. Either every value is resolved or an error is returned.
func (p *Parser) Parse(ctx context.Context, tokens []string) (*CommandArgs, error) {
	fs, values := p.spec.newFlagSet()
	if err := fs.Parse(tokens); err != nil {
		return nil, &ParseError{Kind: InvalidOption, Err: err}
	}

	if help, _ := fs.GetBool(helpOption); help {
		return nil, ErrHelp
	}

	args := newCommandArgs(tokens)
	if err := p.parseOptions(ctx, fs, values, args); err != nil {
		return nil, err
	}

	if err := p.parseArguments(ctx, fs.Args(), args); err != nil {
		return nil, err
	}

	return args, nil
}

func (p *Parser) parseOptions(ctx context.Context, fs *pflag.FlagSet, values map[string]any, args *CommandArgs) error {
	for _, opt := range p.spec.options {
		value := deref(values[opt.Name])
		changed := fs.Changed(opt.Name)
		args.changed[opt.Name] = changed

		if opt.IsLookup() {
			// A given value is always resolved, even when empty
			raw, _ := value.(string)
			if !changed && raw == "" {
				args.options[opt.Name] = nil
				continue
			}

			obj, err := p.resolveOne(ctx, opt.Name, raw, opt.Kinds)
			if err != nil {
				return err
			}
			value = obj
		}

		args.options[opt.Name] = value
	}

	return nil
}

func (p *Parser) parseArguments(ctx context.Context, remaining []string, args *CommandArgs) error {
	queue := slices.Clone(remaining)

	for _, arg := range p.spec.arguments {
		if arg.Multi {
			if len(queue) == 0 {
				if arg.Required {
					return &ParseError{Kind: MissingArgument, Name: arg.Name}
				}
				args.multi[arg.Name] = slices.Clone(arg.Default.([]any))
				continue
			}

			values := make([]any, 0, len(queue))
			for _, token := range queue {
				resolved, err := p.resolve(ctx, arg, token)
				if err != nil {
					return err
				}
				values = append(values, resolved...)
			}
			queue = nil

			if arg.Required && len(values) == 0 {
				return &ParseError{Kind: NoMatch, Name: arg.Name}
			}
			args.multi[arg.Name] = values
			continue
		}

		if len(queue) == 0 {
			if arg.Required {
				return &ParseError{Kind: MissingArgument, Name: arg.Name}
			}
			args.args[arg.Name] = arg.Default
			continue
		}

		token := queue[0]
		queue = queue[1:]

		resolved, err := p.resolve(ctx, arg, token)
		if err != nil {
			return err
		}

		switch {
		case len(resolved) > 1:
			return &ParseError{Kind: AmbiguousArgument, Name: arg.Name}
		case len(resolved) == 0 && arg.Required:
			return &ParseError{Kind: NoMatch, Name: arg.Name}
		case len(resolved) == 0:
			args.args[arg.Name] = nil
		default:
			args.args[arg.Name] = resolved[0]
		}
	}

	if len(queue) > 0 {
		return &ParseError{Kind: TooManyArguments}
	}

	return nil
}

// resolve turns one token into zero or more values according to the
// resolution mode of the argument.
func (p *Parser) resolve(ctx context.Context, arg ArgumentSpec, token string) ([]any, error) {
	switch arg.Mode {
	case ResolveLookup:
		objects, err := p.lookupObjects(ctx, arg.Name, token, arg.Kinds)
		if err != nil {
			return nil, err
		}

		values := make([]any, len(objects))
		for i, obj := range objects {
			values[i] = obj
		}
		return values, nil

	case ResolveLookupParent:
		parent, leaf := data.SplitPath(token)
		objects, err := p.lookupObjects(ctx, arg.Name, parent, arg.Kinds)
		if err != nil {
			return nil, err
		}

		values := make([]any, len(objects))
		for i, obj := range objects {
			values[i] = data.ParentLeaf{Parent: obj, Leaf: leaf}
		}
		return values, nil

	default:
		return []any{token}, nil
	}
}

// resolveOne collapses a lookup to exactly one object, as options are single-valued.
func (p *Parser) resolveOne(ctx context.Context, name, path string, kinds []data.Kind) (*data.Object, error) {
	objects, err := p.lookupObjects(ctx, name, path, kinds)
	if err != nil {
		return nil, err
	}

	switch len(objects) {
	case 0:
		return nil, &ParseError{Kind: NoMatch, Name: name}
	case 1:
		return objects[0], nil
	default:
		return nil, &ParseError{Kind: AmbiguousArgument, Name: name}
	}
}

func (p *Parser) lookupObjects(ctx context.Context, name, path string, kinds []data.Kind) ([]*data.Object, error) {
	if p.lookup == nil {
		return nil, &ParseError{Kind: LookupFailed, Name: name, Err: ErrNoLookup}
	}

	objects, err := p.lookup.Resolve(ctx, path, kinds)
	if err != nil {
		return nil, &ParseError{Kind: LookupFailed, Name: name, Err: err}
	}

	return objects, nil
}

// newFlagSet builds a fresh option parser for one invocation.
func (s *Spec) newFlagSet() (*pflag.FlagSet, map[string]any) {
	fs := pflag.NewFlagSet(s.name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	values := make(map[string]any, len(s.options))
	for _, opt := range s.options {
		usage := opt.usage()
		switch opt.Type {
		case OptionBool:
			def, _ := opt.Default.(bool)
			values[opt.Name] = fs.BoolP(opt.Name, opt.Short, def, usage)
		case OptionInt:
			def, _ := opt.Default.(int)
			values[opt.Name] = fs.IntP(opt.Name, opt.Short, def, usage)
		case OptionFloat:
			def, _ := opt.Default.(float64)
			values[opt.Name] = fs.Float64P(opt.Name, opt.Short, def, usage)
		case OptionDuration:
			def, _ := opt.Default.(time.Duration)
			values[opt.Name] = fs.DurationP(opt.Name, opt.Short, def, usage)
		default:
			def, _ := opt.Default.(string)
			values[opt.Name] = fs.StringP(opt.Name, opt.Short, def, usage)
		}
	}
	fs.BoolP(helpOption, helpShort, false, "Show this message")

	return fs, values
}

func (o OptionSpec) usage() string {
	if !o.IsLookup() {
		return o.Description
	}

	return strings.TrimSpace(o.Description + " " + joinKinds(o.Kinds))
}

func deref(ptr any) any {
	switch v := ptr.(type) {
	case *bool:
		return *v
	case *int:
		return *v
	case *float64:
		return *v
	case *time.Duration:
		return *v
	case *string:
		return *v
	default:
		return nil
	}
}
