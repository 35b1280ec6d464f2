package cmd

import (
	"fmt"
	"slices"
	"time"

	"github.com/mwantia/vsh/data"
)

// ResolutionMode selects how a raw token is turned into a value.
type ResolutionMode int

const (
	// ResolveNone passes the raw token through.
	ResolveNone ResolutionMode = iota
	// ResolveLookup resolves the token into inventory objects.
	ResolveLookup
	// ResolveLookupParent resolves the parent portion of the token and pairs
	// every match with the unresolved leaf name.
	ResolveLookupParent
)

func (m ResolutionMode) String() string {
	switch m {
	case ResolveLookup:
		return "lookup"
	case ResolveLookupParent:
		return "lookup_parent"
	default:
		return "none"
	}
}

// OptionType is the value type of an option, inferred from its default.
type OptionType int

const (
	OptionString OptionType = iota
	OptionBool
	OptionInt
	OptionFloat
	OptionDuration
)

// ArgumentConfig configures a positional argument declaration.
type ArgumentConfig struct {
	// Optional marks the argument as not required. Arguments are required by default.
	Optional bool
	// Multi lets the argument consume every remaining token.
	Multi bool
	// Default is used when no token is supplied. Multi arguments default to
	// an empty sequence and only accept []any or []string.
	Default any
	// Lookup resolves the token into objects of these kinds.
	Lookup []data.Kind
	// LookupParent resolves the parent path of the token into objects of these kinds.
	LookupParent []data.Kind
}

// OptionConfig configures a named option declaration.
type OptionConfig struct {
	// Short is an optional single letter alias, e.g. "k" for -k.
	Short string
	// Default is the value used when the option is not given. Its type
	// decides the option type: bool, int, float64, time.Duration or string.
	Default any
	// Lookup resolves the option value into exactly one object of these kinds.
	Lookup []data.Kind
}

// ArgumentSpec is a validated positional argument declaration.
type ArgumentSpec struct {
	Name        string
	Description string
	Required    bool
	Multi       bool
	Default     any
	Mode        ResolutionMode
	Kinds       []data.Kind
}

// OptionSpec is a validated option declaration.
type OptionSpec struct {
	Name        string
	Short       string
	Description string
	Default     any
	Type        OptionType
	Kinds       []data.Kind
}

// IsLookup reports whether the option value is resolved through the lookup service.
func (o OptionSpec) IsLookup() bool {
	return len(o.Kinds) > 0
}

// Spec is the immutable schema of a command: its summary, options and
// positional arguments. Build it with NewSpec.
type Spec struct {
	name       string
	summary    string
	arguments  []ArgumentSpec
	options    []OptionSpec
	applicable []data.Kind
}

// SpecOption declares a single option or argument on a Spec under construction.
type SpecOption func(*specBuilder) error

type specBuilder struct {
	spec      *Spec
	validator *validator
}

// NewSpec builds a Spec from declarations applied in order. The first
// declaration violating an invariant aborts the build with a *BuildError.
func NewSpec(name, summary string, opts ...SpecOption) (*Spec, error) {
	builder := &specBuilder{
		spec: &Spec{
			name:    name,
			summary: summary,
		},
		validator: newValidator(name),
	}

	for _, opt := range opts {
		if err := opt(builder); err != nil {
			return nil, err
		}
	}

	slices.Sort(builder.spec.applicable)
	return builder.spec, nil
}

// MustSpec is like NewSpec but panics on a malformed declaration.
// It is meant for static command definitions.
func MustSpec(name, summary string, opts ...SpecOption) *Spec {
	spec, err := NewSpec(name, summary, opts...)
	if err != nil {
		panic(err)
	}

	return spec
}

// WithArgument declares the next positional argument.
func WithArgument(name, description string, cfg ArgumentConfig) SpecOption {
	return func(b *specBuilder) error {
		arg := ArgumentSpec{
			Name:        name,
			Description: description,
			Required:    !cfg.Optional,
			Multi:       cfg.Multi,
			Default:     cfg.Default,
		}

		switch {
		case len(cfg.Lookup) > 0:
			arg.Mode = ResolveLookup
			arg.Kinds = uniqueKinds(cfg.Lookup)
		case len(cfg.LookupParent) > 0:
			arg.Mode = ResolveLookupParent
			arg.Kinds = uniqueKinds(cfg.LookupParent)
		}

		if err := b.validator.argument(arg, cfg); err != nil {
			return err
		}

		if arg.Multi {
			def, err := sequenceDefault(cfg.Default)
			if err != nil {
				return b.validator.fail(name, InvariantDefaultType)
			}
			arg.Default = def
		}

		b.spec.addApplicable(arg.Kinds)
		b.spec.arguments = append(b.spec.arguments, arg)
		return nil
	}
}

// WithOption declares a named option.
func WithOption(name, description string, cfg OptionConfig) SpecOption {
	return func(b *specBuilder) error {
		opt := OptionSpec{
			Name:        name,
			Short:       cfg.Short,
			Description: description,
			Default:     cfg.Default,
			Kinds:       uniqueKinds(cfg.Lookup),
		}

		if err := b.validator.option(opt); err != nil {
			return err
		}

		typ, ok := inferOptionType(cfg.Default)
		if !ok || (opt.IsLookup() && typ != OptionString) {
			return b.validator.fail(name, InvariantDefaultType)
		}
		opt.Type = typ

		b.spec.addApplicable(opt.Kinds)
		b.spec.options = append(b.spec.options, opt)
		return nil
	}
}

// Name returns the name of the described command.
func (s *Spec) Name() string {
	return s.name
}

// Summary returns the one line description of the command.
func (s *Spec) Summary() string {
	return s.summary
}

// Arguments returns the positional arguments in declaration order.
func (s *Spec) Arguments() []ArgumentSpec {
	return slices.Clone(s.arguments)
}

// Options returns the declared options in declaration order.
func (s *Spec) Options() []OptionSpec {
	return slices.Clone(s.options)
}

// HasOptions reports whether any option besides the implicit help option was declared.
func (s *Spec) HasOptions() bool {
	return len(s.options) > 0
}

// Applicable returns every kind referenced by a lookup-bound option or argument.
func (s *Spec) Applicable() []data.Kind {
	return slices.Clone(s.applicable)
}

func (s *Spec) addApplicable(kinds []data.Kind) {
	for _, kind := range kinds {
		if !slices.Contains(s.applicable, kind) {
			s.applicable = append(s.applicable, kind)
		}
	}
}

func uniqueKinds(kinds []data.Kind) []data.Kind {
	if len(kinds) == 0 {
		return nil
	}

	result := make([]data.Kind, 0, len(kinds))
	for _, kind := range kinds {
		if !slices.Contains(result, kind) {
			result = append(result, kind)
		}
	}

	return result
}

func sequenceDefault(def any) ([]any, error) {
	switch v := def.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return slices.Clone(v), nil
	case []string:
		result := make([]any, len(v))
		for i, s := range v {
			result[i] = s
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported sequence default %T", def)
	}
}

func inferOptionType(def any) (OptionType, bool) {
	switch def.(type) {
	case nil, string:
		return OptionString, true
	case bool:
		return OptionBool, true
	case int:
		return OptionInt, true
	case float64:
		return OptionFloat, true
	case time.Duration:
		return OptionDuration, true
	default:
		return OptionString, false
	}
}
