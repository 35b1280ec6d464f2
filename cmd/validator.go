package cmd

const (
	helpOption = "help"
	helpShort  = "h"
)

// validator carries the declaration state needed to check the ordering
// invariants of a Spec while it is being built.
type validator struct {
	command string

	seenMulti    bool
	seenOptional bool

	arguments map[string]struct{}
	options   map[string]struct{}
	shorts    map[string]struct{}
}

func newValidator(command string) *validator {
	return &validator{
		command:   command,
		arguments: make(map[string]struct{}),
		options:   make(map[string]struct{}),
		shorts:    map[string]struct{}{helpShort: {}},
	}
}

func (v *validator) argument(arg ArgumentSpec, cfg ArgumentConfig) error {
	if arg.Name == "" {
		return v.fail(arg.Name, InvariantEmptyName)
	}
	if _, exists := v.arguments[arg.Name]; exists {
		return v.fail(arg.Name, InvariantUniqueName)
	}
	if v.seenMulti {
		return v.fail(arg.Name, InvariantMultiLast)
	}
	if arg.Required && v.seenOptional {
		return v.fail(arg.Name, InvariantRequiredOrder)
	}
	if len(cfg.Lookup) > 0 && len(cfg.LookupParent) > 0 {
		return v.fail(arg.Name, InvariantLookupExclusive)
	}

	v.arguments[arg.Name] = struct{}{}
	if arg.Multi {
		v.seenMulti = true
	}
	if !arg.Required {
		v.seenOptional = true
	}

	return nil
}

func (v *validator) option(opt OptionSpec) error {
	if opt.Name == "" {
		return v.fail(opt.Name, InvariantEmptyName)
	}
	if opt.Name == helpOption {
		return v.fail(opt.Name, InvariantReservedName)
	}
	if _, exists := v.options[opt.Name]; exists {
		return v.fail(opt.Name, InvariantUniqueName)
	}
	if opt.Short != "" {
		if len(opt.Short) != 1 {
			return v.fail(opt.Name, InvariantShortName)
		}
		if _, exists := v.shorts[opt.Short]; exists {
			return v.fail(opt.Name, InvariantUniqueName)
		}
		v.shorts[opt.Short] = struct{}{}
	}

	v.options[opt.Name] = struct{}{}
	return nil
}

func (v *validator) fail(declaration string, invariant Invariant) error {
	return &BuildError{
		Command:     v.command,
		Declaration: declaration,
		Invariant:   invariant,
	}
}
