package cmd

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mwantia/vsh/data"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	mu      sync.Mutex
	results map[string][]*data.Object
	calls   []string
	err     error
}

func (f *fakeLookup) Resolve(ctx context.Context, path string, kinds []data.Kind) ([]*data.Object, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, path)
	if f.err != nil {
		return nil, f.err
	}

	return f.results[path], nil
}

func newObject(path string, kind data.Kind) *data.Object {
	_, name := data.SplitPath(path)
	return &data.Object{ID: path, Kind: kind, Name: name, Path: path}
}

func hostKinds() []data.Kind {
	return []data.Kind{data.KindHostSystem}
}

func TestParseMultiFlattening(t *testing.T) {
	x := newObject("x", data.KindHostSystem)
	y := newObject("y", data.KindHostSystem)
	z := newObject("z", data.KindHostSystem)
	lookup := &fakeLookup{results: map[string][]*data.Object{
		"a": {x, y},
		"b": {z},
	}}

	spec := MustSpec("test", "", WithArgument("host", "", ArgumentConfig{Multi: true, Lookup: hostKinds()}))
	args, err := NewParser(spec, lookup).Parse(t.Context(), []string{"a", "b"})

	require.NoError(t, err)
	require.Equal(t, []any{x, y, z}, args.Args("host"))
	require.Equal(t, []*data.Object{x, y, z}, args.Objects("host"))
	require.Equal(t, []string{"a", "b"}, lookup.calls)
}

func TestParseEndToEndHosts(t *testing.T) {
	host1 := newObject("dc1/host1", data.KindHostSystem)
	host2 := newObject("dc1/host2", data.KindHostSystem)
	lookup := &fakeLookup{results: map[string][]*data.Object{
		"dc1/host1": {host1},
		"dc1/host2": {host2},
	}}

	spec := MustSpec("host.reboot", "Reboot a host",
		WithArgument("host", "", ArgumentConfig{Multi: true, Lookup: hostKinds()}),
	)
	args, err := NewParser(spec, lookup).Parse(t.Context(), []string{"dc1/host1", "dc1/host2"})

	require.NoError(t, err)
	require.Equal(t, []*data.Object{host1, host2}, args.Objects("host"))
}

func TestParseFailure(t *testing.T) {
	vm := newObject("dc1/vm/web", data.KindVirtualMachine)
	lookup := &fakeLookup{results: map[string][]*data.Object{
		"web*": {vm, newObject("dc1/vm/web2", data.KindVirtualMachine)},
		"web":  {vm},
	}}
	vmKinds := []data.Kind{data.KindVirtualMachine}

	testCases := []struct {
		desc          string
		spec          *Spec
		tokens        []string
		expectedErr   error
		expectedError string
	}{
		{
			desc:          "Missing required argument",
			spec:          MustSpec("test", "", WithArgument("vm", "", ArgumentConfig{Lookup: vmKinds})),
			tokens:        []string{},
			expectedErr:   ErrMissingArgument,
			expectedError: "missing argument: 'vm'",
		},
		{
			desc: "Missing second required argument",
			spec: MustSpec("test", "",
				WithArgument("src", "", ArgumentConfig{}),
				WithArgument("dst", "", ArgumentConfig{}),
			),
			tokens:        []string{"a"},
			expectedErr:   ErrMissingArgument,
			expectedError: "missing argument: 'dst'",
		},
		{
			desc:          "Missing required multi argument",
			spec:          MustSpec("test", "", WithArgument("vms", "", ArgumentConfig{Multi: true, Lookup: vmKinds})),
			tokens:        []string{},
			expectedErr:   ErrMissingArgument,
			expectedError: "missing argument: 'vms'",
		},
		{
			desc:          "Ambiguous single argument",
			spec:          MustSpec("test", "", WithArgument("vm", "", ArgumentConfig{Lookup: vmKinds})),
			tokens:        []string{"web*"},
			expectedErr:   ErrAmbiguousArgument,
			expectedError: "more than one match: 'vm'",
		},
		{
			desc:          "Ambiguous optional argument",
			spec:          MustSpec("test", "", WithArgument("vm", "", ArgumentConfig{Optional: true, Lookup: vmKinds})),
			tokens:        []string{"web*"},
			expectedErr:   ErrAmbiguousArgument,
			expectedError: "more than one match: 'vm'",
		},
		{
			desc:          "No match for required argument",
			spec:          MustSpec("test", "", WithArgument("vm", "", ArgumentConfig{Lookup: vmKinds})),
			tokens:        []string{"db"},
			expectedErr:   ErrNoMatch,
			expectedError: "no matches: 'vm'",
		},
		{
			desc:          "No match for required multi argument",
			spec:          MustSpec("test", "", WithArgument("vms", "", ArgumentConfig{Multi: true, Lookup: vmKinds})),
			tokens:        []string{"db", "cache"},
			expectedErr:   ErrNoMatch,
			expectedError: "no matches: 'vms'",
		},
		{
			desc: "Too many arguments",
			spec: MustSpec("test", "",
				WithArgument("src", "", ArgumentConfig{}),
				WithArgument("dst", "", ArgumentConfig{}),
			),
			tokens:        []string{"a", "b", "c"},
			expectedErr:   ErrTooManyArguments,
			expectedError: "too many arguments",
		},
		{
			desc:          "Unknown option",
			spec:          MustSpec("test", "", WithOption("force", "", OptionConfig{Default: false})),
			tokens:        []string{"--forse"},
			expectedErr:   ErrInvalidOption,
			expectedError: "invalid option: unknown flag: --forse",
		},
		{
			desc:        "Option value of the wrong type",
			spec:        MustSpec("test", "", WithOption("num", "", OptionConfig{Default: 4})),
			tokens:      []string{"--num", "four"},
			expectedErr: ErrInvalidOption,
		},
		{
			desc:          "Lookup option without match",
			spec:          MustSpec("test", "", WithOption("vm", "", OptionConfig{Lookup: vmKinds})),
			tokens:        []string{"--vm", "db"},
			expectedErr:   &ParseError{Kind: NoMatch, Name: "vm"},
			expectedError: "no matches: 'vm'",
		},
		{
			desc:          "Lookup option given an empty value",
			spec:          MustSpec("test", "", WithOption("vm", "", OptionConfig{Lookup: vmKinds})),
			tokens:        []string{"--vm", ""},
			expectedErr:   &ParseError{Kind: NoMatch, Name: "vm"},
			expectedError: "no matches: 'vm'",
		},
		{
			desc:          "Lookup option with many matches",
			spec:          MustSpec("test", "", WithOption("vm", "", OptionConfig{Lookup: vmKinds})),
			tokens:        []string{"--vm=web*"},
			expectedErr:   &ParseError{Kind: AmbiguousArgument, Name: "vm"},
			expectedError: "more than one match: 'vm'",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			args, err := NewParser(tc.spec, lookup).Parse(t.Context(), tc.tokens)

			require.Nil(t, args)
			require.ErrorIs(t, err, tc.expectedErr)
			if tc.expectedError != "" {
				require.EqualError(t, err, tc.expectedError)
			}
		})
	}
}

func TestParseDefaultSkipsLookup(t *testing.T) {
	lookup := &fakeLookup{}
	spec := MustSpec("test", "",
		WithArgument("host", "", ArgumentConfig{Optional: true, Default: "foo", Lookup: hostKinds()}),
	)

	args, err := NewParser(spec, lookup).Parse(t.Context(), []string{})

	require.NoError(t, err)
	require.Equal(t, "foo", args.Arg("host"))
	require.Empty(t, lookup.calls)
}

func TestParseOptionalMultiDefault(t *testing.T) {
	spec := MustSpec("test", "",
		WithArgument("path", "", ArgumentConfig{Optional: true}),
		WithArgument("names", "", ArgumentConfig{Optional: true, Multi: true}),
	)
	parser := NewParser(spec, nil)

	args, err := parser.Parse(t.Context(), nil)
	require.NoError(t, err)
	require.Nil(t, args.Arg("path"))
	require.Equal(t, []any{}, args.Args("names"))

	args, err = parser.Parse(t.Context(), []string{"dc1", "a", "b"})
	require.NoError(t, err)
	require.Equal(t, "dc1", args.String("path"))
	require.Equal(t, []any{"a", "b"}, args.Args("names"))
}

func TestParseOptionalWithoutMatch(t *testing.T) {
	lookup := &fakeLookup{}
	spec := MustSpec("test", "",
		WithArgument("host", "", ArgumentConfig{Optional: true, Lookup: hostKinds()}),
		WithArgument("vms", "", ArgumentConfig{Optional: true, Multi: true, Lookup: []data.Kind{data.KindVirtualMachine}}),
	)

	args, err := NewParser(spec, lookup).Parse(t.Context(), []string{"missing", "gone"})

	require.NoError(t, err)
	require.Nil(t, args.Arg("host"))
	require.Empty(t, args.Args("vms"))
	require.Equal(t, []string{"missing", "gone"}, lookup.calls)
}

func TestParseLookupParent(t *testing.T) {
	folder := newObject("dc1/vm", data.KindFolder)
	lookup := &fakeLookup{results: map[string][]*data.Object{
		"dc1/vm": {folder},
		".":      {newObject("", data.KindFolder)},
	}}
	spec := MustSpec("mkdir", "",
		WithArgument("path", "", ArgumentConfig{LookupParent: []data.Kind{data.KindFolder}}),
	)
	parser := NewParser(spec, lookup)

	args, err := parser.Parse(t.Context(), []string{"dc1/vm/templates"})
	require.NoError(t, err)
	pl, ok := args.ParentLeaf("path")
	require.True(t, ok)
	require.Equal(t, folder, pl.Parent)
	require.Equal(t, "templates", pl.Leaf)

	args, err = parser.Parse(t.Context(), []string{"templates"})
	require.NoError(t, err)
	pl, ok = args.ParentLeaf("path")
	require.True(t, ok)
	require.Equal(t, "templates", pl.Leaf)
	require.Equal(t, []string{"dc1/vm", "."}, lookup.calls)
}

func TestParseMultiLookupParent(t *testing.T) {
	dc1 := newObject("dc1", data.KindDatacenter)
	dc2 := newObject("dc2", data.KindDatacenter)
	lookup := &fakeLookup{results: map[string][]*data.Object{
		"dc*": {dc1, dc2},
		"dc1": {dc1},
	}}
	spec := MustSpec("mkdir", "",
		WithArgument("paths", "", ArgumentConfig{Multi: true, LookupParent: []data.Kind{data.KindDatacenter}}),
	)

	args, err := NewParser(spec, lookup).Parse(t.Context(), []string{"dc*/x", "dc1/y"})

	require.NoError(t, err)
	require.Equal(t, []any{
		data.ParentLeaf{Parent: dc1, Leaf: "x"},
		data.ParentLeaf{Parent: dc2, Leaf: "x"},
		data.ParentLeaf{Parent: dc1, Leaf: "y"},
	}, args.Args("paths"))
	require.Equal(t, []string{"dc*", "dc1"}, lookup.calls)
}

func TestParseLookupOptionDefault(t *testing.T) {
	lookup := &fakeLookup{}
	spec := MustSpec("test", "", WithOption("vm", "", OptionConfig{Lookup: []data.Kind{data.KindVirtualMachine}}))

	args, err := NewParser(spec, lookup).Parse(t.Context(), nil)

	require.NoError(t, err)
	require.Nil(t, args.Option("vm"))
	require.False(t, args.Changed("vm"))
	require.Empty(t, lookup.calls)
}

func TestParseOptions(t *testing.T) {
	host := newObject("dc1/host1", data.KindHostSystem)
	lookup := &fakeLookup{results: map[string][]*data.Object{"dc1/host1": {host}}}
	spec := MustSpec("test", "",
		WithOption("insecure", "don't verify ssl certificate", OptionConfig{Short: "k", Default: false}),
		WithOption("num", "", OptionConfig{Default: 4}),
		WithOption("ratio", "", OptionConfig{Default: 0.5}),
		WithOption("timeout", "", OptionConfig{Default: time.Second}),
		WithOption("name", "", OptionConfig{Default: "x"}),
		WithOption("host", "", OptionConfig{Lookup: hostKinds()}),
		WithOption("target", "", OptionConfig{Lookup: hostKinds()}),
		WithArgument("rest", "", ArgumentConfig{Optional: true, Multi: true}),
	)

	args, err := NewParser(spec, lookup).Parse(t.Context(), []string{
		"a", "-k", "--num", "8", "--timeout=2m", "--host", "dc1/host1", "b", "--", "--name",
	})

	require.NoError(t, err)
	require.True(t, args.OptionBool("insecure"))
	require.True(t, args.Changed("insecure"))
	require.Equal(t, 8, args.OptionInt("num"))
	require.Equal(t, 0.5, args.OptionFloat("ratio"))
	require.False(t, args.Changed("ratio"))
	require.Equal(t, 2*time.Minute, args.OptionDuration("timeout"))
	require.Equal(t, "x", args.OptionString("name"))
	require.Equal(t, host, args.OptionObject("host"))
	require.Nil(t, args.Option("target"))
	require.Equal(t, []any{"a", "b", "--name"}, args.Args("rest"))
	require.Equal(t, []string{"dc1/host1"}, lookup.calls)
}

func TestParseHelp(t *testing.T) {
	spec := MustSpec("test", "", WithArgument("host", "", ArgumentConfig{}))

	for _, token := range []string{"-h", "--help"} {
		args, err := NewParser(spec, nil).Parse(t.Context(), []string{token})

		require.Nil(t, args)
		require.ErrorIs(t, err, ErrHelp)
	}
}

func TestParseLookupFailure(t *testing.T) {
	unreachable := errors.New("inventory unreachable")
	spec := MustSpec("test", "", WithArgument("host", "", ArgumentConfig{Lookup: hostKinds()}))

	_, err := NewParser(spec, &fakeLookup{err: unreachable}).Parse(t.Context(), []string{"dc1/host1"})
	require.ErrorIs(t, err, ErrLookupFailed)
	require.ErrorIs(t, err, unreachable)
	require.EqualError(t, err, "lookup failed: 'host': inventory unreachable")

	_, err = NewParser(spec, nil).Parse(t.Context(), []string{"dc1/host1"})
	require.ErrorIs(t, err, ErrNoLookup)
}

func TestParseIdempotent(t *testing.T) {
	lookup := &fakeLookup{results: map[string][]*data.Object{
		"*": {newObject("a", data.KindHostSystem), newObject("b", data.KindHostSystem)},
	}}
	spec := MustSpec("test", "",
		WithOption("force", "", OptionConfig{Default: false}),
		WithArgument("hosts", "", ArgumentConfig{Multi: true, Lookup: hostKinds()}),
	)
	parser := NewParser(spec, lookup)
	tokens := []string{"--force", "*"}

	first, err := parser.Parse(t.Context(), tokens)
	require.NoError(t, err)
	second, err := parser.Parse(t.Context(), tokens)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestParseConcurrent(t *testing.T) {
	lookup := LookupFunc(func(ctx context.Context, path string, kinds []data.Kind) ([]*data.Object, error) {
		return []*data.Object{newObject(path, data.KindHostSystem)}, nil
	})
	spec := MustSpec("test", "", WithArgument("hosts", "", ArgumentConfig{Multi: true, Lookup: hostKinds()}))
	parser := NewParser(spec, lookup)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			args, err := parser.Parse(context.Background(), []string{"a", "b"})
			if err != nil {
				t.Error(err)
				return
			}
			if len(args.Objects("hosts")) != 2 {
				t.Errorf("expected 2 hosts, got %d", len(args.Objects("hosts")))
			}
		}()
	}
	wg.Wait()
}
