package vsh_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mwantia/vsh"
	"github.com/mwantia/vsh/cmd"
	"github.com/mwantia/vsh/data"
	"github.com/mwantia/vsh/inventory"
	"github.com/mwantia/vsh/inventory/backend/memory"
	"github.com/stretchr/testify/require"
)

const testSeed = `
objects:
  - name: dc1
    kind: Datacenter
    children:
      - name: hosts
        kind: Folder
        children:
          - name: esx01
            kind: HostSystem
      - name: vms
        kind: Folder
        children:
          - name: vm1
            kind: VirtualMachine
  - name: dc2
    kind: Datacenter
`

func newTestShell(t *testing.T, opts ...vsh.ShellOption) (*vsh.Shell, *bytes.Buffer) {
	t.Helper()

	inv := inventory.NewInventory(memory.NewMemoryBackend())
	require.NoError(t, inv.Open(t.Context()))
	t.Cleanup(func() {
		inv.Close(context.Background())
	})

	seed, err := inventory.ParseSeed(strings.NewReader(testSeed))
	require.NoError(t, err)
	require.NoError(t, inv.ApplySeed(t.Context(), seed))

	var out bytes.Buffer
	shell, err := vsh.NewShell(inv, append([]vsh.ShellOption{vsh.WithOutput(&out)}, opts...)...)
	require.NoError(t, err)

	return shell, &out
}

func names(commands []cmd.Command) []string {
	result := make([]string, len(commands))
	for i, command := range commands {
		result[i] = command.Name()
	}
	return result
}

func TestShell_Registry(t *testing.T) {
	shell, _ := newTestShell(t)
	require.Equal(t, []string{"cd", "help", "ls", "mkdir", "mv", "pwd", "rm"}, names(shell.Commands()))

	ls, err := shell.Command("ls")
	require.NoError(t, err)
	require.ErrorIs(t, shell.Register(ls), vsh.ErrCommandExists)
	require.ErrorIs(t, shell.Register(nil), vsh.ErrInvalidCommand)

	require.NoError(t, shell.Unregister("ls"))
	require.ErrorIs(t, shell.Unregister("ls"), vsh.ErrCommandNotFound)

	_, err = shell.Command("ls")
	require.ErrorIs(t, err, vsh.ErrCommandNotFound)

	require.NoError(t, shell.Register(ls))

	bare, _ := newTestShell(t, vsh.WithoutBuiltins())
	require.Empty(t, bare.Commands())
}

func TestShell_Execute(t *testing.T) {
	ctx := t.Context()
	shell, out := newTestShell(t)

	require.ErrorIs(t, shell.Execute(ctx), vsh.ErrNoCommand)
	require.ErrorIs(t, shell.Execute(ctx, "bogus"), vsh.ErrCommandNotFound)

	require.NoError(t, shell.Execute(ctx, "pwd"))
	require.Equal(t, "/\n", out.String())

	out.Reset()
	require.NoError(t, shell.Execute(ctx, "cd", "dc1/hosts"))
	require.NoError(t, shell.Execute(ctx, "pwd"))
	require.Equal(t, "/dc1/hosts\n", out.String())

	out.Reset()
	require.NoError(t, shell.Execute(ctx, "ls"))
	require.Equal(t, "esx01/\n", out.String())

	require.NoError(t, shell.Execute(ctx, "cd"))
	require.Equal(t, "", shell.Cursor().Cwd())
}

func TestShell_ParseErrors(t *testing.T) {
	ctx := t.Context()
	shell, _ := newTestShell(t)

	err := shell.ExecuteLine(ctx, "mkdir")
	require.ErrorIs(t, err, cmd.ErrMissingArgument)
	require.Equal(t, "missing argument: 'path'", err.Error())

	err = shell.ExecuteLine(ctx, "cd dc1/vms/vm1")
	require.ErrorIs(t, err, inventory.ErrNotContainer)

	err = shell.ExecuteLine(ctx, "cd dc*")
	require.ErrorIs(t, err, inventory.ErrAmbiguousPath)

	err = shell.ExecuteLine(ctx, "cd missing")
	require.ErrorIs(t, err, data.ErrNotExist)

	err = shell.ExecuteLine(ctx, "mv dc1/hosts dc*/x")
	require.ErrorIs(t, err, cmd.ErrAmbiguousArgument)

	err = shell.ExecuteLine(ctx, "pwd extra")
	require.ErrorIs(t, err, cmd.ErrTooManyArguments)

	err = shell.ExecuteLine(ctx, "rm missing")
	require.ErrorIs(t, err, cmd.ErrNoMatch)

	err = shell.ExecuteLine(ctx, "ls --bogus")
	require.ErrorIs(t, err, cmd.ErrInvalidOption)

	err = shell.ExecuteLine(ctx, `ls "dc1`)
	require.ErrorIs(t, err, vsh.ErrUnterminatedLine)

	// The shell keeps working after failures
	require.NoError(t, shell.ExecuteLine(ctx, "cd dc1"))
}

func TestShell_Mkdir(t *testing.T) {
	ctx := t.Context()
	shell, out := newTestShell(t)

	require.NoError(t, shell.ExecuteLine(ctx, `mkdir "dc1/my folder"`))
	require.NoError(t, shell.ExecuteLine(ctx, "mkdir --kind HostSystem dc1/hosts/esx02"))

	require.NoError(t, shell.ExecuteLine(ctx, "ls dc1"))
	require.Equal(t, "hosts/\nmy folder/\nvms/\n", out.String())

	host, err := shell.Inventory().Get(ctx, "dc1/hosts/esx02")
	require.NoError(t, err)
	require.Equal(t, data.KindHostSystem, host.Kind)

	require.ErrorIs(t, shell.ExecuteLine(ctx, "mkdir dc1/hosts"), data.ErrExist)
	require.ErrorIs(t, shell.ExecuteLine(ctx, "mkdir -k Spaceship dc1/x"), data.ErrInvalid)
	require.ErrorIs(t, shell.ExecuteLine(ctx, "mkdir missing/x"), cmd.ErrNoMatch)
}

func TestShell_Ls(t *testing.T) {
	ctx := t.Context()
	shell, out := newTestShell(t)

	require.NoError(t, shell.ExecuteLine(ctx, "ls"))
	require.Equal(t, "dc1/\ndc2/\n", out.String())

	out.Reset()
	require.NoError(t, shell.ExecuteLine(ctx, "ls dc1/vms/vm1"))
	require.Equal(t, "vm1\n", out.String())

	out.Reset()
	require.NoError(t, shell.ExecuteLine(ctx, "ls -l dc1/vms"))
	require.Contains(t, out.String(), "VirtualMachine")
	require.Contains(t, out.String(), "vm1")

	out.Reset()
	require.NoError(t, shell.ExecuteLine(ctx, "ls dc*"))
	require.Equal(t, "/dc1:\nhosts/\nvms/\n/dc2:\n", out.String())
}

func TestShell_Rm(t *testing.T) {
	ctx := t.Context()
	shell, _ := newTestShell(t)

	require.ErrorIs(t, shell.ExecuteLine(ctx, "rm dc1/vms"), data.ErrNotEmpty)
	require.NoError(t, shell.ExecuteLine(ctx, "rm -r dc1/vms dc2"))

	objects, err := shell.Inventory().Resolve(ctx, "*", nil)
	require.NoError(t, err)
	require.Len(t, objects, 1)
}

func TestShell_RmNested(t *testing.T) {
	ctx := t.Context()
	shell, _ := newTestShell(t)

	require.NoError(t, shell.ExecuteLine(ctx, "rm -r dc1 dc1/hosts dc1/vms/vm1"))

	objects, err := shell.Inventory().Resolve(ctx, "*", nil)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	require.Equal(t, "dc2", objects[0].Path)

	require.NoError(t, shell.ExecuteLine(ctx, "mkdir dc2/a"))
	require.NoError(t, shell.ExecuteLine(ctx, "rm dc2/a dc2/a"))
	_, err = shell.Inventory().Get(ctx, "dc2/a")
	require.ErrorIs(t, err, data.ErrNotExist)
}

func TestShell_Mv(t *testing.T) {
	ctx := t.Context()
	shell, _ := newTestShell(t)

	require.NoError(t, shell.ExecuteLine(ctx, "mv dc1/vms/vm1 dc1/hosts"))
	_, err := shell.Inventory().Get(ctx, "dc1/hosts/vm1")
	require.NoError(t, err)

	require.NoError(t, shell.ExecuteLine(ctx, "mv dc1/hosts/vm1 renamed"))
	vm, err := shell.Inventory().Get(ctx, "renamed")
	require.NoError(t, err)
	require.Equal(t, data.KindVirtualMachine, vm.Kind)

	require.ErrorIs(t, shell.ExecuteLine(ctx, "mv dc1 dc1/hosts/inner"), data.ErrInvalid)
}

func TestShell_Help(t *testing.T) {
	ctx := t.Context()
	shell, out := newTestShell(t)

	require.NoError(t, shell.ExecuteLine(ctx, "help"))
	require.Contains(t, out.String(), "mkdir")
	require.Contains(t, out.String(), "Create an inventory object")

	out.Reset()
	require.NoError(t, shell.ExecuteLine(ctx, "help rm"))
	require.True(t, strings.HasPrefix(out.String(), "usage: rm [opts] path...\n"))

	out.Reset()
	require.NoError(t, shell.ExecuteLine(ctx, "mkdir --help"))
	require.True(t, strings.HasPrefix(out.String(), "usage: mkdir [opts] path\n"))
	require.Contains(t, out.String(), "-k, --kind")

	require.ErrorIs(t, shell.ExecuteLine(ctx, "help bogus"), vsh.ErrCommandNotFound)
}

func TestShell_Alias(t *testing.T) {
	ctx := t.Context()
	shell, out := newTestShell(t, vsh.WithAlias("here", "pwd"))

	require.NoError(t, shell.Alias("ll", "ls -l"))
	require.ErrorIs(t, shell.Alias("bad", ""), vsh.ErrInvalidAlias)

	require.NoError(t, shell.ExecuteLine(ctx, "ll dc1"))
	require.Contains(t, out.String(), "Folder")

	out.Reset()
	require.NoError(t, shell.ExecuteLine(ctx, "here"))
	require.Equal(t, "/\n", out.String())

	command, err := shell.Command("ll")
	require.NoError(t, err)
	require.Equal(t, "ls", command.Name())

	require.Equal(t, []string{"ls", "-l"}, shell.Aliases()["ll"])
}

func TestShell_Run(t *testing.T) {
	shell, out := newTestShell(t, vsh.WithPrompt(""))

	input := strings.NewReader("pwd\n\n# comment\nbogus\ncd dc1\npwd\nexit\npwd\n")
	require.NoError(t, shell.Run(t.Context(), input))

	require.Equal(t, "/\nvsh: command not found: bogus\n/dc1\n", out.String())
}

func TestShell_RunPrompt(t *testing.T) {
	shell, out := newTestShell(t)

	require.NoError(t, shell.Run(t.Context(), strings.NewReader("cd dc2\n")))
	require.Equal(t, "/> /dc2> ", out.String())
}

func TestShell_RunCancelled(t *testing.T) {
	shell, _ := newTestShell(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	require.ErrorIs(t, shell.Run(ctx, strings.NewReader("pwd\n")), context.Canceled)
}
