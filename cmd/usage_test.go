package cmd

import (
	"testing"

	"github.com/mwantia/vsh/data"
	"github.com/stretchr/testify/require"
)

func TestUsage(t *testing.T) {
	testCases := []struct {
		desc     string
		spec     *Spec
		expected string
	}{
		{
			desc:     "No arguments and no options",
			spec:     MustSpec("pwd", ""),
			expected: "usage: pwd",
		},
		{
			desc: "Multi argument with options",
			spec: MustSpec("host.reboot", "",
				WithArgument("host", "", ArgumentConfig{Multi: true}),
				WithOption("force", "", OptionConfig{Default: false}),
			),
			expected: "usage: host.reboot [opts] host...",
		},
		{
			desc: "Optional and optional multi arguments",
			spec: MustSpec("test", "",
				WithArgument("src", "", ArgumentConfig{}),
				WithArgument("path", "", ArgumentConfig{Optional: true}),
				WithArgument("names", "", ArgumentConfig{Optional: true, Multi: true}),
			),
			expected: "usage: test src [path] [names]...",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.spec.Usage())
		})
	}
}

func TestHelp(t *testing.T) {
	spec := MustSpec("connect", "Open a connection to ESX/VC",
		WithArgument("uri", "Host to connect to", ArgumentConfig{}),
		WithArgument("dst", "", ArgumentConfig{Optional: true, Lookup: []data.Kind{data.KindHostSystem}}),
		WithArgument("rest", "", ArgumentConfig{Optional: true, Multi: true}),
		WithOption("insecure", "don't verify ssl certificate", OptionConfig{Short: "k", Default: false}),
	)

	help := spec.Help()

	require.Contains(t, help, "usage: connect [opts] uri [dst] [rest]...\n")
	require.Contains(t, help, "\nOpen a connection to ESX/VC\n")
	require.Contains(t, help, "  uri: Host to connect to\n")
	require.Contains(t, help, "  dst: HostSystem\n")
	require.Contains(t, help, "  rest\n")
	require.Contains(t, help, "-k, --insecure")
	require.Contains(t, help, "don't verify ssl certificate")
	require.Contains(t, help, "-h, --help")
}
