package cmd

import (
	"fmt"
	"strings"

	"github.com/mwantia/vsh/data"
)

// Usage renders the one line synopsis of the command, e.g.
// "usage: host.evacuate [opts] src dst...".
func (s *Spec) Usage() string {
	parts := []string{"usage:", s.name}
	if s.HasOptions() {
		parts = append(parts, "[opts]")
	}

	for _, arg := range s.arguments {
		text := arg.Name
		if !arg.Required {
			text = fmt.Sprintf("[%s]", text)
		}
		if arg.Multi {
			text += "..."
		}
		parts = append(parts, text)
	}

	return strings.Join(parts, " ")
}

// Help renders the usage line followed by the summary, one line per
// argument and the option table.
func (s *Spec) Help() string {
	var b strings.Builder

	b.WriteString(s.Usage())
	b.WriteString("\n")

	if s.summary != "" {
		fmt.Fprintf(&b, "\n%s\n", s.summary)
	}

	if len(s.arguments) > 0 {
		b.WriteString("\nArguments:\n")
		for _, arg := range s.arguments {
			line := strings.Join(compact([]string{arg.Description, joinKinds(arg.Kinds)}), " ")
			if line == "" {
				fmt.Fprintf(&b, "  %s\n", arg.Name)
				continue
			}
			fmt.Fprintf(&b, "  %s: %s\n", arg.Name, line)
		}
	}

	fs, _ := s.newFlagSet()
	b.WriteString("\nOptions:\n")
	b.WriteString(fs.FlagUsages())

	return b.String()
}

func joinKinds(kinds []data.Kind) string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}

	return strings.Join(names, ",")
}

func compact(fields []string) []string {
	result := make([]string, 0, len(fields))
	for _, field := range fields {
		if field != "" {
			result = append(result, field)
		}
	}

	return result
}
