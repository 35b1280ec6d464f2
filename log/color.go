package log

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const colorReset = "\033[0m"

func Color(l LogLevel) string {
	switch l {
	case Debug:
		return "\033[34m"
	case Info:
		return "\033[32m"
	case Warn:
		return "\033[33m"
	case Error:
		return "\033[31m"
	case Fatal:
		return "\033[35m"
	default:
		return colorReset
	}
}

// colorize wraps line into the escape sequences of level l.
func colorize(l LogLevel, line string) string {
	return Color(l) + line + colorReset
}

// supportsColor reports whether w is a terminal able to render escape
// sequences. Setting NO_COLOR disables colours for every writer.
func supportsColor(w io.Writer) bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}

	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
